package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"talent-search/internal/storage"
)

//nolint:gochecknoglobals // Cobra boilerplate
var downSteps int

//nolint:gochecknoglobals // Cobra boilerplate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE:  runMigrateUp,
}

//nolint:gochecknoglobals // Cobra boilerplate
var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migrations",
	RunE:  runMigrateDown,
}

//nolint:gochecknoglobals // Cobra boilerplate
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	RunE:  runMigrateStatus,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateDownCmd, migrateStatusCmd)
	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "Number of migrations to roll back")
}

func runMigrateUp(cmd *cobra.Command, _ []string) error {
	_, db, logger, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := storage.NewMigrator(db, logger).Up(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s)\n", n)
	return nil
}

func runMigrateDown(cmd *cobra.Command, _ []string) error {
	if downSteps < 1 {
		return fmt.Errorf("--steps must be at least 1")
	}
	_, db, logger, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := storage.NewMigrator(db, logger).Down(cmd.Context(), downSteps)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rolled back %d migration(s)\n", n)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, _ []string) error {
	_, db, logger, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	status, err := storage.NewMigrator(db, logger).Status(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, s := range status {
		applied := "pending"
		if !s.AppliedAt.IsZero() {
			applied = s.AppliedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(out, "%3d  %-25s  %s\n", s.Version, applied, s.Description)
	}
	return nil
}
