package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"talent-search/internal/config"
	"talent-search/internal/logging"
	"talent-search/internal/storage"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "talentctl",
	Short: "Operate the talent-search database",
	Long: `talentctl manages the talent-search schema and data from the command line.

It reads the same .env and environment variables as the API server.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// connect loads config and opens the database. Callers close the DB.
func connect() (*config.Config, *storage.DB, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := logging.New(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := storage.NewDB(cfg.DatabaseURL, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, db, logger, nil
}
