package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"talent-search/internal/cache"
	"talent-search/internal/cv"
	"talent-search/internal/llm"
)

//nolint:gochecknoglobals // Cobra boilerplate
var importDryRun bool

//nolint:gochecknoglobals // Cobra boilerplate
var importCmd = &cobra.Command{
	Use:   "import [resume files...]",
	Short: "Create candidates from resume files",
	Long: `Extracts each PDF or TXT resume, parses it with the configured LLM provider
and creates a candidate from the result.

Runs as a dry run by default and only prints what it would create.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", true, "If true, do not persist candidates; just print them")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, db, logger, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	parser := llm.NewService(llm.Options{Provider: cfg.LLMProvider, APIKey: cfg.LLMAPIKey, Model: cfg.LLMModel}, logger)
	if !parser.Enabled() {
		return fmt.Errorf("LLM_PROVIDER must be set (openai, groq or anthropic)")
	}
	documents := cv.NewParser(cfg.MaxUploadBytes)
	importer := cv.NewImporter(parser, cache.Nop{}, 0, cv.Defaults{
		BillRate:     cfg.DefaultBillRate,
		PayRate:      cfg.DefaultPayRate,
		Availability: cfg.DefaultAvailability,
	}, logger)

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("read failed", zap.String("file", path), zap.Error(err))
			failed++
			continue
		}
		text, err := documents.Extract(filepath.Base(path), data)
		if err != nil {
			logger.Error("extract failed", zap.String("file", path), zap.Error(err))
			failed++
			continue
		}
		draft, err := importer.Import(ctx, text)
		if err != nil {
			logger.Error("parse failed", zap.String("file", path), zap.Error(err))
			failed++
			continue
		}

		if importDryRun {
			fmt.Fprintf(out, "[dry-run] %s: %s, %s, %d years, skills=%v\n",
				path, draft.FullName, draft.Title, draft.ExperienceYears, draft.Skills)
			continue
		}
		c, err := db.CreateCandidate(ctx, *draft)
		if err != nil {
			logger.Error("create failed", zap.String("file", path), zap.Error(err))
			failed++
			continue
		}
		fmt.Fprintf(out, "%s: created #%d %s\n", path, c.ID, c.FullName)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(args))
	}
	return nil
}
