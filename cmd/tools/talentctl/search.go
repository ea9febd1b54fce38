package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"talent-search/internal/search"
)

//nolint:gochecknoglobals // Cobra boilerplate
var explainOnly bool

//nolint:gochecknoglobals // Cobra boilerplate
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run a natural-language candidate search",
	Long: `Interprets the query the same way the API does and prints the matches.

Examples:
  talentctl search "senior react developer with 5 years"
  talentctl search --explain "go engineer available immediately"`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&explainOnly, "explain", false, "Only print the extracted criteria")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	out := cmd.OutOrStdout()

	if explainOnly {
		printCriteria(cmd, search.NewInterpreter(nil, zap.NewNop()).Explain(query))
		return nil
	}

	_, db, logger, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	interp := search.NewInterpreter(db, logger)
	printCriteria(cmd, interp.Explain(query))

	candidates, err := interp.Search(cmd.Context(), query)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d match(es)\n", len(candidates))
	for _, c := range candidates {
		fmt.Fprintf(out, "#%-4d %-4s %-30s %2dy  %-10s %s\n",
			c.ID, c.Initials, c.Title, c.ExperienceYears, c.Availability, strings.Join(c.Skills, ", "))
	}
	return nil
}

func printCriteria(cmd *cobra.Command, c search.Criteria) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "mode:         %s\n", c.Mode())
	fmt.Fprintf(out, "skills:       %s\n", strings.Join(c.Skills, ", "))
	if c.MinExperience != nil {
		fmt.Fprintf(out, "experience:   >= %d years\n", *c.MinExperience)
	}
	if c.Availability != "" {
		fmt.Fprintf(out, "availability: %s\n", c.Availability)
	}
}
