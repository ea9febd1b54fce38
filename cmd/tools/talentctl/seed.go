package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"talent-search/internal/storage"
)

//nolint:gochecknoglobals // Cobra boilerplate
var seedForce bool

//nolint:gochecknoglobals // Cobra boilerplate
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample candidates",
	Long: `Inserts a small set of sample candidates for local development.

Does nothing when candidates already exist unless --force is given.`,
	RunE: runSeed,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "Insert even if candidates exist")
}

func rate(n int) *int { return &n }

func sampleCandidates() []storage.NewCandidate {
	return []storage.NewCandidate{
		{
			Initials: "JD", FullName: "Jordan Davis", Title: "Senior Frontend Engineer", Location: "Austin, TX",
			Skills: []string{"React", "TypeScript", "GraphQL", "Tailwind"}, ExperienceYears: 8,
			Bio:          "Frontend lead who has shipped design systems and large React applications.",
			Education:    "BS Computer Science, UT Austin",
			Availability: "2 weeks", Certifications: []string{}, BillRate: rate(140), PayRate: rate(105), IsActive: true,
		},
		{
			Initials: "PS", FullName: "Priya Shah", Title: "Backend Engineer", Location: "Chicago, IL",
			Skills: []string{"Go", "PostgreSQL", "Kubernetes", "AWS"}, ExperienceYears: 5,
			Bio:          "Builds reliable APIs and data pipelines on cloud infrastructure.",
			Education:    "MS Software Engineering, DePaul University",
			Availability: "Immediate", Certifications: []string{"AWS Solutions Architect"}, BillRate: rate(130), PayRate: rate(95), IsActive: true,
		},
		{
			Initials: "ML", FullName: "Marco Lopez", Title: "Mobile Developer", Location: "Miami, FL",
			Skills: []string{"Flutter", "Dart", "Swift", "Kotlin"}, ExperienceYears: 4,
			Bio:          "Cross-platform mobile developer focused on consumer apps.",
			Education:    "BS Information Systems, FIU",
			Availability: "1 month", Certifications: []string{}, BillRate: rate(110), PayRate: rate(80), IsActive: true,
		},
		{
			Initials: "AK", FullName: "Aiko Kimura", Title: "Machine Learning Engineer", Location: "Seattle, WA",
			Skills: []string{"Python", "ML", "AI", "GCP"}, ExperienceYears: 6,
			Bio:          "Trains and deploys recommendation and NLP models.",
			Education:    "PhD Statistics, University of Washington",
			Availability: "3+ months", Certifications: []string{"Google Professional ML Engineer"}, BillRate: rate(175), PayRate: rate(130), IsActive: true,
		},
		{
			Initials: "TB", FullName: "Tom Baker", Title: "DevOps Engineer", Location: "Denver, CO",
			Skills: []string{"Docker", "Kubernetes", "Azure", "DevOps"}, ExperienceYears: 10,
			Bio:          "Platform engineer automating delivery for regulated industries.",
			Education:    "BS Electrical Engineering, CU Boulder",
			Availability: "1 week", Certifications: []string{"CKA"}, BillRate: rate(150), PayRate: rate(115), IsActive: false,
		},
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	_, db, _, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	existing, err := db.ListCandidates(ctx, false)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(existing) > 0 && !seedForce {
		fmt.Fprintf(out, "%d candidate(s) already present, skipping (use --force)\n", len(existing))
		return nil
	}

	for _, nc := range sampleCandidates() {
		c, err := db.CreateCandidate(ctx, nc)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Created #%d %s (%s)\n", c.ID, c.FullName, c.Title)
	}
	return nil
}
