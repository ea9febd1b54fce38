package search

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"talent-search/internal/apperr"
	"talent-search/internal/storage"
	"talent-search/internal/telemetry"
)

var tracer = telemetry.GetTracer("talent-search/search")

// CandidateSource is the storage read the search paths need.
type CandidateSource interface {
	ListCandidates(ctx context.Context, activeOnly bool) ([]storage.Candidate, error)
}

// Criteria is what the interpreter understood from a query.
type Criteria struct {
	Query         string   `json:"query"`
	Skills        []string `json:"skills"`
	MinExperience *int     `json:"minExperience"`
	Availability  string   `json:"availability"`
}

// HasSignal reports whether any extractor matched.
func (c Criteria) HasSignal() bool {
	return len(c.Skills) > 0 || c.MinExperience != nil || c.Availability != ""
}

// Mode names the path a query takes: "all", "structured" or "text".
func (c Criteria) Mode() string {
	switch {
	case c.Query == "":
		return "all"
	case c.HasSignal():
		return "structured"
	default:
		return "text"
	}
}

type Interpreter struct {
	source       CandidateSource
	experience   Extractor[int]
	skills       Extractor[[]string]
	availability Extractor[string]
	logger       *zap.Logger
}

type Option func(*Interpreter)

// WithSkillVocabulary replaces the default skill vocabulary.
func WithSkillVocabulary(vocabulary []string) Option {
	return func(i *Interpreter) {
		i.skills = NewSkillExtractor(vocabulary)
	}
}

func WithExperienceExtractor(e Extractor[int]) Option {
	return func(i *Interpreter) { i.experience = e }
}

func WithAvailabilityExtractor(e Extractor[string]) Option {
	return func(i *Interpreter) { i.availability = e }
}

func NewInterpreter(source CandidateSource, logger *zap.Logger, opts ...Option) *Interpreter {
	i := &Interpreter{
		source:       source,
		experience:   ExperienceExtractor{},
		skills:       NewSkillExtractor(DefaultVocabulary),
		availability: AvailabilityExtractor{},
		logger:       logger,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Explain runs the extractors without touching storage.
func (i *Interpreter) Explain(query string) Criteria {
	q := strings.ToLower(strings.TrimSpace(query))
	c := Criteria{Query: q}
	if q == "" {
		return c
	}

	if n, ok := i.experience.Extract(q); ok {
		c.MinExperience = &n
	}
	if skills, ok := i.skills.Extract(q); ok {
		c.Skills = skills
	}
	if term, ok := i.availability.Extract(q); ok {
		c.Availability = term
	}
	return c
}

// Search returns the active candidates matching query. An empty query
// returns every active candidate.
func (i *Interpreter) Search(ctx context.Context, query string) ([]storage.Candidate, error) {
	ctx, span := tracer.Start(ctx, "Search")
	defer span.End()

	criteria := i.Explain(query)
	span.SetAttributes(
		telemetry.String("search.mode", criteria.Mode()),
		telemetry.Strings("search.skills", criteria.Skills),
		telemetry.String("search.availability", criteria.Availability),
	)
	if criteria.MinExperience != nil {
		span.SetAttributes(telemetry.Int("search.min_experience", *criteria.MinExperience))
	}

	active, err := i.source.ListCandidates(ctx, true)
	if err != nil {
		span.RecordError(err)
		i.logger.Error("Search failed loading candidates", zap.Error(err))
		return nil, apperr.Internal("search failed", err)
	}

	results := make([]storage.Candidate, 0, len(active))
	for _, c := range active {
		if !c.IsActive {
			continue
		}
		if Matches(c, criteria) {
			results = append(results, c)
		}
	}

	span.SetAttributes(telemetry.Int("search.results", len(results)))
	i.logger.Debug("Search completed",
		zap.String("query", criteria.Query),
		zap.String("mode", criteria.Mode()),
		zap.Int("results", len(results)),
	)
	return results, nil
}

// Matches applies criteria to a single candidate, ignoring its active flag.
func Matches(c storage.Candidate, criteria Criteria) bool {
	switch criteria.Mode() {
	case "all":
		return true
	case "structured":
		return HasAnySkill(c, criteria.Skills) &&
			HasMinExperience(c, criteria.MinExperience) &&
			AvailabilityContains(c, criteria.Availability)
	default:
		return ContainsText(c, criteria.Query)
	}
}
