package search

import (
	"context"
	"strings"

	"talent-search/internal/apperr"
	"talent-search/internal/storage"
)

// FilterCriteria is the explicit filter form. Zero values mean "no filter".
type FilterCriteria struct {
	Skills        []string
	MinExperience *int
	Availability  string
}

// Filter applies explicit criteria to every candidate, active or not.
func (i *Interpreter) Filter(ctx context.Context, fc FilterCriteria) ([]storage.Candidate, error) {
	ctx, span := tracer.Start(ctx, "Filter")
	defer span.End()

	all, err := i.source.ListCandidates(ctx, false)
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Internal("filter failed", err)
	}
	return FilterCandidates(all, fc), nil
}

// FilterCandidates is the storage-free part of Filter.
func FilterCandidates(candidates []storage.Candidate, fc FilterCriteria) []storage.Candidate {
	skills := make([]string, 0, len(fc.Skills))
	for _, s := range fc.Skills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			skills = append(skills, s)
		}
	}

	out := make([]storage.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if HasAnySkill(c, skills) &&
			HasMinExperience(c, fc.MinExperience) &&
			AvailabilityEquals(c, fc.Availability) {
			out = append(out, c)
		}
	}
	return out
}

// HasAnySkill reports whether any of skills (lower-case) is a substring of any
// candidate skill. An empty list matches everyone.
func HasAnySkill(c storage.Candidate, skills []string) bool {
	if len(skills) == 0 {
		return true
	}
	for _, have := range c.Skills {
		have = strings.ToLower(have)
		for _, want := range skills {
			if strings.Contains(have, want) {
				return true
			}
		}
	}
	return false
}

func HasMinExperience(c storage.Candidate, min *int) bool {
	return min == nil || c.ExperienceYears >= *min
}

// AvailabilityContains is the lenient match used by free-text search.
func AvailabilityContains(c storage.Candidate, term string) bool {
	return term == "" || strings.Contains(strings.ToLower(c.Availability), strings.ToLower(term))
}

// AvailabilityEquals is the exact match used by the explicit filter.
func AvailabilityEquals(c storage.Candidate, availability string) bool {
	return availability == "" || strings.EqualFold(c.Availability, availability)
}

// ContainsText is the fallback match over the descriptive fields.
func ContainsText(c storage.Candidate, query string) bool {
	q := strings.ToLower(query)
	for _, field := range []string{c.FullName, c.Title, c.Location, c.Bio, c.Education} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	for _, skill := range c.Skills {
		if strings.Contains(strings.ToLower(skill), q) {
			return true
		}
	}
	return false
}
