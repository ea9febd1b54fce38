// Package search turns free-text queries into candidate filters.
package search

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Extractor pulls one kind of signal out of a query. ok is false when the
// query carries no such signal.
type Extractor[T any] interface {
	Extract(text string) (value T, ok bool)
}

// DefaultVocabulary is the set of technology and role keywords recognized as
// skill mentions. Earlier entries win when alternatives overlap at the same
// position, so "react native" is reported as "react".
//
// Terms are matched between word boundaries. "c#" never matches before a
// space or the end of the query, and ".net" only matches after a word
// character ("asp.net").
var DefaultVocabulary = []string{
	"javascript", "js", "typescript", "ts", "react", "angular", "vue", "node", "express",
	"python", "django", "flask", "java", "spring", "c#", ".net", "ruby", "rails", "php", "laravel",
	"go", "golang", "rust", "swift", "kotlin", "flutter", "dart",
	"aws", "azure", "gcp", "cloud", "devops", "docker", "kubernetes", "k8s",
	"sql", "mysql", "postgresql", "mongodb", "nosql", "graphql", "rest", "api",
	"html", "css", "scss", "sass", "tailwind", "bootstrap",
	"ui", "ux", "design", "mobile", "ios", "android", "react native",
	"lead", "senior", "junior", "mid", "fullstack", "frontend", "backend",
	"data", "ai", "ml", "machine learning", "blockchain",
}

var experiencePattern = regexp.MustCompile(
	`(?i)(\d+)\s*(?:\+)?\s*(?:years?|yrs?)\s*(?:of\s*)?(?:experience|exp)?|\b(?:over|more\s+than)\s+(\d+)\s*(?:years?|yrs?)`)

var availabilityPattern = regexp.MustCompile(
	`(?i)\b(immediate|immediately|available\s+now|(\d+)\s*(?:week|wk|day|month|mth)s?)(?:\s+availability)?\b`)

// ExperienceExtractor finds a minimum years-of-experience bound.
type ExperienceExtractor struct{}

func (ExperienceExtractor) Extract(text string) (int, bool) {
	m := experiencePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	for _, group := range m[1:] {
		if group == "" {
			continue
		}
		n, err := strconv.Atoi(group)
		if errors.Is(err, strconv.ErrRange) {
			// an absurd bound still filters; it just matches nobody
			return math.MaxInt, true
		}
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// SkillExtractor finds whole-word vocabulary mentions.
type SkillExtractor struct {
	pattern *regexp.Regexp
}

func NewSkillExtractor(vocabulary []string) *SkillExtractor {
	if len(vocabulary) == 0 {
		return &SkillExtractor{}
	}
	quoted := make([]string, len(vocabulary))
	for i, term := range vocabulary {
		quoted[i] = regexp.QuoteMeta(term)
	}
	return &SkillExtractor{
		pattern: regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`),
	}
}

// Extract returns lower-cased, de-duplicated matches in order of first appearance.
func (e *SkillExtractor) Extract(text string) ([]string, bool) {
	if e.pattern == nil {
		return nil, false
	}
	matches := e.pattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil, false
	}

	seen := make(map[string]bool, len(matches))
	skills := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.ToLower(m)
		if seen[m] {
			continue
		}
		seen[m] = true
		skills = append(skills, m)
	}
	return skills, true
}

// AvailabilityExtractor finds a lead-time phrase such as "immediate" or "2 weeks".
type AvailabilityExtractor struct{}

func (AvailabilityExtractor) Extract(text string) (string, bool) {
	m := availabilityPattern.FindString(text)
	if m == "" {
		return "", false
	}
	return strings.ToLower(m), true
}
