package cv

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"talent-search/internal/cache"
	"talent-search/internal/llm"
	"talent-search/internal/storage"
)

const cacheKeyPrefix = "resume:"

type Defaults struct {
	BillRate     int
	PayRate      int
	Availability string
}

// Importer maps resume text to a candidate draft via the LLM, memoizing parses.
type Importer struct {
	parser   llm.ResumeParser
	cache    cache.Cache
	ttl      time.Duration
	defaults Defaults
	logger   *zap.Logger
}

func NewImporter(parser llm.ResumeParser, c cache.Cache, ttl time.Duration, defaults Defaults, logger *zap.Logger) *Importer {
	if c == nil {
		c = cache.Nop{}
	}
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &Importer{parser: parser, cache: c, ttl: ttl, defaults: defaults, logger: logger}
}

// Import builds the candidate to create from resume text. Saving it is up to
// the caller.
func (im *Importer) Import(ctx context.Context, text string) (*storage.NewCandidate, error) {
	parsed, err := im.parse(ctx, text)
	if err != nil {
		return nil, err
	}
	return im.toCandidate(parsed), nil
}

func (im *Importer) parse(ctx context.Context, text string) (*llm.ParsedResume, error) {
	key := cacheKey(text)

	var cached llm.ParsedResume
	err := im.cache.Get(ctx, key, &cached)
	if err == nil {
		im.logger.Debug("Resume parse cache hit", zap.String("key", key))
		return &cached, nil
	}
	if err != cache.ErrNotFound {
		im.logger.Warn("Resume cache read failed", zap.Error(err))
	}

	parsed, err := im.parser.ParseResume(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := im.cache.Set(ctx, key, parsed, im.ttl); err != nil {
		im.logger.Warn("Resume cache write failed", zap.Error(err))
	}
	return parsed, nil
}

func (im *Importer) toCandidate(p *llm.ParsedResume) *storage.NewCandidate {
	billRate, payRate := im.defaults.BillRate, im.defaults.PayRate
	nc := &storage.NewCandidate{
		Initials:        Initials(p.FullName),
		FullName:        p.FullName,
		Title:           p.Title,
		Location:        p.Location,
		Skills:          storage.NormalizeSkills(p.Skills),
		ExperienceYears: p.ExperienceYears,
		Bio:             p.Bio,
		Education:       p.Education,
		Availability:    im.defaults.Availability,
		ContactEmail:    storage.NullIfBlank(p.Email),
		ContactPhone:    storage.NullIfBlank(p.Phone),
		Certifications:  storage.NormalizeList(p.Certifications),
		BillRate:        &billRate,
		PayRate:         &payRate,
		IsActive:        true,
	}
	return nc
}

// Initials takes the first letter of the first and last name, upper-cased.
// A single name yields one letter.
func Initials(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return ""
	}
	first := firstLetter(parts[0])
	if len(parts) == 1 {
		return first
	}
	return first + firstLetter(parts[len(parts)-1])
}

func firstLetter(s string) string {
	for _, r := range s {
		return string(unicode.ToUpper(r))
	}
	return ""
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
