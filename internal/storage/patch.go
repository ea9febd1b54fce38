package storage

import (
	"strings"

	"talent-search/internal/optional"
)

// CandidatePatch is a partial candidate update. Absent fields keep the stored
// value; explicit nulls clear nullable columns.
type CandidatePatch struct {
	Initials        optional.Value[string]
	ProfileImageURL optional.Value[string]
	FullName        optional.Value[string]
	Title           optional.Value[string]
	Location        optional.Value[string]
	Skills          optional.Value[[]string]
	ExperienceYears optional.Value[int]
	Bio             optional.Value[string]
	Education       optional.Value[string]
	Availability    optional.Value[string]
	ContactEmail    optional.Value[string]
	ContactPhone    optional.Value[string]
	Certifications  optional.Value[[]string]
	BillRate        optional.Value[int]
	PayRate         optional.Value[int]
	IsActive        optional.Value[bool]
}

// Apply returns existing with the patch merged in. existing is not modified.
func (p CandidatePatch) Apply(existing Candidate) Candidate {
	c := existing

	c.Initials = mergeString(p.Initials, c.Initials)
	c.FullName = mergeString(p.FullName, c.FullName)
	c.Title = mergeString(p.Title, c.Title)
	c.Location = mergeString(p.Location, c.Location)
	c.Bio = mergeString(p.Bio, c.Bio)
	c.Education = mergeString(p.Education, c.Education)
	c.Availability = mergeString(p.Availability, c.Availability)

	c.ProfileImageURL = mergeNullableString(p.ProfileImageURL, c.ProfileImageURL)
	c.ContactEmail = mergeNullableString(p.ContactEmail, c.ContactEmail)
	c.ContactPhone = mergeNullableString(p.ContactPhone, c.ContactPhone)

	if p.Skills.IsSet() {
		skills, _ := p.Skills.Get()
		c.Skills = NormalizeSkills(skills)
	}
	if p.Certifications.IsSet() {
		certs, _ := p.Certifications.Get()
		c.Certifications = NormalizeList(certs)
	}

	if v, ok := p.ExperienceYears.Get(); ok {
		c.ExperienceYears = v
	}
	c.BillRate = mergeNullableInt(p.BillRate, c.BillRate)
	c.PayRate = mergeNullableInt(p.PayRate, c.PayRate)

	if v, ok := p.IsActive.Get(); ok {
		c.IsActive = v
	}

	return c
}

// Empty reports whether the patch changes nothing.
func (p CandidatePatch) Empty() bool {
	return !(p.Initials.IsSet() || p.ProfileImageURL.IsSet() || p.FullName.IsSet() ||
		p.Title.IsSet() || p.Location.IsSet() || p.Skills.IsSet() ||
		p.ExperienceYears.IsSet() || p.Bio.IsSet() || p.Education.IsSet() ||
		p.Availability.IsSet() || p.ContactEmail.IsSet() || p.ContactPhone.IsSet() ||
		p.Certifications.IsSet() || p.BillRate.IsSet() || p.PayRate.IsSet() ||
		p.IsActive.IsSet())
}

// NormalizeList trims entries and drops blanks. The result is never nil.
func NormalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if t := strings.TrimSpace(item); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// NormalizeSkills is NormalizeList with the placeholder for an empty result.
func NormalizeSkills(skills []string) []string {
	out := NormalizeList(skills)
	if len(out) == 0 {
		return []string{SkillsPlaceholder}
	}
	return out
}

// NullIfBlank maps "" (after trimming) to nil.
func NullIfBlank(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// required text columns ignore explicit nulls
func mergeString(v optional.Value[string], current string) string {
	if s, ok := v.Get(); ok {
		return s
	}
	return current
}

func mergeNullableString(v optional.Value[string], current *string) *string {
	if !v.IsSet() {
		return current
	}
	s, ok := v.Get()
	if !ok {
		return nil
	}
	return NullIfBlank(s)
}

func mergeNullableInt(v optional.Value[int], current *int) *int {
	if !v.IsSet() {
		return current
	}
	n, ok := v.Get()
	if !ok {
		return nil
	}
	return &n
}
