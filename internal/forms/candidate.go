package forms

import (
	"encoding/json"
	"sort"
	"strings"

	"talent-search/internal/apperr"
	"talent-search/internal/optional"
	"talent-search/internal/storage"
)

// CandidatePayload is a decoded create or update body. Every field remembers
// whether it was present.
type CandidatePayload struct {
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

// DecodeCandidate reads a candidate body. Unknown keys are ignored.
func DecodeCandidate(data []byte) (*CandidatePayload, error) {
	var raw map[string]json.RawMessage
	if err := DecodeJSON(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, apperr.InvalidInput("request body must be a JSON object", nil)
	}

	p := &CandidatePayload{}
	var fields []apperr.FieldError
	reject := func(field, msg string) {
		if msg != "" {
			fields = append(fields, apperr.FieldError{Field: field, Message: msg})
		}
	}

	strs := map[string]*optional.Value[string]{
		"initials":        &p.Initials,
		"profileImageUrl": &p.ProfileImageURL,
		"fullName":        &p.FullName,
		"title":           &p.Title,
		"location":        &p.Location,
		"bio":             &p.Bio,
		"education":       &p.Education,
		"availability":    &p.Availability,
		"contactEmail":    &p.ContactEmail,
		"contactPhone":    &p.ContactPhone,
	}
	for name, dst := range strs {
		if v, ok := raw[name]; ok {
			var msg string
			*dst, msg = decodeString(v)
			reject(name, msg)
		}
	}

	lists := map[string]*optional.Value[[]string]{
		"skills":         &p.Skills,
		"certifications": &p.Certifications,
	}
	for name, dst := range lists {
		if v, ok := raw[name]; ok {
			var msg string
			*dst, msg = decodeList(v)
			reject(name, msg)
		}
	}

	ints := map[string]*optional.Value[int]{
		"experienceYears": &p.ExperienceYears,
		"billRate":        &p.BillRate,
		"payRate":         &p.PayRate,
	}
	for name, dst := range ints {
		if v, ok := raw[name]; ok {
			var msg string
			*dst, msg = decodeInt(v)
			reject(name, msg)
		}
	}

	if v, ok := raw["isActive"]; ok {
		var msg string
		p.IsActive, msg = decodeBool(v)
		reject("isActive", msg)
	}

	if len(fields) > 0 {
		sortFields(fields)
		return nil, apperr.Validation("Invalid candidate data", fields)
	}
	return p, nil
}

type candidateInput struct {
	Initials        string `json:"initials" validate:"required"`
	FullName        string `json:"fullName" validate:"required"`
	Title           string `json:"title" validate:"required"`
	Location        string `json:"location" validate:"required"`
	Bio             string `json:"bio" validate:"required"`
	Education       string `json:"education" validate:"required"`
	Availability    string `json:"availability" validate:"required"`
	ExperienceYears *int   `json:"experienceYears" validate:"required,gte=0"`
	BillRate        *int   `json:"billRate" validate:"omitempty,gte=0"`
	PayRate         *int   `json:"payRate" validate:"omitempty,gte=0"`
	ContactEmail    string `json:"contactEmail" validate:"omitempty,email"`
}

// ToNewCandidate validates a create body and normalizes optional fields.
func (p *CandidatePayload) ToNewCandidate() (storage.NewCandidate, error) {
	in := candidateInput{
		Initials:     strings.TrimSpace(p.Initials.OrElse("")),
		FullName:     strings.TrimSpace(p.FullName.OrElse("")),
		Title:        strings.TrimSpace(p.Title.OrElse("")),
		Location:     strings.TrimSpace(p.Location.OrElse("")),
		Bio:          strings.TrimSpace(p.Bio.OrElse("")),
		Education:    strings.TrimSpace(p.Education.OrElse("")),
		Availability: strings.TrimSpace(p.Availability.OrElse("")),
		ContactEmail: strings.TrimSpace(p.ContactEmail.OrElse("")),
	}
	if v, ok := p.ExperienceYears.Get(); ok {
		in.ExperienceYears = &v
	}
	if v, ok := p.BillRate.Get(); ok {
		in.BillRate = &v
	}
	if v, ok := p.PayRate.Get(); ok {
		in.PayRate = &v
	}

	if err := ValidateStruct("Invalid candidate data", in); err != nil {
		return storage.NewCandidate{}, err
	}

	return storage.NewCandidate{
		Initials:        in.Initials,
		ProfileImageURL: storage.NullIfBlank(p.ProfileImageURL.OrElse("")),
		FullName:        in.FullName,
		Title:           in.Title,
		Location:        in.Location,
		Skills:          storage.NormalizeSkills(p.Skills.OrElse(nil)),
		ExperienceYears: *in.ExperienceYears,
		Bio:             in.Bio,
		Education:       in.Education,
		Availability:    in.Availability,
		ContactEmail:    storage.NullIfBlank(in.ContactEmail),
		ContactPhone:    storage.NullIfBlank(p.ContactPhone.OrElse("")),
		Certifications:  storage.NormalizeList(p.Certifications.OrElse(nil)),
		BillRate:        in.BillRate,
		PayRate:         in.PayRate,
		IsActive:        p.IsActive.OrElse(true),
	}, nil
}

// ToPatch validates an update body. Required text fields may be omitted but
// not nulled or blanked; everything else is passed through as present.
func (p *CandidatePayload) ToPatch() (storage.CandidatePatch, error) {
	var fields []apperr.FieldError
	add := func(field, msg string) {
		fields = append(fields, apperr.FieldError{Field: field, Message: msg})
	}

	// required text columns follow the create rules: present means non-blank
	for name, v := range map[string]*optional.Value[string]{
		"initials": &p.Initials, "fullName": &p.FullName, "title": &p.Title, "location": &p.Location,
		"bio": &p.Bio, "education": &p.Education, "availability": &p.Availability,
	} {
		if v.IsNull() {
			add(name, "cannot be null")
			continue
		}
		if s, ok := v.Get(); ok {
			s = strings.TrimSpace(s)
			if s == "" {
				add(name, "is required")
				continue
			}
			*v = optional.Of(s)
		}
	}
	if p.ExperienceYears.IsNull() {
		add("experienceYears", "cannot be null")
	}
	if p.IsActive.IsNull() {
		add("isActive", "cannot be null")
	}

	for name, v := range map[string]optional.Value[int]{
		"experienceYears": p.ExperienceYears, "billRate": p.BillRate, "payRate": p.PayRate,
	} {
		if n, ok := v.Get(); ok && n < 0 {
			add(name, "must be at least 0")
		}
	}

	if email, ok := p.ContactEmail.Get(); ok && strings.TrimSpace(email) != "" {
		if err := Validator().Var(strings.TrimSpace(email), "email"); err != nil {
			add("contactEmail", "Please enter a valid email address")
		}
	}

	if len(fields) > 0 {
		sortFields(fields)
		return storage.CandidatePatch{}, apperr.Validation("Invalid candidate data", fields)
	}

	return storage.CandidatePatch{
		Initials:        p.Initials,
		ProfileImageURL: p.ProfileImageURL,
		FullName:        p.FullName,
		Title:           p.Title,
		Location:        p.Location,
		Skills:          p.Skills,
		ExperienceYears: p.ExperienceYears,
		Bio:             p.Bio,
		Education:       p.Education,
		Availability:    p.Availability,
		ContactEmail:    p.ContactEmail,
		ContactPhone:    p.ContactPhone,
		Certifications:  p.Certifications,
		BillRate:        p.BillRate,
		PayRate:         p.PayRate,
		IsActive:        p.IsActive,
	}, nil
}

func sortFields(fields []apperr.FieldError) {
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
}
