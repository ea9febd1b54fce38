package forms

import (
	"reflect"
	"testing"

	"talent-search/internal/apperr"
	"talent-search/internal/storage"
)

const validCreate = `{
	"initials": "JD",
	"fullName": "Jane Doe",
	"title": "Backend Engineer",
	"location": "Austin, TX",
	"skills": "Go, PostgreSQL, ,Docker",
	"experienceYears": "6",
	"bio": "Builds services.",
	"education": "BS Computer Science",
	"availability": "2 weeks",
	"contactEmail": "jane@example.com",
	"billRate": 120
}`

func TestToNewCandidate(t *testing.T) {
	p, err := DecodeCandidate([]byte(validCreate))
	if err != nil {
		t.Fatalf("DecodeCandidate failed: %v", err)
	}
	nc, err := p.ToNewCandidate()
	if err != nil {
		t.Fatalf("ToNewCandidate failed: %v", err)
	}

	if !reflect.DeepEqual(nc.Skills, []string{"Go", "PostgreSQL", "Docker"}) {
		t.Errorf("Skills = %v", nc.Skills)
	}
	if nc.ExperienceYears != 6 {
		t.Errorf("ExperienceYears = %d, want 6", nc.ExperienceYears)
	}
	if nc.Certifications == nil || len(nc.Certifications) != 0 {
		t.Errorf("Certifications = %#v, want empty list", nc.Certifications)
	}
	if nc.ContactPhone != nil || nc.ProfileImageURL != nil || nc.PayRate != nil {
		t.Error("Absent optional fields should be nil")
	}
	if nc.BillRate == nil || *nc.BillRate != 120 {
		t.Errorf("BillRate = %v, want 120", nc.BillRate)
	}
	if !nc.IsActive {
		t.Error("New candidates should default to active")
	}
}

func TestToNewCandidateBlankSkills(t *testing.T) {
	body := `{"initials":"A","fullName":"A B","title":"T","location":"L","skills":"",
		"experienceYears":0,"bio":"b","education":"e","availability":"Immediate"}`
	p, err := DecodeCandidate([]byte(body))
	if err != nil {
		t.Fatalf("DecodeCandidate failed: %v", err)
	}
	nc, err := p.ToNewCandidate()
	if err != nil {
		t.Fatalf("ToNewCandidate failed: %v", err)
	}
	if !reflect.DeepEqual(nc.Skills, []string{storage.SkillsPlaceholder}) {
		t.Errorf("Skills = %v, want placeholder", nc.Skills)
	}
}

func TestToNewCandidateValidation(t *testing.T) {
	body := `{"initials":"JD","title":"","location":"Austin","experienceYears":-1,
		"bio":"b","education":"e","availability":"1 week","contactEmail":"not-an-email"}`
	p, err := DecodeCandidate([]byte(body))
	if err != nil {
		t.Fatalf("DecodeCandidate failed: %v", err)
	}
	_, err = p.ToNewCandidate()
	de, ok := apperr.As(err)
	if !ok || de.Type != apperr.ErrTypeInvalidInput {
		t.Fatalf("Expected validation error, got %v", err)
	}

	got := map[string]bool{}
	for _, f := range de.Fields {
		got[f.Field] = true
	}
	for _, want := range []string{"fullName", "title", "experienceYears", "contactEmail"} {
		if !got[want] {
			t.Errorf("Missing field error for %s in %+v", want, de.Fields)
		}
	}
}

func TestDecodeCandidateTypeErrors(t *testing.T) {
	_, err := DecodeCandidate([]byte(`{"experienceYears":"ten","isActive":"yes","title":5}`))
	de, ok := apperr.As(err)
	if !ok {
		t.Fatalf("Expected domain error, got %v", err)
	}
	want := []string{"experienceYears", "isActive", "title"}
	if len(de.Fields) != len(want) {
		t.Fatalf("Fields = %+v", de.Fields)
	}
	for i, f := range de.Fields {
		if f.Field != want[i] {
			t.Errorf("Fields[%d] = %s, want %s", i, f.Field, want[i])
		}
	}
}

func TestDecodeCandidateRejectsNonObject(t *testing.T) {
	for _, body := range []string{``, `null`, `[1,2]`, `{bad`} {
		if _, err := DecodeCandidate([]byte(body)); !apperr.Is(err, apperr.ErrTypeInvalidInput) {
			t.Errorf("DecodeCandidate(%q) err = %v", body, err)
		}
	}
}

func TestToPatchPresence(t *testing.T) {
	existing := storage.Candidate{
		Title:        "Engineer",
		Skills:       []string{"Go"},
		ContactEmail: strPtr("old@example.com"),
		IsActive:     true,
	}

	tests := []struct {
		name      string
		body      string
		wantEmail *string
		wantSkill []string
		wantAct   bool
	}{
		{name: "empty body keeps all", body: `{}`, wantEmail: strPtr("old@example.com"), wantSkill: []string{"Go"}, wantAct: true},
		{name: "blank email clears", body: `{"contactEmail":""}`, wantEmail: nil, wantSkill: []string{"Go"}, wantAct: true},
		{name: "blank skills placeholder", body: `{"skills":""}`, wantEmail: strPtr("old@example.com"), wantSkill: []string{storage.SkillsPlaceholder}, wantAct: true},
		{name: "string false deactivates", body: `{"isActive":"false"}`, wantEmail: strPtr("old@example.com"), wantSkill: []string{"Go"}, wantAct: false},
		{name: "skills array", body: `{"skills":["Rust"," Go "]}`, wantEmail: strPtr("old@example.com"), wantSkill: []string{"Rust", "Go"}, wantAct: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := DecodeCandidate([]byte(tt.body))
			if err != nil {
				t.Fatalf("DecodeCandidate failed: %v", err)
			}
			patch, err := p.ToPatch()
			if err != nil {
				t.Fatalf("ToPatch failed: %v", err)
			}
			got := patch.Apply(existing)
			if !reflect.DeepEqual(got.ContactEmail, tt.wantEmail) {
				t.Errorf("ContactEmail = %v, want %v", got.ContactEmail, tt.wantEmail)
			}
			if !reflect.DeepEqual([]string(got.Skills), tt.wantSkill) {
				t.Errorf("Skills = %v, want %v", got.Skills, tt.wantSkill)
			}
			if got.IsActive != tt.wantAct {
				t.Errorf("IsActive = %v, want %v", got.IsActive, tt.wantAct)
			}
		})
	}
}

func TestToPatchValidation(t *testing.T) {
	p, err := DecodeCandidate([]byte(`{"title":null,"billRate":-5,"contactEmail":"nope"}`))
	if err != nil {
		t.Fatalf("DecodeCandidate failed: %v", err)
	}
	_, err = p.ToPatch()
	de, ok := apperr.As(err)
	if !ok {
		t.Fatalf("Expected validation error, got %v", err)
	}
	want := []string{"billRate", "contactEmail", "title"}
	if len(de.Fields) != len(want) {
		t.Fatalf("Fields = %+v", de.Fields)
	}
	for i, f := range de.Fields {
		if f.Field != want[i] {
			t.Errorf("Fields[%d] = %s, want %s", i, f.Field, want[i])
		}
	}
}

func TestToPatchRejectsBlankRequiredText(t *testing.T) {
	tests := []struct {
		body  string
		field string
	}{
		{`{"fullName":""}`, "fullName"},
		{`{"title":"   "}`, "title"},
		{`{"availability":"\t"}`, "availability"},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			p, err := DecodeCandidate([]byte(tt.body))
			if err != nil {
				t.Fatalf("DecodeCandidate failed: %v", err)
			}
			_, err = p.ToPatch()
			de, ok := apperr.As(err)
			if !ok || len(de.Fields) != 1 {
				t.Fatalf("Expected one field error, got %v", err)
			}
			if de.Fields[0].Field != tt.field || de.Fields[0].Message != "is required" {
				t.Errorf("Fields = %+v", de.Fields)
			}
		})
	}
}

func TestToPatchTrimsRequiredText(t *testing.T) {
	p, err := DecodeCandidate([]byte(`{"fullName":"  Ada Lovelace "}`))
	if err != nil {
		t.Fatalf("DecodeCandidate failed: %v", err)
	}
	patch, err := p.ToPatch()
	if err != nil {
		t.Fatalf("ToPatch failed: %v", err)
	}
	if got := patch.Apply(storage.Candidate{FullName: "Old"}).FullName; got != "Ada Lovelace" {
		t.Errorf("FullName = %q", got)
	}
}

func TestToPatchNullRateClears(t *testing.T) {
	p, err := DecodeCandidate([]byte(`{"billRate":null,"payRate":""}`))
	if err != nil {
		t.Fatalf("DecodeCandidate failed: %v", err)
	}
	patch, err := p.ToPatch()
	if err != nil {
		t.Fatalf("ToPatch failed: %v", err)
	}
	rate := 100
	got := patch.Apply(storage.Candidate{BillRate: &rate, PayRate: &rate, Skills: []string{"x"}})
	if got.BillRate != nil || got.PayRate != nil {
		t.Errorf("Rates not cleared: %v %v", got.BillRate, got.PayRate)
	}
}

func strPtr(s string) *string { return &s }
