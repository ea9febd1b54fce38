package storage

import (
	"reflect"
	"testing"

	"talent-search/internal/optional"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func baseCandidate() Candidate {
	return Candidate{
		ID:              7,
		Initials:        "JD",
		FullName:        "Jane Doe",
		Title:           "Backend Engineer",
		Location:        "Austin, TX",
		Skills:          []string{"Go", "PostgreSQL"},
		ExperienceYears: 6,
		Bio:             "Builds services.",
		Education:       "BS CS",
		Availability:    "2 weeks",
		ContactEmail:    strPtr("jane@example.com"),
		ContactPhone:    strPtr("555-0100"),
		Certifications:  []string{"CKA"},
		BillRate:        intPtr(120),
		PayRate:         intPtr(90),
		IsActive:        true,
	}
}

func TestApplyEmptyPatchKeepsEverything(t *testing.T) {
	existing := baseCandidate()
	got := CandidatePatch{}.Apply(existing)

	if !reflect.DeepEqual(got, existing) {
		t.Errorf("Empty patch changed candidate:\n got %+v\nwant %+v", got, existing)
	}
	if !(CandidatePatch{}).Empty() {
		t.Error("Expected zero patch to report Empty")
	}
}

func TestApplyContactEmailPresence(t *testing.T) {
	tests := []struct {
		name  string
		patch CandidatePatch
		want  *string
	}{
		{name: "absent keeps", patch: CandidatePatch{}, want: strPtr("jane@example.com")},
		{name: "empty string clears", patch: CandidatePatch{ContactEmail: optional.Of("")}, want: nil},
		{name: "null clears", patch: CandidatePatch{ContactEmail: optional.Null[string]()}, want: nil},
		{name: "value overwrites", patch: CandidatePatch{ContactEmail: optional.Of("new@example.com")}, want: strPtr("new@example.com")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.patch.Apply(baseCandidate()).ContactEmail
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ContactEmail = %v, want %v", deref(got), deref(tt.want))
			}
		})
	}
}

func TestApplySkillsPlaceholder(t *testing.T) {
	got := CandidatePatch{Skills: optional.Of([]string{" ", ""})}.Apply(baseCandidate())
	if !reflect.DeepEqual([]string(got.Skills), []string{SkillsPlaceholder}) {
		t.Errorf("Skills = %v, want placeholder", got.Skills)
	}

	got = CandidatePatch{Skills: optional.Null[[]string]()}.Apply(baseCandidate())
	if !reflect.DeepEqual([]string(got.Skills), []string{SkillsPlaceholder}) {
		t.Errorf("Null skills = %v, want placeholder", got.Skills)
	}
}

func TestApplyCertificationsCleared(t *testing.T) {
	got := CandidatePatch{Certifications: optional.Null[[]string]()}.Apply(baseCandidate())
	if got.Certifications == nil || len(got.Certifications) != 0 {
		t.Errorf("Certifications = %#v, want empty non-nil list", got.Certifications)
	}
}

func TestApplyRatesAndStatus(t *testing.T) {
	patch := CandidatePatch{
		BillRate:        optional.Null[int](),
		PayRate:         optional.Of(95),
		IsActive:        optional.Of(false),
		ExperienceYears: optional.Of(8),
		Title:           optional.Null[string](),
	}
	got := patch.Apply(baseCandidate())

	if got.BillRate != nil {
		t.Errorf("BillRate = %v, want nil", *got.BillRate)
	}
	if got.PayRate == nil || *got.PayRate != 95 {
		t.Errorf("PayRate = %v, want 95", got.PayRate)
	}
	if got.IsActive {
		t.Error("Expected candidate to be deactivated")
	}
	if got.ExperienceYears != 8 {
		t.Errorf("ExperienceYears = %d, want 8", got.ExperienceYears)
	}
	if got.Title != "Backend Engineer" {
		t.Errorf("Null on a required column should keep value, got %q", got.Title)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	existing := baseCandidate()
	_ = CandidatePatch{Skills: optional.Of([]string{"Rust"})}.Apply(existing)
	if existing.Skills[0] != "Go" {
		t.Errorf("Input skills mutated: %v", existing.Skills)
	}
}

func TestNormalizeList(t *testing.T) {
	got := NormalizeList([]string{" React ", "", "Go", "  "})
	want := []string{"React", "Go"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeList = %v, want %v", got, want)
	}
	if NormalizeList(nil) == nil {
		t.Error("NormalizeList(nil) should be non-nil")
	}
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
