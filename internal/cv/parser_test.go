package cv

import (
	"testing"

	"talent-search/internal/apperr"
)

func TestParserExtract(t *testing.T) {
	p := NewParser(64)

	text, err := p.Extract("resume.TXT", []byte("  Jane Doe\nGo developer  "))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if text != "Jane Doe\nGo developer" {
		t.Errorf("text = %q", text)
	}

	rejected := map[string]struct {
		filename string
		data     []byte
	}{
		"docx":      {"resume.docx", []byte("x")},
		"no ext":    {"resume", []byte("x")},
		"blank":     {"resume.txt", []byte("   \n ")},
		"too large": {"resume.txt", make([]byte, 65)},
		"binary":    {"resume.txt", []byte{0xff, 0xfe, 0xfd}},
	}
	for name, tt := range rejected {
		t.Run(name, func(t *testing.T) {
			if _, err := p.Extract(tt.filename, tt.data); !apperr.Is(err, apperr.ErrTypeInvalidInput) {
				t.Errorf("Expected invalid input, got %v", err)
			}
		})
	}
}

func TestAllowed(t *testing.T) {
	for name, want := range map[string]bool{"a.pdf": true, "a.PDF": true, "a.txt": true, "a.doc": false, "pdf": false} {
		if got := Allowed(name); got != want {
			t.Errorf("Allowed(%q) = %v, want %v", name, got, want)
		}
	}
}
