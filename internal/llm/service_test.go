package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"talent-search/internal/apperr"
)

func chatServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Invalid request body: %v", err)
		}
		if req["model"] != "gpt-test" {
			t.Errorf("model = %v", req["model"])
		}
		if rf, _ := req["response_format"].(map[string]interface{}); rf["type"] != "json_object" {
			t.Errorf("response_format = %v", req["response_format"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
}

func TestParseResumeOpenAI(t *testing.T) {
	content := `{"fullName":"Jane Doe","title":"Backend Engineer","email":"jane@example.com",
		"skills":["Go"," PostgreSQL ",""],"experienceYears":"7","certifications":["CKA"]}`
	srv := chatServer(t, content, http.StatusOK)
	defer srv.Close()

	svc := NewService(Options{Provider: "openai", APIKey: "test-key", Model: "gpt-test", BaseURL: srv.URL}, zap.NewNop())
	got, err := svc.ParseResume(context.Background(), "Jane Doe\nBackend Engineer")
	if err != nil {
		t.Fatalf("ParseResume failed: %v", err)
	}

	if got.FullName != "Jane Doe" || got.Title != "Backend Engineer" {
		t.Errorf("Unexpected identity fields: %+v", got)
	}
	if got.ExperienceYears != 7 {
		t.Errorf("ExperienceYears = %d, want 7", got.ExperienceYears)
	}
	if len(got.Skills) != 2 || got.Skills[1] != "PostgreSQL" {
		t.Errorf("Skills = %v", got.Skills)
	}
	if got.Location != DefaultLocation || got.Education != DefaultEducation || got.Bio != DefaultBio {
		t.Errorf("Defaults not applied: %+v", got)
	}
}

func TestParseResumeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	svc := NewService(Options{Provider: "groq", APIKey: "k", Model: "m", BaseURL: srv.URL}, zap.NewNop())
	_, err := svc.ParseResume(context.Background(), "text")
	if !apperr.Is(err, apperr.ErrTypeInternal) {
		t.Errorf("Expected internal error, got %v", err)
	}
}

func TestParseResumeDisabled(t *testing.T) {
	svc := NewService(Options{Provider: "none"}, zap.NewNop())
	if svc.Enabled() {
		t.Error("Service should be disabled")
	}
	if _, err := svc.ParseResume(context.Background(), "text"); !apperr.Is(err, apperr.ErrTypeUnavailable) {
		t.Errorf("Expected unavailable, got %v", err)
	}
}

func TestDecodeParsedResume(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, p *ParsedResume)
		wantErr bool
	}{
		{
			name:    "fenced json",
			content: "```json\n{\"fullName\":\"Ana Silva\",\"experienceYears\":4.6}\n```",
			check: func(t *testing.T, p *ParsedResume) {
				if p.FullName != "Ana Silva" || p.ExperienceYears != 5 {
					t.Errorf("got %+v", p)
				}
			},
		},
		{
			name:    "wrong types fall back",
			content: `{"fullName":42,"skills":"Go","experienceYears":-3}`,
			check: func(t *testing.T, p *ParsedResume) {
				if p.FullName != DefaultFullName || len(p.Skills) != 0 || p.ExperienceYears != 0 {
					t.Errorf("got %+v", p)
				}
				if p.Skills == nil || p.Certifications == nil {
					t.Error("lists should be empty, not nil")
				}
			},
		},
		{name: "not json", content: "Sorry, I cannot help", wantErr: true},
		{name: "array", content: `[1,2]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := decodeParsedResume(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			tt.check(t, p)
		})
	}
}
