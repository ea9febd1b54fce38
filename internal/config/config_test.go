package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://localhost/talent")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("PORT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.LLMProvider != "none" {
		t.Errorf("Expected provider none, got %s", cfg.LLMProvider)
	}
	if cfg.LLMEnabled() {
		t.Error("Expected LLM to be disabled")
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Errorf("Expected 10MB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.ResumeCacheTTL != 24*time.Hour {
		t.Errorf("Expected 24h cache TTL, got %v", cfg.ResumeCacheTTL)
	}
	if cfg.EnvFile != "" {
		t.Errorf("Expected no env file, got %s", cfg.EnvFile)
	}
}

func TestLoadConfigProviderKey(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://localhost/talent")
	t.Setenv("LLM_PROVIDER", "groq")
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("LLM_MODEL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.LLMAPIKey != "gsk-test" {
		t.Errorf("Expected groq key, got %q", cfg.LLMAPIKey)
	}
	if cfg.LLMModel != "llama-3.3-70b-versatile" {
		t.Errorf("Expected default groq model, got %q", cfg.LLMModel)
	}
	if !cfg.LLMEnabled() {
		t.Error("Expected LLM to be enabled")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantError bool
	}{
		{
			name:      "valid config",
			config:    Config{DatabaseURL: "postgres://x", LLMProvider: "none", AnalyticsQueueSize: 1},
			wantError: false,
		},
		{
			name:      "missing database url",
			config:    Config{LLMProvider: "none", AnalyticsQueueSize: 1},
			wantError: true,
		},
		{
			name:      "unknown provider",
			config:    Config{DatabaseURL: "postgres://x", LLMProvider: "watson", AnalyticsQueueSize: 1},
			wantError: true,
		},
		{
			name:      "admin gate without project",
			config:    Config{DatabaseURL: "postgres://x", LLMProvider: "none", AnalyticsQueueSize: 1, AuthRequireAdmin: true},
			wantError: true,
		},
		{
			name:      "negative rate",
			config:    Config{DatabaseURL: "postgres://x", LLMProvider: "none", AnalyticsQueueSize: 1, DefaultPayRate: -1},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}
