package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SUBMIT_KEY_TTL", "")
	t.Setenv("TOURDESK_NESTED_ACTIVITIES", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %s", cfg.Server.Port)
	}
	if cfg.Submission.KeyTTL != 10*time.Minute {
		t.Errorf("key ttl = %v", cfg.Submission.KeyTTL)
	}
	if cfg.Client.NestedActivities {
		t.Errorf("nested activities must default to unavailable")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("TOURDESK_NESTED_ACTIVITIES", "true")
	t.Setenv("SUBMIT_KEY_TTL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9000" || !cfg.Client.NestedActivities || cfg.Submission.KeyTTL != 30*time.Second {
		t.Fatalf("unexpected config %#v", cfg)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins = %#v", cfg.CORS.AllowedOrigins)
	}
}

func TestValidateRequiresDatabase(t *testing.T) {
	cfg := &Config{Submission: SubmissionConfig{KeyTTL: time.Minute}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error without POSTGRES_URL")
	}
	cfg.Database.URL = "postgres://localhost/tours"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWarningsReportMissingSecret(t *testing.T) {
	cfg := &Config{}
	warnings := cfg.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "JWT_SECRET") {
		t.Fatalf("warnings = %v", warnings)
	}

	cfg.JWT.Secret = "s3cret"
	if warnings := cfg.Warnings(); len(warnings) != 0 {
		t.Fatalf("unexpected warnings %v", warnings)
	}
}

func TestLoadNotesMissingEnvFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	warnings := cfg.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0], ".env") {
		t.Fatalf("warnings = %v", warnings)
	}
}
