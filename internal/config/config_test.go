package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Fatalf("unexpected api base url %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.HTTPTimeout)
	}
	if cfg.UploadBackend != "cloudinary" {
		t.Fatalf("unexpected upload backend %q", cfg.UploadBackend)
	}
	if cfg.CredentialsPath == "" {
		t.Fatal("expected a default credentials path")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BB_API_BASE_URL", "https://blog.example.com")
	t.Setenv("BB_HTTP_TIMEOUT", "3s")
	t.Setenv("BB_UPLOAD_BACKEND", "s3")
	t.Setenv("BB_S3_BUCKET", "covers")
	t.Setenv("BB_REQUESTS_PER_MINUTE", "120")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.APIBaseURL != "https://blog.example.com" {
		t.Fatalf("unexpected api base url %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.HTTPTimeout)
	}
	if cfg.UploadBackend != "s3" || cfg.ObjectStore.Bucket != "covers" {
		t.Fatalf("unexpected upload config %+v", cfg)
	}
	if cfg.RequestsPerMinute != 120 {
		t.Fatalf("unexpected rate limit %d", cfg.RequestsPerMinute)
	}
}

func TestLoadRejectsUnknownUploadBackend(t *testing.T) {
	t.Setenv("BB_UPLOAD_BACKEND", "ftp")
	if _, err := Load(); err == nil {
		t.Fatal("expected unknown backend to fail")
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("BB_HTTP_TIMEOUT", "soon")
	t.Setenv("BB_REQUESTS_PER_MINUTE", "many")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPTimeout != 15*time.Second || cfg.RequestsPerMinute != 0 {
		t.Fatalf("expected defaults for malformed values, got %+v", cfg)
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"weird": slog.LevelInfo,
	}
	for value, want := range cases {
		cfg := Config{LogLevel: value}
		if got := cfg.SlogLevel(); got != want {
			t.Fatalf("level %q: expected %v got %v", value, want, got)
		}
	}
}
