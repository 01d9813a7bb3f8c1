package app

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eddiesosera/bb-frontend/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		APIBaseURL:      "http://localhost:8000",
		CredentialsPath: filepath.Join(t.TempDir(), "credentials.json"),
		UploadBackend:   "cloudinary",
		Cloudinary:      config.CloudinaryConfig{CloudName: "demo", UploadPreset: "unsigned"},
	}
}

func TestBuildDependencies(t *testing.T) {
	deps, err := buildDependencies(testConfig(t), slog.Default())
	if err != nil {
		t.Fatalf("build dependencies: %v", err)
	}
	if deps.API == nil || deps.Session == nil || deps.Articles == nil {
		t.Fatalf("expected all collaborators to be wired, got %+v", deps)
	}
}

func TestBuildDependenciesRejectsBadBaseURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.APIBaseURL = "not a url"
	if _, err := buildDependencies(cfg, slog.Default()); err == nil {
		t.Fatal("expected invalid base url to fail")
	}
}

func TestBuildUploaderSelectsBackend(t *testing.T) {
	cfg := testConfig(t)
	gw, err := buildUploader(context.Background(), cfg)
	if err != nil {
		t.Fatalf("build cloudinary uploader: %v", err)
	}
	if gw == nil {
		t.Fatal("expected a gateway")
	}

	cfg.UploadBackend = "cloudinary"
	cfg.Cloudinary.CloudName = ""
	if _, err := buildUploader(context.Background(), cfg); err == nil {
		t.Fatal("expected unconfigured cloudinary to fail")
	}
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	err := Run(context.Background(), []string{"bogus"})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestRunRequiresACommand(t *testing.T) {
	if err := Run(context.Background(), nil); err == nil {
		t.Fatal("expected missing command to fail")
	}
}
