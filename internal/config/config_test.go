package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.Classifier.Port != "7860" {
		t.Fatalf("expected classifier port 7860, got %s", cfg.Classifier.Port)
	}
	if cfg.UploadDir != "uploads" {
		t.Fatalf("expected uploads dir, got %s", cfg.UploadDir)
	}
	if cfg.Classifier.TopK != 3 || cfg.Classifier.ImageSize != 224 {
		t.Fatalf("unexpected classifier defaults: %+v", cfg.Classifier)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("unexpected request timeout: %s", cfg.RequestTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("UPLOAD_UNIQUE_NAMES", "true")
	t.Setenv("MODEL_BACKEND", "uniform")
	t.Setenv("TOP_K", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.UploadUniqueNames {
		t.Fatalf("expected unique names enabled")
	}
	if cfg.Classifier.ModelBackend != "uniform" {
		t.Fatalf("expected uniform backend, got %s", cfg.Classifier.ModelBackend)
	}
	if cfg.Classifier.TopK != 5 {
		t.Fatalf("expected top k 5, got %d", cfg.Classifier.TopK)
	}
}

// chdir is a Go 1.21-compatible stand-in for testing.T.Chdir (Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
