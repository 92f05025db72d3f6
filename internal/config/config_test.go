package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/truthlayerai-dev/truthlayer-cli/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "https://api.truthlayer.dev" || cfg.CheckPath != "/api/check" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ProbeTimeout.Std() != 8*time.Second || cfg.SubmitTimeout.Std() != 20*time.Second {
		t.Fatalf("unexpected default timeouts: %+v", cfg)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "truthlayer.yaml")
	data := []byte("base_url: http://svc.internal:9090\nprobe_timeout: 2s\ndebug: true\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://svc.internal:9090" {
		t.Fatalf("expected file base_url, got %q", cfg.BaseURL)
	}
	if cfg.ProbeTimeout.Std() != 2*time.Second {
		t.Fatalf("expected file probe timeout, got %v", cfg.ProbeTimeout.Std())
	}
	if cfg.SubmitTimeout.Std() != 20*time.Second {
		t.Fatalf("expected untouched submit timeout default, got %v", cfg.SubmitTimeout.Std())
	}
	if !cfg.Debug {
		t.Fatalf("expected debug enabled from file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "truthlayer.yaml")
	if err := os.WriteFile(path, []byte("base_url: http://file.internal\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TRUTHLAYER_BASE_URL", "http://env.internal")
	t.Setenv("TRUTHLAYER_SUBMIT_TIMEOUT", "5s")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://env.internal" {
		t.Fatalf("expected env override, got %q", cfg.BaseURL)
	}
	if cfg.SubmitTimeout.Std() != 5*time.Second {
		t.Fatalf("expected env submit timeout, got %v", cfg.SubmitTimeout.Std())
	}
}

func TestExplicitMissingFileFails(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestInvalidDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("probe_timeout: fast\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
