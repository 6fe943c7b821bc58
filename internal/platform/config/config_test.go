package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_DefaultsWithoutFileOrEnv(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("SESSION_PATH", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.URL != DefaultAPIURL {
		t.Fatalf("expected default API URL, got %q", cfg.API.URL)
	}
	if !strings.HasSuffix(cfg.Session.Path, filepath.Join(".fisiomaster", "user.json")) {
		t.Fatalf("unexpected default session path: %q", cfg.Session.Path)
	}
}

func TestLoad_YAMLThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
api:
  url: http://localhost:8080
  timeout: 10s
  slow_timeout: 90s
session:
  path: /tmp/fisiomaster-test/user.json
log:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	// Env pisa al YAML.
	t.Setenv("API_URL", "http://localhost:9999")
	t.Setenv("SESSION_PATH", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.URL != "http://localhost:9999" {
		t.Fatalf("env must override yaml, got %q", cfg.API.URL)
	}
	if cfg.API.Timeout != 10*time.Second || cfg.API.SlowTimeout != 90*time.Second {
		t.Fatalf("yaml timeouts not applied: %+v", cfg.API)
	}
	if cfg.Session.Path != "/tmp/fisiomaster-test/user.json" {
		t.Fatalf("yaml session path not applied: %q", cfg.Session.Path)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("yaml log config not applied: %+v", cfg.Log)
	}
}

func TestLoad_ExpandsEnvInsideYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("api:\n  url: ${TEST_BACKEND_URL}\n"), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	t.Setenv("TEST_BACKEND_URL", "http://backend.interno:8080")
	t.Setenv("API_URL", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.URL != "http://backend.interno:8080" {
		t.Fatalf("expected ${VAR} expansion, got %q", cfg.API.URL)
	}
}

func TestLoad_MissingFileIsAnError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "no-such.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}
