package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"factoryerp/internal/platform/config"
)

func writeConfig(t *testing.T, home, body string) {
	t.Helper()
	dir := filepath.Join(home, ".factoryerp")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestNewRequiresHome(t *testing.T) {
	t.Parallel()
	if _, err := config.New(""); err == nil {
		t.Fatalf("expected error for empty home")
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.BaseURLEnv, "")
	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != config.DefaultBaseURL {
		t.Fatalf("expected default base url, got %s", cfg.BaseURL)
	}
	if cfg.StoragePath != filepath.Join(home, ".factoryerp", "storage.db") {
		t.Fatalf("unexpected storage path %s", cfg.StoragePath)
	}
	if cfg.Timeout != config.DefaultTimeout {
		t.Fatalf("unexpected timeout %s", cfg.Timeout)
	}
}

func TestLoadOverlaysYAMLAndEnv(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "base_url: http://erp.internal:8080/\ntimeout: 3s\nstorage: client.db\nverbose: true\n")
	t.Setenv(config.BaseURLEnv, "")

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "http://erp.internal:8080" {
		t.Fatalf("expected trimmed yaml base url, got %s", cfg.BaseURL)
	}
	if cfg.Timeout != 3*time.Second || !cfg.Verbose {
		t.Fatalf("unexpected overlay result: %+v", cfg)
	}
	if cfg.StoragePath != filepath.Join(home, ".factoryerp", "client.db") {
		t.Fatalf("relative storage should resolve under config dir, got %s", cfg.StoragePath)
	}

	t.Setenv(config.BaseURLEnv, "http://override:9000")
	cfg, err = config.Load(home)
	if err != nil {
		t.Fatalf("load with env: %v", err)
	}
	if cfg.BaseURL != "http://override:9000" {
		t.Fatalf("env must win over yaml, got %s", cfg.BaseURL)
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "timeout: soon\n")
	if _, err := config.Load(home); err == nil {
		t.Fatalf("expected invalid timeout error")
	}
}
