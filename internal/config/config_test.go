package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Expected defaults for missing file, got %v", err)
	}
	if cfg.Addr != "0.0.0.0:12212" || cfg.Currency != "USD" || cfg.Theme != "light" {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.yaml")
	content := "addr: 127.0.0.1:9000\ntheme: dark\ncurrency: EUR\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != "127.0.0.1:9000" || cfg.Theme != "dark" || cfg.Currency != "EUR" {
		t.Errorf("Expected file values applied, got %+v", cfg)
	}
	// Unset keys keep their defaults
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level, got %s", cfg.LogLevel)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.yaml")
	if err := os.WriteFile(path, []byte("currency: EUR\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("STUDIO_CURRENCY", "GBP")
	t.Setenv("STUDIO_ADDR", "127.0.0.1:8088")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Currency != "GBP" {
		t.Errorf("Expected env to win over file, got %s", cfg.Currency)
	}
	if cfg.Addr != "127.0.0.1:8088" {
		t.Errorf("Expected env addr, got %s", cfg.Addr)
	}
}

func TestLoad_RejectsUnknownTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.yaml")
	if err := os.WriteFile(path, []byte("theme: sepia\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for unknown theme")
	}
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.yaml")
	if err := os.WriteFile(path, []byte("addr: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}
