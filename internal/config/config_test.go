package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if cfg.Country != "us" {
		t.Errorf("expected default country us, got %q", cfg.Country)
	}
	if cfg.RelayURL == "" {
		t.Error("expected relay_url to be set")
	}
	if cfg.Storage != "file" {
		t.Errorf("expected default storage file, got %q", cfg.Storage)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	content := `api_key: abc123
country: gb
storage: sqlite
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "abc123" || cfg.Country != "gb" || cfg.Storage != "sqlite" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	// Fields absent from the file keep their defaults.
	if cfg.RelayURL == "" {
		t.Error("expected relay_url default preserved")
	}
}

func TestLoadNonexistentFallsBackToDefaults(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Country != "us" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	// First run writes the defaults back for the user to edit.
	if _, err := os.Stat(cfgPath); err != nil {
		t.Errorf("expected defaults written to %s: %v", cfgPath, err)
	}
}

func TestResolvedAPIKeyEnvFallback(t *testing.T) {
	t.Setenv("NEWSSPEAK_API_KEY", "from-env")

	cfg := &Config{}
	if got := cfg.ResolvedAPIKey(); got != "from-env" {
		t.Errorf("expected env fallback, got %q", got)
	}

	cfg.APIKey = "from-config"
	if got := cfg.ResolvedAPIKey(); got != "from-config" {
		t.Errorf("config key must win, got %q", got)
	}
}

func TestValidate(t *testing.T) {
	base := Config{Country: "us", RelayURL: "https://relay.example/get", Storage: "file"}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"sqlite backend", func(c *Config) { c.Storage = "sqlite" }, false},
		{"missing country", func(c *Config) { c.Country = "" }, true},
		{"missing relay", func(c *Config) { c.RelayURL = "" }, true},
		{"bad relay scheme", func(c *Config) { c.RelayURL = "ftp://x" }, true},
		{"unknown storage", func(c *Config) { c.Storage = "redis" }, true},
	}
	for _, tt := range tests {
		cfg := base
		tt.mutate(&cfg)
		err := validate(&cfg)
		if tt.wantErr && err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
		}
	}
}

func TestValidateCategory(t *testing.T) {
	if err := ValidateCategory(""); err != nil {
		t.Errorf("empty category is the default feed: %v", err)
	}
	if err := ValidateCategory("science"); err != nil {
		t.Errorf("science is valid: %v", err)
	}
	if err := ValidateCategory("politics"); err == nil {
		t.Error("expected error for unknown category")
	}
}
