// Package config loads the NewsSpeak configuration: API credential, feed
// defaults, storage backend and speech settings.
package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/Navodith09/NewsSpeak/internal/news"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// SpeechConfig holds the voice capture and narration settings.
type SpeechConfig struct {
	// CaptureCommand records one utterance and prints the transcript on
	// stdout. Empty means speech recognition is unavailable.
	CaptureCommand string `yaml:"capture_command"`
	// PreferredVoices overrides the built-in female voice priority list.
	PreferredVoices []string `yaml:"preferred_voices,omitempty"`
}

type Config struct {
	APIKey   string `yaml:"api_key"`
	Country  string `yaml:"country"`
	RelayURL string `yaml:"relay_url"`
	// Storage selects the bookmark slot backend: "file" or "sqlite".
	Storage string `yaml:"storage"`
	// ShareCommand is the optional native share command; empty falls back
	// to a clipboard copy.
	ShareCommand string       `yaml:"share_command"`
	Speech       SpeechConfig `yaml:"speech,omitempty"`
}

// ResolvedAPIKey returns the configured credential, or the NEWSSPEAK_API_KEY
// environment variable when the config leaves it empty.
func (c *Config) ResolvedAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return os.Getenv("NEWSSPEAK_API_KEY")
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newsspeak", "config.yaml")
}

// BookmarkFilePath is where the file backend keeps the bookmark slot.
func BookmarkFilePath() string {
	return filepath.Join(xdg.StateHome, "newsspeak", "bookmarks.json")
}

// BookmarkDBPath is where the sqlite backend keeps its database.
func BookmarkDBPath() string {
	return filepath.Join(xdg.StateHome, "newsspeak", "newsspeak.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path (the default path when empty). A missing
// file writes the defaults there and uses them; an unreadable or invalid
// file is an error.
func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Non-fatal: first run just uses the embedded defaults.
			writeDefaults(path)
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := *defaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if cfg.Country == "" {
		return fmt.Errorf("country is required")
	}
	if cfg.RelayURL == "" {
		return fmt.Errorf("relay_url is required")
	}
	u, err := url.Parse(cfg.RelayURL)
	if err != nil {
		return fmt.Errorf("invalid relay_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("relay_url scheme must be http or https, got %q", u.Scheme)
	}
	switch cfg.Storage {
	case "file", "sqlite":
	default:
		return fmt.Errorf("unknown storage backend %q (valid: file, sqlite)", cfg.Storage)
	}
	return nil
}

// ValidateCategory checks a category flag against the known categories.
func ValidateCategory(category string) error {
	if category == "" || news.ValidCategory(category) {
		return nil
	}
	return fmt.Errorf("unknown category %q (valid: %v)", category, news.Categories)
}
