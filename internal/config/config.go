// Package config loads alertscope configuration from YAML with environment
// overrides. Lookup order: an explicit --config path, ./alertscope.yaml,
// then ~/.config/alertscope/config.yaml; environment variables win over all
// of them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all alertscope configuration.
type Config struct {
	Archive ArchiveConfig `yaml:"archive"`
	Cache   CacheConfig   `yaml:"cache"`
	UX      UXConfig      `yaml:"ux"`
	Logging LoggingConfig `yaml:"logging"`
}

// ArchiveConfig configures the display API client.
type ArchiveConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// CacheConfig configures the local response cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	TTL     string `yaml:"ttl"`
}

// UXConfig configures the terminal UI.
type UXConfig struct {
	Theme string `yaml:"theme"` // light, dark, auto
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
	File   string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Archive: ArchiveConfig{
			BaseURL: "https://ampel.zeuthen.desy.de/api/lsst/archive/v4",
			Timeout: "30s",
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    defaultCachePath(),
			TTL:     "1h",
		},
		UX: UXConfig{
			Theme: "auto",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "alertscope-cache.db"
	}
	return filepath.Join(home, ".cache", "alertscope", "responses.db")
}

// Load reads configuration from path. An empty path searches the default
// locations; a missing file yields the defaults, not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	candidates := []string{"alertscope.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "alertscope", "config.yaml"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ALERTSCOPE_ARCHIVE_URL"); v != "" {
		c.Archive.BaseURL = v
	}
	if v := os.Getenv("ALERTSCOPE_TIMEOUT"); v != "" {
		c.Archive.Timeout = v
	}
	if v := os.Getenv("ALERTSCOPE_THEME"); v != "" {
		c.UX.Theme = v
	}
	if v := os.Getenv("ALERTSCOPE_CACHE_PATH"); v != "" {
		c.Cache.Path = v
	}
	if v := os.Getenv("ALERTSCOPE_CACHE_DISABLED"); v == "1" || v == "true" {
		c.Cache.Enabled = false
	}
	if v := os.Getenv("ALERTSCOPE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) validate() error {
	if c.Archive.BaseURL == "" {
		return fmt.Errorf("archive.base_url must not be empty")
	}
	if _, err := time.ParseDuration(c.Archive.Timeout); err != nil {
		return fmt.Errorf("archive.timeout: %w", err)
	}
	if c.Cache.TTL != "" {
		if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
			return fmt.Errorf("cache.ttl: %w", err)
		}
	}
	return nil
}

// RequestTimeout returns archive.timeout as a duration. Validation already
// checked the format.
func (c *Config) RequestTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Archive.Timeout)
	return d
}

// CacheTTL returns cache.ttl as a duration, defaulting to an hour.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTL == "" {
		return time.Hour
	}
	d, _ := time.ParseDuration(c.Cache.TTL)
	return d
}
