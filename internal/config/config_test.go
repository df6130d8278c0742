package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.NotEmpty(t, cfg.Archive.BaseURL)
	assert.Equal(t, "30s", cfg.Archive.Timeout)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
	assert.Equal(t, time.Hour, cfg.CacheTTL())
	assert.Equal(t, "auto", cfg.UX.Theme)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alertscope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
archive:
  base_url: http://localhost:8080/archive
  timeout: 5s
cache:
  enabled: false
ux:
  theme: dark
logging:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/archive", cfg.Archive.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "dark", cfg.UX.Theme)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "alertscope.yaml"))
	require.Error(t, err, "explicit path that does not exist is an error")

	// No explicit path: fall back to defaults. Run from a temp dir so a
	// real alertscope.yaml in the working directory cannot interfere.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Archive.BaseURL, cfg.Archive.BaseURL)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("ALERTSCOPE_ARCHIVE_URL overrides base URL", func(t *testing.T) {
		t.Setenv("ALERTSCOPE_ARCHIVE_URL", "http://archive.test")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "http://archive.test", cfg.Archive.BaseURL)
	})

	t.Run("ALERTSCOPE_TIMEOUT overrides timeout", func(t *testing.T) {
		t.Setenv("ALERTSCOPE_TIMEOUT", "2s")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout())
	})

	t.Run("ALERTSCOPE_CACHE_DISABLED turns the cache off", func(t *testing.T) {
		t.Setenv("ALERTSCOPE_CACHE_DISABLED", "1")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.False(t, cfg.Cache.Enabled)
	})

	t.Run("empty env vars change nothing", func(t *testing.T) {
		t.Setenv("ALERTSCOPE_ARCHIVE_URL", "")
		cfg := DefaultConfig()
		before := cfg.Archive.BaseURL
		cfg.applyEnvOverrides()
		assert.Equal(t, before, cfg.Archive.BaseURL)
	})
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Archive.Timeout = "not-a-duration"
	assert.Error(t, cfg.validate())

	cfg = DefaultConfig()
	cfg.Archive.BaseURL = ""
	assert.Error(t, cfg.validate())

	cfg = DefaultConfig()
	cfg.Cache.TTL = "nope"
	assert.Error(t, cfg.validate())
}
