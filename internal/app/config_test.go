package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	require.Equal(t, 10*time.Second, cfg.API.Timeout)
	require.Equal(t, "libris-cli", cfg.API.UserAgent)
	require.Equal(t, "./data/libris.sqlite", cfg.State.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Empty(t, cfg.Log.Path)
}

func TestLoadConfigReadsFile(t *testing.T) {
	dir := t.TempDir()
	contents := []byte(`
api:
  base_url: https://library.example.com
  timeout: 30s
state:
  path: /var/lib/libris/state.sqlite
log:
  level: debug
  path: /var/log/libris/client.log
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), contents, 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	require.Equal(t, "https://library.example.com", cfg.API.BaseURL)
	require.Equal(t, 30*time.Second, cfg.API.Timeout)
	require.Equal(t, "/var/lib/libris/state.sqlite", cfg.State.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "/var/log/libris/client.log", cfg.Log.Path)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("LIBRIS_API_BASE_URL", "https://override.example.com")
	t.Setenv("LIBRIS_LOG_LEVEL", "warn")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "https://override.example.com", cfg.API.BaseURL)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestConfigureLoggingDefaultsLevel(t *testing.T) {
	require.NoError(t, ConfigureLogging(LogConfig{Level: "  "}))
	require.NoError(t, ConfigureLogging(LogConfig{Level: "debug"}))
	require.Error(t, ConfigureLogging(LogConfig{Level: "nope"}))
}
