package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 10, cfg.RateLimit.PerMinute)
	require.Equal(t, 333, cfg.RateLimit.PerDay)
	require.Equal(t, 10000, cfg.RateLimit.PerMonth)
	require.Equal(t, 3, cfg.Retry.MaxRetries)
	require.Equal(t, time.Second, cfg.Retry.InitialBackoff)
	require.Equal(t, 30*time.Second, cfg.Transport.Timeout)
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api_key: file-key
sandbox: true
rate_limit:
  per_minute: 30
  per_day: 1000
  per_month: 40000
retry:
  max_retries: 5
  initial_backoff: 250ms
transport:
  timeout: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "file-key", cfg.APIKey)
	require.True(t, cfg.Sandbox)
	require.Equal(t, 30, cfg.RateLimit.PerMinute)
	require.Equal(t, 5, cfg.Retry.MaxRetries)
	require.Equal(t, 250*time.Millisecond, cfg.Retry.InitialBackoff)
	require.Equal(t, 5*time.Second, cfg.Transport.Timeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("COINLENS_API_KEY", "env-key")
	t.Setenv("COINLENS_RATE_LIMIT_PER_MINUTE", "60")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "env-key", cfg.APIKey)
	require.Equal(t, 60, cfg.RateLimit.PerMinute)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestNormalizeClampsRetryKnobs(t *testing.T) {
	cfg := Default()
	cfg.Retry.MaxRetries = 99
	cfg.Retry.InitialBackoff = time.Millisecond
	cfg.Normalize()
	require.Equal(t, MaxMaxRetries, cfg.Retry.MaxRetries)
	require.Equal(t, MinInitialBackoff, cfg.Retry.InitialBackoff)

	cfg.Retry.MaxRetries = -4
	cfg.Retry.InitialBackoff = time.Minute
	cfg.Normalize()
	require.Equal(t, MinMaxRetries, cfg.Retry.MaxRetries)
	require.Equal(t, MaxInitialBackoff, cfg.Retry.InitialBackoff)
}
