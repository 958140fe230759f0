package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 30*time.Second, cfg.Providers.Timeout)
	assert.Equal(t, "https://www.aviasales.com/search", cfg.Providers.RedirectURL)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Gemini.Model)
	assert.Equal(t, 60, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
redis:
  enabled: true
  host: redis.internal
session:
  ttl: 1h
providers:
  timeout: 5s
`), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr())
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, 5*time.Second, cfg.Providers.Timeout)
}

func TestLoad_EnvCredentials(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("AMADEUS_API_KEY", "key-123")
	t.Setenv("AMADEUS_API_SECRET", "secret-456")
	t.Setenv("TRAVELPAYOUTS_TOKEN", "tp-789")
	t.Setenv("GEMINI_API_KEY", "gm-000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "key-123", cfg.Providers.Amadeus.APIKey)
	assert.Equal(t, "secret-456", cfg.Providers.Amadeus.APISecret)
	assert.Equal(t, "tp-789", cfg.Providers.TravelPayouts.Token)
	assert.Equal(t, "gm-000", cfg.LLM.Gemini.APIKey)
}
