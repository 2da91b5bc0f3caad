package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "https://api.mfapi.in/mf", cfg.NAV.BaseURL)
	assert.Equal(t, time.Minute, cfg.NAV.GetRefreshInterval())
	assert.Equal(t, 30*time.Minute, cfg.NAV.GetCacheTTL())
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.False(t, cfg.SMTP.Enabled())
	assert.False(t, cfg.IsProduction())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_TOMLOverridesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata", "investa.toml"))
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "http://localhost:9999/mf", cfg.NAV.BaseURL)
	assert.Equal(t, 2*time.Minute, cfg.NAV.GetRefreshInterval())
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)

	// Untouched sections keep their defaults.
	assert.Equal(t, 5, cfg.NAV.RateLimit)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoadConfig_LaterFilesWin(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "base.yaml")
	second := filepath.Join(dir, "local.yaml")

	require.NoError(t, writeFile(first, "server:\n  port: 7000\nlogging:\n  level: warn\n"))
	require.NoError(t, writeFile(second, "server:\n  port: 7001\n"))

	cfg, err := LoadConfig(first, filepath.Join(dir, "missing.yaml"), "", second)
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadConfig_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, writeFile(path, "[server\nport = "))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("INVESTA_ENV", "production")
	t.Setenv("INVESTA_PORT", "9443")
	t.Setenv("INVESTA_LOG_LEVEL", "error")
	t.Setenv("INVESTA_REDIS_ADDR", "cache:6379")
	t.Setenv("SMTP_EMAIL", "leads@example.com")
	t.Setenv("SMTP_PASSWORD", "app-password")
	t.Setenv("SMTP_PORT", "465")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9443, cfg.Server.Port)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, "cache:6379", cfg.Cache.Redis.Addr)
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, 465, cfg.SMTP.Port)
}

func TestLoadConfig_IgnoresMalformedPortEnv(t *testing.T) {
	t.Setenv("INVESTA_PORT", "eighty")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"no base url", func(c *Config) { c.NAV.BaseURL = "" }, "nav.base_url"},
		{"bad duration", func(c *Config) { c.NAV.RefreshInterval = "soon" }, "nav.refresh_interval"},
		{"negative duration", func(c *Config) { c.NAV.CacheTTL = "-1m" }, "nav.cache_ttl"},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }, "cache.backend"},
		{"redis without addr", func(c *Config) { c.Cache.Backend = CacheRedis; c.Cache.Redis.Addr = "" }, "cache.redis.addr"},
		{"bad smtp port", func(c *Config) { c.SMTP.Port = 70000 }, "smtp.port"},
		{"negative contact limit", func(c *Config) { c.Contact.RequestsPerMinute = -1 }, "contact.requests_per_minute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Server.Port = -1
	cfg.NAV.BaseURL = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
	assert.Contains(t, err.Error(), "nav.base_url")
}

func TestDurationFallbacks(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.NAV.Timeout = ""
	cfg.Server.ReadTimeout = "nonsense"

	assert.Equal(t, 15*time.Second, cfg.NAV.GetTimeout())
	assert.Equal(t, 15*time.Second, cfg.Server.GetReadTimeout())
	assert.Equal(t, 30*time.Second, cfg.Server.GetWriteTimeout())
}

func TestSaveToFile_RoundTrip(t *testing.T) {
	for _, ext := range []string{".yaml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			cfg := NewDefaultConfig()
			cfg.Server.Port = 9191
			cfg.Cache.Backend = CacheRedis
			cfg.NAV.CacheTTL = "5m"

			path := filepath.Join(t.TempDir(), "investa"+ext)
			require.NoError(t, cfg.SaveToFile(path))

			loaded, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestSaveToFile_BadPath(t *testing.T) {
	err := NewDefaultConfig().SaveToFile(filepath.Join(t.TempDir(), "missing", "dir", "investa.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write file")
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
