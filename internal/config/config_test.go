package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil, env(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 10*time.Minute, cfg.ViewTTL)
	assert.Equal(t, 10, cfg.RateLimit)
	assert.Equal(t, FallbackBaseURL, cfg.BaseURL())
	assert.False(t, cfg.Production())
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestParsePrecedence(t *testing.T) {
	yamlData := []byte(`
addr: ":9090"
fetch_timeout: 5s
rate_limit: 20
log_level: debug
api_base_url: http://yaml.example
`)
	cfg, err := Parse(yamlData, env(map[string]string{
		EnvRateLimit:  "30",
		EnvAPIBaseURL: "http://env.example/",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr, "yaml overrides default")
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 30, cfg.RateLimit, "env overrides yaml")
	assert.Equal(t, "http://env.example", cfg.BaseURL())
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"explicit", Config{APIBaseURL: "https://api.example/"}, "https://api.example"},
		{"codespace", Config{CodespaceName: "fluffy-bassoon"}, "https://fluffy-bassoon-8000.app.github.dev"},
		{"explicit wins", Config{APIBaseURL: "http://a", CodespaceName: "b"}, "http://a"},
		{"fallback", Config{}, FallbackBaseURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.BaseURL())
		})
	}
}

func TestParseEnvDurations(t *testing.T) {
	cfg, err := Parse(nil, env(map[string]string{
		EnvViewTTL:       "1m",
		EnvSlowRequestMS: "50",
		EnvSlowFetchMS:   "750",
		EnvEnv:           "production",
	}))
	require.NoError(t, err)

	assert.Equal(t, time.Minute, cfg.ViewTTL)
	assert.Equal(t, 50*time.Millisecond, cfg.SlowRequest)
	assert.Equal(t, 750*time.Millisecond, cfg.SlowFetch)
	assert.True(t, cfg.Production())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
		want string
	}{
		{"bad duration", "", map[string]string{EnvFetchTimeout: "soon"}, EnvFetchTimeout},
		{"bad int", "", map[string]string{EnvRateLimit: "ten"}, EnvRateLimit},
		{"zero rate", "rate_limit: 0", nil, "rate limit"},
		{"bad level", "", map[string]string{EnvLogLevel: "loud"}, "log level"},
		{"bad url", "", map[string]string{EnvAPIBaseURL: "ftp://x"}, "api base url"},
		{"bad yaml", "addr: [", nil, "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), env(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadReadsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":7070\"\nview_ttl: 2m\n"), 0o600))
	t.Chdir(dir)
	t.Setenv(EnvConfigFile, path)
	t.Setenv(EnvCodespaceName, "demo")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, 2*time.Minute, cfg.ViewTTL)
	assert.Equal(t, "https://demo-8000.app.github.dev", cfg.BaseURL())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvConfigFile, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("OCTOFIT_ADDR=:6060\n"), 0o600))
	t.Chdir(dir)
	t.Setenv(EnvConfigFile, "")
	t.Setenv(EnvAddr, "")
	require.NoError(t, os.Unsetenv(EnvAddr))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":6060", cfg.Addr)
}
