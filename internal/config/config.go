// Package config loads OctoFit settings from defaults, an optional YAML file
// and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file read from the working directory.
const DefaultFile = "octofit.yaml"

// FallbackBaseURL is the API host used when nothing else is configured.
const FallbackBaseURL = "http://localhost:8000"

// Environment variable names.
const (
	EnvConfigFile    = "OCTOFIT_CONFIG"
	EnvAPIBaseURL    = "OCTOFIT_API_BASE_URL"
	EnvCodespaceName = "OCTOFIT_CODESPACE_NAME"
	EnvAddr          = "OCTOFIT_ADDR"
	EnvEnv           = "OCTOFIT_ENV"
	EnvLogLevel      = "OCTOFIT_LOG_LEVEL"
	EnvLogFile       = "OCTOFIT_LOG_FILE"
	EnvFetchTimeout  = "OCTOFIT_FETCH_TIMEOUT"
	EnvViewTTL       = "OCTOFIT_VIEW_TTL"
	EnvMaxViews      = "OCTOFIT_MAX_VIEWS"
	EnvRateLimit     = "OCTOFIT_RATE_LIMIT"
	EnvCSRFKey       = "OCTOFIT_CSRF_KEY"
	EnvSlowRequestMS = "OCTOFIT_SLOW_REQUEST_MS"
	EnvSlowFetchMS   = "OCTOFIT_SLOW_FETCH_MS"
)

// Config holds all OctoFit settings.
type Config struct {
	APIBaseURL    string        `yaml:"api_base_url"`
	CodespaceName string        `yaml:"codespace_name"`
	Addr          string        `yaml:"addr"`
	Env           string        `yaml:"env"`
	LogLevel      string        `yaml:"log_level"`
	LogFile       string        `yaml:"log_file"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`
	ViewTTL       time.Duration `yaml:"view_ttl"`
	MaxViews      int           `yaml:"max_views"`
	RateLimit     int           `yaml:"rate_limit"`
	CSRFKey       string        `yaml:"csrf_key"`
	SlowRequest   time.Duration `yaml:"slow_request"`
	SlowFetch     time.Duration `yaml:"slow_fetch"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Addr:         ":8080",
		Env:          "development",
		LogLevel:     "info",
		FetchTimeout: 15 * time.Second,
		ViewTTL:      10 * time.Minute,
		MaxViews:     1000,
		RateLimit:    10,
		SlowRequest:  200 * time.Millisecond,
		SlowFetch:    500 * time.Millisecond,
	}
}

// LookupFunc reads one environment variable.
type LookupFunc func(key string) (string, bool)

// Load reads .env (if present), the YAML file and the process environment.
// PRE: none
// POST: Returns a validated config or the first problem found
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	path := DefaultFile
	explicit := false
	if p, ok := os.LookupEnv(EnvConfigFile); ok && p != "" {
		path, explicit = p, true
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return Parse(data, os.LookupEnv)
}

// Parse builds a config from YAML data (may be empty) and an environment lookup.
// PRE: lookup is non-nil
// POST: defaults < YAML < environment; the result is validated
func Parse(data []byte, lookup LookupFunc) (*Config, error) {
	cfg := Defaults()
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv(lookup LookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str(EnvAPIBaseURL, &c.APIBaseURL)
	str(EnvCodespaceName, &c.CodespaceName)
	str(EnvAddr, &c.Addr)
	str(EnvEnv, &c.Env)
	str(EnvLogLevel, &c.LogLevel)
	str(EnvLogFile, &c.LogFile)
	str(EnvCSRFKey, &c.CSRFKey)

	var errs []error
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}
	millis := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = time.Duration(n) * time.Millisecond
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	dur(EnvFetchTimeout, &c.FetchTimeout)
	dur(EnvViewTTL, &c.ViewTTL)
	integer(EnvMaxViews, &c.MaxViews)
	integer(EnvRateLimit, &c.RateLimit)
	millis(EnvSlowRequestMS, &c.SlowRequest)
	millis(EnvSlowFetchMS, &c.SlowFetch)
	return errors.Join(errs...)
}

// Validate checks the settings are usable.
// PRE: none
// POST: Returns error if validation fails, nil otherwise
func (c Config) Validate() error {
	var errs []error
	if c.FetchTimeout <= 0 {
		errs = append(errs, errors.New("fetch timeout must be positive"))
	}
	if c.ViewTTL <= 0 {
		errs = append(errs, errors.New("view ttl must be positive"))
	}
	if c.MaxViews < 1 {
		errs = append(errs, errors.New("max views must be at least 1"))
	}
	if c.RateLimit < 1 {
		errs = append(errs, errors.New("rate limit must be at least 1"))
	}
	if c.SlowRequest < 0 || c.SlowFetch < 0 {
		errs = append(errs, errors.New("slow thresholds must not be negative"))
	}
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if u := c.APIBaseURL; u != "" && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		errs = append(errs, fmt.Errorf("api base url %q must start with http:// or https://", u))
	}
	return errors.Join(errs...)
}

// BaseURL returns the REST API host: an explicit URL, else the Codespaces
// forwarded port 8000, else the local fallback.
func (c Config) BaseURL() string {
	if c.APIBaseURL != "" {
		return strings.TrimRight(c.APIBaseURL, "/")
	}
	if name := strings.TrimSpace(c.CodespaceName); name != "" {
		return "https://" + name + "-8000.app.github.dev"
	}
	return FallbackBaseURL
}

// Production reports whether the server runs in production mode.
func (c Config) Production() bool {
	return c.Env == "production"
}

// Level returns the configured slog level.
func (c Config) Level() slog.Level {
	lvl, _ := parseLevel(c.LogLevel)
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}
