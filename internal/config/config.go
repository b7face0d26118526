// Package config loads dashboard configuration from the environment and an optional .env file.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEnvFile is read if present; real environment variables win over it.
const DefaultEnvFile = ".env"

// Environment names.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// LocalAPIBaseURL is used when no deployment identifier is present.
const LocalAPIBaseURL = "http://localhost:8000"

// Config holds application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	API      APIConfig      `mapstructure:"api"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Security SecurityConfig `mapstructure:"security"`
	Views    ViewsConfig    `mapstructure:"views"`
	Perf     PerfConfig     `mapstructure:"perf"`
}

// ServerConfig contains HTTP server options.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	Env             string        `mapstructure:"env"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// APIConfig locates the backend REST API.
// BaseURL holds the resolved value after Load.
type APIConfig struct {
	BaseURL            string `mapstructure:"base_url"`
	CodespaceName      string `mapstructure:"codespace_name"`
	ReactCodespaceName string `mapstructure:"react_codespace_name"`
	CodespaceDomain    string `mapstructure:"codespace_domain"`
}

// LoggingConfig contains logger preferences.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SecurityConfig contains CSRF and rate limiting options.
type SecurityConfig struct {
	CSRFKey   string `mapstructure:"csrf_key"`
	RateLimit int    `mapstructure:"rate_limit"`
}

// ViewsConfig tunes page rendering and the edit flow.
type ViewsConfig struct {
	RenderWait        time.Duration `mapstructure:"render_wait"`
	SkipUnchangedTeam bool          `mapstructure:"skip_unchanged_team"`
}

// PerfConfig sets slow-call thresholds.
type PerfConfig struct {
	SlowRequestMs  int `mapstructure:"slow_request_ms"`
	SlowUpstreamMs int `mapstructure:"slow_upstream_ms"`
}

// envBindings maps config keys to environment variable names.
var envBindings = map[string]string{
	"server.addr":               "OCTOFIT_ADDR",
	"server.env":                "OCTOFIT_ENV",
	"server.shutdown_timeout":   "OCTOFIT_SHUTDOWN_TIMEOUT",
	"api.base_url":              "OCTOFIT_API_BASE_URL",
	"api.codespace_name":        "CODESPACE_NAME",
	"api.react_codespace_name":  "REACT_APP_CODESPACE_NAME",
	"api.codespace_domain":      "OCTOFIT_CODESPACE_DOMAIN",
	"logging.level":             "OCTOFIT_LOG_LEVEL",
	"logging.format":            "OCTOFIT_LOG_FORMAT",
	"security.csrf_key":         "OCTOFIT_CSRF_KEY",
	"security.rate_limit":       "OCTOFIT_RATE_LIMIT",
	"views.render_wait":         "OCTOFIT_RENDER_WAIT",
	"views.skip_unchanged_team": "OCTOFIT_SKIP_UNCHANGED_TEAM",
	"perf.slow_request_ms":      "OCTOFIT_SLOW_REQUEST_MS",
	"perf.slow_upstream_ms":     "OCTOFIT_SLOW_UPSTREAM_MS",
}

// Load reads envFile (if it exists) into the environment without overriding
// variables that are already set to a non-empty value, then builds and validates the Config.
// POST: API.BaseURL is the single resolved backend base URL, without trailing slash
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if envMap, err := godotenv.Read(envFile); err == nil {
			for k, val := range envMap {
				if cur, exists := os.LookupEnv(k); !exists || cur == "" {
					_ = os.Setenv(k, val)
				}
			}
		}
	}

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.API.BaseURL = cfg.API.Resolve()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.env", EnvDevelopment)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("api.codespace_domain", "app.github.dev")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("security.rate_limit", 20)

	v.SetDefault("views.render_wait", time.Duration(0))
	v.SetDefault("views.skip_unchanged_team", false)

	v.SetDefault("perf.slow_request_ms", 200)
	v.SetDefault("perf.slow_upstream_ms", 300)
}

// Resolve picks the backend base URL: an explicit value first, then the
// hosted-workspace pattern when a deployment identifier is present, then loopback.
func (a APIConfig) Resolve() string {
	if a.BaseURL != "" {
		return strings.TrimRight(a.BaseURL, "/")
	}
	name := a.CodespaceName
	if name == "" {
		name = a.ReactCodespaceName
	}
	if name != "" {
		return fmt.Sprintf("https://%s-8000.%s", name, a.CodespaceDomain)
	}
	return LocalAPIBaseURL
}

// IsProduction reports whether the server runs in production mode.
func (c Config) IsProduction() bool {
	return c.Server.Env == EnvProduction
}

// Validate ensures required fields are present and well formed.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("OCTOFIT_ADDR is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API base URL %q", c.API.BaseURL)
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		return err
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("OCTOFIT_LOG_FORMAT must be 'text' or 'json', got %q", c.Logging.Format)
	}
	if c.Security.RateLimit <= 0 {
		return errors.New("OCTOFIT_RATE_LIMIT must be positive")
	}
	if c.Security.CSRFKey != "" {
		if _, err := decodeCSRFKey(c.Security.CSRFKey); err != nil {
			return err
		}
	} else if c.IsProduction() {
		return errors.New("OCTOFIT_CSRF_KEY is required in production")
	}
	if c.Views.RenderWait < 0 {
		return errors.New("OCTOFIT_RENDER_WAIT must not be negative")
	}
	return nil
}

// CSRFKey returns the configured 32-byte CSRF secret, or a random one in development.
// The second return value reports whether the key was generated.
func (c Config) CSRFKey() ([]byte, bool, error) {
	if c.Security.CSRFKey != "" {
		key, err := decodeCSRFKey(c.Security.CSRFKey)
		return key, false, err
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, false, fmt.Errorf("generate CSRF key: %w", err)
	}
	return key, true, nil
}

func decodeCSRFKey(keyHex string) ([]byte, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil || len(key) != 32 {
		return nil, errors.New("OCTOFIT_CSRF_KEY must be 64 hex characters (32 bytes)")
	}
	return key, nil
}
