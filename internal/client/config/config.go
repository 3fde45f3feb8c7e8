// Package config loads runtime configuration for the photodrop CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file given with -c/--config or $PHOTODROP_CONFIG.
//  3. PHOTODROP_* environment variables.
//  4. Command-line flags registered on the root command (see BindFlags).
//
// # JSON schema
//
// Durations use timex.Duration, so "1s" and integer nanoseconds both work:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "db_path": "photodrop.db",
//	  "sync_delay": "1s",
//	  "http_timeout": "30s"
//	}
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds runtime settings for the photodrop CLI.
//
// Fields:
//   - ServerURL: base URL of the photodrop server.
//   - DBPath: SQLite file holding the local session.
//   - SyncDelay: pause between "Session restored" and navigating to LandingPath.
//   - LandingPath: where sync navigates after a restored session.
//   - PublicBaseURL: prefix for recorded image URLs; derived from the signed
//     URL when empty.
//   - HTTPTimeout: per-request timeout for API calls and uploads.
type Config struct {
	ServerURL     string        `env:"PHOTODROP_SERVER_URL"`
	DBPath        string        `env:"PHOTODROP_DB_PATH"`
	SyncDelay     time.Duration `env:"PHOTODROP_SYNC_DELAY"`
	LandingPath   string        `env:"PHOTODROP_LANDING_PATH"`
	PublicBaseURL string        `env:"PHOTODROP_PUBLIC_BASE_URL"`
	HTTPTimeout   time.Duration `env:"PHOTODROP_HTTP_TIMEOUT"`
	LogLevel      string        `env:"PHOTODROP_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.DBPath = "photodrop.db"
	c.SyncDelay = time.Second
	c.LandingPath = "/"
	c.HTTPTimeout = 30 * time.Second
	c.LogLevel = "error"
}

// Validate rejects settings the CLI cannot work with.
func (c *Config) Validate() error {
	c.ServerURL = strings.TrimRight(strings.TrimSpace(c.ServerURL), "/")
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server url %q", c.ServerURL)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.SyncDelay < 0 {
		return fmt.Errorf("sync delay must not be negative")
	}
	if c.LandingPath == "" {
		c.LandingPath = "/"
	}
	return nil
}

// LoadConfig builds a Config from defaults, the JSON file at path (if any)
// and the environment. Flags are applied afterwards by the caller.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
