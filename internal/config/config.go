// Package config handles application configuration loading. Process
// settings come from environment variables; the vertical and affiliate
// partner tables come from a YAML site file.
package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Content source kinds.
const (
	SourceFiles    = "files"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host     string `env:"APP_HOST" env-default:"0.0.0.0"`
	Port     string `env:"APP_PORT" env-default:"8080"`
	Env      string `env:"APP_ENV" env-default:"development"` // "development", "production", "testing"
	LogLevel string `env:"LOG_LEVEL"`

	// Public site
	SiteURL  string `env:"SITE_URL" env-default:"http://localhost:8080"`
	SiteFile string `env:"SITE_FILE" env-default:"site.yaml"`

	// Content source
	ContentSource       string        `env:"CONTENT_SOURCE" env-default:"files"` // "files", "postgres", "sqlite"
	ContentDir          string        `env:"CONTENT_DIR" env-default:"content"`
	ContentWatch        bool          `env:"CONTENT_WATCH" env-default:"false"`
	ContentCacheTTL     time.Duration `env:"CONTENT_CACHE_TTL" env-default:"5m"`
	ContentFetchTimeout time.Duration `env:"CONTENT_FETCH_TIMEOUT" env-default:"10s"`

	// PostgreSQL connection
	DBHost     string `env:"POSTGRES_HOST" env-default:"localhost"`
	DBPort     string `env:"POSTGRES_PORT" env-default:"5432"`
	DBUser     string `env:"POSTGRES_USER" env-default:"vertigo"`
	DBPassword string `env:"POSTGRES_PASSWORD" env-default:"changeme"`
	DBName     string `env:"POSTGRES_DB" env-default:"vertigo"`

	// SQLite database file
	SQLitePath string `env:"SQLITE_PATH" env-default:"vertigo.db"`

	// Valkey (Redis-compatible cache). An empty host disables the
	// related-content cache.
	ValkeyHost      string        `env:"VALKEY_HOST"`
	ValkeyPort      string        `env:"VALKEY_PORT" env-default:"6379"`
	ValkeyPassword  string        `env:"VALKEY_PASSWORD"`
	ValkeyDB        int           `env:"VALKEY_DB" env-default:"0"`
	RelatedCacheTTL time.Duration `env:"RELATED_CACHE_TTL" env-default:"10m"`

	// Prometheus metrics on /metrics.
	MetricsEnabled bool `env:"METRICS_ENABLED" env-default:"true"`

	// Affiliate redirects allowed per client IP per minute.
	AffiliateRateLimit int `env:"AFFILIATE_RATE_LIMIT" env-default:"30"`
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if values are
// malformed or critical values are missing in production mode.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.ContentSource {
	case SourceFiles, SourcePostgres, SourceSQLite:
	default:
		return fmt.Errorf("CONTENT_SOURCE must be one of files, postgres, sqlite; got %q", c.ContentSource)
	}

	u, err := url.Parse(c.SiteURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("SITE_URL must be an absolute http(s) URL; got %q", c.SiteURL)
	}
	if c.ContentFetchTimeout <= 0 {
		return fmt.Errorf("CONTENT_FETCH_TIMEOUT must be positive")
	}
	if c.AffiliateRateLimit < 0 {
		return fmt.Errorf("AFFILIATE_RATE_LIMIT must not be negative")
	}

	if c.Env == "production" {
		if c.ContentSource == SourcePostgres && c.DBPassword == "changeme" {
			return fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if u.Hostname() == "localhost" {
			return fmt.Errorf("SITE_URL must be set in production")
		}
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// SQLiteDSN returns the SQLite connection string with the pragmas the
// content store relies on.
func (c *Config) SQLiteDSN() string {
	return "file:" + c.SQLitePath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// ValkeyEnabled reports whether the related-content cache is configured.
func (c *Config) ValkeyEnabled() bool {
	return c.ValkeyHost != ""
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}
