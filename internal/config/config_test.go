// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

var envVars = []string{
	"APP_HOST", "APP_PORT", "APP_ENV", "LOG_LEVEL",
	"SITE_URL", "SITE_FILE",
	"CONTENT_SOURCE", "CONTENT_DIR", "CONTENT_WATCH", "CONTENT_CACHE_TTL", "CONTENT_FETCH_TIMEOUT",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"SQLITE_PATH",
	"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD", "VALKEY_DB", "RELATED_CACHE_TTL", "METRICS_ENABLED",
	"AFFILIATE_RATE_LIMIT",
}

// clearEnv unsets every variable Load reads. t.Setenv records the original
// value so it is restored after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// TestLoad_Defaults verifies that Load returns sensible development defaults
// when no environment variables are set.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s: got %q, want %q", field, got, want)
		}
	}
	check("Host", cfg.Host, "0.0.0.0")
	check("Port", cfg.Port, "8080")
	check("Env", cfg.Env, "development")
	check("SiteURL", cfg.SiteURL, "http://localhost:8080")
	check("SiteFile", cfg.SiteFile, "site.yaml")
	check("ContentSource", cfg.ContentSource, SourceFiles)
	check("ContentDir", cfg.ContentDir, "content")
	check("DBUser", cfg.DBUser, "vertigo")
	check("SQLitePath", cfg.SQLitePath, "vertigo.db")
	check("ValkeyHost", cfg.ValkeyHost, "")

	if cfg.ContentCacheTTL != 5*time.Minute {
		t.Errorf("ContentCacheTTL: got %v, want 5m", cfg.ContentCacheTTL)
	}
	if cfg.ContentFetchTimeout != 10*time.Second {
		t.Errorf("ContentFetchTimeout: got %v, want 10s", cfg.ContentFetchTimeout)
	}
	if cfg.AffiliateRateLimit != 30 {
		t.Errorf("AffiliateRateLimit: got %d, want 30", cfg.AffiliateRateLimit)
	}
	if !cfg.MetricsEnabled {
		t.Error("MetricsEnabled should default to true")
	}
	if cfg.ContentWatch {
		t.Error("ContentWatch should default to false")
	}
	if !cfg.IsDev() {
		t.Error("IsDev() should be true by default")
	}
	if cfg.ValkeyEnabled() {
		t.Error("Valkey should be disabled without VALKEY_HOST")
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CONTENT_SOURCE", "sqlite")
	t.Setenv("CONTENT_WATCH", "true")
	t.Setenv("CONTENT_CACHE_TTL", "30s")
	t.Setenv("VALKEY_HOST", "cache.internal")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if cfg.Addr() != "0.0.0.0:9090" {
		t.Errorf("Addr(): got %q", cfg.Addr())
	}
	if cfg.ContentSource != SourceSQLite || !cfg.ContentWatch || cfg.ContentCacheTTL != 30*time.Second {
		t.Errorf("unexpected content settings: %+v", cfg)
	}
	if !cfg.ValkeyEnabled() {
		t.Error("Valkey should be enabled when VALKEY_HOST is set")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown source", map[string]string{"CONTENT_SOURCE": "s3"}, "CONTENT_SOURCE"},
		{"relative site url", map[string]string{"SITE_URL": "/blog"}, "SITE_URL"},
		{"bad duration", map[string]string{"CONTENT_CACHE_TTL": "soon"}, "read environment"},
		{"negative rate", map[string]string{"AFFILIATE_RATE_LIMIT": "-1"}, "AFFILIATE_RATE_LIMIT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

// TestLoad_ProductionRequiresSecrets verifies production validation.
func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("SITE_URL", "https://travel.example.com")
	t.Setenv("CONTENT_SOURCE", "postgres")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "POSTGRES_PASSWORD") {
		t.Fatalf("expected POSTGRES_PASSWORD error, got %v", err)
	}

	t.Setenv("POSTGRES_PASSWORD", "s3cret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if cfg.IsDev() {
		t.Error("IsDev() should be false in production")
	}

	t.Setenv("SITE_URL", "http://localhost:8080")
	if _, err := Load(); err == nil {
		t.Error("expected SITE_URL error for localhost in production")
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBUser: "vertigo", DBPassword: "p@ss", DBHost: "db", DBPort: "5432", DBName: "content"}
	want := "postgres://vertigo:p%40ss@db:5432/content?sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN(): got %q, want %q", got, want)
	}

	cfg.SQLitePath = "/data/vertigo.db"
	if got := cfg.SQLiteDSN(); !strings.HasPrefix(got, "file:/data/vertigo.db?") {
		t.Errorf("SQLiteDSN(): got %q", got)
	}
}
