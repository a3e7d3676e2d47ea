// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"vertigo/internal/affiliate"
	"vertigo/internal/cache"
	"vertigo/internal/config"
	"vertigo/internal/content"
	"vertigo/internal/database"
	"vertigo/internal/filesource"
	"vertigo/internal/metrics"
	"vertigo/internal/store"
	"vertigo/internal/vertical"
)

// app holds the components every command builds from configuration.
type app struct {
	cfg       *config.Config
	verticals *vertical.Registry
	selector  *affiliate.Selector
	content   *content.Store
	files     *filesource.Source // nil unless CONTENT_SOURCE=files
	closers   []func() error
}

// newApp loads the site file, opens the configured content source and
// builds the content store on top of it. m may be nil; when set, source
// calls are instrumented.
func newApp(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*app, error) {
	site, err := config.LoadSite(cfg.SiteFile)
	if err != nil {
		return nil, err
	}
	reg, err := vertical.New(site.Verticals)
	if err != nil {
		return nil, fmt.Errorf("vertical registry: %w", err)
	}
	sel, err := affiliate.New(site.Partners)
	if err != nil {
		return nil, fmt.Errorf("affiliate partners: %w", err)
	}

	a := &app{cfg: cfg, verticals: reg, selector: sel}

	var src content.Source
	switch cfg.ContentSource {
	case config.SourceFiles:
		a.files = filesource.New(cfg.ContentDir)
		src = a.files
	default:
		db, d, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		if err := database.Migrate(db, d); err != nil {
			a.Close()
			return nil, err
		}
		if cfg.IsDev() {
			if err := database.Seed(ctx, db, d); err != nil {
				a.Close()
				return nil, err
			}
		}
		src = store.NewContentStore(db, d)
	}

	if m != nil {
		src = m.InstrumentSource(src)
	}

	opts := content.Options{
		TTL:          cfg.ContentCacheTTL,
		FetchTimeout: cfg.ContentFetchTimeout,
	}
	if cfg.ValkeyEnabled() {
		client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
		if err != nil {
			slog.Warn("valkey unavailable, related-content cache disabled", "error", err)
		} else {
			a.closers = append(a.closers, client.Close)
			opts.Related = cache.NewRelatedCache(client, cfg.RelatedCacheTTL)
		}
	}

	a.content = content.NewStore(src, reg, opts)
	slog.Info("content store ready",
		"source", cfg.ContentSource,
		"verticals", reg.Len(),
		"partners", len(site.Partners),
		"related_cache", opts.Related != nil,
	)
	return a, nil
}

// Close releases the database and cache connections.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// openDB connects to the SQL backend named by CONTENT_SOURCE.
func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, database.Dialect, error) {
	var (
		d   database.Dialect
		dsn string
	)
	switch cfg.ContentSource {
	case config.SourcePostgres:
		d, dsn = database.Postgres, cfg.DSN()
	case config.SourceSQLite:
		d, dsn = database.SQLite, cfg.SQLiteDSN()
	default:
		return nil, "", fmt.Errorf("CONTENT_SOURCE=%s has no database; use postgres or sqlite", cfg.ContentSource)
	}
	db, err := database.Connect(ctx, d, dsn)
	if err != nil {
		return nil, "", err
	}
	return db, d, nil
}
