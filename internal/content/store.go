// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content loads, indexes and serves the published content items of
// every vertical. Items are read-only: the store fetches each
// (type, vertical) scope from a Source, sorts it once, and serves lookups
// from that snapshot until it expires or is invalidated.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"vertigo/internal/models"
	"vertigo/internal/related"
	"vertigo/internal/vertical"
)

// Source is the external content collaborator. Get returns nil, nil when
// the item does not exist.
type Source interface {
	List(ctx context.Context, t models.ContentType, vertical string) ([]models.ContentItem, error)
	Get(ctx context.Context, t models.ContentType, vertical, slug string) (*models.ContentItem, error)
}

// RelatedCache stores ranked related-content results as item slugs.
type RelatedCache interface {
	Get(ctx context.Context, key string) ([]string, bool)
	Set(ctx context.Context, key string, slugs []string)
	InvalidateAll(ctx context.Context)
}

// Options tunes a Store. Zero values select the defaults.
type Options struct {
	// TTL is how long a loaded scope is served before it is re-read.
	// Negative disables expiry; scopes then live until Invalidate.
	TTL time.Duration
	// FetchTimeout bounds each call into the Source.
	FetchTimeout time.Duration
	// Related caches related-content rankings. Nil disables caching.
	Related RelatedCache
}

const (
	DefaultTTL          = 5 * time.Minute
	DefaultFetchTimeout = 10 * time.Second
)

type scopeKey struct {
	typ      models.ContentType
	vertical string
}

// scope is the sorted snapshot of one (type, vertical) pair.
type scope struct {
	items   []models.ContentItem
	bySlug  map[string]int
	fetched time.Time
}

type entry struct {
	mu    sync.Mutex
	scope *scope
}

// Store serves content items. It is safe for concurrent use.
type Store struct {
	source    Source
	verticals *vertical.Registry
	opts      Options
	now       func() time.Time

	mu      sync.RWMutex
	entries map[scopeKey]*entry
}

// NewStore creates a Store reading from src and scoped by the registry.
func NewStore(src Source, verticals *vertical.Registry, opts Options) *Store {
	if opts.TTL == 0 {
		opts.TTL = DefaultTTL
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	return &Store{
		source:    src,
		verticals: verticals,
		opts:      opts,
		now:       time.Now,
		entries:   make(map[scopeKey]*entry),
	}
}

// Get returns the item keyed by (t, vertical, slug), or nil when there is no
// such item. Unknown verticals and types the vertical does not publish are
// simply not found.
func (s *Store) Get(ctx context.Context, t models.ContentType, slug, verticalSlug string) (*models.ContentItem, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown content type %q", models.ErrInvalidInput, t)
	}
	v, ok := s.verticals.Find(verticalSlug)
	if !ok || !v.Publishes(t) {
		return nil, nil
	}

	if sc := s.cached(scopeKey{t, verticalSlug}); sc != nil {
		return sc.get(slug), nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	defer cancel()
	item, err := s.source.Get(fetchCtx, t, verticalSlug, slug)
	if err != nil {
		return nil, fmt.Errorf("get content %s/%s/%s: %w: %w", t, verticalSlug, slug, models.ErrSourceUnavailable, err)
	}
	if item == nil || item.Type != t || item.Vertical != verticalSlug || item.Slug != slug {
		return nil, nil
	}
	out := *item
	if out.ID == uuid.Nil {
		out.ID = models.ItemID(t, verticalSlug, slug)
	}
	return &out, nil
}

// List returns items of type t ordered by date descending (undated last),
// then slug. An empty vertical lists every configured vertical; an unknown
// one yields no items. limit <= 0 means no limit. A source failure is an
// error wrapping models.ErrSourceUnavailable, never a partial list.
func (s *Store) List(ctx context.Context, t models.ContentType, verticalSlug string, limit int) ([]models.ContentItem, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown content type %q", models.ErrInvalidInput, t)
	}

	var items []models.ContentItem
	if verticalSlug != "" {
		v, ok := s.verticals.Find(verticalSlug)
		if !ok || !v.Publishes(t) {
			return []models.ContentItem{}, nil
		}
		sc, err := s.load(ctx, scopeKey{t, verticalSlug})
		if err != nil {
			return nil, err
		}
		items = sc.items
	} else {
		for _, v := range s.verticals.All() {
			if !v.Publishes(t) {
				continue
			}
			sc, err := s.load(ctx, scopeKey{t, v.Slug})
			if err != nil {
				return nil, err
			}
			items = append(items, sc.items...)
		}
		items = sortItems(items)
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	out := make([]models.ContentItem, len(items))
	copy(out, items)
	return out, nil
}

// Related returns up to limit items of targetType related to item, ranked
// by the related package. Results are cached by (item ID, type, limit) when
// a RelatedCache is configured.
func (s *Store) Related(ctx context.Context, item models.ContentItem, targetType models.ContentType, limit int) ([]models.ContentItem, error) {
	if !targetType.Valid() {
		return nil, fmt.Errorf("%w: unknown content type %q", models.ErrInvalidInput, targetType)
	}
	if limit <= 0 {
		return []models.ContentItem{}, nil
	}

	id := item.ID
	if id == uuid.Nil {
		id = models.ItemID(item.Type, item.Vertical, item.Slug)
	}
	key := relatedKey(id, targetType, limit)
	if s.opts.Related != nil {
		if cached, ok := s.opts.Related.Get(ctx, key); ok {
			if items, ok := s.resolve(ctx, targetType, item.Vertical, cached); ok {
				return items, nil
			}
		}
	}

	candidates, err := s.List(ctx, targetType, item.Vertical, 0)
	if err != nil {
		return nil, err
	}
	ranked := related.Rank(related.Query{Source: item, TargetType: targetType, Limit: limit}, candidates)

	if s.opts.Related != nil {
		slugs := make([]string, len(ranked))
		for i, r := range ranked {
			slugs[i] = r.Slug
		}
		s.opts.Related.Set(ctx, key, slugs)
	}
	return ranked, nil
}

func relatedKey(id uuid.UUID, t models.ContentType, limit int) string {
	return fmt.Sprintf("%s:%s:%d", id, t, limit)
}

// resolve maps cached slugs back to items. It reports false when any slug
// has disappeared, so the caller recomputes instead of serving stale data.
func (s *Store) resolve(ctx context.Context, t models.ContentType, verticalSlug string, slugs []string) ([]models.ContentItem, bool) {
	v, ok := s.verticals.Find(verticalSlug)
	if !ok || !v.Publishes(t) {
		return nil, false
	}
	sc, err := s.load(ctx, scopeKey{t, verticalSlug})
	if err != nil {
		return nil, false
	}
	out := make([]models.ContentItem, 0, len(slugs))
	for _, slug := range slugs {
		it := sc.get(slug)
		if it == nil {
			return nil, false
		}
		out = append(out, *it)
	}
	return out, true
}

// Invalidate drops every loaded scope and the related-content cache so the
// next read goes back to the source.
func (s *Store) Invalidate(ctx context.Context) {
	s.mu.Lock()
	s.entries = make(map[scopeKey]*entry)
	s.mu.Unlock()
	if s.opts.Related != nil {
		s.opts.Related.InvalidateAll(ctx)
	}
	slog.Info("content store invalidated")
}

// Warm loads every published scope of every vertical. Failures are returned
// joined; scopes that loaded successfully stay cached.
func (s *Store) Warm(ctx context.Context) error {
	var errs []error
	for _, v := range s.verticals.All() {
		for _, t := range v.ContentTypes {
			if _, err := s.load(ctx, scopeKey{t, v.Slug}); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Verticals returns the registry the store is scoped by.
func (s *Store) Verticals() *vertical.Registry {
	return s.verticals
}

func (s *Store) entry(key scopeKey) *entry {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok = s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	return e
}

func (s *Store) fresh(sc *scope) bool {
	return sc != nil && (s.opts.TTL < 0 || s.now().Sub(sc.fetched) < s.opts.TTL)
}

// cached returns the scope for key only if it is already loaded and fresh.
func (s *Store) cached(key scopeKey) *scope {
	e := s.entry(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	if s.fresh(e.scope) {
		return e.scope
	}
	return nil
}

// load returns the scope for key, fetching it from the source when it is
// missing or stale. Concurrent loads of the same scope share one fetch.
func (s *Store) load(ctx context.Context, key scopeKey) (*scope, error) {
	e := s.entry(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	if s.fresh(e.scope) {
		return e.scope, nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	defer cancel()
	raw, err := s.source.List(fetchCtx, key.typ, key.vertical)
	if err != nil {
		return nil, fmt.Errorf("list content %s/%s: %w: %w", key.typ, key.vertical, models.ErrSourceUnavailable, err)
	}

	sc := buildScope(key, raw)
	sc.fetched = s.now()
	e.scope = sc
	slog.Debug("content scope loaded", "type", key.typ, "vertical", key.vertical, "items", len(sc.items))
	return sc, nil
}

// buildScope keeps the items that belong to key, drops duplicate slugs
// (first one wins) and sorts the rest.
func buildScope(key scopeKey, raw []models.ContentItem) *scope {
	items := make([]models.ContentItem, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, it := range raw {
		if it.Type != key.typ || it.Vertical != key.vertical || it.Slug == "" {
			slog.Warn("content item outside its scope dropped",
				"scope_type", key.typ, "scope_vertical", key.vertical,
				"type", it.Type, "vertical", it.Vertical, "slug", it.Slug)
			continue
		}
		if _, dup := seen[it.Slug]; dup {
			slog.Warn("duplicate content slug dropped", "type", it.Type, "vertical", it.Vertical, "slug", it.Slug)
			continue
		}
		seen[it.Slug] = struct{}{}
		if it.ID == uuid.Nil {
			it.ID = models.ItemID(it.Type, it.Vertical, it.Slug)
		}
		items = append(items, it)
	}
	items = sortItems(items)

	sc := &scope{items: items, bySlug: make(map[string]int, len(items))}
	for i, it := range items {
		sc.bySlug[it.Slug] = i
	}
	return sc
}

func (sc *scope) get(slug string) *models.ContentItem {
	i, ok := sc.bySlug[slug]
	if !ok {
		return nil
	}
	it := sc.items[i]
	return &it
}

// sortItems orders by date descending (undated last), slug, then vertical.
func sortItems(items []models.ContentItem) []models.ContentItem {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := &items[i], &items[j]
		if !models.SameDate(a, b) {
			return models.Newer(a, b)
		}
		if a.Slug != b.Slug {
			return a.Slug < b.Slug
		}
		return a.Vertical < b.Vertical
	})
	return items
}
