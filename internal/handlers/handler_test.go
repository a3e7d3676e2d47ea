// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure: an in-memory content
// source behind a real content store, and a chi router wired like the
// production one.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"vertigo/internal/affiliate"
	"vertigo/internal/content"
	"vertigo/internal/models"
	"vertigo/internal/sitemap"
	"vertigo/internal/vertical"
)

// memSource is a content.Source over a fixed item set. Verticals listed in
// broken fail every call, with fault when it is set.
type memSource struct {
	mu     sync.Mutex
	items  []models.ContentItem
	broken map[string]bool
	fault  error
}

func (m *memSource) failure() error {
	if m.fault != nil {
		return m.fault
	}
	return errors.New("disk on fire")
}

func (m *memSource) List(_ context.Context, t models.ContentType, v string) ([]models.ContentItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.broken[v] {
		return nil, m.failure()
	}
	var out []models.ContentItem
	for _, it := range m.items {
		if it.Type == t && it.Vertical == v {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memSource) Get(_ context.Context, t models.ContentType, v, slug string) (*models.ContentItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.broken[v] {
		return nil, m.failure()
	}
	for _, it := range m.items {
		if it.Type == t && it.Vertical == v && it.Slug == slug {
			return &it, nil
		}
	}
	return nil, nil
}

func travelItem(t models.ContentType, slug, title, day string, tags ...string) models.ContentItem {
	it := models.ContentItem{
		ID:       models.ItemID(t, "budget-travel", slug),
		Type:     t,
		Vertical: "budget-travel",
		Slug:     slug,
		Frontmatter: models.Frontmatter{
			Title:       title,
			Description: title,
			Keywords:    []string{},
			Tags:        tags,
		},
		Body: "# " + title + "\n\nCheap eats and free museums.",
	}
	if day != "" {
		d, err := models.ParseDate(day)
		if err != nil {
			panic(err)
		}
		it.Frontmatter.Date = d
	}
	return it
}

func travelItems() []models.ContentItem {
	return []models.ContentItem{
		travelItem(models.ContentTypeDestination, "paris", "Paris", "2024-01-10", "france", "europe"),
		travelItem(models.ContentTypeDestination, "rome", "Rome", "2024-01-12", "italy", "europe"),
		travelItem(models.ContentTypeBlog, "paris-on-a-budget", "Paris on a Budget", "2024-03-01", "paris", "france"),
		travelItem(models.ContentTypeBlog, "rome-on-a-budget", "Rome on a Budget", "2024-02-01", "rome", "italy"),
		travelItem(models.ContentTypeGuide, "hostel-basics", "Hostel Basics", "", "hostels"),
	}
}

type testEnv struct {
	src    *memSource
	router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	reg, err := vertical.New([]models.Vertical{
		{
			Slug:         "budget-travel",
			DisplayName:  "Budget Travel",
			ContentTypes: []models.ContentType{models.ContentTypeDestination, models.ContentTypeBlog, models.ContentTypeGuide},
		},
		{
			Slug:         "luxury-travel",
			DisplayName:  "Luxury Travel",
			ContentTypes: []models.ContentType{models.ContentTypeDestination, models.ContentTypeBlog},
		},
	})
	require.NoError(t, err)

	sel, err := affiliate.New([]models.AffiliatePartner{
		{
			ID:          "stayfinder",
			Name:        "StayFinder",
			Categories:  []models.Category{models.CategoryHotel},
			URLTemplate: "https://stayfinder.example/search?q={destination}",
			Priority:    10,
		},
		{
			ID:          "tourly",
			Name:        "Tourly",
			Categories:  []models.Category{models.CategoryTour, models.CategoryActivity},
			URLTemplate: "https://tourly.example/{destination}?ref={vertical}",
			Priority:    5,
		},
	})
	require.NoError(t, err)

	src := &memSource{items: travelItems(), broken: map[string]bool{}}
	store := content.NewStore(src, reg, content.Options{TTL: -1})
	api := NewAPI(store, reg, sel, sitemap.NewBuilder("https://vertigo.example", reg, store))

	r := chi.NewRouter()
	r.Get("/api/affiliate", api.Affiliate)
	r.Get("/api/content", api.ContentList)
	r.Get("/api/related", api.Related)
	r.Get("/api/pages/{vertical}/{type}/{slug}", api.Page)
	r.Get("/api/static-params", api.StaticParams)
	r.Get("/api/verticals", api.Verticals)
	r.Get("/sitemap.xml", api.Sitemap)
	r.Get("/robots.txt", api.Robots)

	return &testEnv{src: src, router: r}
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func slugsOf(items []itemSummary) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Slug)
	}
	return out
}
