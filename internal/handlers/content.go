// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"vertigo/internal/markdown"
	"vertigo/internal/models"
	"vertigo/internal/slug"
)

// itemSummary is a content item without its body, as returned by listings.
type itemSummary struct {
	ID          uuid.UUID          `json:"id"`
	Type        models.ContentType `json:"type"`
	Vertical    string             `json:"vertical"`
	Slug        string             `json:"slug"`
	Path        string             `json:"path"`
	Frontmatter models.Frontmatter `json:"frontmatter"`
}

func summarize(items []models.ContentItem) []itemSummary {
	out := make([]itemSummary, 0, len(items))
	for i := range items {
		it := &items[i]
		out = append(out, itemSummary{
			ID:          it.ID,
			Type:        it.Type,
			Vertical:    it.Vertical,
			Slug:        it.Slug,
			Path:        it.Path(),
			Frontmatter: it.Frontmatter,
		})
	}
	return out
}

// pageResponse is everything a content page needs in one payload.
type pageResponse struct {
	Vertical models.Vertical    `json:"vertical"`
	Item     models.ContentItem `json:"item"`
	HTML     string             `json:"html"`
	Related  pageRelated        `json:"related"`
}

type pageRelated struct {
	Blog         []itemSummary `json:"blog"`
	Destinations []itemSummary `json:"destinations"`
}

// ContentList handles GET /api/content.
func (a *API) ContentList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	t, err := requireType(q, "type")
	if err != nil {
		respondError(w, r, err)
		return
	}
	vert, err := queryValue(q, "vertical")
	if err != nil {
		respondError(w, r, err)
		return
	}
	limit, err := parseLimit(q.Get("limit"), 0, maxListLimit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	items, err := a.content.List(r.Context(), t, vert, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summarize(items))
}

// Related handles GET /api/related.
func (a *API) Related(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	t, err := requireType(q, "type")
	if err != nil {
		respondError(w, r, err)
		return
	}
	target, err := requireType(q, "target")
	if err != nil {
		respondError(w, r, err)
		return
	}
	vert, err := queryValue(q, "vertical")
	if err != nil {
		respondError(w, r, err)
		return
	}
	itemSlug, err := queryValue(q, "slug")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if vert == "" || itemSlug == "" {
		respondError(w, r, fmt.Errorf("%w: vertical and slug are required", models.ErrInvalidInput))
		return
	}
	limit, err := parseLimit(q.Get("limit"), defaultRelated, maxRelatedLimit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	item, err := a.content.Get(r.Context(), t, itemSlug, vert)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if item == nil {
		notFound(w)
		return
	}

	related, err := a.content.Related(r.Context(), *item, target, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summarize(related))
}

// Page handles GET /api/pages/{vertical}/{type}/{slug}. The type segment
// accepts both "blog" and "destinations" forms.
func (a *API) Page(w http.ResponseWriter, r *http.Request) {
	v, ok := a.verticals.Find(chi.URLParam(r, "vertical"))
	if !ok {
		notFound(w)
		return
	}
	t, err := models.ParseContentType(chi.URLParam(r, "type"))
	if err != nil || !v.Publishes(t) {
		notFound(w)
		return
	}
	itemSlug := chi.URLParam(r, "slug")
	if !slug.Valid(itemSlug) {
		notFound(w)
		return
	}

	ctx := r.Context()
	item, err := a.content.Get(ctx, t, itemSlug, v.Slug)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if item == nil {
		notFound(w)
		return
	}

	html, err := markdown.ToHTML(item.Body)
	if err != nil {
		respondError(w, r, fmt.Errorf("page %s: %w", item.Key(), err))
		return
	}

	var blog, destinations []models.ContentItem
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		blog, err = a.content.Related(gctx, *item, models.ContentTypeBlog, pageRelatedLimit)
		return err
	})
	g.Go(func() error {
		var err error
		destinations, err = a.content.Related(gctx, *item, models.ContentTypeDestination, pageRelatedLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pageResponse{
		Vertical: v,
		Item:     *item,
		HTML:     html,
		Related: pageRelated{
			Blog:         summarize(blog),
			Destinations: summarize(destinations),
		},
	})
}

// Verticals handles GET /api/verticals.
func (a *API) Verticals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.verticals.All())
}
