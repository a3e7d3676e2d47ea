// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the public HTTP API: content listings, pages
// with related content, affiliate redirects and the crawler surfaces.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"vertigo/internal/affiliate"
	"vertigo/internal/middleware"
	"vertigo/internal/models"
	"vertigo/internal/sitemap"
	"vertigo/internal/vertical"
)

// Content is the content store as seen by the handlers.
type Content interface {
	Get(ctx context.Context, t models.ContentType, slug, vertical string) (*models.ContentItem, error)
	List(ctx context.Context, t models.ContentType, vertical string, limit int) ([]models.ContentItem, error)
	Related(ctx context.Context, item models.ContentItem, targetType models.ContentType, limit int) ([]models.ContentItem, error)
}

// API groups the public API handlers.
type API struct {
	content   Content
	verticals *vertical.Registry
	selector  *affiliate.Selector
	sitemap   *sitemap.Builder
}

// NewAPI creates the API handler group.
func NewAPI(content Content, verticals *vertical.Registry, selector *affiliate.Selector, sm *sitemap.Builder) *API {
	return &API{
		content:   content,
		verticals: verticals,
		selector:  selector,
		sitemap:   sm,
	}
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// respondError maps err onto a status. Source failures are checked first so
// a wrapped cause never reaches the caller. Invalid input is reported back;
// everything else gets a generic body and is logged.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrSourceUnavailable):
		slog.Error("content source unavailable",
			"path", r.URL.Path, "request_id", middleware.GetRequestID(r.Context()), "error", err)
		writeError(w, http.StatusServiceUnavailable, "content temporarily unavailable")
	case errors.Is(err, models.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		slog.Error("request failed",
			"path", r.URL.Path, "request_id", middleware.GetRequestID(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "not found")
}
