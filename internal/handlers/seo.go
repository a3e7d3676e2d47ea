// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"vertigo/internal/models"
	"vertigo/internal/sitemap"
	"vertigo/internal/staticparams"
)

// Sitemap handles GET /sitemap.xml. Verticals whose content could not be
// listed are left out rather than failing the whole document.
func (a *API) Sitemap(w http.ResponseWriter, r *http.Request) {
	res := a.sitemap.Build(r.Context())
	if len(res.Failures) > 0 && len(res.Failures) == a.verticals.Len() {
		respondError(w, r, fmt.Errorf("build sitemap: %w", models.ErrSourceUnavailable))
		return
	}

	var buf bytes.Buffer
	if err := sitemap.WriteXML(&buf, res.URLs); err != nil {
		respondError(w, r, fmt.Errorf("write sitemap: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("write sitemap response failed", "error", err)
	}
}

// Robots handles GET /robots.txt.
func (a *API) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(a.sitemap.Robots()))
}

// StaticParams handles GET /api/static-params?type=. It responds with 503
// only when every vertical failed to enumerate.
func (a *API) StaticParams(w http.ResponseWriter, r *http.Request) {
	t, err := requireType(r.URL.Query(), "type")
	if err != nil {
		respondError(w, r, err)
		return
	}

	res := staticparams.Enumerate(r.Context(), a.verticals, a.content)
	if len(res.Failures) > 0 && len(res.Failures) == a.verticals.Len() {
		respondError(w, r, fmt.Errorf("enumerate static params: %w", models.ErrSourceUnavailable))
		return
	}
	writeJSON(w, http.StatusOK, res.ForType(t))
}
