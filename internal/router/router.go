// Package router sets up the HTTP routes and middleware chain of the
// public API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vertigo/internal/handlers"
	"vertigo/internal/metrics"
	"vertigo/internal/middleware"
)

// New creates the chi router with every route and middleware wired up.
// limiter guards the affiliate redirect and m instruments every route;
// either may be nil.
func New(api *handlers.API, limiter *middleware.RateLimiter, m *metrics.Metrics) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	if m != nil {
		r.Use(m.Middleware)
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(methodNotAllowedHandler)

	r.Get("/health", healthHandler)

	// Crawler surfaces.
	r.Get("/sitemap.xml", api.Sitemap)
	r.Get("/robots.txt", api.Robots)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(limiter.Middleware)
			}
			r.Get("/affiliate", api.Affiliate)
		})

		r.Get("/content", api.ContentList)
		r.Get("/related", api.Related)
		r.Get("/pages/{vertical}/{type}/{slug}", api.Page)
		r.Get("/static-params", api.StaticParams)
		r.Get("/verticals", api.Verticals)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"not found"}`))
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	w.Write([]byte(`{"error":"method not allowed"}`))
}
