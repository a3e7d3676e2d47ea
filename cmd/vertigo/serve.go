package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"vertigo/internal/filesource"
	"vertigo/internal/handlers"
	"vertigo/internal/metrics"
	"vertigo/internal/middleware"
	"vertigo/internal/router"
	"vertigo/internal/sitemap"
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, c)
		},
	}
}

func serve(ctx context.Context, c *cli) error {
	cfg := c.cfg
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}
	a, err := newApp(ctx, cfg, m)
	if err != nil {
		return err
	}
	defer a.Close()

	// A cold scope is loaded on first request anyway, so a failed warm-up
	// is only worth a warning.
	if err := a.content.Warm(ctx); err != nil {
		slog.Warn("content warm-up incomplete", "error", err)
	}

	if a.files != nil && cfg.ContentWatch {
		w, err := filesource.NewWatcher(a.files.Root(), 0, func() {
			slog.Info("content changed, invalidating store")
			a.content.Invalidate(context.Background())
		})
		if err != nil {
			return err
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				slog.Error("content watcher stopped", "error", err)
			}
		}()
	}

	limiter := middleware.NewRateLimiter(cfg.AffiliateRateLimit, time.Minute)
	defer limiter.Stop()

	api := handlers.NewAPI(a.content, a.verticals, a.selector,
		sitemap.NewBuilder(cfg.SiteURL, a.verticals, a.content))

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.New(api, limiter, m),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutdown signal received")

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("server stopped gracefully")
	return nil
}
