// ABOUTME: Entry point for the Avi load balancer sizing service
// ABOUTME: Serves the sizing HTTP API with graceful shutdown on SIGINT/SIGTERM

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/markalston/avi-sizing-calculator/backend/cache"
	"github.com/markalston/avi-sizing-calculator/backend/config"
	"github.com/markalston/avi-sizing-calculator/backend/handlers"
	"github.com/markalston/avi-sizing-calculator/backend/logger"
	"github.com/markalston/avi-sizing-calculator/backend/metrics"
	"github.com/markalston/avi-sizing-calculator/backend/models"
)

func main() {
	// Initialize structured logging
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	model := models.DefaultCapacityModel()
	if err := model.Validate(); err != nil {
		slog.Error("Invalid capacity model", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Avi Sizing Calculator",
		"port", cfg.Port,
		"rate_limit_enabled", cfg.RateLimitEnabled,
		"metrics_enabled", cfg.MetricsEnabled)

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	c := cache.New[models.AggregateReport](cacheTTL)
	defer c.Close()
	slog.Info("Report cache initialized", "ttl", cacheTTL)

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	h := handlers.NewHandler(cfg, c, handlers.WithMetrics(m), handlers.WithCapacityModel(model))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(h, cfg, m),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, srv, time.Duration(cfg.ShutdownTimeout)*time.Second); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

// run serves until ctx is cancelled, then drains in-flight requests.
func run(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down", "timeout", shutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
