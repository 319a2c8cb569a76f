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

	"octofit/internal/adapters/api"
	web "octofit/internal/adapters/http"
	"octofit/internal/adapters/http/perf"
	"octofit/internal/application/catalog"
	"octofit/internal/application/views"
	"octofit/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server_failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))

	if err := catalog.Validate(); err != nil {
		return err
	}

	// Performance instrumentation: requests and upstream fetches share one collector
	collector := perf.NewCollector(perf.DefaultRingSize)

	client, err := api.NewClient(cfg.BaseURL(), cfg.FetchTimeout)
	if err != nil {
		return err
	}
	fetcher := api.NewTimedFetcher(client, collector, cfg.SlowFetch)

	registry := views.NewRegistry(fetcher, views.Options{
		FetchTimeout: cfg.FetchTimeout,
		TTL:          cfg.ViewTTL,
		MaxViews:     cfg.MaxViews,
	})

	stopCh := make(chan struct{})
	defer close(stopCh)
	views.StartSweeper(registry, time.Minute, stopCh)

	var key []byte
	if cfg.CSRFKey != "" {
		if key, err = web.DecodeCSRFKey(cfg.CSRFKey); err != nil {
			return err
		}
	}

	handler, err := web.NewMux(web.Deps{
		Registry:    registry,
		Schemas:     catalog.All(),
		Collector:   collector,
		APIBaseURL:  client.BaseURL(),
		CSRFKey:     key,
		Production:  cfg.Production(),
		RateLimit:   cfg.RateLimit,
		SlowRequest: cfg.SlowRequest,
		StopCh:      stopCh,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// Page loads wait for the view's fetch to resolve.
		WriteTimeout: cfg.FetchTimeout + 30*time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server_starting", "version", version, "addr", cfg.Addr, "env", cfg.Env, "api", client.BaseURL())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
