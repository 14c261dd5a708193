package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentalsearch/internal/amadeus"
	"rentalsearch/internal/geocode"
	apphttp "rentalsearch/internal/http"
	"rentalsearch/internal/http/router"
	"rentalsearch/internal/sessions"
	"rentalsearch/internal/sessions/service"
	"rentalsearch/platform/config"
	"rentalsearch/platform/logger"
	"rentalsearch/platform/validator"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	gateway := amadeus.New(cfg, log)
	if err := withRetry(ctx, log, "rental gateway ping", 3, time.Second, func() error {
		return gateway.Ping(ctx)
	}); err != nil {
		// The API still serves sessions; /api/health reports the outage.
		log.Warn("rental gateway not reachable at startup", "error", err)
	} else {
		log.Info("rental gateway reachable", "baseUrl", cfg.GetAmadeusBaseURL())
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	modules := []apphttp.Module{}

	var geocoder service.Geocoder
	if cfg.IsGeocodeEnabled() {
		geocodeModule := geocode.NewModule(cfg, log)
		geocoder = geocodeModule.Service()
		modules = append(modules, geocodeModule)
		log.Info("geocoding enabled", "url", cfg.GetGeocodeURL())
	} else {
		log.Warn("GEOCODE_URL not configured; address search disabled")
	}

	sessionsModule, err := sessions.NewModule(gateway, geocoder, cfg, val, log)
	if err != nil {
		log.Error("failed to initialize sessions module", "error", err)
		panic("failed to initialize sessions module: " + err.Error())
	}
	defer sessionsModule.Close()
	modules = append(modules, sessionsModule)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Health:  gateway,
		Modules: modules,
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
