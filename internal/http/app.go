// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"rentalsearch/platform/config"
	"rentalsearch/platform/logger"
)

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration.
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health reports whether the rental search backend is reachable.
	// Optional; without it /api/health only reports liveness.
	Health HealthChecker
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
