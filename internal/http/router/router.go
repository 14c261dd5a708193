// Package router assembles the gin engine from the application's modules.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apphttp "rentalsearch/internal/http"
	"rentalsearch/platform/httpkit"
)

const healthTimeout = 3 * time.Second

// New builds the engine: recovery, request ids, logging, security headers,
// CORS, the health endpoint and every module under /api/v1.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	if app.Config.GetCORSAllowAll() || len(app.Config.GetCORSOrigins()) > 0 {
		engine.Use(cors.New(corsConfig(app)))
	}

	engine.GET("/api/health", healthHandler(app.Health))

	v1 := engine.Group("/api/v1")
	if limit := app.Config.GetAPIRateLimit(); limit > 0 {
		burst := int(limit) * 2
		if burst < 1 {
			burst = 1
		}
		v1.Use(httpkit.NewIPRateLimiter(rate.Limit(limit), burst, app.Logger).RateLimit())
	}

	rc := &apphttp.RouterContext{
		Engine: engine,
		V1:     v1,
		Logger: app.Logger,
	}
	for _, module := range app.Modules {
		module.RegisterRoutes(rc)
		app.Logger.Debug("module routes registered", "module", module.Name())
	}

	return engine
}

func corsConfig(app *apphttp.App) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", httpkit.HeaderRequestID},
		ExposeHeaders:    []string{httpkit.HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if app.Config.GetCORSAllowAll() {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = app.Config.GetCORSOrigins()
	}
	return cfg
}

func healthHandler(health apphttp.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if health == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := health.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "gateway": "unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "gateway": "ok"})
	}
}
