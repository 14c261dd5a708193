// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// GatewayConfig provides settings for the rental aggregator client.
type GatewayConfig interface {
	GetAmadeusBaseURL() string
	GetAmadeusAPIKey() string
	GetAmadeusLanguage() string
	GetAmadeusCurrency() string
	GetAmadeusTimeout() time.Duration
	GetAmadeusRateLimit() float64
}

// GeocodeConfig provides settings for the Nominatim geocoder.
type GeocodeConfig interface {
	GetGeocodeURL() string
	GetGeocodeUserAgent() string
	IsGeocodeEnabled() bool
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetAPIRateLimit() float64
}

// SessionConfig provides settings for in-memory search sessions.
type SessionConfig interface {
	GetDefaultRadiusMiles() int
	GetSessionTTL() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                string
	HTTPAddr           string
	CORSAllowAll       bool
	CORSOrigins        []string
	APIRateLimit       float64
	AmadeusBaseURL     string
	AmadeusAPIKey      string
	AmadeusLanguage    string
	AmadeusCurrency    string
	AmadeusTimeout     time.Duration
	AmadeusRateLimit   float64
	GeocodeURL         string
	GeocodeUserAgent   string
	DefaultRadiusMiles int
	SessionTTL         time.Duration
}

// =============================================================================
// Interface Implementations
// =============================================================================

// GatewayConfig implementation
func (c *Config) GetAmadeusBaseURL() string        { return c.AmadeusBaseURL }
func (c *Config) GetAmadeusAPIKey() string         { return c.AmadeusAPIKey }
func (c *Config) GetAmadeusLanguage() string       { return c.AmadeusLanguage }
func (c *Config) GetAmadeusCurrency() string       { return c.AmadeusCurrency }
func (c *Config) GetAmadeusTimeout() time.Duration { return c.AmadeusTimeout }
func (c *Config) GetAmadeusRateLimit() float64     { return c.AmadeusRateLimit }

// GeocodeConfig implementation
func (c *Config) GetGeocodeURL() string       { return c.GeocodeURL }
func (c *Config) GetGeocodeUserAgent() string { return c.GeocodeUserAgent }
func (c *Config) IsGeocodeEnabled() bool      { return c.GeocodeURL != "" }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetAPIRateLimit() float64 { return c.APIRateLimit }

// SessionConfig implementation
func (c *Config) GetDefaultRadiusMiles() int   { return c.DefaultRadiusMiles }
func (c *Config) GetSessionTTL() time.Duration { return c.SessionTTL }

// Load reads configuration from environment variables, after merging a
// .env file from the working directory when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from the current environment only.
func FromEnv() (*Config, error) {
	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:       corsAllowAll,
		CORSOrigins:        corsOrigins,
		APIRateLimit:       mustFloat(getEnv("API_RATE_LIMIT", "10")),
		AmadeusBaseURL:     strings.TrimRight(getEnv("AMADEUS_BASE_URL", "https://api.sandbox.amadeus.com/v1.2"), "/"),
		AmadeusAPIKey:      getEnv("AMADEUS_API_KEY", ""),
		AmadeusLanguage:    getEnv("AMADEUS_LANGUAGE", "EN"),
		AmadeusCurrency:    getEnv("AMADEUS_CURRENCY", "USD"),
		AmadeusTimeout:     mustDuration(getEnv("AMADEUS_TIMEOUT", "10s")),
		AmadeusRateLimit:   mustFloat(getEnv("AMADEUS_RATE_LIMIT", "5")),
		GeocodeURL:         strings.TrimRight(getEnv("GEOCODE_URL", "https://nominatim.openstreetmap.org"), "/"),
		GeocodeUserAgent:   getEnv("GEOCODE_USER_AGENT", "rentalsearch/1.0"),
		DefaultRadiusMiles: mustInt(getEnv("SEARCH_DEFAULT_RADIUS", "30")),
		SessionTTL:         mustDuration(getEnv("SESSION_TTL", "30m")),
	}

	if cfg.AmadeusAPIKey == "" {
		return nil, fmt.Errorf("AMADEUS_API_KEY is required")
	}
	if cfg.DefaultRadiusMiles < 1 {
		return nil, fmt.Errorf("SEARCH_DEFAULT_RADIUS must be a positive integer")
	}
	if cfg.AmadeusTimeout <= 0 {
		return nil, fmt.Errorf("AMADEUS_TIMEOUT must be a positive duration")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be a positive duration")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
