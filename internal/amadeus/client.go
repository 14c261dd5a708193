// Package amadeus implements the rental search gateway against the Amadeus
// car rental "search-circle" API.
package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"rentalsearch/internal/geo"
	"rentalsearch/internal/rental"
	"rentalsearch/internal/search"
	"rentalsearch/internal/units"
	"rentalsearch/platform/apperr"
	"rentalsearch/platform/config"
	"rentalsearch/platform/logger"
)

const (
	searchPath = "/cars/search-circle"

	// dateTimeLayout is the local wall clock format the API expects.
	dateTimeLayout = "2006-01-02T15:04:05"

	unreachableMessage = "Unable to reach the rental search service"

	// maxErrorBody caps how much of a failed response is read for its
	// message fields.
	maxErrorBody = 64 << 10
)

// Client is the HTTP client for the Amadeus rental search API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
	currency   string
	location   *time.Location
	limiter    *rate.Limiter
	log        *logger.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLocation sets the time zone pickup and dropoff times are rendered in.
// The default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) { c.location = loc }
}

// New creates a new Amadeus client.
func New(cfg config.GatewayConfig, log *logger.Logger, opts ...Option) *Client {
	limit := rate.Inf
	if rps := cfg.GetAmadeusRateLimit(); rps > 0 {
		limit = rate.Limit(rps)
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.GetAmadeusTimeout()},
		baseURL:    strings.TrimRight(cfg.GetAmadeusBaseURL(), "/"),
		apiKey:     cfg.GetAmadeusAPIKey(),
		language:   cfg.GetAmadeusLanguage(),
		currency:   cfg.GetAmadeusCurrency(),
		location:   time.Local,
		limiter:    rate.NewLimiter(limit, 1),
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch runs a search for params and returns every offer that could be
// parsed. Malformed cars are skipped; a malformed branch skips all of its
// cars.
func (c *Client) Fetch(ctx context.Context, params search.Parameters) ([]*rental.Offer, error) {
	const op = "amadeus.Fetch"

	if params.Center == nil || params.PickupTime == nil || params.DropoffTime == nil {
		return nil, apperr.Validation("center, pickup and dropoff are required").WithOp(op)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, search.GatewayError(unreachableMessage, err.Error(), err).WithOp(op)
	}

	reqURL := c.baseURL + searchPath + "?" + c.query(params).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, search.GatewayError(unreachableMessage, err.Error(), err).WithOp(op)
	}
	req.Header.Set("Accept", "application/json")

	log := c.log.WithContext(ctx)
	cell := params.Center.Coordinate.Cell(geo.LogCellPrecision)
	started := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("amadeus request failed", "error", err, "cell", cell)
		return nil, search.GatewayError(unreachableMessage, err.Error(), err).WithOp(op)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := decodeAPIError(body, resp.StatusCode)
		log.GatewayRequest(cell, resp.StatusCode, 0, 0, elapsedMs(started))
		log.Warn("amadeus returned an error", "status", resp.StatusCode, "message", apiErr.Message)
		return nil, search.GatewayError(apiErr.Message, apiErr.MoreInfo, fmt.Errorf("status %d", resp.StatusCode)).WithOp(op)
	}

	var body apiSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Error("amadeus decode failed", "error", err, "cell", cell)
		return nil, search.GatewayError("Unreadable response from the rental search service", err.Error(), err).WithOp(op)
	}

	offers, dropped := body.toOffers(log)
	log.GatewayRequest(cell, resp.StatusCode, len(offers), dropped, elapsedMs(started))
	return offers, nil
}

// Ping checks that the API is reachable and does not reject the configured
// key.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+searchPath+"?apikey="+url.QueryEscape(c.apiKey), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.New("ping: api key rejected")
	}
	return nil
}

func (c *Client) query(params search.Parameters) url.Values {
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("lang", c.language)
	q.Set("currency", c.currency)
	q.Set("radius", strconv.Itoa(radiusKilometers(params.RadiusMiles)))
	q.Set("latitude", strconv.FormatFloat(params.Center.Coordinate.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(params.Center.Coordinate.Longitude, 'f', -1, 64))
	q.Set("pick_up", params.PickupTime.In(c.location).Format(dateTimeLayout))
	q.Set("drop_off", params.DropoffTime.In(c.location).Format(dateTimeLayout))
	return q
}

// radiusKilometers converts the search radius to whole kilometers.
func radiusKilometers(miles int) int {
	return int(math.Round(units.KilometersFromMiles(miles)))
}

func elapsedMs(started time.Time) float64 {
	return float64(time.Since(started).Microseconds()) / 1000
}
