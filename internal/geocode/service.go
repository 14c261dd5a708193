// Package geocode resolves free text addresses to coordinates and
// coordinates back to short place labels using Nominatim.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"rentalsearch/internal/geo"
	"rentalsearch/platform/apperr"
	"rentalsearch/platform/config"
	"rentalsearch/platform/logger"
)

const (
	searchLimit = 5

	// Nominatim's usage policy allows one request per second.
	requestsPerSecond = 1
)

type Service struct {
	client    *http.Client
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
	log       *logger.Logger
}

func NewService(cfg config.GeocodeConfig, log *logger.Logger) *Service {
	return &Service{
		client:    &http.Client{Timeout: 5 * time.Second},
		baseURL:   strings.TrimRight(cfg.GetGeocodeURL(), "/"),
		userAgent: cfg.GetGeocodeUserAgent(),
		limiter:   rate.NewLimiter(requestsPerSecond, 1),
		log:       log,
	}
}

// Search returns up to five places matching query. Rows without usable
// coordinates are skipped.
func (s *Service) Search(ctx context.Context, query string) ([]Place, error) {
	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "json")
	params.Add("addressdetails", "1")
	params.Add("limit", strconv.Itoa(searchLimit))

	var rawResults []nominatimResponse
	if err := s.get(ctx, "/search", params, &rawResults); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(rawResults))
	for _, raw := range rawResults {
		place, ok := buildPlace(raw)
		if !ok {
			continue
		}
		places = append(places, place)
	}

	return places, nil
}

// Reverse returns the place at coordinate. The coordinate is kept as given;
// only the label comes from Nominatim.
func (s *Service) Reverse(ctx context.Context, coordinate geo.Coordinate) (Place, error) {
	params := url.Values{}
	params.Add("lat", strconv.FormatFloat(coordinate.Latitude, 'f', -1, 64))
	params.Add("lon", strconv.FormatFloat(coordinate.Longitude, 'f', -1, 64))
	params.Add("format", "json")
	params.Add("addressdetails", "1")

	var raw nominatimResponse
	if err := s.get(ctx, "/reverse", params, &raw); err != nil {
		return Place{}, err
	}
	if raw.Error != "" {
		return Place{}, apperr.NotFound("no place found at the given coordinate").
			WithMoreInfo(raw.Error).
			WithOp("geocode.Reverse")
	}

	return Place{Label: buildLabel(raw), Coordinate: coordinate}, nil
}

func (s *Service) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return apperr.Wrap(apperr.KindUpstream, "address lookup service unavailable", err)
	}

	reqURL := fmt.Sprintf("%s%s?%s", s.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "build geocode request", err)
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("nominatim request failed", "error", err, "path", path)
		return apperr.Wrap(apperr.KindUpstream, "address lookup service unavailable", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		s.log.Error("nominatim upstream error", "status", resp.StatusCode, "path", path)
		return apperr.Upstream("address lookup service unavailable").
			WithMoreInfo(fmt.Sprintf("status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		s.log.Error("failed to decode nominatim payload", "error", err, "path", path)
		return apperr.Wrap(apperr.KindUpstream, "address lookup service returned an unreadable response", err)
	}
	return nil
}

func buildPlace(raw nominatimResponse) (Place, bool) {
	lat, err := strconv.ParseFloat(raw.Lat, 64)
	if err != nil {
		return Place{}, false
	}
	lon, err := strconv.ParseFloat(raw.Lon, 64)
	if err != nil {
		return Place{}, false
	}

	coordinate := geo.Coordinate{Latitude: lat, Longitude: lon}
	if !coordinate.Valid() {
		return Place{}, false
	}

	return Place{Label: buildLabel(raw), Coordinate: coordinate}, true
}

func pickCity(address nominatimAddress) string {
	if address.City != "" {
		return address.City
	}
	if address.Town != "" {
		return address.Town
	}
	if address.Village != "" {
		return address.Village
	}
	if address.Municipality != "" {
		return address.Municipality
	}
	return address.Hamlet
}

// buildLabel prefers "<number> <road> <city>" and falls back to the display
// name.
func buildLabel(raw nominatimResponse) string {
	city := pickCity(raw.Address)
	if raw.Address.HouseNumber != "" && raw.Address.Road != "" && city != "" {
		return strings.Join([]string{raw.Address.HouseNumber, raw.Address.Road, city}, " ")
	}
	return strings.TrimSpace(raw.DisplayName)
}
