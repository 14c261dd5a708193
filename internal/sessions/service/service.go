// Package service implements the session operations behind the HTTP API.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"rentalsearch/internal/geo"
	"rentalsearch/internal/geocode"
	"rentalsearch/internal/rental"
	"rentalsearch/internal/search"
	"rentalsearch/internal/sessions/repository"
	"rentalsearch/internal/sessions/transport"
	"rentalsearch/platform/apperr"
	"rentalsearch/platform/logger"
	"rentalsearch/platform/sanitize"
)

const maxLabelLength = 120

// Geocoder resolves addresses for center points. It is optional.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]geocode.Place, error)
	Reverse(ctx context.Context, coordinate geo.Coordinate) (geocode.Place, error)
}

type Service struct {
	registry      *repository.Registry
	gateway       search.Gateway
	geocoder      Geocoder
	defaultRadius int
	location      *time.Location
	language      language.Tag
	log           *logger.Logger
}

// New creates the service. geocoder may be nil, in which case address
// queries are rejected and coordinates are stored without a label.
func New(registry *repository.Registry, gateway search.Gateway, geocoder Geocoder, defaultRadius int, log *logger.Logger) *Service {
	return &Service{
		registry:      registry,
		gateway:       gateway,
		geocoder:      geocoder,
		defaultRadius: defaultRadius,
		location:      time.Local,
		language:      language.AmericanEnglish,
		log:           log,
	}
}

func (s *Service) Create(ctx context.Context) transport.CreateSessionResponse {
	session := search.NewSession(s.gateway, s.log, search.WithDefaultRadius(s.defaultRadius))
	id := s.registry.Add(session)
	s.log.WithContext(ctx).Info("search session created", "sessionId", id)
	return transport.CreateSessionResponse{ID: id}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.SessionResponse, error) {
	session, err := s.registry.Get(id)
	if err != nil {
		return transport.SessionResponse{}, err
	}
	return transport.ToSessionResponse(id, session), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.registry.Delete(id); err != nil {
		return err
	}
	s.log.WithContext(ctx).Info("search session deleted", "sessionId", id)
	return nil
}

func (s *Service) SetCenter(ctx context.Context, id uuid.UUID, req transport.CenterRequest) (transport.SessionResponse, error) {
	session, err := s.registry.Get(id)
	if err != nil {
		return transport.SessionResponse{}, err
	}

	center, err := s.resolveCenter(ctx, req)
	if err != nil {
		return transport.SessionResponse{}, err
	}

	session.SetCenter(center)
	return transport.ToSessionResponse(id, session), nil
}

func (s *Service) resolveCenter(ctx context.Context, req transport.CenterRequest) (*search.CenterPoint, error) {
	query := sanitize.Text(req.Query)
	if req.Query != "" && query == "" {
		return nil, apperr.Validation("address query is empty").WithOp("sessions.SetCenter")
	}
	if query != "" {
		if s.geocoder == nil {
			return nil, apperr.Validation("address search is disabled; send latitude and longitude").WithOp("sessions.SetCenter")
		}
		places, err := s.geocoder.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		if len(places) == 0 {
			return nil, apperr.NotFound("no place matches the address").WithOp("sessions.SetCenter")
		}
		return &search.CenterPoint{Coordinate: places[0].Coordinate, Label: places[0].Label}, nil
	}

	if req.Latitude == nil || req.Longitude == nil {
		return nil, apperr.Validation("latitude and longitude are required without an address query").WithOp("sessions.SetCenter")
	}
	center := transport.CenterFromCoordinates(*req.Latitude, *req.Longitude, sanitize.Truncate(req.Label, maxLabelLength))
	if center.Label == "" && s.geocoder != nil {
		place, err := s.geocoder.Reverse(ctx, center.Coordinate)
		if err != nil {
			s.log.WithContext(ctx).Warn("reverse geocoding failed, keeping center without label", "error", err)
		} else {
			center.Label = place.Label
		}
	}
	return center, nil
}

func (s *Service) SetRadius(ctx context.Context, id uuid.UUID, req transport.RadiusRequest) (transport.SessionResponse, error) {
	session, err := s.registry.Get(id)
	if err != nil {
		return transport.SessionResponse{}, err
	}
	if err := session.SetRadius(req.Miles); err != nil {
		return transport.SessionResponse{}, err
	}
	return transport.ToSessionResponse(id, session), nil
}

// SetDates parses both values before touching the session so a bad dropoff
// does not leave a half applied update.
func (s *Service) SetDates(ctx context.Context, id uuid.UUID, req transport.DatesRequest) (transport.SessionResponse, error) {
	session, err := s.registry.Get(id)
	if err != nil {
		return transport.SessionResponse{}, err
	}

	pickup, err := s.parseDate(req.Pickup, search.DefaultPickupHour)
	if err != nil {
		return transport.SessionResponse{}, err
	}
	dropoff, err := s.parseDate(req.Dropoff, search.DefaultDropoffHour)
	if err != nil {
		return transport.SessionResponse{}, err
	}

	if req.Pickup != nil {
		session.SetPickupTime(pickup)
	}
	if req.Dropoff != nil {
		session.SetDropoffTime(dropoff)
	}
	return transport.ToSessionResponse(id, session), nil
}

func (s *Service) parseDate(value *string, defaultHour int) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := search.ParseDateTime(*value, defaultHour, s.location)
	if err != nil {
		return nil, apperr.Validation(err.Error()).WithOp("sessions.SetDates")
	}
	return &t, nil
}

func (s *Service) SetOrder(ctx context.Context, id uuid.UUID, req transport.OrderRequest) (transport.SessionResponse, error) {
	session, err := s.registry.Get(id)
	if err != nil {
		return transport.SessionResponse{}, err
	}
	order, err := search.ParseOrderType(req.Order)
	if err != nil {
		return transport.SessionResponse{}, apperr.Validation(err.Error()).WithOp("sessions.SetOrder")
	}
	session.SetOrder(order)
	return transport.ToSessionResponse(id, session), nil
}

func (s *Service) SetFilter(ctx context.Context, id uuid.UUID, req transport.FilterRequest) (transport.SessionResponse, error) {
	session, err := s.registry.Get(id)
	if err != nil {
		return transport.SessionResponse{}, err
	}
	session.SetProviderFilter(&rental.Company{
		Name: sanitize.Text(req.CompanyName),
		Code: sanitize.Text(req.CompanyCode),
	})
	return transport.ToSessionResponse(id, session), nil
}

func (s *Service) ClearFilter(ctx context.Context, id uuid.UUID) (transport.SessionResponse, error) {
	session, err := s.registry.Get(id)
	if err != nil {
		return transport.SessionResponse{}, err
	}
	session.SetProviderFilter(nil)
	return transport.ToSessionResponse(id, session), nil
}

// Results runs the session's search, reusing cached offers when the
// parameters allow it.
func (s *Service) Results(ctx context.Context, id uuid.UUID) (transport.ResultsResponse, error) {
	session, err := s.registry.Get(id)
	if err != nil {
		return transport.ResultsResponse{}, err
	}

	ctx = context.WithValue(ctx, logger.SessionIDKey, id.String())
	offers, err := session.FetchResults(ctx)
	if err != nil {
		return transport.ResultsResponse{}, err
	}

	return transport.ToResultsResponse(offers, session.Parameters().Center, s.language), nil
}

// Providers lists the companies present in the last fetched results.
func (s *Service) Providers(ctx context.Context, id uuid.UUID) (transport.ProvidersResponse, error) {
	session, err := s.registry.Get(id)
	if err != nil {
		return transport.ProvidersResponse{}, err
	}
	return transport.ToProvidersResponse(session.AvailableProviderFilters(), session.Parameters().Center), nil
}
