package search

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"rentalsearch/internal/geo"
	"rentalsearch/internal/rental"
	"rentalsearch/platform/apperr"
	"rentalsearch/platform/logger"
)

// CacheState reports whether the cached raw results match the current
// server-relevant parameters.
type CacheState int

const (
	StateStale CacheState = iota
	StateClean
)

func (c CacheState) String() string {
	if c == StateClean {
		return "clean"
	}
	return "stale"
}

func (c CacheState) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Option configures a Session.
type Option func(*Session)

// WithDefaultRadius sets the initial search radius. Values below one mile
// are ignored.
func WithDefaultRadius(miles int) Option {
	return func(s *Session) {
		if miles >= 1 {
			s.params.RadiusMiles = miles
		}
	}
}

// WithDefaultOrder sets the initial result ordering.
func WithDefaultOrder(order OrderType) Option {
	return func(s *Session) {
		s.params.Order = order
	}
}

// Session holds one caller's search parameters and the raw results of the
// last successful fetch. Changing the center, radius or dates invalidates
// the cached results; changing the order or provider filter only changes
// how cached results are presented.
//
// A Session is safe for concurrent use, but only one FetchResults call runs
// at a time. Overlapping calls fail with CodeFetchInProgress.
type Session struct {
	gateway  Gateway
	log      *logger.Logger
	inflight *semaphore.Weighted

	mu         sync.Mutex
	params     Parameters
	cached     []*rental.Offer
	state      CacheState
	generation uint64
}

// NewSession creates a session with no center or dates, the default radius
// and price ascending order.
func NewSession(gw Gateway, log *logger.Logger, opts ...Option) *Session {
	if log == nil {
		log = logger.Discard()
	}
	s := &Session{
		gateway:  gw,
		log:      log,
		inflight: semaphore.NewWeighted(1),
		params: Parameters{
			RadiusMiles: DefaultRadiusMiles,
			Order:       OrderPriceAscending,
		},
		state: StateStale,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// invalidate must be called with mu held.
func (s *Session) invalidate() {
	s.cached = nil
	s.state = StateStale
	s.generation++
}

// SetCenter replaces the search center. nil clears it.
func (s *Session) SetCenter(center *CenterPoint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if center == nil {
		s.params.Center = nil
	} else {
		c := *center
		s.params.Center = &c
	}
	s.invalidate()
}

// SetRadius replaces the search radius in miles.
func (s *Session) SetRadius(miles int) error {
	if miles < 1 {
		return apperr.Validation("search radius must be at least one mile").WithOp("search.SetRadius")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.params.RadiusMiles = miles
	s.invalidate()
	return nil
}

// SetPickupTime replaces the pickup time. nil clears it.
func (s *Session) SetPickupTime(t *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params.PickupTime = copyTime(t)
	s.invalidate()
}

// SetDropoffTime replaces the dropoff time. nil clears it.
func (s *Session) SetDropoffTime(t *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params.DropoffTime = copyTime(t)
	s.invalidate()
}

// SetOrder changes result ordering without invalidating cached results.
func (s *Session) SetOrder(order OrderType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params.Order = order
}

// SetProviderFilter restricts results to one company. nil removes the
// filter. Cached results are kept.
func (s *Session) SetProviderFilter(company *rental.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if company == nil {
		s.params.ProviderFilter = nil
		return
	}
	c := *company
	s.params.ProviderFilter = &c
}

// IsValid reports whether center, pickup and dropoff are all set.
func (s *Session) IsValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.params.Center != nil && s.params.PickupTime != nil && s.params.DropoffTime != nil
}

// Parameters returns a snapshot of the current parameters.
func (s *Session) Parameters() Parameters {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.params.clone()
}

// State reports whether the cached results match the current parameters.
func (s *Session) State() CacheState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// CachedCount returns the number of raw offers held from the last fetch.
func (s *Session) CachedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.cached)
}

// AvailableProviderFilters returns one provider per company present in the
// cached raw results, sorted by company name. The first provider seen for a
// company represents it.
func (s *Session) AvailableProviderFilters() []*rental.Provider {
	s.mu.Lock()
	raw := s.cached
	s.mu.Unlock()

	var providers []*rental.Provider
	for _, offer := range raw {
		p := offer.Provider()
		seen := slices.ContainsFunc(providers, func(existing *rental.Provider) bool {
			return existing.SameCompany(p)
		})
		if !seen {
			providers = append(providers, p)
		}
	}

	slices.SortStableFunc(providers, func(a, b *rental.Provider) int {
		return strings.Compare(a.Company().Name, b.Company().Name)
	})
	return providers
}

// FetchResults validates the parameters, fetches raw offers from the
// gateway unless clean cached results exist, and returns the filtered and
// ordered offers. Gateway errors are returned unchanged and leave the cache
// as it was.
func (s *Session) FetchResults(ctx context.Context) ([]*rental.Offer, error) {
	if !s.inflight.TryAcquire(1) {
		return nil, errFetchInProgress()
	}
	defer s.inflight.Release(1)

	log := s.log.WithContext(ctx)

	s.mu.Lock()
	params := s.params.clone()
	if err := validate(params); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if s.state == StateClean && len(s.cached) > 0 {
		raw := s.cached
		s.mu.Unlock()
		log.Debug("search results served from cache", "offers", len(raw))
		return project(raw, params)
	}
	generation := s.generation
	s.mu.Unlock()

	started := time.Now()
	raw, err := s.gateway.Fetch(ctx, params)
	if err != nil {
		log.Warn("search fetch failed", "error", err)
		return nil, err
	}
	raw = slices.Clone(raw)

	s.mu.Lock()
	if s.generation == generation {
		s.cached = raw
		s.state = StateClean
	} else {
		log.Debug("search parameters changed during fetch, results not cached")
	}
	// Order and filter may have changed while the request was in flight.
	view := params
	view.Order = s.params.Order
	view.ProviderFilter = s.params.clone().ProviderFilter
	s.mu.Unlock()

	log.Debug("search results fetched",
		"offers", len(raw),
		"cell", params.Center.Coordinate.Cell(geo.LogCellPrecision),
		"elapsed", time.Since(started),
	)
	return project(raw, view)
}

// validate checks required parameters in a fixed order.
func validate(p Parameters) error {
	switch {
	case p.Center == nil:
		return errMissingCenter()
	case p.PickupTime == nil:
		return errMissingPickup()
	case p.DropoffTime == nil:
		return errMissingDropoff()
	case !p.DropoffTime.After(*p.PickupTime):
		return errInvalidDateRange()
	}
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
