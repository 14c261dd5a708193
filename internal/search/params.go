// Package search owns the state of a single rental car search: the
// parameters a caller has chosen, the raw results of the last fetch, and the
// local filter and ordering applied to those results.
package search

import (
	"fmt"
	"strings"
	"time"

	"rentalsearch/internal/format"
	"rentalsearch/internal/geo"
	"rentalsearch/internal/rental"
)

const (
	DefaultRadiusMiles = 30
	DefaultPickupHour  = 9
	DefaultDropoffHour = 17
)

// OrderType selects how results are ordered.
type OrderType int

const (
	OrderPriceAscending OrderType = iota
	OrderPriceDescending
	OrderProximityAscending
)

var orderNames = map[OrderType]string{
	OrderPriceAscending:     "price_asc",
	OrderPriceDescending:    "price_desc",
	OrderProximityAscending: "proximity",
}

func (o OrderType) String() string {
	if name, ok := orderNames[o]; ok {
		return name
	}
	return fmt.Sprintf("OrderType(%d)", int(o))
}

// ParseOrderType accepts the text forms produced by String, ignoring case.
func ParseOrderType(s string) (OrderType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for order, name := range orderNames {
		if name == s {
			return order, nil
		}
	}
	return 0, fmt.Errorf("unknown order type %q", s)
}

// OrderNames lists the accepted text forms in a stable order.
func OrderNames() []string {
	return []string{
		OrderProximityAscending.String(),
		OrderPriceAscending.String(),
		OrderPriceDescending.String(),
	}
}

func (o OrderType) MarshalText() ([]byte, error) {
	if _, ok := orderNames[o]; !ok {
		return nil, fmt.Errorf("unknown order type %d", int(o))
	}
	return []byte(o.String()), nil
}

func (o *OrderType) UnmarshalText(text []byte) error {
	parsed, err := ParseOrderType(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// CenterPoint is the search origin plus an optional human readable label,
// usually produced by reverse geocoding.
type CenterPoint struct {
	Coordinate geo.Coordinate `json:"coordinate" yaml:"coordinate"`
	Label      string         `json:"label,omitempty" yaml:"label,omitempty"`
}

// Parameters is a snapshot of a session's search intent.
type Parameters struct {
	Center         *CenterPoint    `json:"center,omitempty" yaml:"center,omitempty"`
	RadiusMiles    int             `json:"radiusMiles" yaml:"radius_miles"`
	PickupTime     *time.Time      `json:"pickupTime,omitempty" yaml:"pickup_time,omitempty"`
	DropoffTime    *time.Time      `json:"dropoffTime,omitempty" yaml:"dropoff_time,omitempty"`
	Order          OrderType       `json:"order" yaml:"order"`
	ProviderFilter *rental.Company `json:"providerFilter,omitempty" yaml:"provider_filter,omitempty"`
}

// clone returns a copy that shares no pointers with p.
func (p Parameters) clone() Parameters {
	out := p
	if p.Center != nil {
		c := *p.Center
		out.Center = &c
	}
	if p.PickupTime != nil {
		t := *p.PickupTime
		out.PickupTime = &t
	}
	if p.DropoffTime != nil {
		t := *p.DropoffTime
		out.DropoffTime = &t
	}
	if p.ProviderFilter != nil {
		f := *p.ProviderFilter
		out.ProviderFilter = &f
	}
	return out
}

// DefaultPickupOn returns day at the default pickup hour.
func DefaultPickupOn(day time.Time) time.Time {
	return format.WithTime(day, DefaultPickupHour, 0)
}

// DefaultDropoffOn returns day at the default dropoff hour.
func DefaultDropoffOn(day time.Time) time.Time {
	return format.WithTime(day, DefaultDropoffHour, 0)
}

// ParseDateTime accepts RFC 3339 timestamps or bare YYYY-MM-DD dates. A bare
// date is placed in loc at defaultHour:00.
func ParseDateTime(value string, defaultHour int, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	day, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", value)
	}
	return format.WithTime(day, defaultHour, 0), nil
}
