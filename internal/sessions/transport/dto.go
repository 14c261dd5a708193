package transport

import (
	"time"

	"github.com/google/uuid"
)

// CenterRequest sets the search center either from coordinates or from a
// free text address.
type CenterRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required_without=Query,omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"required_without=Query,omitempty,longitude"`
	Label     string   `json:"label" validate:"max=200"`
	Query     string   `json:"query" validate:"omitempty,min=3,max=200"`
}

type RadiusRequest struct {
	Miles int `json:"miles" validate:"required,min=1,max=500"`
}

// DatesRequest updates pickup and/or dropoff. Values are RFC 3339 or
// YYYY-MM-DD; an empty string clears the date.
type DatesRequest struct {
	Pickup  *string `json:"pickup" validate:"required_without=Dropoff"`
	Dropoff *string `json:"dropoff" validate:"required_without=Pickup"`
}

type OrderRequest struct {
	Order string `json:"order" validate:"required,ordertype"`
}

type FilterRequest struct {
	CompanyName string `json:"companyName" validate:"required,max=100"`
	CompanyCode string `json:"companyCode" validate:"required,max=10"`
}

type CreateSessionResponse struct {
	ID uuid.UUID `json:"id"`
}

type CenterResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Label     string  `json:"label,omitempty"`
}

type CompanyResponse struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type SessionResponse struct {
	ID             uuid.UUID        `json:"id"`
	Center         *CenterResponse  `json:"center,omitempty"`
	RadiusMiles    int              `json:"radiusMiles"`
	PickupTime     *time.Time       `json:"pickupTime,omitempty"`
	DropoffTime    *time.Time       `json:"dropoffTime,omitempty"`
	Interval       string           `json:"interval,omitempty"`
	PickupSummary  string           `json:"pickupSummary,omitempty"`
	DropoffSummary string           `json:"dropoffSummary,omitempty"`
	Order          string           `json:"order"`
	ProviderFilter *CompanyResponse `json:"providerFilter,omitempty"`
	State          string           `json:"state"`
	Valid          bool             `json:"valid"`
	CachedOffers   int              `json:"cachedOffers"`
}

type AddressResponse struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

type ProviderResponse struct {
	BranchID      string          `json:"branchId"`
	Company       CompanyResponse `json:"company"`
	Latitude      float64         `json:"latitude"`
	Longitude     float64         `json:"longitude"`
	Address       AddressResponse `json:"address"`
	StreetAddress string          `json:"streetAddress"`
	FullAddress   string          `json:"fullAddress"`
	DistanceMiles float64         `json:"distanceMiles"`
	Distance      string          `json:"distance"`
}

type OfferResponse struct {
	AcrissCode      string           `json:"acrissCode"`
	Category        string           `json:"category"`
	VehicleType     string           `json:"vehicleType,omitempty"`
	Transmission    string           `json:"transmission,omitempty"`
	Fuel            string           `json:"fuel,omitempty"`
	AirConditioning bool             `json:"airConditioning"`
	Features        []string         `json:"features"`
	Price           string           `json:"price"`
	Currency        string           `json:"currency"`
	FormattedPrice  string           `json:"formattedPrice"`
	Provider        ProviderResponse `json:"provider"`
}

type ResultsResponse struct {
	Offers []OfferResponse `json:"offers"`
	Count  int             `json:"count"`
}

type ProvidersResponse struct {
	Providers []ProviderResponse `json:"providers"`
	Count     int                `json:"count"`
}
