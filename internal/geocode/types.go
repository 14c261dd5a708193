package geocode

import "rentalsearch/internal/geo"

// SearchRequest represents the forward lookup query parameters.
type SearchRequest struct {
	Query string `form:"q" binding:"required,min=3"`
}

// ReverseRequest represents the reverse lookup query parameters.
type ReverseRequest struct {
	Latitude  *float64 `form:"lat" binding:"required,latitude"`
	Longitude *float64 `form:"lon" binding:"required,longitude"`
}

// Place is a geocoded location with a short label suitable for a search
// center.
type Place struct {
	Label      string         `json:"label" yaml:"label"`
	Coordinate geo.Coordinate `json:"coordinate" yaml:"coordinate"`
}

type nominatimAddress struct {
	Road         string `json:"road"`
	HouseNumber  string `json:"house_number"`
	Postcode     string `json:"postcode"`
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Municipality string `json:"municipality"`
	Hamlet       string `json:"hamlet"`
}

// nominatimResponse mirrors the relevant parts of the OSM search and
// reverse payloads.
type nominatimResponse struct {
	DisplayName string           `json:"display_name"`
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	Address     nominatimAddress `json:"address"`
	Error       string           `json:"error"`
}
