package transport

import (
	"github.com/google/uuid"
	"golang.org/x/text/language"

	"rentalsearch/internal/format"
	"rentalsearch/internal/geo"
	"rentalsearch/internal/rental"
	"rentalsearch/internal/search"
)

// ToSessionResponse renders a session snapshot.
func ToSessionResponse(id uuid.UUID, s *search.Session) SessionResponse {
	p := s.Parameters()

	resp := SessionResponse{
		ID:           id,
		RadiusMiles:  p.RadiusMiles,
		PickupTime:   p.PickupTime,
		DropoffTime:  p.DropoffTime,
		Order:        p.Order.String(),
		State:        s.State().String(),
		Valid:        s.IsValid(),
		CachedOffers: s.CachedCount(),
	}
	if p.Center != nil {
		resp.Center = &CenterResponse{
			Latitude:  p.Center.Coordinate.Latitude,
			Longitude: p.Center.Coordinate.Longitude,
			Label:     p.Center.Label,
		}
	}
	if p.PickupTime != nil {
		resp.PickupSummary = format.BriefDate(*p.PickupTime, "after")
	}
	if p.DropoffTime != nil {
		resp.DropoffSummary = format.BriefDate(*p.DropoffTime, "before")
	}
	if p.PickupTime != nil && p.DropoffTime != nil {
		resp.Interval = format.ShortInterval(*p.PickupTime, *p.DropoffTime)
	}
	if p.ProviderFilter != nil {
		resp.ProviderFilter = &CompanyResponse{Name: p.ProviderFilter.Name, Code: p.ProviderFilter.Code}
	}
	return resp
}

// ToProviderResponse renders a provider; distances are measured from center
// when it is set.
func ToProviderResponse(p *rental.Provider, center *search.CenterPoint) ProviderResponse {
	addr := p.Address()
	resp := ProviderResponse{
		BranchID:  p.BranchID(),
		Company:   CompanyResponse{Name: p.Company().Name, Code: p.Company().Code},
		Latitude:  p.Location().Latitude,
		Longitude: p.Location().Longitude,
		Address: AddressResponse{
			Line1:   addr.Line1,
			Line2:   addr.Line2,
			City:    addr.City,
			Region:  addr.Region,
			Country: addr.Country,
		},
		StreetAddress: p.StreetAddress(),
		FullAddress:   p.FullAddress(),
	}
	if center != nil {
		resp.DistanceMiles = format.RoundToPrecision(p.DistanceFrom(center.Coordinate), 2)
		resp.Distance = p.DistanceStringFrom(center.Coordinate)
	}
	return resp
}

// ToOfferResponse renders an offer with prices formatted for tag.
func ToOfferResponse(o *rental.Offer, center *search.CenterPoint, tag language.Tag) OfferResponse {
	class := o.Classification()
	features := o.Features()
	if features == nil {
		features = []string{}
	}
	return OfferResponse{
		AcrissCode:      o.AcrissCode(),
		Category:        class.Category.String(),
		VehicleType:     class.VehicleType,
		Transmission:    o.Transmission(),
		Fuel:            o.Fuel(),
		AirConditioning: o.HasAirConditioning(),
		Features:        features,
		Price:           o.Price().StringFixed(2),
		Currency:        o.Currency(),
		FormattedPrice:  o.FormattedPrice(tag),
		Provider:        ToProviderResponse(o.Provider(), center),
	}
}

// ToResultsResponse renders an ordered offer list.
func ToResultsResponse(offers []*rental.Offer, center *search.CenterPoint, tag language.Tag) ResultsResponse {
	items := make([]OfferResponse, 0, len(offers))
	for _, o := range offers {
		items = append(items, ToOfferResponse(o, center, tag))
	}
	return ResultsResponse{Offers: items, Count: len(items)}
}

// ToProvidersResponse renders provider filter options.
func ToProvidersResponse(providers []*rental.Provider, center *search.CenterPoint) ProvidersResponse {
	items := make([]ProviderResponse, 0, len(providers))
	for _, p := range providers {
		items = append(items, ToProviderResponse(p, center))
	}
	return ProvidersResponse{Providers: items, Count: len(items)}
}

// CenterFromCoordinates builds a center point from request values.
func CenterFromCoordinates(lat, lon float64, label string) *search.CenterPoint {
	return &search.CenterPoint{
		Coordinate: geo.Coordinate{Latitude: lat, Longitude: lon},
		Label:      label,
	}
}
