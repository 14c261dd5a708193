package rental

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"rentalsearch/internal/acriss"
	"rentalsearch/internal/format"
	"rentalsearch/platform/apperr"
)

const (
	airConditioningFeature = "Air Conditioning"
	unspecifiedFuel        = "Unspecified"
)

// OfferDetails carries the per-car fields of an offer.
type OfferDetails struct {
	AcrissCode      string
	Transmission    string
	Fuel            string
	AirConditioning bool
	Price           decimal.Decimal
	Currency        string
}

// Offer is a priced car available from a provider.
type Offer struct {
	provider        *Provider
	acrissCode      string
	transmission    string
	fuel            string
	airConditioning bool
	price           decimal.Decimal
	currency        string
}

// NewOffer builds an Offer. Every offer needs a provider, a non-negative price
// and a three letter currency code.
func NewOffer(provider *Provider, d OfferDetails) (*Offer, error) {
	const op = "rental.NewOffer"

	if provider == nil {
		return nil, apperr.Validation("offer requires a provider").WithOp(op)
	}
	if d.Price.IsNegative() {
		return nil, apperr.Validation("offer price must not be negative").WithOp(op)
	}
	currency := strings.ToUpper(strings.TrimSpace(d.Currency))
	if len(currency) != 3 {
		return nil, apperr.Validation("offer currency must be a three letter code").WithOp(op)
	}

	return &Offer{
		provider:        provider,
		acrissCode:      strings.TrimSpace(d.AcrissCode),
		transmission:    strings.TrimSpace(d.Transmission),
		fuel:            strings.TrimSpace(d.Fuel),
		airConditioning: d.AirConditioning,
		price:           d.Price,
		currency:        currency,
	}, nil
}

func (o *Offer) Provider() *Provider      { return o.provider }
func (o *Offer) AcrissCode() string       { return o.acrissCode }
func (o *Offer) Transmission() string     { return o.transmission }
func (o *Offer) Fuel() string             { return o.fuel }
func (o *Offer) HasAirConditioning() bool { return o.airConditioning }
func (o *Offer) Price() decimal.Decimal   { return o.price }
func (o *Offer) Currency() string         { return o.currency }

// Classification decodes the offer's ACRISS code.
func (o *Offer) Classification() acriss.Classification {
	return acriss.Decode(o.acrissCode)
}

// Features lists the car's notable properties for display: vehicle type,
// transmission, air conditioning and fuel, skipping whatever is unknown.
func (o *Offer) Features() []string {
	var features []string
	if vehicleType, ok := acriss.VehicleTypeOf(o.acrissCode); ok {
		features = append(features, vehicleType)
	}
	if o.transmission != "" {
		features = append(features, o.transmission)
	}
	if o.airConditioning {
		features = append(features, airConditioningFeature)
	}
	if o.fuel != "" && !strings.EqualFold(o.fuel, unspecifiedFuel) {
		features = append(features, o.fuel)
	}
	return features
}

// FormattedPrice renders the price in the offer's currency for tag.
func (o *Offer) FormattedPrice(tag language.Tag) string {
	return format.Currency(o.price, o.currency, tag)
}
