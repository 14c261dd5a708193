package search

import (
	"cmp"
	"slices"

	"rentalsearch/internal/rental"
	"rentalsearch/platform/apperr"
)

// project filters then orders a copy of raw. raw itself is never reordered.
func project(raw []*rental.Offer, params Parameters) ([]*rental.Offer, error) {
	offers := filterByCompany(raw, params.ProviderFilter)
	if err := order(offers, params.Order, params.Center); err != nil {
		return nil, err
	}
	return offers, nil
}

// filterByCompany always returns a new slice.
func filterByCompany(raw []*rental.Offer, company *rental.Company) []*rental.Offer {
	if company == nil {
		return slices.Clone(raw)
	}
	out := make([]*rental.Offer, 0, len(raw))
	for _, offer := range raw {
		if offer.Provider().Company().SameAs(*company) {
			out = append(out, offer)
		}
	}
	return out
}

// order sorts offers in place. Sorting is stable so offers that compare
// equal on every key keep their filtered order.
func order(offers []*rental.Offer, by OrderType, center *CenterPoint) error {
	byDistance := func(a, b *rental.Offer) int {
		if center == nil {
			return 0
		}
		return cmp.Compare(
			a.Provider().DistanceFrom(center.Coordinate),
			b.Provider().DistanceFrom(center.Coordinate),
		)
	}
	byPrice := func(a, b *rental.Offer) int {
		return a.Price().Cmp(b.Price())
	}

	switch by {
	case OrderPriceAscending:
		slices.SortStableFunc(offers, func(a, b *rental.Offer) int {
			return cmp.Or(byPrice(a, b), byDistance(a, b))
		})
	case OrderPriceDescending:
		slices.SortStableFunc(offers, func(a, b *rental.Offer) int {
			return cmp.Or(byPrice(b, a), byDistance(a, b))
		})
	case OrderProximityAscending:
		if center == nil {
			return apperr.Internal("proximity ordering requires a center point").WithOp("search.order")
		}
		slices.SortStableFunc(offers, func(a, b *rental.Offer) int {
			return cmp.Or(byDistance(a, b), byPrice(a, b))
		})
	default:
		return apperr.Internal("unsupported order type " + by.String()).WithOp("search.order")
	}
	return nil
}
