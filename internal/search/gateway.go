package search

import (
	"context"

	"rentalsearch/internal/rental"
)

// Gateway retrieves raw offers for a parameter snapshot. Implementations
// drop malformed records rather than failing the whole batch, and report
// failures built with GatewayError.
type Gateway interface {
	Fetch(ctx context.Context, params Parameters) ([]*rental.Offer, error)
}

// GatewayFunc adapts a function to the Gateway interface.
type GatewayFunc func(ctx context.Context, params Parameters) ([]*rental.Offer, error)

func (f GatewayFunc) Fetch(ctx context.Context, params Parameters) ([]*rental.Offer, error) {
	return f(ctx, params)
}
