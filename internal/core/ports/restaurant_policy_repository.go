package ports

import (
	"context"

	"munchies/internal/core/domain/model/kernel"
)

// RestaurantPolicyRepository stores per-restaurant dispatch policy.
// Currently a single flag: whether pending orders are accepted automatically
// instead of waiting for an explicit restaurant action.
type RestaurantPolicyRepository interface {
	// AutoAcceptEnabled reports whether the restaurant opted into automatic
	// acceptance of pending orders. Unknown restaurants default to false.
	AutoAcceptEnabled(ctx context.Context, restaurantID kernel.UUID) (bool, error)

	// SetAutoAccept records the restaurant's auto-accept choice.
	SetAutoAccept(ctx context.Context, restaurantID kernel.UUID, enabled bool) error
}
