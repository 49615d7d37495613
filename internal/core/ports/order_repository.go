package ports

import (
	"context"
	"time"

	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The store is a durable keyed collection with conditional writes: Update is
// accepted only while the persisted row still carries the UpdatedAt the
// caller loaded, which makes concurrent writers fail loudly instead of
// silently overwriting each other.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order, conditional on the stored
	// row still carrying expectedUpdatedAt. Returns errs.ErrVersionIsInvalid
	// (wrapped) when another writer committed first, and
	// errs.ErrObjectNotFound when the order does not exist.
	Update(ctx context.Context, aggregate *order.Order, expectedUpdatedAt time.Time) error

	// Get retrieves an order by its unique identifier.
	// Returns errs.ErrObjectNotFound (wrapped) for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByRestaurant retrieves a restaurant's orders filtered to the given
	// statuses. An empty status list means all statuses.
	GetAllByRestaurant(ctx context.Context, restaurantID kernel.UUID, statuses []order.Status) ([]*order.Order, error)

	// GetAllInStatus retrieves every order currently in the given status.
	// Used by the auto-accept sweep to find pending orders.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
