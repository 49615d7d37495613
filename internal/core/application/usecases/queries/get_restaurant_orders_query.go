package queries

import (
	"errors"

	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/core/domain/model/order"
	"munchies/internal/pkg/guard"
)

var ErrGetRestaurantOrdersQueryIsNotConstructed = errors.New(
	"GetRestaurantOrdersQuery must be created via NewGetRestaurantOrdersQuery constructor",
)

// GetRestaurantOrdersQuery retrieves a restaurant's orders for the kitchen
// console, optionally filtered to a set of statuses. An empty status list
// means every status.
//
// Example:
//
//	query, _ := NewGetRestaurantOrdersQuery(restaurantID,
//	    []order.Status{order.Pending, order.Preparing})
//	active, err := handler.Handle(ctx, query)
type GetRestaurantOrdersQuery struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID
	statuses     []order.Status

	guard guard.ConstructorGuard
}

// NewGetRestaurantOrdersQuery creates a query for a restaurant's orders.
// Every status in the filter must be a known status.
func NewGetRestaurantOrdersQuery(restaurantID kernel.UUID, statuses []order.Status) (GetRestaurantOrdersQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetRestaurantOrdersQuery{}, err
	}
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return GetRestaurantOrdersQuery{}, err
		}
	}

	copied := make([]order.Status, len(statuses))
	copy(copied, statuses)

	return GetRestaurantOrdersQuery{
		restaurantID: restaurantID,
		statuses:     copied,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetRestaurantOrdersQueryIsNotConstructed if validation fails.
func (q GetRestaurantOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetRestaurantOrdersQueryIsNotConstructed)
}

// RestaurantID returns the restaurant whose orders are requested.
func (q GetRestaurantOrdersQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// Statuses returns the status filter; empty means all statuses.
func (q GetRestaurantOrdersQuery) Statuses() []order.Status {
	copied := make([]order.Status, len(q.statuses))
	copy(copied, q.statuses)
	return copied
}
