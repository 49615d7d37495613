// Package queries contains read operations that bypass the domain model.
// Implements the Query pattern for read operations in the CQRS architecture.
// Handlers read denormalized rows straight from the database and never load
// aggregates.
package queries

import (
	"errors"
	"time"

	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/core/domain/model/order"
	"munchies/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the tracking view of a single order: its status,
// courier, and charge total. Line items stay out of the response; tracking
// screens refresh this view every few seconds and do not need them.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the given order id.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the tracking view of one order.
type GetOrderQueryResponse struct {
	ID           kernel.UUID
	RestaurantID kernel.UUID
	CustomerID   kernel.UUID
	CourierID    *kernel.UUID
	Status       order.Status
	TotalCents   int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
