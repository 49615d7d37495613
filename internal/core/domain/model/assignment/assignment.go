// Package assignment provides the CourierAssignment entity: the pairing of a
// courier to an order. At most one assignment per order is active at a time;
// deactivated rows are retained for audit, but only the active one drives
// dispatch decisions.
package assignment

import (
	"errors"
	"time"

	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/pkg/guard"
)

var (
	// ErrAssignmentIsNotConstructed is returned when an Assignment was not
	// created through NewAssignment or RestoreAssignment.
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment or RestoreAssignment constructor")

	// ErrAlreadyAssigned is returned when an order already has an active
	// assignment held by a different courier.
	ErrAlreadyAssigned = errors.New("order already has an active courier assignment")

	// ErrNotAssigned is returned when unassignment targets an order with no
	// matching active assignment.
	ErrNotAssigned = errors.New("order has no matching active courier assignment")

	// ErrAssignmentLocked is returned when the assignment can no longer be
	// released: the courier is already en route or the order is terminal.
	ErrAssignmentLocked = errors.New("courier assignment is locked")
)

// Assignment pairs an order with a courier. The active flag marks the single
// authoritative pairing; superseded rows keep active=false.
type Assignment struct {
	id         kernel.UUID
	orderID    kernel.UUID
	courierID  kernel.UUID
	assignedAt time.Time
	active     bool

	guard guard.ConstructorGuard
}

// NewAssignment creates an active assignment of courierID to orderID.
func NewAssignment(orderID, courierID kernel.UUID, now time.Time) (*Assignment, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return nil, err
	}

	return &Assignment{
		id:         kernel.NewUUID(),
		orderID:    orderID,
		courierID:  courierID,
		assignedAt: now,
		active:     true,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreAssignment reconstructs an assignment from persistence.
func RestoreAssignment(id, orderID, courierID kernel.UUID, assignedAt time.Time, active bool) (*Assignment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), courierID.Validate()); err != nil {
		return nil, err
	}

	return &Assignment{
		id:         id,
		orderID:    orderID,
		courierID:  courierID,
		assignedAt: assignedAt,
		active:     active,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Assignment was created through a constructor.
func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// ID returns the assignment's own identifier.
func (a *Assignment) ID() kernel.UUID { return a.id }

// OrderID returns the assigned order.
func (a *Assignment) OrderID() kernel.UUID { return a.orderID }

// CourierID returns the assigned courier.
func (a *Assignment) CourierID() kernel.UUID { return a.courierID }

// AssignedAt returns when the pairing was made.
func (a *Assignment) AssignedAt() time.Time { return a.assignedAt }

// IsActive reports whether this is the authoritative pairing for the order.
func (a *Assignment) IsActive() bool { return a.active }

// Deactivate marks the assignment as superseded. The row stays around for
// audit.
func (a *Assignment) Deactivate() { a.active = false }
