package services

import (
	"time"

	"munchies/internal/core/domain/model/assignment"
	"munchies/internal/core/domain/model/courier"
	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/core/domain/model/order"
)

// DispatchCoordinator is a domain service owning the pairing of couriers to
// orders. It enforces the assignment rules; it never touches order status,
// assignment and status transition are independent actions that callers
// compose (assign first, then move to out_for_delivery once the guard can
// pass).
//
// Rules:
//   - One active assignment per order; a different courier is rejected with
//     ErrAlreadyAssigned, the same courier is a no-op success
//   - Terminal orders accept no assignment changes (ErrAssignmentLocked)
//   - Unassignment requires a matching active pairing (ErrNotAssigned) and is
//     locked once the order is out for delivery or terminal
//     (ErrAssignmentLocked): an agent already en route cannot be silently
//     detached
type DispatchCoordinator struct{}

// NewDispatchCoordinator creates a new DispatchCoordinator instance.
func NewDispatchCoordinator() DispatchCoordinator {
	return DispatchCoordinator{}
}

// Assign pairs c with o. current is the order's active assignment, or nil
// when none exists. On success it returns the updated order (courier
// recorded) and the assignment to persist; when the same courier already
// holds the assignment, the inputs are returned unchanged.
func (d DispatchCoordinator) Assign(
	o *order.Order,
	current *assignment.Assignment,
	c *courier.Courier,
	now time.Time,
) (*order.Order, *assignment.Assignment, error) {
	if err := o.Validate(); err != nil {
		return nil, nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	if !c.IsOnShift() {
		return nil, nil, courier.ErrCourierOffShift
	}

	if o.Status().IsTerminal() {
		return nil, nil, assignment.ErrAssignmentLocked
	}

	if current != nil && current.IsActive() {
		if current.CourierID().IsEqual(c.ID()) {
			// Re-assigning the same courier is a no-op success.
			return o, current, nil
		}
		return nil, nil, assignment.ErrAlreadyAssigned
	}

	created, err := assignment.NewAssignment(o.ID(), c.ID(), now)
	if err != nil {
		return nil, nil, err
	}

	updated, err := o.WithCourier(c.ID(), now)
	if err != nil {
		return nil, nil, err
	}

	return updated, created, nil
}

// Unassign releases the pairing between courierID and o. current is the
// order's active assignment, or nil when none exists. On success the active
// assignment is deactivated in place (the caller persists it) and the
// returned order has its courier cleared.
func (d DispatchCoordinator) Unassign(
	o *order.Order,
	current *assignment.Assignment,
	courierID kernel.UUID,
	now time.Time,
) (*order.Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	if o.Status() == order.OutForDelivery || o.Status().IsTerminal() {
		return nil, assignment.ErrAssignmentLocked
	}

	if current == nil || !current.IsActive() || !current.CourierID().IsEqual(courierID) {
		return nil, assignment.ErrNotAssigned
	}

	current.Deactivate()

	return o.WithoutCourier(now)
}
