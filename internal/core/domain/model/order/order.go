package order

import (
	"errors"
	"time"

	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/pkg/errs"
	"munchies/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Transition guard rules, reported inside InvalidTransitionError so callers
// can tell a table rejection apart from a guard rejection.
const (
	RuleTableForbids      = "not allowed by transition table"
	RuleCourierRequired   = "requires an active courier assignment"
	RuleLineItemsRequired = "order has no line items"
)

// Order is the aggregate root for a customer's food order. It carries the
// participants (restaurant, customer, optional courier), the immutable line
// items, the monetary breakdown, and the lifecycle status.
//
// Invariants:
//   - Identity, restaurant, and customer IDs are valid UUIDs
//   - The line-item list is non-empty and frozen at creation
//   - Status only ever changes through TransitionTo, which consults the
//     transition table and guards; no other code path sets it
//   - The total is always derived from the charges, never stored
//
// Orders are never physically deleted; they end in the terminal Delivered or
// Canceled status. TransitionTo, WithCourier, and WithoutCourier return fresh
// copies; an Order value already handed out is never mutated underneath its
// holder.
type Order struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	customerID   kernel.UUID

	// courierID is the courier holding the active assignment (nil if none).
	courierID *kernel.UUID

	items         []LineItem
	charges       Charges
	paymentMethod PaymentMethod

	status    Status
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Pending status. This is the entry point used
// by the order-placement flow after checkout; all invariants are validated and
// the line items are copied so the caller cannot alter them afterwards.
func NewOrder(
	id kernel.UUID,
	restaurantID kernel.UUID,
	customerID kernel.UUID,
	items []LineItem,
	charges Charges,
	paymentMethod PaymentMethod,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		restaurantID.Validate(),
		customerID.Validate(),
		charges.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	copied := make([]LineItem, len(items))
	copy(copied, items)

	return &Order{
		id:            id,
		restaurantID:  restaurantID,
		customerID:    customerID,
		items:         copied,
		charges:       charges,
		paymentMethod: paymentMethod,
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running the
// creation flow. Status validity is checked so corrupted rows surface here
// instead of during transitions.
func RestoreOrder(
	id kernel.UUID,
	restaurantID kernel.UUID,
	customerID kernel.UUID,
	courierID *kernel.UUID,
	items []LineItem,
	charges Charges,
	paymentMethod PaymentMethod,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		restaurantID.Validate(),
		customerID.Validate(),
		charges.Validate(),
		paymentMethod.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
	}

	copied := make([]LineItem, len(items))
	copy(copied, items)

	return &Order{
		id:            id,
		restaurantID:  restaurantID,
		customerID:    customerID,
		courierID:     courierID,
		items:         copied,
		charges:       charges,
		paymentMethod: paymentMethod,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// RestaurantID returns the restaurant fulfilling the order.
func (o *Order) RestaurantID() kernel.UUID { return o.restaurantID }

// CustomerID returns the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// Courier returns the courier holding the active assignment, or nil.
func (o *Order) Courier() *kernel.UUID {
	if o.courierID == nil {
		return nil
	}
	id := *o.courierID
	return &id
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []LineItem {
	copied := make([]LineItem, len(o.items))
	copy(copied, o.items)
	return copied
}

// Charges returns the monetary breakdown.
func (o *Order) Charges() Charges { return o.charges }

// Total returns the derived order total.
func (o *Order) Total() Money { return o.charges.Total() }

// PaymentMethod returns how the order was paid.
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// CreatedAt returns the order creation time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the time of the last committed change. Persistence uses
// it as the optimistic-concurrency token.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// CanTransition reports whether a change to next is legal: next must be in
// the current status's successor set and every guard must pass. Pure and
// total. No side effects, safe on any constructed order.
//
// Returns nil when the transition is legal, or an *InvalidTransitionError
// naming the rejecting rule.
func (o *Order) CanTransition(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	if !o.status.CanTransitionTo(next) {
		return &InvalidTransitionError{From: o.status, To: next, Rule: RuleTableForbids}
	}

	if next == OutForDelivery && o.courierID == nil {
		return &InvalidTransitionError{From: o.status, To: next, Rule: RuleCourierRequired}
	}

	// An order can never legitimately reach delivery with zero items; hitting
	// this guard signals upstream corruption, so the transition is rejected.
	if next == Delivered && len(o.items) == 0 {
		return &InvalidTransitionError{From: o.status, To: next, Rule: RuleLineItemsRequired}
	}

	return nil
}

// TransitionTo applies a legal status change and returns the updated order
// with a refreshed UpdatedAt. The receiver is left untouched; the caller is
// responsible for persisting the returned value.
func (o *Order) TransitionTo(next Status, now time.Time) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	if err := o.CanTransition(next); err != nil {
		return nil, err
	}

	updated := o.clone()
	updated.status = next
	updated.updatedAt = now
	return updated, nil
}

// WithCourier returns a copy of the order with the courier recorded as holding
// the active assignment. Assignment never changes the status; dispatch and
// status transition are independent actions the caller composes.
func (o *Order) WithCourier(courierID kernel.UUID, now time.Time) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	updated := o.clone()
	updated.courierID = &courierID
	updated.updatedAt = now
	return updated, nil
}

// WithoutCourier returns a copy of the order with no courier recorded.
func (o *Order) WithoutCourier(now time.Time) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	updated := o.clone()
	updated.courierID = nil
	updated.updatedAt = now
	return updated, nil
}

func (o *Order) clone() *Order {
	copied := *o
	copied.items = make([]LineItem, len(o.items))
	copy(copied.items, o.items)
	if o.courierID != nil {
		id := *o.courierID
		copied.courierID = &id
	}
	return &copied
}
