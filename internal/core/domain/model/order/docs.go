// Package order provides the domain model for food-delivery orders: the Order
// aggregate root, its line items and monetary breakdown, and the status state
// machine that governs the order lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding identity, participants, items, charges,
//     and the current lifecycle status
//   - Status: the state machine enforcing legal status transitions and guards
//   - LineItem: an immutable menu-item selection owned by its order
//   - Charges/Money: the monetary breakdown with a derived total
//
// Key business rules:
//   - The transition table is strictly progressive: requesting the current
//     status again is always rejected, and terminal states accept nothing
//   - An order cannot go out for delivery without an assigned courier
//   - An order cannot be delivered with an empty line-item list
//   - The order total is always recomputed from its inputs, never stored
//
// Status changes never mutate an Order in place; TransitionTo returns a new
// value and the caller persists it.
package order
