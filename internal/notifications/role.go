// Package notifications renders and delivers push notifications for order
// lifecycle changes. Rendering is a pure lookup in a (role, status) template
// table; delivery goes through a capability-checked push channel and is
// strictly best-effort: a failed or suppressed notification never affects
// the order mutation that triggered it.
package notifications

import (
	"fmt"

	"munchies/internal/pkg/errs"
)

// Role identifies which party a notification is rendered for. The same order
// event reads differently to the customer ("your food is coming"), the
// restaurant ("new order"), and the courier ("pickup ready").
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleRestaurant Role = "restaurant"
	RoleCourier    Role = "courier"
)

// Validate checks that the role belongs to the enumerated set.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleRestaurant, RoleCourier:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
}

// Payload is a rendered notification ready for a push transport. Data carries
// the identifiers the client apps use for deep-linking; everything else is
// display text.
type Payload struct {
	Type  string            `json:"type"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}
