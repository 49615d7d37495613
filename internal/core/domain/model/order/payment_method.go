package order

import (
	"fmt"

	"munchies/internal/pkg/errs"
)

// PaymentMethod identifies how the customer paid for the order. Payment
// initiation and verification happen in an external checkout flow; the order
// only records which method was used.
type PaymentMethod string

const (
	PaymentCard       PaymentMethod = "card"
	PaymentCash       PaymentMethod = "cash"
	PaymentCampusCard PaymentMethod = "campus_card"
)

// Validate checks the payment method against the enumerated set.
func (p PaymentMethod) Validate() error {
	switch p {
	case PaymentCard, PaymentCash, PaymentCampusCard:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not a valid payment method", string(p)))
	}
}

// String returns the wire name of the payment method.
func (p PaymentMethod) String() string {
	return string(p)
}
