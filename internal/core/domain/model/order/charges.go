package order

import (
	"errors"
	"fmt"
	"math"

	"munchies/internal/pkg/errs"
	"munchies/internal/pkg/guard"
)

// Money represents currency in minor units (cents) to avoid float issues.
// Adapters convert to and from display amounts at the boundary.
type Money int64

// NewMoneyFromFloat creates Money from a float amount in major units,
// rounding to the nearest cent.
func NewMoneyFromFloat(f float64) Money {
	return Money(math.Round(f * 100.0))
}

// Float returns the amount in major units for display purposes.
func (m Money) Float() float64 { return float64(m) / 100.0 }

// ErrChargesAreNotConstructed is returned when a Charges value was not created
// through NewCharges.
var ErrChargesAreNotConstructed = errors.New("Charges must be created via NewCharges constructor")

// Charges is the monetary breakdown of an order. The total is never stored:
// Total always recomputes subtotal + deliveryFee + serviceFee + tip − discount,
// so the derived value can never drift from its inputs.
type Charges struct {
	subtotal    Money
	deliveryFee Money
	serviceFee  Money
	discount    Money
	tip         Money

	guard guard.ConstructorGuard
}

// NewCharges creates a validated Charges value. Every component must be
// non-negative and the discount may not exceed the sum of the other
// components (a negative total would mean paying the customer).
func NewCharges(subtotal, deliveryFee, serviceFee, discount, tip Money) (Charges, error) {
	for name, v := range map[string]Money{
		"subtotal":    subtotal,
		"deliveryFee": deliveryFee,
		"serviceFee":  serviceFee,
		"discount":    discount,
		"tip":         tip,
	} {
		if v < 0 {
			return Charges{}, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%d is negative", v))
		}
	}

	if discount > subtotal+deliveryFee+serviceFee+tip {
		return Charges{}, errs.NewValueIsInvalidErrorWithCause("discount",
			fmt.Errorf("discount %d exceeds the charged amount", discount))
	}

	return Charges{
		subtotal:    subtotal,
		deliveryFee: deliveryFee,
		serviceFee:  serviceFee,
		discount:    discount,
		tip:         tip,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Charges value was created via NewCharges.
func (c Charges) Validate() error {
	return c.guard.Validate(ErrChargesAreNotConstructed)
}

// Subtotal returns the sum of line-item prices.
func (c Charges) Subtotal() Money { return c.subtotal }

// DeliveryFee returns the delivery fee.
func (c Charges) DeliveryFee() Money { return c.deliveryFee }

// ServiceFee returns the service fee.
func (c Charges) ServiceFee() Money { return c.serviceFee }

// Discount returns the applied discount.
func (c Charges) Discount() Money { return c.discount }

// Tip returns the courier tip.
func (c Charges) Tip() Money { return c.tip }

// Total returns the derived order total.
func (c Charges) Total() Money {
	return c.subtotal + c.deliveryFee + c.serviceFee + c.tip - c.discount
}
