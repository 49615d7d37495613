package order

import (
	"errors"
	"fmt"

	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/pkg/errs"
	"munchies/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created
// through NewLineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one menu-item selection within an order: the referenced menu
// item, the quantity, the unit price at order time, and any chosen
// customizations. Immutable once the order is created and owned exclusively
// by its Order.
type LineItem struct {
	menuItemID     kernel.UUID
	name           string
	quantity       int
	unitPrice      Money
	customizations []string

	guard guard.ConstructorGuard
}

// NewLineItem creates a validated LineItem. Quantity must be positive and the
// unit price non-negative; the customizations slice is copied so later caller
// mutations cannot reach into the item.
func NewLineItem(menuItemID kernel.UUID, name string, quantity int, unitPrice Money, customizations []string) (LineItem, error) {
	if err := menuItemID.Validate(); err != nil {
		return LineItem{}, err
	}
	if name == "" {
		return LineItem{}, errs.NewValueIsRequiredError("name")
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("unitPrice", fmt.Errorf("%d is negative", unitPrice))
	}

	copied := make([]string, len(customizations))
	copy(copied, customizations)

	return LineItem{
		menuItemID:     menuItemID,
		name:           name,
		quantity:       quantity,
		unitPrice:      unitPrice,
		customizations: copied,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the LineItem was created via NewLineItem.
func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

// MenuItemID returns the referenced menu item's identifier.
func (li LineItem) MenuItemID() kernel.UUID { return li.menuItemID }

// Name returns the menu item's display name at order time.
func (li LineItem) Name() string { return li.name }

// Quantity returns the ordered quantity.
func (li LineItem) Quantity() int { return li.quantity }

// UnitPrice returns the unit price captured at order time.
func (li LineItem) UnitPrice() Money { return li.unitPrice }

// Customizations returns a copy of the selected customizations.
func (li LineItem) Customizations() []string {
	copied := make([]string, len(li.customizations))
	copy(copied, li.customizations)
	return copied
}

// LineTotal returns quantity × unit price.
func (li LineItem) LineTotal() Money {
	return Money(int64(li.quantity)) * li.unitPrice
}
