package commands

import (
	"errors"

	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/pkg/guard"
)

var ErrUnassignCourierCommandIsNotConstructed = errors.New(
	"UnassignCourierCommand must be created via NewUnassignCourierCommand constructor",
)

// UnassignCourierCommand releases the pairing between a courier and an order,
// typically when a courier drops a job before pickup. Once the order is out
// for delivery the pairing is locked and the handler rejects the release.
type UnassignCourierCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewUnassignCourierCommand creates a command to release courierID from
// orderID. Validates that both identifiers are constructed UUIDs.
func NewUnassignCourierCommand(orderID, courierID kernel.UUID) (UnassignCourierCommand, error) {
	command := UnassignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCourierID(courierID),
	); err != nil {
		return UnassignCourierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUnassignCourierCommandIsNotConstructed if validation fails.
func (c UnassignCourierCommand) Validate() error {
	return c.guard.Validate(ErrUnassignCourierCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to release.
func (c UnassignCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the identifier of the courier dropping the order.
func (c UnassignCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *UnassignCourierCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UnassignCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
