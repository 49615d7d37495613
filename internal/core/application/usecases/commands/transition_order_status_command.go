package commands

import (
	"errors"

	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/core/domain/model/order"
	"munchies/internal/pkg/guard"
)

var ErrTransitionOrderStatusCommandIsNotConstructed = errors.New(
	"TransitionOrderStatusCommand must be created via NewTransitionOrderStatusCommand constructor",
)

// TransitionOrderStatusCommand requests moving an order to the next lifecycle
// status. Whether the move is legal is decided by the order aggregate inside
// the handler, not here; the command only carries a well-formed request.
//
// Example:
//
//	cmd, err := NewTransitionOrderStatusCommand(orderID, order.Ready)
//	if err != nil {
//	    return fmt.Errorf("invalid request: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    var invalid *order.InvalidTransitionError
//	    if errors.As(err, &invalid) {
//	        // reject with 409, state unchanged
//	    }
//	}
type TransitionOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	next    order.Status

	guard guard.ConstructorGuard
}

// NewTransitionOrderStatusCommand creates a command to move orderID to next.
// Validates that the order id is a constructed UUID and next is a known
// status. Returns an error if any validation fails.
func NewTransitionOrderStatusCommand(orderID kernel.UUID, next order.Status) (TransitionOrderStatusCommand, error) {
	command := TransitionOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setNext(next),
	); err != nil {
		return TransitionOrderStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransitionOrderStatusCommandIsNotConstructed if validation fails.
func (c TransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to move.
func (c TransitionOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NextStatus returns the requested target status.
func (c TransitionOrderStatusCommand) NextStatus() order.Status {
	return c.next
}

func (c *TransitionOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderStatusCommand) setNext(next order.Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	c.next = next
	return nil
}
