package commands

import (
	"errors"

	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/pkg/guard"
)

var ErrSetCourierShiftCommandIsNotConstructed = errors.New(
	"SetCourierShiftCommand must be created via NewSetCourierShiftCommand constructor",
)

// SetCourierShiftCommand marks a courier as on or off shift. Off-shift
// couriers are rejected by the assignment flow.
type SetCourierShiftCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	onShift   bool

	guard guard.ConstructorGuard
}

// NewSetCourierShiftCommand creates a command to set courierID's shift state.
func NewSetCourierShiftCommand(courierID kernel.UUID, onShift bool) (SetCourierShiftCommand, error) {
	command := SetCourierShiftCommand{
		onShift: onShift,
		guard:   guard.NewConstructorGuard(),
	}

	if err := command.setCourierID(courierID); err != nil {
		return SetCourierShiftCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetCourierShiftCommandIsNotConstructed if validation fails.
func (c SetCourierShiftCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierShiftCommandIsNotConstructed)
}

// CourierID returns the identifier of the courier.
func (c SetCourierShiftCommand) CourierID() kernel.UUID {
	return c.courierID
}

// OnShift returns the requested shift state.
func (c SetCourierShiftCommand) OnShift() bool {
	return c.onShift
}

func (c *SetCourierShiftCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
