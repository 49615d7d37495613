package commands

import (
	"errors"

	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/pkg/guard"
)

var ErrSetRestaurantPolicyCommandIsNotConstructed = errors.New(
	"SetRestaurantPolicyCommand must be created via NewSetRestaurantPolicyCommand constructor",
)

// SetRestaurantPolicyCommand records whether a restaurant wants its pending
// orders accepted automatically by the background sweep.
type SetRestaurantPolicyCommand struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID
	autoAccept   bool

	guard guard.ConstructorGuard
}

// NewSetRestaurantPolicyCommand creates a command to set restaurantID's
// auto-accept choice.
func NewSetRestaurantPolicyCommand(restaurantID kernel.UUID, autoAccept bool) (SetRestaurantPolicyCommand, error) {
	command := SetRestaurantPolicyCommand{
		autoAccept: autoAccept,
		guard:      guard.NewConstructorGuard(),
	}

	if err := command.setRestaurantID(restaurantID); err != nil {
		return SetRestaurantPolicyCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetRestaurantPolicyCommandIsNotConstructed if validation fails.
func (c SetRestaurantPolicyCommand) Validate() error {
	return c.guard.Validate(ErrSetRestaurantPolicyCommandIsNotConstructed)
}

// RestaurantID returns the identifier of the restaurant.
func (c SetRestaurantPolicyCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// AutoAccept returns the requested policy value.
func (c SetRestaurantPolicyCommand) AutoAccept() bool {
	return c.autoAccept
}

func (c *SetRestaurantPolicyCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	c.restaurantID = restaurantID
	return nil
}
