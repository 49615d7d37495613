package commands

import (
	"errors"

	"munchies/internal/pkg/errs"
	"munchies/internal/pkg/guard"
)

var ErrCreateCourierCommandIsNotConstructed = errors.New(
	"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
)

// CreateCourierCommand registers a delivery agent in the roster mirror.
// New couriers start off shift.
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	name string

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates a command to register a courier named name.
func NewCreateCourierCommand(name string) (CreateCourierCommand, error) {
	command := CreateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setName(name); err != nil {
		return CreateCourierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateCourierCommandIsNotConstructed if validation fails.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// Name returns the courier's display name.
func (c CreateCourierCommand) Name() string {
	return c.name
}

func (c *CreateCourierCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}
