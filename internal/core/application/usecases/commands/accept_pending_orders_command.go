package commands

import (
	"errors"

	"munchies/internal/pkg/guard"
)

var ErrAcceptPendingOrdersCommandIsNotConstructed = errors.New(
	"AcceptPendingOrdersCommand must be created via NewAcceptPendingOrdersCommand constructor",
)

// AcceptPendingOrdersCommand triggers one sweep of the auto-accept policy:
// every pending order whose restaurant opted into automatic acceptance is
// moved to preparing. Restaurants without the flag keep waiting for an
// explicit acceptance through the normal transition command.
//
// This is a parameterless command fired by a cron job.
type AcceptPendingOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewAcceptPendingOrdersCommand creates a new command to trigger the sweep.
func NewAcceptPendingOrdersCommand() AcceptPendingOrdersCommand {
	return AcceptPendingOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrAcceptPendingOrdersCommandIsNotConstructed if validation fails.
func (c *AcceptPendingOrdersCommand) Validate() error {
	return c.guard.Validate(
		ErrAcceptPendingOrdersCommandIsNotConstructed,
	)
}
