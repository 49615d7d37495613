package commands

import (
	"context"
)

// SetRestaurantPolicyCommandHandler stores a restaurant's auto-accept choice.
// The choice takes effect on the next sweep of the auto-accept job.
type SetRestaurantPolicyCommandHandler struct {
	uowFactory PolicyUoWFactory
}

// NewSetRestaurantPolicyCommandHandler creates a handler for policy changes.
func NewSetRestaurantPolicyCommandHandler(uowFactory PolicyUoWFactory) SetRestaurantPolicyCommandHandler {
	return SetRestaurantPolicyCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the policy change command.
func (h SetRestaurantPolicyCommandHandler) Handle(ctx context.Context, command SetRestaurantPolicyCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	policyRepo := uow.RestaurantPolicyRepository()
	if err := policyRepo.SetAutoAccept(ctx, command.RestaurantID(), command.AutoAccept()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
