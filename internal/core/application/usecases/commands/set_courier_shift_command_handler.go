package commands

import (
	"context"
)

// SetCourierShiftCommandHandler flips a courier's shift state. Shift state
// only gates future assignments; flipping it never touches assignments that
// already exist.
type SetCourierShiftCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewSetCourierShiftCommandHandler creates a handler for shift changes.
func NewSetCourierShiftCommandHandler(uowFactory CourierUoWFactory) SetCourierShiftCommandHandler {
	return SetCourierShiftCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the shift change command.
func (h SetCourierShiftCommandHandler) Handle(ctx context.Context, command SetCourierShiftCommand) error {
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

	couriersRepo := uow.CourierRepository()

	current, err := couriersRepo.Get(ctx, command.CourierID())
	if err != nil {
		return err
	}

	if command.OnShift() {
		current.StartShift()
	} else {
		current.EndShift()
	}

	if err := couriersRepo.Update(ctx, current); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
