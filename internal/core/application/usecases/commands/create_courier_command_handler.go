package commands

import (
	"context"

	"munchies/internal/core/domain/model/courier"
	"munchies/internal/core/domain/model/kernel"
)

// CreateCourierCommandHandler registers couriers in the roster mirror.
type CreateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewCreateCourierCommandHandler creates a handler for courier registration.
func NewCreateCourierCommandHandler(uowFactory CourierUoWFactory) CreateCourierCommandHandler {
	return CreateCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command and returns the new courier's id.
func (h CreateCourierCommandHandler) Handle(ctx context.Context, command CreateCourierCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	created, err := courier.NewCourier(kernel.NewUUID(), command.Name())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.CourierRepository().Add(ctx, created); err != nil {
		return kernel.UUID{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return created.ID(), nil
}
