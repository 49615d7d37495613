package commands

import (
	"context"
	"errors"
	"time"

	"munchies/internal/core/domain/model/assignment"
	"munchies/internal/core/domain/services"
	"munchies/internal/pkg/errs"
	"munchies/internal/pkg/keylock"
)

// UnassignCourierCommandHandler releases a courier from an order. The active
// assignment row is deactivated rather than deleted, so the pairing history
// survives for audit. Both writes happen in one transaction.
type UnassignCourierCommandHandler struct {
	uowFactory  DispatchUoWFactory
	coordinator services.DispatchCoordinator
	locks       *keylock.KeyLock
}

// NewUnassignCourierCommandHandler creates a handler for releasing courier
// assignments.
func NewUnassignCourierCommandHandler(uowFactory DispatchUoWFactory, locks *keylock.KeyLock) UnassignCourierCommandHandler {
	return UnassignCourierCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewDispatchCoordinator(),
		locks:       locks,
	}
}

// Handle processes the release command.
// Returns assignment.ErrNotAssigned when the named courier does not hold the
// order's active assignment, and assignment.ErrAssignmentLocked once the
// order is out for delivery or terminal.
func (h UnassignCourierCommandHandler) Handle(ctx context.Context, command UnassignCourierCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	unlock := h.locks.Lock(command.OrderID().String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()
	assignmentsRepo := uow.AssignmentRepository()

	current, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	active, err := assignmentsRepo.GetActiveByOrder(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return assignment.ErrNotAssigned
	}
	if err != nil {
		return err
	}

	updated, err := h.coordinator.Unassign(current, active, command.CourierID(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = assignmentsRepo.Update(ctx, active); err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, updated, current.UpdatedAt()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
