package commands

import (
	"context"
	"errors"
	"time"

	"munchies/internal/core/domain/services"
	"munchies/internal/pkg/errs"
	"munchies/internal/pkg/keylock"
)

// AssignCourierCommandHandler records a courier-to-order pairing. The order
// and its assignment row are written in one transaction; the rules (single
// active assignment, same-courier no-op, terminal lock) live in
// services.DispatchCoordinator. Assignment never changes order status; it
// only unlocks the ready -> out_for_delivery guard for a later transition.
type AssignCourierCommandHandler struct {
	uowFactory  DispatchUoWFactory
	coordinator services.DispatchCoordinator
	locks       *keylock.KeyLock
}

// NewAssignCourierCommandHandler creates a handler for courier assignment.
// locks must be the process-wide keyed lock shared with the transition
// handler, so assignment and status changes for one order never interleave.
func NewAssignCourierCommandHandler(uowFactory DispatchUoWFactory, locks *keylock.KeyLock) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewDispatchCoordinator(),
		locks:       locks,
	}
}

// Handle processes the assignment command.
// Loads the order, courier, and any active assignment, applies the
// coordinator, and persists the results. Re-assigning the courier that
// already holds the order returns nil without writing anything.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, command AssignCourierCommand) error {
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
	couriersRepo := uow.CourierRepository()

	current, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	candidate, err := couriersRepo.Get(ctx, command.CourierID())
	if err != nil {
		return err
	}

	active, err := assignmentsRepo.GetActiveByOrder(ctx, command.OrderID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	updated, created, err := h.coordinator.Assign(current, active, candidate, time.Now().UTC())
	if err != nil {
		return err
	}

	if created == active {
		// Same courier already holds the order, nothing to persist.
		return nil
	}

	if err = assignmentsRepo.Add(ctx, created); err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, updated, current.UpdatedAt()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
