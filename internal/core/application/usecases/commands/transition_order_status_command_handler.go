package commands

import (
	"context"
	"errors"
	"time"

	"munchies/internal/core/domain/model/order"
	"munchies/internal/pkg/keylock"
	"munchies/internal/realtime"
)

// TransitionOrderStatusCommandHandler applies a lifecycle transition to one
// order. Requests for the same order are serialized through a keyed lock, so
// two concurrent taps (courier marks delivered, restaurant cancels) resolve
// as first-commit-wins: the second request re-reads committed state and
// either succeeds from there or fails with InvalidTransitionError. The
// repository's conditional update backstops the lock across processes.
//
// Events are published only after a successful commit; a publish problem can
// therefore never roll back a persisted transition.
type TransitionOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      *keylock.KeyLock
	publisher  realtime.Publisher
}

// NewTransitionOrderStatusCommandHandler creates a handler for status
// transitions. locks must be the process-wide keyed lock shared by every
// writer that serializes on order id.
func NewTransitionOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	locks *keylock.KeyLock,
	publisher realtime.Publisher,
) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
	}
}

// Handle processes the transition command.
// Loads the order, asks the aggregate for a transitioned copy, and persists
// it conditionally on the updatedAt that was loaded. Rejections carry
// order.ErrInvalidTransition; stale writes carry errs.ErrVersionIsInvalid.
func (h TransitionOrderStatusCommandHandler) Handle(ctx context.Context, command TransitionOrderStatusCommand) error {
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

	current, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	updated, err := current.TransitionTo(command.NextStatus(), time.Now().UTC())
	if err != nil {
		if errors.Is(err, order.ErrInvalidTransition) {
			transitionsRejected.WithLabelValues(command.NextStatus().String()).Inc()
		}
		return err
	}

	if err = ordersRepo.Update(ctx, updated, current.UpdatedAt()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	transitionsApplied.WithLabelValues(updated.Status().String()).Inc()

	event := realtime.NewOrderEvent(updated, updated.UpdatedAt())
	h.publisher.Publish(realtime.ForOrder(updated.ID()), event)
	h.publisher.Publish(realtime.ForRestaurant(updated.RestaurantID()), event)

	return nil
}
