package commands

import (
	"context"
	"errors"
	"time"

	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/core/domain/model/order"
	"munchies/internal/pkg/keylock"
	"munchies/internal/realtime"
)

var ErrNoPendingOrders = errors.New("no pending orders")

// AcceptPendingOrdersCommandHandler runs the auto-accept sweep. Each eligible
// order goes through the same state machine as a manual acceptance
// (pending -> preparing) and emits the same events, so downstream consumers
// cannot tell the two apart. One order failing does not stop the sweep; the
// first error is reported after the rest were attempted.
//
// Example:
//
//	handler := NewAcceptPendingOrdersCommandHandler(uowFactory, locks, bus)
//	cmd := NewAcceptPendingOrdersCommand()
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoPendingOrders):
//	    log.Println("Nothing to accept")
//	case err != nil:
//	    log.Printf("Sweep failed: %v", err)
//	}
type AcceptPendingOrdersCommandHandler struct {
	uowFactory UoWFactory
	locks      *keylock.KeyLock
	publisher  realtime.Publisher
}

// NewAcceptPendingOrdersCommandHandler creates a handler for the auto-accept
// sweep.
func NewAcceptPendingOrdersCommandHandler(
	uowFactory UoWFactory,
	locks *keylock.KeyLock,
	publisher realtime.Publisher,
) AcceptPendingOrdersCommandHandler {
	return AcceptPendingOrdersCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
	}
}

// Handle processes the sweep command.
// Lists pending orders, filters them by their restaurant's auto-accept flag,
// and accepts each eligible order in its own transaction so one conflict
// cannot poison the batch. Returns ErrNoPendingOrders when the pending list
// is empty.
func (h AcceptPendingOrdersCommandHandler) Handle(ctx context.Context, command AcceptPendingOrdersCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	pendingIDs, eligible, err := h.listEligible(ctx)
	if err != nil {
		return err
	}
	if len(pendingIDs) == 0 {
		return ErrNoPendingOrders
	}

	var firstErr error
	for _, id := range eligible {
		if err := h.acceptOne(ctx, id); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func (h AcceptPendingOrdersCommandHandler) listEligible(ctx context.Context) ([]kernel.UUID, []kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.OrderRepository().GetAllInStatus(ctx, order.Pending)
	if err != nil {
		return nil, nil, err
	}

	policyRepo := uow.RestaurantPolicyRepository()

	// The flag is read per restaurant once; pending lists are short enough
	// that caching across sweeps is not worth the staleness.
	autoAccept := make(map[kernel.UUID]bool)

	var pendingIDs, eligible []kernel.UUID
	for _, o := range pending {
		pendingIDs = append(pendingIDs, o.ID())

		enabled, ok := autoAccept[o.RestaurantID()]
		if !ok {
			enabled, err = policyRepo.AutoAcceptEnabled(ctx, o.RestaurantID())
			if err != nil {
				return nil, nil, err
			}
			autoAccept[o.RestaurantID()] = enabled
		}
		if enabled {
			eligible = append(eligible, o.ID())
		}
	}

	return pendingIDs, eligible, nil
}

// acceptOne re-reads the order under its lock; it may have been accepted or
// canceled between the listing and now, in which case the transition simply
// does not apply anymore.
func (h AcceptPendingOrdersCommandHandler) acceptOne(ctx context.Context, orderID kernel.UUID) error {
	unlock := h.locks.Lock(orderID.String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	current, err := ordersRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if current.Status() != order.Pending {
		return nil
	}

	updated, err := current.TransitionTo(order.Preparing, time.Now().UTC())
	if err != nil {
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
