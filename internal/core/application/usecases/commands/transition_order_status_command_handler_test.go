package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"munchies/internal/core/application/usecases/commands"
	"munchies/internal/core/domain/model/order"
	"munchies/internal/pkg/errs"
	"munchies/internal/pkg/keylock"
)

func TestTransitionOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	current := testOrder(t, order.Pending)
	cmd, err := commands.NewTransitionOrderStatusCommand(current.ID(), order.Preparing)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, current.ID()).Return(current, nil).Once(),
		repo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order"), current.UpdatedAt()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	h := commands.NewTransitionOrderStatusCommandHandler(factory, keylock.New(), publisher)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, []string{
		"order:" + current.ID().String(),
		"restaurant:" + current.RestaurantID().String(),
	}, publisher.channels)
	require.Len(t, publisher.events, 2)
	require.Equal(t, order.Preparing, publisher.events[0].Status)
	require.Equal(t, current.ID(), publisher.events[0].OrderID)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestTransitionOrderStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := context.Background()
	cmd := commands.TransitionOrderStatusCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)
	h := commands.NewTransitionOrderStatusCommandHandler(factory, keylock.New(), &recordingPublisher{})
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestTransitionOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := context.Background()
	current := testOrder(t, order.Pending)
	cmd, err := commands.NewTransitionOrderStatusCommand(current.ID(), order.Delivered)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, current.ID()).Return(current, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	h := commands.NewTransitionOrderStatusCommandHandler(factory, keylock.New(), publisher)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrInvalidTransition)

	var invalid *order.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, order.Pending, invalid.From)
	require.Equal(t, order.Delivered, invalid.To)

	require.Empty(t, publisher.events, "rejected transitions must not publish")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := context.Background()
	current := testOrder(t, order.Pending)
	cmd, err := commands.NewTransitionOrderStatusCommand(current.ID(), order.Preparing)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, current.ID()).
			Return(nil, errs.NewObjectNotFoundError("orderID", current.ID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderStatusCommandHandler(factory, keylock.New(), &recordingPublisher{})
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestTransitionOrderStatusCommandHandler_Handle_VersionConflict(t *testing.T) {
	ctx := context.Background()
	current := testOrder(t, order.Preparing)
	cmd, err := commands.NewTransitionOrderStatusCommand(current.ID(), order.Ready)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, current.ID()).Return(current, nil).Once(),
		repo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order"), current.UpdatedAt()).
			Return(errs.NewVersionIsInvalidError("updatedAt", nil)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	h := commands.NewTransitionOrderStatusCommandHandler(factory, keylock.New(), publisher)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	require.Empty(t, publisher.events)
}

func TestTransitionOrderStatusCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := context.Background()
	current := testOrder(t, order.Pending)
	cmd, err := commands.NewTransitionOrderStatusCommand(current.ID(), order.Canceled)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, current.ID()).Return(current, nil).Once(),
		repo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order"), current.UpdatedAt()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	h := commands.NewTransitionOrderStatusCommandHandler(factory, keylock.New(), publisher)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.Empty(t, publisher.events, "failed commits must not publish")
}

func TestTransitionOrderStatusCommandHandler_Handle_SerializesConcurrentRequests(t *testing.T) {
	ctx := context.Background()
	current := testOrder(t, order.Pending)

	prepared, err := current.TransitionTo(order.Preparing, current.UpdatedAt().Add(1))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, current.ID()).Return(current, nil).Once()
	repo.On("Get", mock.Anything, current.ID()).Return(prepared, nil).Once()
	repo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order"), mock.Anything).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	cmd, err := commands.NewTransitionOrderStatusCommand(current.ID(), order.Preparing)
	require.NoError(t, err)

	h := commands.NewTransitionOrderStatusCommandHandler(factory, keylock.New(), &recordingPublisher{})

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() { results <- h.Handle(ctx, cmd) }()
	}

	var failed int
	for i := 0; i < 2; i++ {
		if err := <-results; err != nil {
			require.ErrorIs(t, err, order.ErrInvalidTransition)
			failed++
		}
	}

	// First request wins; the second re-reads committed state and is rejected
	// for repeating an already-applied transition.
	require.Equal(t, 1, failed)
	repo.AssertExpectations(t)
}
