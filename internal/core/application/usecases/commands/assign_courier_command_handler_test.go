package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"munchies/internal/core/application/usecases/commands"
	"munchies/internal/core/domain/model/assignment"
	"munchies/internal/core/domain/model/courier"
	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/core/domain/model/order"
	"munchies/internal/pkg/errs"
	"munchies/internal/pkg/keylock"
)

func testCourier(t *testing.T, onShift bool) *courier.Courier {
	t.Helper()
	c, err := courier.RestoreCourier(kernel.NewUUID(), "Sasha", onShift)
	require.NoError(t, err)
	return c
}

func TestAssignCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	current := testOrder(t, order.Ready)
	candidate := testCourier(t, true)
	cmd, err := commands.NewAssignCourierCommand(current.ID(), candidate.ID())
	require.NoError(t, err)

	ordersRepo := new(MockOrderRepository)
	assignmentsRepo := new(MockAssignmentRepository)
	couriersRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(ordersRepo).Once(),
		uow.On("AssignmentRepository").Return(assignmentsRepo).Once(),
		uow.On("CourierRepository").Return(couriersRepo).Once(),
		ordersRepo.On("Get", mock.Anything, current.ID()).Return(current, nil).Once(),
		couriersRepo.On("Get", mock.Anything, candidate.ID()).Return(candidate, nil).Once(),
		assignmentsRepo.On("GetActiveByOrder", mock.Anything, current.ID()).
			Return(nil, errs.NewObjectNotFoundError("orderID", current.ID())).Once(),
		assignmentsRepo.On("Add", mock.Anything, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once(),
		ordersRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order"), current.UpdatedAt()).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignCourierCommandHandler(factory, keylock.New())
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	ordersRepo.AssertExpectations(t)
	assignmentsRepo.AssertExpectations(t)
	couriersRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAssignCourierCommandHandler_Handle_SameCourierIsNoop(t *testing.T) {
	ctx := context.Background()
	current := testOrder(t, order.Ready)
	candidate := testCourier(t, true)
	cmd, err := commands.NewAssignCourierCommand(current.ID(), candidate.ID())
	require.NoError(t, err)

	active, err := assignment.NewAssignment(current.ID(), candidate.ID(), time.Now().UTC())
	require.NoError(t, err)

	ordersRepo := new(MockOrderRepository)
	assignmentsRepo := new(MockAssignmentRepository)
	couriersRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(ordersRepo).Once(),
		uow.On("AssignmentRepository").Return(assignmentsRepo).Once(),
		uow.On("CourierRepository").Return(couriersRepo).Once(),
		ordersRepo.On("Get", mock.Anything, current.ID()).Return(current, nil).Once(),
		couriersRepo.On("Get", mock.Anything, candidate.ID()).Return(candidate, nil).Once(),
		assignmentsRepo.On("GetActiveByOrder", mock.Anything, current.ID()).Return(active, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignCourierCommandHandler(factory, keylock.New())
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	assignmentsRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	ordersRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAssignCourierCommandHandler_Handle_AlreadyAssigned(t *testing.T) {
	ctx := context.Background()
	current := testOrder(t, order.Ready)
	candidate := testCourier(t, true)
	cmd, err := commands.NewAssignCourierCommand(current.ID(), candidate.ID())
	require.NoError(t, err)

	active, err := assignment.NewAssignment(current.ID(), kernel.NewUUID(), time.Now().UTC())
	require.NoError(t, err)

	ordersRepo := new(MockOrderRepository)
	assignmentsRepo := new(MockAssignmentRepository)
	couriersRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(ordersRepo).Once(),
		uow.On("AssignmentRepository").Return(assignmentsRepo).Once(),
		uow.On("CourierRepository").Return(couriersRepo).Once(),
		ordersRepo.On("Get", mock.Anything, current.ID()).Return(current, nil).Once(),
		couriersRepo.On("Get", mock.Anything, candidate.ID()).Return(candidate, nil).Once(),
		assignmentsRepo.On("GetActiveByOrder", mock.Anything, current.ID()).Return(active, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignCourierCommandHandler(factory, keylock.New())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, assignment.ErrAlreadyAssigned)
}

func TestAssignCourierCommandHandler_Handle_CourierOffShift(t *testing.T) {
	ctx := context.Background()
	current := testOrder(t, order.Ready)
	candidate := testCourier(t, false)
	cmd, err := commands.NewAssignCourierCommand(current.ID(), candidate.ID())
	require.NoError(t, err)

	ordersRepo := new(MockOrderRepository)
	assignmentsRepo := new(MockAssignmentRepository)
	couriersRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(ordersRepo).Once(),
		uow.On("AssignmentRepository").Return(assignmentsRepo).Once(),
		uow.On("CourierRepository").Return(couriersRepo).Once(),
		ordersRepo.On("Get", mock.Anything, current.ID()).Return(current, nil).Once(),
		couriersRepo.On("Get", mock.Anything, candidate.ID()).Return(candidate, nil).Once(),
		assignmentsRepo.On("GetActiveByOrder", mock.Anything, current.ID()).
			Return(nil, errs.NewObjectNotFoundError("orderID", current.ID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignCourierCommandHandler(factory, keylock.New())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, courier.ErrCourierOffShift)
}

func TestAssignCourierCommandHandler_Handle_UnknownCourier(t *testing.T) {
	ctx := context.Background()
	current := testOrder(t, order.Ready)
	courierID := kernel.NewUUID()
	cmd, err := commands.NewAssignCourierCommand(current.ID(), courierID)
	require.NoError(t, err)

	ordersRepo := new(MockOrderRepository)
	assignmentsRepo := new(MockAssignmentRepository)
	couriersRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(ordersRepo).Once(),
		uow.On("AssignmentRepository").Return(assignmentsRepo).Once(),
		uow.On("CourierRepository").Return(couriersRepo).Once(),
		ordersRepo.On("Get", mock.Anything, current.ID()).Return(current, nil).Once(),
		couriersRepo.On("Get", mock.Anything, courierID).
			Return(nil, errs.NewObjectNotFoundError("courierID", courierID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignCourierCommandHandler(factory, keylock.New())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
