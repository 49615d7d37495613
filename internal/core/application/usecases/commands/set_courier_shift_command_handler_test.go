package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"munchies/internal/core/application/usecases/commands"
	"munchies/internal/core/domain/model/courier"
	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/pkg/errs"
)

func TestSetCourierShiftCommandHandler_Handle_StartsShift(t *testing.T) {
	ctx := context.Background()
	offShift := testCourier(t, false)
	cmd, err := commands.NewSetCourierShiftCommand(offShift.ID(), true)
	require.NoError(t, err)

	couriersRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(couriersRepo).Once(),
		couriersRepo.On("Get", mock.Anything, offShift.ID()).Return(offShift, nil).Once(),
		couriersRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *courier.Courier) bool {
			return c.IsOnShift()
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetCourierShiftCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	couriersRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSetCourierShiftCommandHandler_Handle_UnknownCourier(t *testing.T) {
	ctx := context.Background()
	courierID := kernel.NewUUID()
	cmd, err := commands.NewSetCourierShiftCommand(courierID, false)
	require.NoError(t, err)

	couriersRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(couriersRepo).Once(),
		couriersRepo.On("Get", mock.Anything, courierID).
			Return(nil, errs.NewObjectNotFoundError("courier", courierID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetCourierShiftCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	couriersRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
