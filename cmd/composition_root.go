package cmd

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"munchies/internal/adapters/out/postgres"
	"munchies/internal/core/application/usecases/commands"
	"munchies/internal/core/application/usecases/queries"
	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/core/domain/model/order"
	"munchies/internal/notifications"
	"munchies/internal/pkg/keylock"
	"munchies/internal/realtime"
	"munchies/internal/reconciler"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	locks      *keylock.KeyLock
	bus        realtime.Bus
	dispatcher *notifications.Dispatcher
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, bus realtime.Bus, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		// One lock set shared by every write handler so all mutations of the
		// same order serialize, whichever command they come through.
		locks:      keylock.New(),
		bus:        bus,
		dispatcher: notifications.NewDispatcher(notifications.NewLogChannel(logger), notifications.NewHistory(), logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderStatusCommandHandler(f, c.locks, c.bus)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCourierCommandHandler(f, c.locks)
}

func (c *CompositionRoot) CreateUnassignCourierCommandHandler() commands.UnassignCourierCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUnassignCourierCommandHandler(f, c.locks)
}

func (c *CompositionRoot) CreateAcceptPendingOrdersCommandHandler() commands.AcceptPendingOrdersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptPendingOrdersCommandHandler(f, c.locks, c.bus)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateSetCourierShiftCommandHandler() commands.SetCourierShiftCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetCourierShiftCommandHandler(f)
}

func (c *CompositionRoot) CreateSetRestaurantPolicyCommandHandler() commands.SetRestaurantPolicyCommandHandler {
	var f commands.PolicyUoWFactory = FuncPolicyUoWFactory(func() commands.PolicyUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetRestaurantPolicyCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRestaurantOrdersQueryHandler() queries.GetRestaurantOrdersQueryHandler {
	return queries.NewGetRestaurantOrdersQueryHandler(c.gormDB)
}

// CreateOrderReconciler builds a polling reconciler for one order, reading
// through the repository outside any transaction.
func (c *CompositionRoot) CreateOrderReconciler(orderID kernel.UUID, opts ...reconciler.Option) *reconciler.Reconciler {
	fetcher := reconciler.FetchFunc(func(ctx context.Context, id kernel.UUID) (*order.Order, error) {
		return c.uowFactory.Create().OrderRepository().Get(ctx, id)
	})
	return reconciler.New(orderID, fetcher, opts...)
}

// InstallNotificationFanout subscribes the notification fanout to every order
// event. Returns the unsubscribe function.
func (c *CompositionRoot) InstallNotificationFanout(ctx context.Context) func() {
	fanout := notifications.NewFanout(c.dispatcher, c.logger)
	return c.bus.Subscribe(realtime.AllOrders(), fanout.Handler(ctx))
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncPolicyUoWFactory func() commands.PolicyUoW

func (f FuncPolicyUoWFactory) Create() commands.PolicyUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
