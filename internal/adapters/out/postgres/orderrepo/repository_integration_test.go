package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"munchies/internal/adapters/out/postgres/orderrepo"
	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/core/domain/model/order"
	"munchies/internal/pkg/errs"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type OrderRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.repo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *OrderRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

// now returns a UTC timestamp truncated to microseconds, matching the
// precision postgres stores, so round-tripped UpdatedAt values compare equal.
func (suite *OrderRepositoryTestSuite) now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (suite *OrderRepositoryTestSuite) newOrder() *order.Order {
	item1, err := order.NewLineItem(kernel.NewUUID(), "Pad Thai", 1, 1150, []string{"extra peanuts"})
	suite.Require().NoError(err)
	item2, err := order.NewLineItem(kernel.NewUUID(), "Spring Rolls", 2, 450, nil)
	suite.Require().NoError(err)

	charges, err := order.NewCharges(2050, 199, 99, 100, 300)
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.LineItem{item1, item2}, charges, order.PaymentCard,
		suite.now(),
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	o := suite.newOrder()

	err := suite.repo.Add(ctx, o)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(o.ID()))
	suite.True(loaded.RestaurantID().IsEqual(o.RestaurantID()))
	suite.True(loaded.CustomerID().IsEqual(o.CustomerID()))
	suite.Nil(loaded.Courier())
	suite.Equal(order.Pending, loaded.Status())
	suite.Equal(o.Total(), loaded.Total())
	suite.Equal(order.PaymentCard, loaded.PaymentMethod())
	suite.True(loaded.UpdatedAt().Equal(o.UpdatedAt()))

	items := loaded.Items()
	suite.Require().Len(items, 2)
	suite.Equal("Pad Thai", items[0].Name())
	suite.Equal([]string{"extra peanuts"}, items[0].Customizations())
	suite.Equal(2, items[1].Quantity())
}

func (suite *OrderRepositoryTestSuite) TestGet_Unknown_ReturnsNotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestUpdate_MatchingVersion_Succeeds() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.repo.Add(ctx, o))

	updated, err := o.TransitionTo(order.Preparing, suite.now().Add(time.Second))
	suite.Require().NoError(err)

	err = suite.repo.Update(ctx, updated, o.UpdatedAt())
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, loaded.Status())
	suite.True(loaded.UpdatedAt().Equal(updated.UpdatedAt()))
}

func (suite *OrderRepositoryTestSuite) TestUpdate_StaleVersion_ReturnsVersionIsInvalid() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.repo.Add(ctx, o))

	first, err := o.TransitionTo(order.Preparing, suite.now().Add(time.Second))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Update(ctx, first, o.UpdatedAt()))

	// Second writer still holds the original version token.
	second, err := o.TransitionTo(order.Canceled, suite.now().Add(2*time.Second))
	suite.Require().NoError(err)

	err = suite.repo.Update(ctx, second, o.UpdatedAt())
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	loaded, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, loaded.Status(), "stale write must not land")
}

func (suite *OrderRepositoryTestSuite) TestUpdate_Unknown_ReturnsNotFound() {
	ctx := context.Background()
	o := suite.newOrder()

	err := suite.repo.Update(ctx, o, o.UpdatedAt())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestUpdate_PersistsCourier() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.repo.Add(ctx, o))

	courierID := kernel.NewUUID()
	withCourier, err := o.WithCourier(courierID, suite.now().Add(time.Second))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Update(ctx, withCourier, o.UpdatedAt()))

	loaded, err := suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(loaded.Courier())
	suite.True(loaded.Courier().IsEqual(courierID))

	// And clearing it writes the NULL back.
	cleared, err := loaded.WithoutCourier(suite.now().Add(2 * time.Second))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Update(ctx, cleared, loaded.UpdatedAt()))

	loaded, err = suite.repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Nil(loaded.Courier())
}

func (suite *OrderRepositoryTestSuite) TestGetAllByRestaurant_FiltersByStatus() {
	ctx := context.Background()

	restaurant := suite.newOrder()
	suite.Require().NoError(suite.repo.Add(ctx, restaurant))

	accepted, err := restaurant.TransitionTo(order.Preparing, suite.now().Add(time.Second))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Update(ctx, accepted, restaurant.UpdatedAt()))

	other := suite.newOrder()
	suite.Require().NoError(suite.repo.Add(ctx, other))

	all, err := suite.repo.GetAllByRestaurant(ctx, restaurant.RestaurantID(), nil)
	suite.Require().NoError(err)
	suite.Len(all, 1)

	preparing, err := suite.repo.GetAllByRestaurant(ctx, restaurant.RestaurantID(), []order.Status{order.Preparing})
	suite.Require().NoError(err)
	suite.Len(preparing, 1)
	suite.Equal(order.Preparing, preparing[0].Status())

	pending, err := suite.repo.GetAllByRestaurant(ctx, restaurant.RestaurantID(), []order.Status{order.Pending})
	suite.Require().NoError(err)
	suite.Empty(pending)
}

func (suite *OrderRepositoryTestSuite) TestGetAllInStatus() {
	ctx := context.Background()

	first := suite.newOrder()
	second := suite.newOrder()
	suite.Require().NoError(suite.repo.Add(ctx, first))
	suite.Require().NoError(suite.repo.Add(ctx, second))

	canceled, err := second.TransitionTo(order.Canceled, suite.now().Add(time.Second))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Update(ctx, canceled, second.UpdatedAt()))

	pending, err := suite.repo.GetAllInStatus(ctx, order.Pending)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.True(pending[0].ID().IsEqual(first.ID()))
}

func TestOrderRepositoryTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryTestSuite))
}
