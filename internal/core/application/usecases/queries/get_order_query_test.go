package queries_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"munchies/internal/core/application/usecases/queries"
	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/core/domain/model/order"
)

func TestNewGetOrderQuery(t *testing.T) {
	orderID := kernel.NewUUID()
	query, err := queries.NewGetOrderQuery(orderID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	require.True(t, query.OrderID().IsEqual(orderID))
}

func TestNewGetOrderQuery_InvalidID(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetOrderQuery_ZeroValueFailsValidation(t *testing.T) {
	query := queries.GetOrderQuery{}
	require.ErrorIs(t, query.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}

func TestNewGetRestaurantOrdersQuery(t *testing.T) {
	query, err := queries.NewGetRestaurantOrdersQuery(kernel.NewUUID(), []order.Status{order.Pending, order.Preparing})
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	require.Len(t, query.Statuses(), 2)
}

func TestNewGetRestaurantOrdersQuery_NoFilter(t *testing.T) {
	query, err := queries.NewGetRestaurantOrdersQuery(kernel.NewUUID(), nil)
	require.NoError(t, err)
	require.Empty(t, query.Statuses())
}

func TestNewGetRestaurantOrdersQuery_UnknownStatusInFilter(t *testing.T) {
	_, err := queries.NewGetRestaurantOrdersQuery(kernel.NewUUID(), []order.Status{order.Unknown})
	require.Error(t, err)
}

func TestGetRestaurantOrdersQuery_ZeroValueFailsValidation(t *testing.T) {
	query := queries.GetRestaurantOrdersQuery{}
	require.ErrorIs(t, query.Validate(), queries.ErrGetRestaurantOrdersQueryIsNotConstructed)
}
