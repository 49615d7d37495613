package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/core/domain/model/order"
)

func testOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	item, err := order.NewLineItem(kernel.NewUUID(), "Halloumi Wrap", 2, 650, nil)
	require.NoError(t, err)

	charges, err := order.NewCharges(1300, 199, 50, 0, 200)
	require.NoError(t, err)

	var courierID *kernel.UUID
	if status == order.OutForDelivery {
		id := kernel.NewUUID()
		courierID = &id
	}

	created := time.Date(2026, 3, 10, 11, 30, 0, 0, time.UTC)
	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), courierID,
		[]order.LineItem{item}, charges, order.PaymentCampusCard,
		status, created, created,
	)
	require.NoError(t, err)
	return o
}
