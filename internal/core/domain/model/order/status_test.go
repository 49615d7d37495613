package order_test

import (
	"testing"

	"munchies/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("valid_statuses", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Pending, order.Preparing, order.Ready,
			order.OutForDelivery, order.Delivered, order.Canceled,
		} {
			require.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("invalid_statuses", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(42).Validate())
		require.Error(t, order.Status(-1).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	cases := map[order.Status]string{
		order.Unknown:        "unknown",
		order.Pending:        "pending",
		order.Preparing:      "preparing",
		order.Ready:          "ready",
		order.OutForDelivery: "out_for_delivery",
		order.Delivered:      "delivered",
		order.Canceled:       "canceled",
	}

	for status, expected := range cases {
		assert.Equal(t, expected, status.String())
	}

	assert.Equal(t, "unknown", order.Status(99).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("parses_wire_names", func(t *testing.T) {
		s, err := order.StatusFromString("out_for_delivery")
		require.NoError(t, err)
		assert.Equal(t, order.OutForDelivery, s)
	})

	t.Run("rejects_unknown", func(t *testing.T) {
		_, err := order.StatusFromString("unknown")
		require.Error(t, err)
	})

	t.Run("rejects_garbage", func(t *testing.T) {
		_, err := order.StatusFromString("shipped")
		require.Error(t, err)
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("table_allows_defined_successors", func(t *testing.T) {
		assert.True(t, order.Pending.CanTransitionTo(order.Preparing))
		assert.True(t, order.Pending.CanTransitionTo(order.Canceled))
		assert.True(t, order.Preparing.CanTransitionTo(order.Ready))
		assert.True(t, order.Preparing.CanTransitionTo(order.Canceled))
		assert.True(t, order.Ready.CanTransitionTo(order.OutForDelivery))
		assert.True(t, order.Ready.CanTransitionTo(order.Canceled))
		assert.True(t, order.OutForDelivery.CanTransitionTo(order.Delivered))
		assert.True(t, order.OutForDelivery.CanTransitionTo(order.Canceled))
	})

	t.Run("table_forbids_skipping_steps", func(t *testing.T) {
		assert.False(t, order.Pending.CanTransitionTo(order.Ready))
		assert.False(t, order.Pending.CanTransitionTo(order.OutForDelivery))
		assert.False(t, order.Pending.CanTransitionTo(order.Delivered))
		assert.False(t, order.Preparing.CanTransitionTo(order.OutForDelivery))
		assert.False(t, order.Ready.CanTransitionTo(order.Delivered))
	})

	t.Run("table_forbids_moving_backwards", func(t *testing.T) {
		assert.False(t, order.Preparing.CanTransitionTo(order.Pending))
		assert.False(t, order.Ready.CanTransitionTo(order.Preparing))
		assert.False(t, order.OutForDelivery.CanTransitionTo(order.Ready))
	})

	t.Run("no_status_is_its_own_successor", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Pending, order.Preparing, order.Ready,
			order.OutForDelivery, order.Delivered, order.Canceled,
		} {
			assert.False(t, s.CanTransitionTo(s), s.String())
		}
	})

	t.Run("terminal_states_accept_nothing", func(t *testing.T) {
		for _, terminal := range []order.Status{order.Delivered, order.Canceled} {
			for _, next := range []order.Status{
				order.Pending, order.Preparing, order.Ready,
				order.OutForDelivery, order.Delivered, order.Canceled,
			} {
				assert.False(t, terminal.CanTransitionTo(next),
					"%s -> %s must be forbidden", terminal, next)
			}
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Canceled.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Preparing.IsTerminal())
	assert.False(t, order.Ready.IsTerminal())
	assert.False(t, order.OutForDelivery.IsTerminal())
}

func TestStatus_TextMarshaling(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		text, err := order.OutForDelivery.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, "out_for_delivery", string(text))

		var parsed order.Status
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, order.OutForDelivery, parsed)
	})

	t.Run("marshal_rejects_unknown", func(t *testing.T) {
		_, err := order.Unknown.MarshalText()
		require.Error(t, err)
	})
}
