package realtime

import (
	"time"

	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/core/domain/model/order"
)

// OrderEvent describes a committed change to an order. Events are emitted
// only after the mutation is persisted; they carry enough context for
// subscribers to render updates and for notifications to deep-link, but the
// authoritative order always lives in the store.
type OrderEvent struct {
	OrderID      kernel.UUID  `json:"order_id"`
	RestaurantID kernel.UUID  `json:"restaurant_id"`
	CustomerID   kernel.UUID  `json:"customer_id"`
	CourierID    *kernel.UUID `json:"courier_id,omitempty"`
	Status       order.Status `json:"status"`
	TotalCents   order.Money  `json:"total_cents"`
	OccurredAt   time.Time    `json:"occurred_at"`
}

// NewOrderEvent builds the event describing o's current committed state.
func NewOrderEvent(o *order.Order, occurredAt time.Time) OrderEvent {
	return OrderEvent{
		OrderID:      o.ID(),
		RestaurantID: o.RestaurantID(),
		CustomerID:   o.CustomerID(),
		CourierID:    o.Courier(),
		Status:       o.Status(),
		TotalCents:   o.Total(),
		OccurredAt:   occurredAt,
	}
}

// Handler consumes order events. Handlers run on the publishing goroutine for
// the in-memory bus and must enqueue long work instead of blocking.
type Handler func(event OrderEvent)

// Publisher is the write side of the bus.
type Publisher interface {
	Publish(channel Channel, event OrderEvent)
}

// Subscriber is the read side of the bus. Subscribe returns the function that
// removes the subscription; UI surfaces call it on unmount/disconnect.
type Subscriber interface {
	Subscribe(channel Channel, handler Handler) (unsubscribe func())
}

// Bus is the full fan-out fabric.
type Bus interface {
	Publisher
	Subscriber
}
