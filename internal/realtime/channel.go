// Package realtime provides the publish/subscribe fabric that fans order
// change events out to connected parties (customer app, restaurant console,
// courier console) in near-real-time.
//
// Channels are a typed tagged union rather than free-form strings, so a typo
// in a channel name is a compile error instead of a silently missed event.
// Delivery is at-least-once and best-effort with no ordering guarantee across
// channels; a subscriber that attaches after an event was published never
// sees it. The polling reconciler is the consistency backstop for exactly
// that gap.
package realtime

import (
	"fmt"

	"munchies/internal/core/domain/model/kernel"
)

type channelKind int

const (
	kindOrder channelKind = iota
	kindRestaurant
	kindAll
)

// Channel identifies a pub/sub scope: one order, all orders of one
// restaurant, or every order (the reserved wildcard used by dispatch and
// courier consoles). Construct through ForOrder, ForRestaurant, or AllOrders.
type Channel struct {
	kind channelKind
	id   kernel.UUID
}

// ForOrder scopes a channel to a single order.
func ForOrder(orderID kernel.UUID) Channel {
	return Channel{kind: kindOrder, id: orderID}
}

// ForRestaurant scopes a channel to all orders of one restaurant.
func ForRestaurant(restaurantID kernel.UUID) Channel {
	return Channel{kind: kindRestaurant, id: restaurantID}
}

// AllOrders is the reserved wildcard scope: subscribers receive every
// published order event regardless of the channel it was published on.
func AllOrders() Channel {
	return Channel{kind: kindAll}
}

// IsAll reports whether the channel is the wildcard scope.
func (c Channel) IsAll() bool {
	return c.kind == kindAll
}

// String returns a stable name for the channel, used as the subscription map
// key and as the channel name on network-backed bus implementations.
func (c Channel) String() string {
	switch c.kind {
	case kindOrder:
		return fmt.Sprintf("order:%s", c.id)
	case kindRestaurant:
		return fmt.Sprintf("restaurant:%s", c.id)
	default:
		return "orders:all"
	}
}
