package notifications

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"munchies/internal/realtime"
)

// Status-change events go out on both the order and the restaurant channel,
// so a wildcard subscriber sees each one twice. The dedupe window only needs
// to span those near-simultaneous deliveries.
const fanoutDedupeWindow = 256

// Fanout feeds bus events into the Dispatcher: one notification per affected
// role, with the courier included only when the event names one. Duplicate
// deliveries of the same event are dropped.
type Fanout struct {
	dispatcher *Dispatcher
	logger     *slog.Logger

	mu   sync.Mutex
	seen map[string]struct{}
	keys []string
}

// NewFanout creates a Fanout delivering through dispatcher.
func NewFanout(dispatcher *Dispatcher, logger *slog.Logger) *Fanout {
	return &Fanout{
		dispatcher: dispatcher,
		logger:     logger,
		seen:       make(map[string]struct{}),
	}
}

// Handler returns the bus handler. The recipient identifiers double as push
// tokens until a device-token registry is wired.
func (f *Fanout) Handler(ctx context.Context) realtime.Handler {
	return func(event realtime.OrderEvent) {
		if f.duplicate(event) {
			return
		}

		f.notify(ctx, event, RoleCustomer, event.CustomerID.String())
		f.notify(ctx, event, RoleRestaurant, event.RestaurantID.String())
		if event.CourierID != nil {
			f.notify(ctx, event, RoleCourier, event.CourierID.String())
		}
	}
}

func (f *Fanout) notify(ctx context.Context, event realtime.OrderEvent, role Role, token string) {
	if err := f.dispatcher.Dispatch(ctx, event, role, token); err != nil {
		f.logger.WarnContext(ctx, "notification rendering failed",
			"role", string(role),
			"order_id", event.OrderID.String(),
			"error", err.Error(),
		)
	}
}

func (f *Fanout) duplicate(event realtime.OrderEvent) bool {
	key := event.OrderID.String() + "|" + event.Status.String() + "|" +
		strconv.FormatInt(event.OccurredAt.UnixNano(), 10)

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.seen[key]; ok {
		return true
	}

	f.seen[key] = struct{}{}
	f.keys = append(f.keys, key)
	if len(f.keys) > fanoutDedupeWindow {
		delete(f.seen, f.keys[0])
		f.keys = f.keys[1:]
	}
	return false
}
