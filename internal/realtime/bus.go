package realtime

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var eventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "munchies_realtime_events_published_total",
	Help: "Order events published to the realtime bus, by order status.",
}, []string{"status"})

// InMemoryBus is a synchronous in-process Bus. Publish delivers the event to
// every subscriber of the exact channel and to every wildcard subscriber
// before returning, on the caller's goroutine. There is no buffering: a slow
// handler slows the publisher, which keeps backpressure visible instead of
// hiding unbounded queues inside the bus.
type InMemoryBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]Handler
}

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{subs: make(map[string]map[int]Handler)}
}

// Subscribe registers handler on channel and returns its remover. The remover
// is idempotent.
func (b *InMemoryBus) Subscribe(channel Channel, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := channel.String()
	if b.subs[key] == nil {
		b.subs[key] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.subs[key][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[key], id)
		if len(b.subs[key]) == 0 {
			delete(b.subs, key)
		}
	}
}

// Publish fans event out to channel's subscribers and to wildcard
// subscribers. Publishing on the wildcard channel itself delivers to
// wildcard subscribers only.
func (b *InMemoryBus) Publish(channel Channel, event OrderEvent) {
	b.mu.RLock()
	handlers := b.collect(channel)
	b.mu.RUnlock()

	eventsPublished.WithLabelValues(event.Status.String()).Inc()

	// Handlers run outside the lock so a subscriber may unsubscribe (or
	// subscribe) from within its own callback without deadlocking.
	for _, h := range handlers {
		h(event)
	}
}

func (b *InMemoryBus) collect(channel Channel) []Handler {
	var handlers []Handler
	for _, h := range b.subs[channel.String()] {
		handlers = append(handlers, h)
	}
	if !channel.IsAll() {
		for _, h := range b.subs[AllOrders().String()] {
			handlers = append(handlers, h)
		}
	}
	return handlers
}
