// Package reconciler keeps a client-side view of an order consistent with
// the store by periodic refetching. Realtime pushes are best-effort; the
// reconciler is the backstop that repairs missed or out-of-order events
// within one polling interval.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/core/domain/model/order"
)

// DefaultInterval is the polling cadence. Fixed, no backoff: the fetch is a
// single-row read and a steady cadence keeps worst-case staleness bounded
// and predictable.
const DefaultInterval = 3 * time.Second

// ErrFetchFailed is the unwrap target for refetch failures.
var ErrFetchFailed = errors.New("order refetch failed")

// FetchError reports a failed refetch for one order. Delivered to the OnError
// callback only; the polling loop keeps running and the previous view stays
// in place.
type FetchError struct {
	OrderID kernel.UUID
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: order %s: %v", ErrFetchFailed, e.OrderID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return ErrFetchFailed
}

// OrderFetcher is the read boundary the reconciler polls against. Backed by
// the order repository in-process, or an API client on a remote consumer.
type OrderFetcher interface {
	FetchOrder(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// FetchFunc adapts a function to the OrderFetcher interface.
type FetchFunc func(ctx context.Context, id kernel.UUID) (*order.Order, error)

func (f FetchFunc) FetchOrder(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return f(ctx, id)
}

// Reconciler maintains the freshest known view of one order. Two inputs feed
// it: periodic refetches (Run/Refetch) and pushed values from the realtime
// bus (Apply). Conflicts resolve by UpdatedAt, newer value wins, so a
// fetch that raced a push cannot roll the view backwards.
type Reconciler struct {
	orderID  kernel.UUID
	fetcher  OrderFetcher
	interval time.Duration

	onUpdate func(*order.Order)
	onError  func(error)

	mu      sync.Mutex
	current *order.Order
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithInterval overrides the polling interval.
func WithInterval(interval time.Duration) Option {
	return func(r *Reconciler) {
		if interval > 0 {
			r.interval = interval
		}
	}
}

// WithOnUpdate installs the callback fired whenever the view changes. The
// callback runs on the reconciler's goroutine and receives the adopted value.
func WithOnUpdate(fn func(*order.Order)) Option {
	return func(r *Reconciler) { r.onUpdate = fn }
}

// WithOnError installs the callback fired on refetch failures. Errors match
// errors.Is(err, ErrFetchFailed) and errors.As into *FetchError.
func WithOnError(fn func(error)) Option {
	return func(r *Reconciler) { r.onError = fn }
}

// New creates a Reconciler for orderID polling fetcher.
func New(orderID kernel.UUID, fetcher OrderFetcher, opts ...Option) *Reconciler {
	r := &Reconciler{
		orderID:  orderID,
		fetcher:  fetcher,
		interval: DefaultInterval,
		onUpdate: func(*order.Order) {},
		onError:  func(error) {},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OrderID returns the order this reconciler tracks.
func (r *Reconciler) OrderID() kernel.UUID {
	return r.orderID
}

// Current returns the freshest known view, or nil before the first
// successful fetch or Apply.
func (r *Reconciler) Current() *order.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Run polls at the configured interval until ctx is canceled. An immediate
// first fetch happens before the ticker starts, so a fresh reconciler does
// not show nothing for a full interval. Always returns ctx.Err().
func (r *Reconciler) Run(ctx context.Context) error {
	r.Refetch(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.Refetch(ctx)
		}
	}
}

// Refetch performs one fetch now, honoring ctx for timeout/cancelation. On
// failure the previous view is retained and the OnError callback receives a
// *FetchError.
func (r *Reconciler) Refetch(ctx context.Context) {
	fetched, err := r.fetcher.FetchOrder(ctx, r.orderID)
	if err != nil {
		r.onError(&FetchError{OrderID: r.orderID, Err: err})
		return
	}

	r.adopt(fetched)
}

// Apply merges a pushed value (from the realtime bus) into the view. Older
// pushes (by UpdatedAt) are ignored, so late events cannot regress a view
// a refetch already advanced.
func (r *Reconciler) Apply(pushed *order.Order) {
	if pushed == nil || !pushed.ID().IsEqual(r.orderID) {
		return
	}
	r.adopt(pushed)
}

func (r *Reconciler) adopt(candidate *order.Order) {
	r.mu.Lock()
	if r.current != nil && r.current.UpdatedAt().After(candidate.UpdatedAt()) {
		r.mu.Unlock()
		return
	}
	changed := r.current == nil ||
		r.current.Status() != candidate.Status() ||
		!r.current.UpdatedAt().Equal(candidate.UpdatedAt())
	r.current = candidate
	r.mu.Unlock()

	if changed {
		r.onUpdate(candidate)
	}
}
