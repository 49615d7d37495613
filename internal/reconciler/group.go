package reconciler

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Group runs a set of reconcilers concurrently, one goroutine each, sharing
// a lifetime. Canceling the context passed to Run stops all of them.
type Group struct {
	reconcilers []*Reconciler
}

// NewGroup creates an empty Group.
func NewGroup() *Group {
	return &Group{}
}

// Add registers a reconciler. Not safe to call after Run started.
func (g *Group) Add(r *Reconciler) {
	g.reconcilers = append(g.reconcilers, r)
}

// Run polls every registered reconciler until ctx is canceled, then returns
// ctx.Err().
func (g *Group) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, r := range g.reconcilers {
		r := r
		eg.Go(func() error {
			return r.Run(ctx)
		})
	}
	return eg.Wait()
}
