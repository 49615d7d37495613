package ports

import (
	"context"

	"munchies/internal/core/domain/model/courier"
	"munchies/internal/core/domain/model/kernel"
)

// CourierRepository is the roster boundary: the candidate couriers dispatch
// may assign from. The authoritative roster lives outside this core; this
// port only mirrors identity and shift state.
type CourierRepository interface {
	// Add persists a courier record.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to a courier record (shift state).
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier by id.
	// Returns errs.ErrObjectNotFound (wrapped) for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)
}
