package ports

import (
	"context"

	"munchies/internal/core/domain/model/assignment"
	"munchies/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for courier
// assignments. Superseded assignments are kept (active=false) for audit; at
// most one row per order is active.
type AssignmentRepository interface {
	// Add persists a new assignment.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Update persists changes to an existing assignment (deactivation).
	Update(ctx context.Context, aggregate *assignment.Assignment) error

	// GetActiveByOrder retrieves the order's single active assignment.
	// Returns errs.ErrObjectNotFound (wrapped) when none exists.
	GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)
}
