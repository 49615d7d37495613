// Package assignmentrepo persists courier assignments. Superseded rows stay
// in the table with active=false, which gives the dispatch history for free.
package assignmentrepo

import (
	"time"

	"github.com/google/uuid"

	"munchies/internal/core/domain/model/assignment"
	"munchies/internal/core/domain/model/kernel"
)

// AssignmentDTO represents the database structure for persisting assignments.
type AssignmentDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	CourierID  uuid.UUID `gorm:"type:uuid;index"`
	AssignedAt time.Time
	Active     bool `gorm:"index"`
}

// TableName specifies the database table name for assignment entities.
func (AssignmentDTO) TableName() string {
	return "courier_assignments"
}

func fromDomain(aggregate *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:         aggregate.ID().Bytes(),
		OrderID:    aggregate.OrderID().Bytes(),
		CourierID:  aggregate.CourierID().Bytes(),
		AssignedAt: aggregate.AssignedAt(),
		Active:     aggregate.IsActive(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(id, orderID, courierID, dto.AssignedAt, dto.Active)
}
