// Package courierrepo persists the courier roster mirror: identity and shift
// state, nothing more. The authoritative roster lives outside this service.
package courierrepo

import (
	"github.com/google/uuid"

	"munchies/internal/core/domain/model/courier"
	"munchies/internal/core/domain/model/kernel"
)

// CourierDTO represents the database structure for persisting couriers.
type CourierDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string
	OnShift bool `gorm:"index"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:      aggregate.ID().Bytes(),
		Name:    aggregate.Name(),
		OnShift: aggregate.IsOnShift(),
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(id, dto.Name, dto.OnShift)
}
