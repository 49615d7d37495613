// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items are frozen at creation, so they live inside the row as jsonb
// instead of a child table. Timestamps are owned by the domain: UpdatedAt is
// the optimistic-concurrency token and must never be touched by GORM's
// auto-timestamping.
type OrderDTO struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey"`
	RestaurantID  uuid.UUID     `gorm:"type:uuid;index"`
	CustomerID    uuid.UUID     `gorm:"type:uuid;index"`
	CourierID     *uuid.UUID    `gorm:"type:uuid;index"`
	Items         []LineItemDTO `gorm:"serializer:json;type:jsonb"`
	Subtotal      int64
	DeliveryFee   int64
	ServiceFee    int64
	Discount      int64
	Tip           int64
	PaymentMethod string
	Status        string    `gorm:"index"`
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO is the jsonb element for one order line.
type LineItemDTO struct {
	MenuItemID     uuid.UUID `json:"menu_item_id"`
	Name           string    `json:"name"`
	Quantity       int       `json:"quantity"`
	UnitPrice      int64     `json:"unit_price"`
	Customizations []string  `json:"customizations,omitempty"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	items := aggregate.Items()
	itemDTOs := make([]LineItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, LineItemDTO{
			MenuItemID:     item.MenuItemID().Bytes(),
			Name:           item.Name(),
			Quantity:       item.Quantity(),
			UnitPrice:      int64(item.UnitPrice()),
			Customizations: item.Customizations(),
		})
	}

	charges := aggregate.Charges()

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		RestaurantID:  aggregate.RestaurantID().Bytes(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		CourierID:     courierID,
		Items:         itemDTOs,
		Subtotal:      int64(charges.Subtotal()),
		DeliveryFee:   int64(charges.DeliveryFee()),
		ServiceFee:    int64(charges.ServiceFee()),
		Discount:      int64(charges.Discount()),
		Tip:           int64(charges.Tip()),
		PaymentMethod: string(aggregate.PaymentMethod()),
		Status:        aggregate.Status().String(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder, so corrupted rows
// fail here instead of surfacing as broken behavior later.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		menuItemID, itemErr := kernel.UUIDFromBytes(itemDTO.MenuItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewLineItem(
			menuItemID,
			itemDTO.Name,
			itemDTO.Quantity,
			order.Money(itemDTO.UnitPrice),
			itemDTO.Customizations,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	charges, err := order.NewCharges(
		order.Money(dto.Subtotal),
		order.Money(dto.DeliveryFee),
		order.Money(dto.ServiceFee),
		order.Money(dto.Discount),
		order.Money(dto.Tip),
	)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		restaurantID,
		customerID,
		courierID,
		items,
		charges,
		order.PaymentMethod(dto.PaymentMethod),
		status,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
