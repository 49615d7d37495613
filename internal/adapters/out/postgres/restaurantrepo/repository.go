// Package restaurantrepo persists per-restaurant dispatch policy. One row per
// restaurant; restaurants without a row get the defaults.
package restaurantrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"munchies/internal/core/domain/model/kernel"
)

// RestaurantPolicyDTO represents the database structure for restaurant policy.
type RestaurantPolicyDTO struct {
	RestaurantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	AutoAccept   bool
}

// TableName specifies the database table name for restaurant policy rows.
func (RestaurantPolicyDTO) TableName() string {
	return "restaurant_policies"
}

// GormRestaurantPolicyRepository implements RestaurantPolicyRepository using GORM.
type GormRestaurantPolicyRepository struct {
	db *gorm.DB
}

// NewGormRestaurantPolicyRepository creates a new GORM restaurant policy repository.
func NewGormRestaurantPolicyRepository(db *gorm.DB) *GormRestaurantPolicyRepository {
	return &GormRestaurantPolicyRepository{db: db}
}

// AutoAcceptEnabled reports whether the restaurant opted into automatic
// acceptance. Restaurants without a policy row default to false.
func (r *GormRestaurantPolicyRepository) AutoAcceptEnabled(ctx context.Context, restaurantID kernel.UUID) (bool, error) {
	if err := restaurantID.Validate(); err != nil {
		return false, err
	}

	var dto RestaurantPolicyDTO
	err := r.db.WithContext(ctx).First(&dto, "restaurant_id = ?", restaurantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return dto.AutoAccept, nil
}

// SetAutoAccept records the restaurant's auto-accept choice, inserting or
// updating its policy row.
func (r *GormRestaurantPolicyRepository) SetAutoAccept(ctx context.Context, restaurantID kernel.UUID, enabled bool) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	dto := RestaurantPolicyDTO{
		RestaurantID: restaurantID.Bytes(),
		AutoAccept:   enabled,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "restaurant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"auto_accept"}),
		}).
		Create(&dto).Error
}
