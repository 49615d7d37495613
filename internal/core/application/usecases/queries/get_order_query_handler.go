package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/core/domain/model/order"
	"munchies/internal/pkg/errs"
)

// GetOrderQueryHandler reads the tracking view of one order. The total is
// computed in SQL from the charge columns, so the read model can never drift
// from the stored breakdown.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query.
// Returns errs.ErrObjectNotFound (wrapped) when no order has the given id.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			restaurant_id,
			customer_id,
			courier_id,
			status,
			subtotal + delivery_fee + service_fee + tip - discount AS total_cents,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderQueryResponse{}, err
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}

	resp, err := scanOrderView(rows)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderView(row rowScanner) (GetOrderQueryResponse, error) {
	var (
		resp         GetOrderQueryResponse
		id           uuid.UUID
		restaurantID uuid.UUID
		customerID   uuid.UUID
		courierID    uuid.NullUUID
		status       string
	)

	if err := row.Scan(
		&id,
		&restaurantID,
		&customerID,
		&courierID,
		&status,
		&resp.TotalCents,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var err error
	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if courierID.Valid {
		parsed, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		resp.CourierID = &parsed
	}
	if resp.Status, err = order.StatusFromString(status); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}
