package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetRestaurantOrdersQueryHandler lists a restaurant's orders for the kitchen
// console. Rows come back oldest-first so the queue reads top to bottom.
type GetRestaurantOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetRestaurantOrdersQueryHandler creates a handler for restaurant order
// listings. Requires a GORM database connection for query execution.
func NewGetRestaurantOrdersQueryHandler(db *gorm.DB) GetRestaurantOrdersQueryHandler {
	return GetRestaurantOrdersQueryHandler{db: db}
}

// Handle executes the query. An unknown restaurant yields an empty slice, not
// an error; the console cannot tell an idle restaurant from a missing one and
// does not need to.
func (h GetRestaurantOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetRestaurantOrdersQuery,
) ([]GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
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
		WHERE restaurant_id = ?
	`
	args := []any{query.RestaurantID().Bytes()}

	if statuses := query.Statuses(); len(statuses) > 0 {
		names := make([]string, 0, len(statuses))
		for _, s := range statuses {
			names = append(names, s.String())
		}
		sql += " AND status IN ?"
		args = append(args, names)
	}
	sql += " ORDER BY created_at, id"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrderQueryResponse, 0)
	for rows.Next() {
		resp, scanErr := scanOrderView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
