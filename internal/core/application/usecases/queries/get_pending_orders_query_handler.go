package queries

import (
	"context"

	"dispatchsim/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetPendingOrdersQueryHandler reads pending orders without locking them.
type GetPendingOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetPendingOrdersQueryHandler(db *gorm.DB) GetPendingOrdersQueryHandler {
	return GetPendingOrdersQueryHandler{db: db}
}

// Handle returns pending orders by value descending, then delivery time,
// then order id.
func (h GetPendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingOrdersQuery,
) ([]GetPendingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetPendingOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.order_id,
			o.value_rs,
			o.delivery_timestamp,
			r.route_id,
			r.distance_km,
			r.traffic_level,
			r.base_time_minutes
		FROM orders o
		JOIN routes r ON r.route_id = o.route_id
		WHERE o.status = ?
		ORDER BY o.value_rs DESC, o.delivery_timestamp ASC, o.order_id ASC
	`, order.Pending.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var o GetPendingOrdersQueryResponse
		err = rows.Scan(
			&o.OrderID,
			&o.ValueRs,
			&o.DeliveryTimestamp,
			&o.RouteID,
			&o.DistanceKm,
			&o.TrafficLevel,
			&o.BaseTimeMinutes,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
