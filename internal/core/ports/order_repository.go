package ports

import (
	"context"

	"dispatchsim/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. Its route must already exist.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the assignment of a pending order. It fails when the
	// stored order is no longer pending.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its business identifier.
	Get(ctx context.Context, id string) (*order.Order, error)

	// ListPending returns every pending order joined with its route, most
	// valuable first. Rows are locked FOR UPDATE inside a transaction.
	ListPending(ctx context.Context) ([]order.RoutedOrder, error)
}
