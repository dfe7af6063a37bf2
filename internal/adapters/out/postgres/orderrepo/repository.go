package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"dispatchsim/internal/adapters/out/postgres/routerepo"
	"dispatchsim/internal/core/domain/model/order"
	"dispatchsim/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrOrderIsNotPending is returned by Update when another writer assigned
// the order first.
var ErrOrderIsNotPending = errors.New("order is no longer pending")

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit("Route").Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the assignment of an order. The row must still be pending,
// otherwise ErrOrderIsNotPending is returned and nothing is written.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("order_id = ? AND status = ?", dto.OrderID, order.Pending.String()).
		Select("status", "assigned_driver_id", "fuel_cost", "late_penalty", "high_value_bonus",
			"profit", "is_on_time", "actual_delivery_time", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrOrderIsNotPending, dto.OrderID)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListPending locks the pending order rows FOR UPDATE and loads their routes.
func (r *GormOrderRepository) ListPending(ctx context.Context) ([]order.RoutedOrder, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Route").
		Where("status = ?", order.Pending.String()).
		Order("value_rs DESC, delivery_timestamp ASC, order_id ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]order.RoutedOrder, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		rt, err := routerepo.ToDomain(dto.Route)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", dto.OrderID, err)
		}
		orders = append(orders, order.RoutedOrder{Order: o, Route: rt})
	}

	return orders, nil
}
