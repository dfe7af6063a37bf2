// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// Simulation results are stored on the order row itself once it is assigned.
package orderrepo

import (
	"time"

	"dispatchsim/internal/adapters/out/postgres/routerepo"
	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the orders table. Outcome columns are NULL until the
// order is assigned.
type OrderDTO struct {
	OrderID            string             `gorm:"column:order_id;type:varchar(50);primaryKey"`
	ValueRs            float64            `gorm:"not null"`
	RouteID            string             `gorm:"column:route_id;type:varchar(50);not null;index"`
	Route              routerepo.RouteDTO `gorm:"foreignKey:RouteID;references:RouteID"`
	DeliveryTimestamp  time.Time          `gorm:"not null"`
	Status             string             `gorm:"type:varchar(20);not null;index"`
	AssignedDriverID   *uuid.UUID         `gorm:"type:uuid;index"`
	FuelCost           *float64
	LatePenalty        *float64
	HighValueBonus     *float64
	Profit             *float64
	IsOnTime           *bool
	ActualDeliveryTime *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		OrderID:           o.ID(),
		ValueRs:           o.ValueRs(),
		RouteID:           o.RouteID(),
		DeliveryTimestamp: o.DeliveryTimestamp(),
		Status:            o.Status().String(),
	}

	if out := o.Outcome(); out != nil {
		driverID := out.DriverID.Bytes()
		dto.AssignedDriverID = &driverID
		dto.FuelCost = &out.FuelCost
		dto.LatePenalty = &out.LatePenalty
		dto.HighValueBonus = &out.HighValueBonus
		dto.Profit = &out.Profit
		dto.IsOnTime = &out.IsOnTime
		dto.ActualDeliveryTime = &out.ActualDeliveryTime
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var outcome *order.Outcome
	if dto.AssignedDriverID != nil {
		driverID, idErr := kernel.UUIDFromBytes((*dto.AssignedDriverID)[:])
		if idErr != nil {
			return nil, idErr
		}
		outcome = &order.Outcome{
			DriverID:       driverID,
			FuelCost:       deref(dto.FuelCost),
			LatePenalty:    deref(dto.LatePenalty),
			HighValueBonus: deref(dto.HighValueBonus),
			Profit:         deref(dto.Profit),
			IsOnTime:       deref(dto.IsOnTime),
		}
		if dto.ActualDeliveryTime != nil {
			outcome.ActualDeliveryTime = *dto.ActualDeliveryTime
		}
	}

	return order.RestoreOrder(dto.OrderID, dto.ValueRs, dto.RouteID, dto.DeliveryTimestamp, status, outcome)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
