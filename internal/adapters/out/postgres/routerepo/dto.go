// Package routerepo persists delivery routes with GORM.
package routerepo

import (
	"time"

	"dispatchsim/internal/core/domain/model/route"
)

// RouteDTO is the routes table row.
type RouteDTO struct {
	RouteID         string  `gorm:"column:route_id;type:varchar(50);primaryKey"`
	DistanceKm      float64 `gorm:"not null"`
	TrafficLevel    string  `gorm:"type:varchar(10);not null"`
	BaseTimeMinutes int     `gorm:"not null"`
	CreatedAt       time.Time
}

func (RouteDTO) TableName() string {
	return "routes"
}

func FromDomain(r route.Route) RouteDTO {
	return RouteDTO{
		RouteID:         r.ID(),
		DistanceKm:      r.DistanceKm(),
		TrafficLevel:    r.TrafficLevel().String(),
		BaseTimeMinutes: r.BaseTimeMinutes(),
	}
}

// ToDomain is shared with the order repository, which loads routes
// together with pending orders.
func ToDomain(dto RouteDTO) (route.Route, error) {
	level, err := route.ParseTrafficLevel(dto.TrafficLevel)
	if err != nil {
		return route.Route{}, err
	}
	return route.NewRoute(dto.RouteID, dto.DistanceKm, level, dto.BaseTimeMinutes)
}
