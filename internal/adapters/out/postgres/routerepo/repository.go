package routerepo

import (
	"context"
	"errors"

	"dispatchsim/internal/core/domain/model/route"
	"dispatchsim/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormRouteRepository struct {
	db *gorm.DB
}

func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

func (r *GormRouteRepository) Add(ctx context.Context, rt route.Route) error {
	if err := rt.Validate(); err != nil {
		return err
	}

	dto := FromDomain(rt)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormRouteRepository) Get(ctx context.Context, id string) (route.Route, error) {
	var dto RouteDTO
	if err := r.db.WithContext(ctx).First(&dto, "route_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return route.Route{}, errs.NewObjectNotFoundError("route", id)
		}
		return route.Route{}, err
	}

	return ToDomain(dto)
}
