package ports

import (
	"context"

	"dispatchsim/internal/core/domain/model/route"
)

// RouteRepository stores the immutable delivery routes.
type RouteRepository interface {
	Add(ctx context.Context, r route.Route) error
	Get(ctx context.Context, id string) (route.Route, error)
}
