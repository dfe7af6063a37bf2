package commands

import (
	"errors"

	"dispatchsim/internal/core/domain/model/route"
	"dispatchsim/internal/pkg/guard"
)

var ErrCreateRouteCommandIsNotConstructed = errors.New(
	"CreateRouteCommand must be created via NewCreateRouteCommand constructor",
)

// CreateRouteCommand registers a delivery route. Validation is delegated to
// route.NewRoute so the command always carries a buildable route.
type CreateRouteCommand struct {
	route route.Route

	guard guard.ConstructorGuard
}

func NewCreateRouteCommand(
	routeID string,
	distanceKm float64,
	trafficLevel string,
	baseTimeMinutes int,
) (CreateRouteCommand, error) {
	level, err := route.ParseTrafficLevel(trafficLevel)
	if err != nil {
		return CreateRouteCommand{}, err
	}

	r, err := route.NewRoute(routeID, distanceKm, level, baseTimeMinutes)
	if err != nil {
		return CreateRouteCommand{}, err
	}

	return CreateRouteCommand{route: r, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateRouteCommand) Validate() error {
	return c.guard.Validate(ErrCreateRouteCommandIsNotConstructed)
}

func (c CreateRouteCommand) Route() route.Route {
	return c.route
}
