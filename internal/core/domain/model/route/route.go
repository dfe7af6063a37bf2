// Package route provides the Route value object: a delivery leg with its
// distance, traffic conditions and baseline duration.
package route

import (
	"errors"
	"fmt"
	"strings"

	"dispatchsim/internal/pkg/errs"
	"dispatchsim/internal/pkg/guard"
)

// ErrRouteIsNotConstructed is returned when a Route was not created through NewRoute.
var ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")

// TrafficLevel describes congestion on a route.
type TrafficLevel string

const (
	Low    TrafficLevel = "Low"
	Medium TrafficLevel = "Medium"
	High   TrafficLevel = "High"
)

// ParseTrafficLevel restores a traffic level read from persistence.
func ParseTrafficLevel(s string) (TrafficLevel, error) {
	level := TrafficLevel(s)
	if err := level.Validate(); err != nil {
		return "", err
	}
	return level, nil
}

func (l TrafficLevel) Validate() error {
	switch l {
	case Low, Medium, High:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("traffic level", fmt.Errorf("%q is not Low, Medium or High", string(l)))
	}
}

func (l TrafficLevel) String() string {
	return string(l)
}

// Route is immutable once built.
type Route struct {
	id              string
	distanceKm      float64
	trafficLevel    TrafficLevel
	baseTimeMinutes int

	guard guard.ConstructorGuard
}

// NewRoute validates and builds a route.
//
// Example:
//
//	r, err := route.NewRoute("R1", 12.5, route.High, 45)
func NewRoute(id string, distanceKm float64, trafficLevel TrafficLevel, baseTimeMinutes int) (Route, error) {
	id = strings.TrimSpace(id)

	var problems []error
	if id == "" {
		problems = append(problems, errs.NewValueIsRequiredError("route id"))
	}
	if distanceKm <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"distance km", fmt.Errorf("%v is not greater than 0", distanceKm)))
	}
	if err := trafficLevel.Validate(); err != nil {
		problems = append(problems, err)
	}
	if baseTimeMinutes <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"base time minutes", fmt.Errorf("%d is not greater than 0", baseTimeMinutes)))
	}
	if err := errors.Join(problems...); err != nil {
		return Route{}, err
	}

	return Route{
		id:              id,
		distanceKm:      distanceKm,
		trafficLevel:    trafficLevel,
		baseTimeMinutes: baseTimeMinutes,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (r Route) Validate() error {
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

func (r Route) ID() string {
	return r.id
}

func (r Route) DistanceKm() float64 {
	return r.distanceKm
}

func (r Route) TrafficLevel() TrafficLevel {
	return r.trafficLevel
}

func (r Route) BaseTimeMinutes() int {
	return r.baseTimeMinutes
}
