package simulation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatchsim/internal/pkg/errs"
	"dispatchsim/internal/pkg/guard"
)

const (
	// MaxHoursPerDriverLimit is the longest shift a run may allow.
	MaxHoursPerDriverLimit = 24.0

	routeStartLayout = "15:04"
)

var ErrParametersAreNotConstructed = errors.New("Parameters must be created via NewParameters constructor")

// Parameters are the inputs of a simulation run.
type Parameters struct {
	availableDrivers  int
	routeStartTime    string
	maxHoursPerDriver float64

	guard guard.ConstructorGuard
}

// NewParameters validates run inputs. routeStartTime must be "HH:MM"
// between 00:00 and 23:59; a single-digit hour is accepted and normalised.
func NewParameters(availableDrivers int, routeStartTime string, maxHoursPerDriver float64) (Parameters, error) {
	var problems []error

	if availableDrivers <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"available drivers", fmt.Errorf("%d is not greater than 0", availableDrivers)))
	}

	start, err := time.Parse(routeStartLayout, strings.TrimSpace(routeStartTime))
	if err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"route start time", fmt.Errorf("%q is not in HH:MM format", routeStartTime)))
	}

	if !(maxHoursPerDriver > 0 && maxHoursPerDriver <= MaxHoursPerDriverLimit) {
		problems = append(problems, errs.NewValueIsOutOfRangeError(
			"max hours per driver", maxHoursPerDriver, 1, MaxHoursPerDriverLimit))
	}

	if err = errors.Join(problems...); err != nil {
		return Parameters{}, err
	}

	return Parameters{
		availableDrivers:  availableDrivers,
		routeStartTime:    start.Format(routeStartLayout),
		maxHoursPerDriver: maxHoursPerDriver,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (p Parameters) Validate() error {
	return p.guard.Validate(ErrParametersAreNotConstructed)
}

func (p Parameters) AvailableDrivers() int {
	return p.availableDrivers
}

// RouteStartTime returns the normalised "HH:MM" start time.
func (p Parameters) RouteStartTime() string {
	return p.routeStartTime
}

func (p Parameters) MaxHoursPerDriver() float64 {
	return p.maxHoursPerDriver
}

// RouteStartOn returns the route start time on the calendar day of day,
// in day's location.
func (p Parameters) RouteStartOn(day time.Time) time.Time {
	start, _ := time.Parse(routeStartLayout, p.routeStartTime)
	return time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, day.Location())
}
