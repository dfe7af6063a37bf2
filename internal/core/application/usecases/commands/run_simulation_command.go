package commands

import (
	"errors"
	"fmt"

	"dispatchsim/internal/core/domain/model/simulation"
	"dispatchsim/internal/pkg/guard"
)

var ErrRunSimulationCommandIsNotConstructed = errors.New(
	"RunSimulationCommand must be created via NewRunSimulationCommand constructor",
)

// RunSimulationCommand requests one allocation run over the current
// drivers and pending orders.
//
// Example:
//
//	cmd, err := NewRunSimulationCommand(3, "09:00", 8)
//	if errors.Is(err, ErrInvalidSimulationInput) {
//	    return err
//	}
//	run, err := handler.Handle(ctx, cmd)
type RunSimulationCommand struct {
	params simulation.Parameters

	guard guard.ConstructorGuard
}

// NewRunSimulationCommand validates the run parameters. Every validation
// failure matches ErrInvalidSimulationInput.
func NewRunSimulationCommand(availableDrivers int, routeStartTime string, maxHoursPerDriver float64) (RunSimulationCommand, error) {
	params, err := simulation.NewParameters(availableDrivers, routeStartTime, maxHoursPerDriver)
	if err != nil {
		return RunSimulationCommand{}, fmt.Errorf("%w: %w", ErrInvalidSimulationInput, err)
	}

	return RunSimulationCommand{
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c RunSimulationCommand) Validate() error {
	return c.guard.Validate(ErrRunSimulationCommandIsNotConstructed)
}

func (c RunSimulationCommand) Parameters() simulation.Parameters {
	return c.params
}
