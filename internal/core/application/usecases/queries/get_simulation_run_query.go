package queries

import (
	"errors"

	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/pkg/guard"
)

var (
	ErrGetSimulationRunQueryIsNotConstructed = errors.New(
		"GetSimulationRunQuery must be created via NewGetSimulationRunQuery constructor",
	)
)

// GetSimulationRunQuery loads one run with its full snapshot.
type GetSimulationRunQuery struct {
	runID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetSimulationRunQuery(runID kernel.UUID) (GetSimulationRunQuery, error) {
	if err := runID.Validate(); err != nil {
		return GetSimulationRunQuery{}, err
	}
	return GetSimulationRunQuery{runID: runID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSimulationRunQuery) Validate() error {
	return q.guard.Validate(ErrGetSimulationRunQueryIsNotConstructed)
}

func (q GetSimulationRunQuery) RunID() kernel.UUID {
	return q.runID
}
