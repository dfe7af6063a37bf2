package queries

import (
	"context"

	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/simulation"
)

// SimulationRunReader is the read side of ports.SimulationRunRepository.
type SimulationRunReader interface {
	Get(ctx context.Context, id kernel.UUID) (*simulation.Run, error)
}

// GetSimulationRunQueryHandler decodes the stored snapshot through the
// repository instead of duplicating its jsonb mapping.
type GetSimulationRunQueryHandler struct {
	runs SimulationRunReader
}

func NewGetSimulationRunQueryHandler(runs SimulationRunReader) GetSimulationRunQueryHandler {
	return GetSimulationRunQueryHandler{runs: runs}
}

// Handle returns errs.ErrObjectNotFound for an unknown id.
func (h GetSimulationRunQueryHandler) Handle(ctx context.Context, query GetSimulationRunQuery) (*simulation.Run, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.runs.Get(ctx, query.RunID())
}
