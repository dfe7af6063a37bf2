package ports

import (
	"context"

	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/simulation"
)

// SimulationRunRepository stores the audit record of committed runs.
// Runs are append-only.
type SimulationRunRepository interface {
	Add(ctx context.Context, run *simulation.Run) error
	Get(ctx context.Context, id kernel.UUID) (*simulation.Run, error)

	// ListRecent returns up to limit runs, newest first.
	ListRecent(ctx context.Context, limit int) ([]*simulation.Run, error)
}
