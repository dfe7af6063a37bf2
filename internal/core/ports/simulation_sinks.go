package ports

import (
	"context"

	"dispatchsim/internal/core/domain/model/simulation"
)

// SimulationEventPublisher announces committed runs to other systems.
type SimulationEventPublisher interface {
	PublishSimulationCompleted(ctx context.Context, run *simulation.Run) error
}

// SnapshotArchiver keeps a copy of each committed run outside the database.
type SnapshotArchiver interface {
	Archive(ctx context.Context, run *simulation.Run) error
}
