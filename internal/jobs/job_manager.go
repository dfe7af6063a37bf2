package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	simulationJob *SimulationJob
	logger        *slog.Logger
}

// NewJobManager builds the scheduled jobs. An empty schedule spec disables
// the simulation job and StartAll becomes a no-op.
func NewJobManager(runner SimulationRunner, schedule SimulationSchedule, logger *slog.Logger) (*JobManager, error) {
	jm := &JobManager{logger: logger}
	if schedule.Spec == "" {
		return jm, nil
	}

	job, err := NewSimulationJob(runner, schedule, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to configure simulation job: %w", err)
	}
	jm.simulationJob = job
	return jm, nil
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if jm.simulationJob == nil {
		return nil
	}
	if err := jm.simulationJob.Start(); err != nil {
		return fmt.Errorf("failed to start simulation job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.simulationJob != nil {
		jm.simulationJob.Stop()
	}
}

// Enabled reports whether any job is configured.
func (jm *JobManager) Enabled() bool {
	return jm.simulationJob != nil
}
