package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatchsim/internal/core/application/usecases/commands"
	"dispatchsim/internal/core/domain/model/simulation"

	"github.com/robfig/cron/v3"
)

// SimulationRunner executes one allocation run.
type SimulationRunner interface {
	Handle(ctx context.Context, cmd commands.RunSimulationCommand) (*simulation.Run, error)
}

// SimulationSchedule configures the periodic run.
type SimulationSchedule struct {
	Spec              string
	AvailableDrivers  int
	RouteStartTime    string
	MaxHoursPerDriver float64
	Timeout           time.Duration
}

// SimulationJob runs the allocation engine on a cron schedule with fixed
// parameters. Rejections (no pending orders, not enough drivers) are expected
// between batches and logged at debug level.
type SimulationJob struct {
	runner   SimulationRunner
	schedule SimulationSchedule
	cmd      commands.RunSimulationCommand
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSimulationJob validates the configured parameters once so a bad
// schedule fails at startup rather than on every tick.
func NewSimulationJob(runner SimulationRunner, schedule SimulationSchedule, logger *slog.Logger) (*SimulationJob, error) {
	cmd, err := commands.NewRunSimulationCommand(
		schedule.AvailableDrivers,
		schedule.RouteStartTime,
		schedule.MaxHoursPerDriver,
	)
	if err != nil {
		return nil, err
	}
	if schedule.Timeout <= 0 {
		schedule.Timeout = 30 * time.Second
	}

	return &SimulationJob{
		runner:   runner,
		schedule: schedule,
		cmd:      cmd,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "simulation_job"),
	}, nil
}

// Start registers the schedule and starts the cron loop.
func (j *SimulationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule.Spec, j.RunOnce); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Simulation job started", "schedule", j.schedule.Spec)
	return nil
}

// RunOnce performs a single scheduled run.
func (j *SimulationJob) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), j.schedule.Timeout)
	defer cancel()

	run, err := j.runner.Handle(ctx, j.cmd)
	if err != nil {
		if commands.IsRejection(err) {
			j.logger.DebugContext(ctx, "Scheduled simulation skipped", "reason", err.Error())
			return
		}
		j.logger.ErrorContext(ctx, "Scheduled simulation failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Scheduled simulation committed",
		"run_id", run.ID().String(),
		"orders_assigned", run.KPIs().OrdersAssigned,
	)
}

// Stop stops the cron loop and waits for a running tick to finish.
func (j *SimulationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Simulation job stopped")
}
