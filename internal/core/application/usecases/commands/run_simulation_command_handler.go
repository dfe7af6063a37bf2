package commands

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"dispatchsim/internal/core/domain/model/order"
	"dispatchsim/internal/core/domain/model/simulation"
	"dispatchsim/internal/core/domain/services"
	"dispatchsim/internal/core/ports"
	"dispatchsim/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "dispatchsim/commands"

// Run outcomes reported to the SimulationRecorder.
const (
	OutcomeCommitted = "committed"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// SimulationRecorder receives run measurements.
type SimulationRecorder interface {
	RunFinished(outcome string, duration time.Duration)
	AllocationMeasured(assigned, unassigned int, efficiencyScore float64)
}

// writeTracker is implemented by units of work that record the aggregates
// written through their repositories.
type writeTracker interface {
	TrackedAggregateIDs() []string
}

type RunSimulationOption func(*RunSimulationCommandHandler)

// WithEventPublisher announces every committed run.
func WithEventPublisher(p ports.SimulationEventPublisher) RunSimulationOption {
	return func(h *RunSimulationCommandHandler) { h.publisher = p }
}

// WithSnapshotArchiver copies every committed run to an archive.
func WithSnapshotArchiver(a ports.SnapshotArchiver) RunSimulationOption {
	return func(h *RunSimulationCommandHandler) { h.archiver = a }
}

func WithRecorder(r SimulationRecorder) RunSimulationOption {
	return func(h *RunSimulationCommandHandler) { h.recorder = r }
}

func WithLogger(l *slog.Logger) RunSimulationOption {
	return func(h *RunSimulationCommandHandler) { h.logger = l.With("component", "run-simulation") }
}

// WithTracerProvider replaces the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) RunSimulationOption {
	return func(h *RunSimulationCommandHandler) { h.tracer = tp.Tracer(tracerName) }
}

// WithClock replaces time.Now for run timestamps.
func WithClock(now func() time.Time) RunSimulationOption {
	return func(h *RunSimulationCommandHandler) { h.now = now }
}

// RunSimulationCommandHandler orchestrates one allocation run:
//
//	Validating -> Selecting -> Allocating -> Evaluating -> Persisting -> Committed
//
// Candidate rows are read FOR UPDATE inside the run's transaction, so two
// runs never allocate the same driver or order. Nothing is written before
// Persisting; a failure there rolls back every order update, driver update
// and the run record.
//
// Publishing and archiving happen after commit. Their failures are logged
// and never undo the run.
//
// Example:
//
//	handler, _ := NewRunSimulationCommandHandler(uowFactory, services.UniformNoise{})
//	cmd, _ := NewRunSimulationCommand(3, "09:00", 8)
//	run, err := handler.Handle(ctx, cmd)
//	switch {
//	case IsRejection(err):
//	    // bad request, nothing changed
//	case errors.Is(err, ErrPersistenceFailure):
//	    // rolled back, retry later
//	}
type RunSimulationCommandHandler struct {
	uowFactory SimulationUoWFactory
	selector   services.CandidateSelector
	allocator  services.Allocator
	evaluator  *services.OutcomeEvaluator

	publisher ports.SimulationEventPublisher
	archiver  ports.SnapshotArchiver
	recorder  SimulationRecorder
	logger    *slog.Logger
	now       func() time.Time
	tracer    trace.Tracer
}

func NewRunSimulationCommandHandler(
	uowFactory SimulationUoWFactory,
	noise services.NoiseSource,
	opts ...RunSimulationOption,
) (*RunSimulationCommandHandler, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}

	evaluator, err := services.NewOutcomeEvaluator(noise)
	if err != nil {
		return nil, err
	}

	h := &RunSimulationCommandHandler{
		uowFactory: uowFactory,
		selector:   services.NewCandidateSelector(),
		allocator:  services.NewAllocator(),
		evaluator:  evaluator,
		logger:     slog.Default().With("component", "run-simulation"),
		now:        func() time.Time { return time.Now().UTC() },
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

// Handle executes the run and returns the committed SimulationRun. A failed
// run ends in the Failed stage; the stage it failed in is logged and set on
// the span as simulation.failed_stage.
// Errors match one of ErrInvalidSimulationInput, ErrInsufficientDrivers,
// ErrNoAvailableDrivers, ErrNoPendingOrders or ErrPersistenceFailure.
func (h *RunSimulationCommandHandler) Handle(ctx context.Context, cmd RunSimulationCommand) (*simulation.Run, error) {
	started := time.Now()
	ctx, span := h.tracer.Start(ctx, "RunSimulation")
	defer span.End()

	run, written, stage, err := h.execute(ctx, cmd, span)

	outcome := OutcomeCommitted
	if err != nil {
		outcome = OutcomeFailed
		if IsRejection(err) {
			outcome = OutcomeRejected
		}
	}
	if h.recorder != nil {
		h.recorder.RunFinished(outcome, time.Since(started))
	}

	if err != nil {
		span.AddEvent(simulation.Failed.String())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(
			attribute.String("simulation.stage", simulation.Failed.String()),
			attribute.String("simulation.failed_stage", stage.String()),
		)
		h.logger.WarnContext(ctx, "simulation run failed",
			"stage", simulation.Failed.String(),
			"failed_stage", stage.String(),
			"outcome", outcome,
			"error", err,
		)
		return nil, err
	}

	span.SetAttributes(attribute.String("simulation.stage", stage.String()))

	h.afterCommit(ctx, run, written)
	return run, nil
}

func (h *RunSimulationCommandHandler) execute(
	ctx context.Context,
	cmd RunSimulationCommand,
	span trace.Span,
) (*simulation.Run, []string, simulation.Stage, error) {
	stage := simulation.Validating
	enter := func(next simulation.Stage) {
		stage = next
		span.AddEvent(next.String())
	}
	enter(simulation.Validating)

	if err := cmd.Validate(); err != nil {
		return nil, nil, stage, fmt.Errorf("%w: %w", ErrInvalidSimulationInput, err)
	}
	params := cmd.Parameters()
	span.SetAttributes(
		attribute.Int("simulation.available_drivers", params.AvailableDrivers()),
		attribute.String("simulation.route_start_time", params.RouteStartTime()),
		attribute.Float64("simulation.max_hours_per_driver", params.MaxHoursPerDriver()),
	)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, stage, NewPersistenceError(stage, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	orderRepo := uow.OrderRepository()

	available, err := driverRepo.CountAvailable(ctx)
	if err != nil {
		return nil, nil, stage, NewPersistenceError(stage, err)
	}
	if err = h.selector.CheckCapacity(params.AvailableDrivers(), available); err != nil {
		return nil, nil, stage, err
	}

	enter(simulation.Selecting)
	candidates, err := driverRepo.ListAvailable(ctx, params.MaxHoursPerDriver(), params.AvailableDrivers())
	if err != nil {
		return nil, nil, stage, NewPersistenceError(stage, err)
	}
	drivers, err := h.selector.SelectDrivers(candidates, params.MaxHoursPerDriver(), params.AvailableDrivers())
	if err != nil {
		return nil, nil, stage, err
	}

	pending, err := orderRepo.ListPending(ctx)
	if err != nil {
		return nil, nil, stage, NewPersistenceError(stage, err)
	}
	orders, err := h.selector.SelectOrders(pending)
	if err != nil {
		return nil, nil, stage, err
	}

	enter(simulation.Allocating)
	plan, err := h.allocator.Allocate(drivers, orders, params.MaxHoursPerDriver())
	if err != nil {
		return nil, nil, stage, err
	}

	enter(simulation.Evaluating)
	outcomes := h.evaluator.EvaluateAll(plan.Assignments)
	kpis, snapshot := services.Summarize(plan, outcomes, params.MaxHoursPerDriver())

	createdAt := h.now()
	run, err := simulation.NewRun(params, kpis, snapshot, createdAt)
	if err != nil {
		return nil, nil, stage, err
	}

	enter(simulation.Persisting)
	if err = h.apply(ctx, driverRepo, orderRepo, plan, outcomes, params.RouteStartOn(createdAt)); err != nil {
		return nil, nil, stage, err
	}
	if err = uow.SimulationRunRepository().Add(ctx, run); err != nil {
		return nil, nil, stage, NewPersistenceError(stage, err)
	}

	var written []string
	if t, ok := uow.(writeTracker); ok {
		written = t.TrackedAggregateIDs()
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, nil, stage, NewPersistenceError(stage, err)
	}

	enter(simulation.Committed)
	span.SetAttributes(
		attribute.String("simulation.run_id", run.ID().String()),
		attribute.Int("simulation.written_aggregates", len(written)),
	)
	return run, written, stage, nil
}

// apply mutates the allocated aggregates and writes them. Each driver gets
// its booked hours in a single TakeWork call.
func (h *RunSimulationCommandHandler) apply(
	ctx context.Context,
	driverRepo ports.DriverRepository,
	orderRepo ports.OrderRepository,
	plan services.AllocationPlan,
	outcomes []simulation.OrderOutcome,
	routeStart time.Time,
) error {
	for i, a := range plan.Assignments {
		o := outcomes[i]
		delivered := routeStart.Add(time.Duration(math.Round(o.ActualMinutes)) * time.Minute)

		if err := a.Order.Order.Assign(order.Outcome{
			DriverID:           o.DriverID,
			FuelCost:           o.FuelCost,
			LatePenalty:        o.LatePenalty,
			HighValueBonus:     o.HighValueBonus,
			Profit:             o.Profit,
			IsOnTime:           o.IsOnTime,
			ActualDeliveryTime: delivered,
		}); err != nil {
			return fmt.Errorf("assign order %s: %w", o.OrderID, err)
		}

		if err := orderRepo.Update(ctx, a.Order.Order); err != nil {
			return NewPersistenceError(simulation.Persisting, err)
		}
	}

	for _, load := range plan.Loads {
		if len(load.OrderIDs) == 0 {
			continue
		}

		if err := load.Driver.TakeWork(load.BookedHours()); err != nil {
			return fmt.Errorf("book hours for driver %s: %w", load.Driver.ID(), err)
		}

		if err := driverRepo.Update(ctx, load.Driver); err != nil {
			return NewPersistenceError(simulation.Persisting, err)
		}
	}

	return nil
}

func (h *RunSimulationCommandHandler) afterCommit(ctx context.Context, run *simulation.Run, written []string) {
	kpis := run.KPIs()
	unassigned := len(run.Snapshot().UnassignedOrders)

	if h.recorder != nil {
		h.recorder.AllocationMeasured(kpis.OrdersAssigned, unassigned, kpis.EfficiencyScore)
	}

	h.logger.InfoContext(ctx, "simulation run committed",
		"run_id", run.ID().String(),
		"orders_assigned", kpis.OrdersAssigned,
		"unassigned_orders", unassigned,
		"efficiency_score", kpis.EfficiencyScore,
		"overall_profit", kpis.OverallProfit,
		"written_aggregates", len(written),
	)

	if h.publisher != nil {
		if err := h.publisher.PublishSimulationCompleted(ctx, run); err != nil {
			h.logger.ErrorContext(ctx, "failed to publish simulation completed event",
				"run_id", run.ID().String(),
				"error", err,
			)
		}
	}

	if h.archiver != nil {
		if err := h.archiver.Archive(ctx, run); err != nil {
			h.logger.ErrorContext(ctx, "failed to archive simulation snapshot",
				"run_id", run.ID().String(),
				"error", err,
			)
		}
	}
}
