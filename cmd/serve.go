package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpin "dispatchsim/internal/adapters/in/http"
	"dispatchsim/internal/adapters/out/postgres"
	"dispatchsim/internal/jobs"
	"dispatchsim/internal/observability"

	"github.com/spf13/cobra"
)

func newServeCommand(cfgFile *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run scheduled simulations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, *cfgFile, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "migrate the schema before serving")
	return cmd
}

func serve(ctx context.Context, cfgFile string, migrate bool) error {
	rt, err := bootstrap(ctx, cfgFile)
	if err != nil {
		return err
	}
	defer rt.close()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     rt.cfg.TracingEnabled,
		ServiceName: "dispatchsim",
		SampleRatio: rt.cfg.TracingSampleRatio,
	}, rt.logger)
	if err != nil {
		return err
	}
	defer observability.ShutdownWithTimeout(context.WithoutCancel(ctx), shutdownTracing, rt.logger)

	if migrate {
		if err := postgres.Migrate(rt.db.WithContext(ctx)); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	app, err := NewCompositionRoot(ctx, rt.cfg, rt.db, rt.logger, nil)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	runSimulation, err := app.CreateRunSimulationCommandHandler()
	if err != nil {
		return err
	}

	jobManager, err := jobs.NewJobManager(runSimulation, jobs.SimulationSchedule{
		Spec:              rt.cfg.SimulationSchedule,
		AvailableDrivers:  rt.cfg.SimulationScheduleDrivers,
		RouteStartTime:    rt.cfg.SimulationScheduleStart,
		MaxHoursPerDriver: rt.cfg.SimulationScheduleMaxHours,
		Timeout:           rt.cfg.SimulationTimeout,
	}, rt.logger)
	if err != nil {
		return err
	}
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	server := httpin.NewServer(httpin.Handlers{
		RunSimulation:     runSimulation,
		CreateDriver:      app.CreateCreateDriverCommandHandler(),
		CreateRoute:       app.CreateCreateRouteCommandHandler(),
		CreateOrder:       app.CreateCreateOrderCommandHandler(),
		SimulationHistory: app.CreateGetSimulationHistoryQueryHandler(),
		SimulationRun:     app.CreateGetSimulationRunQueryHandler(),
		Drivers:           app.CreateGetAllDriversQueryHandler(),
		PendingOrders:     app.CreateGetPendingOrdersQueryHandler(),
	}, app.Metrics().Handler())
	e := httpin.NewEcho(server, rt.cfg.Debug)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", rt.cfg.HTTPPort))
	}()
	rt.logger.InfoContext(ctx, "http server started", "port", rt.cfg.HTTPPort)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	rt.logger.InfoContext(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
