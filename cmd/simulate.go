package cmd

import (
	"fmt"
	"io"

	"dispatchsim/internal/core/application/usecases/commands"
	"dispatchsim/internal/core/domain/model/simulation"

	"github.com/spf13/cobra"
)

func newSimulateCommand(cfgFile *string) *cobra.Command {
	var (
		drivers  int
		start    string
		maxHours float64
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one simulation against the current drivers and pending orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			simCmd, err := commands.NewRunSimulationCommand(drivers, start, maxHours)
			if err != nil {
				return err
			}

			rt, err := bootstrap(ctx, *cfgFile)
			if err != nil {
				return err
			}
			defer rt.close()

			app, err := NewCompositionRoot(ctx, rt.cfg, rt.db, rt.logger, nil)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			handler, err := app.CreateRunSimulationCommandHandler()
			if err != nil {
				return err
			}

			run, err := handler.Handle(ctx, simCmd)
			if err != nil {
				return err
			}
			printRun(cmd.OutOrStdout(), run)
			return nil
		},
	}

	cmd.Flags().IntVar(&drivers, "drivers", 3, "number of drivers to use")
	cmd.Flags().StringVar(&start, "start", "09:00", "route start time, HH:MM")
	cmd.Flags().Float64Var(&maxHours, "max-hours", 8, "maximum shift hours per driver")
	return cmd
}

func printRun(w io.Writer, run *simulation.Run) {
	k := run.KPIs()
	fmt.Fprintf(w, "simulation %s committed at %s\n", run.ID(), run.CreatedAt().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  orders assigned:    %d\n", k.OrdersAssigned)
	fmt.Fprintf(w, "  on-time deliveries: %d\n", k.OnTimeDeliveries)
	fmt.Fprintf(w, "  efficiency score:   %.2f%%\n", k.EfficiencyScore)
	fmt.Fprintf(w, "  fuel cost:          %.2f\n", k.TotalFuelCost)
	fmt.Fprintf(w, "  penalties:          %.2f\n", k.TotalPenalties)
	fmt.Fprintf(w, "  bonuses:            %.2f\n", k.TotalBonuses)
	fmt.Fprintf(w, "  overall profit:     %.2f\n", k.OverallProfit)
	if unassigned := run.Snapshot().UnassignedOrders; len(unassigned) > 0 {
		fmt.Fprintf(w, "  unassigned orders:  %d\n", len(unassigned))
	}
}
