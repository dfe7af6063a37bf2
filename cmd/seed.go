package cmd

import (
	"time"

	"dispatchsim/internal/seed"

	"github.com/spf13/cobra"
)

func newSeedCommand(cfgFile *string) *cobra.Command {
	opts := seed.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate demo routes, drivers and pending orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
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

			opts.Day = time.Now().UTC()
			seeder := seed.NewSeeder(
				app.CreateCreateDriverCommandHandler(),
				app.CreateCreateRouteCommandHandler(),
				app.CreateCreateOrderCommandHandler(),
				cmd.ErrOrStderr(),
			)
			res, err := seeder.Seed(ctx, opts)
			if err != nil {
				return err
			}

			rt.logger.InfoContext(ctx, "demo data created",
				"routes", res.Routes,
				"drivers", res.Drivers,
				"orders", res.Orders,
			)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Routes, "routes", opts.Routes, "number of routes")
	cmd.Flags().IntVar(&opts.Drivers, "drivers", opts.Drivers, "number of drivers")
	cmd.Flags().IntVar(&opts.Orders, "orders", opts.Orders, "number of pending orders")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed; 0 picks one from the clock")
	return cmd
}
