package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"dispatchsim/internal/core/application/usecases/queries"

	"github.com/spf13/cobra"
)

func newHistoryCommand(cfgFile *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the most recent simulation runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			query, err := queries.NewGetSimulationHistoryQuery(limit)
			if err != nil {
				return err
			}

			rt, err := bootstrap(ctx, *cfgFile)
			if err != nil {
				return err
			}
			defer rt.close()

			runs, err := queries.NewGetSimulationHistoryQueryHandler(rt.db).Handle(ctx, query)
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), runs)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", queries.DefaultHistoryLimit, "number of runs to list")
	return cmd
}

func printHistory(w io.Writer, runs []queries.SimulationRunSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tDRIVERS\tSTART\tASSIGNED\tON TIME\tEFFICIENCY\tPROFIT")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%d\t%d\t%.2f\t%.2f\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.AvailableDrivers, r.RouteStartTime,
			r.OrdersAssigned, r.OnTimeDeliveries, r.EfficiencyScore, r.OverallProfit)
	}
	return tw.Flush()
}
