package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rustyeddy/portfolio/analytics"
	"github.com/rustyeddy/portfolio/report"
)

var equityCmd = &cobra.Command{
	Use:   "equity",
	Short: "Print the cumulative profit curve",
	Long: `Print the running profit of the selected trades in time order.

With --baseline the curve starts from the account equity at the start of
the --from window: the first deposit plus everything booked before it.

With --daily the trades are summed per UTC day; adding --baseline prints
the account equity at the end of each trading day instead.

Examples:
  portfolio equity --strategy Scalper
  portfolio equity --from 2024-02-01 --baseline
  portfolio equity --from 2024-02-01 --daily --baseline`,
	Args: cobra.NoArgs,
	RunE: runEquity,
}

var (
	equityBaseline bool
	equityDaily    bool
)

func init() {
	rootCmd.AddCommand(equityCmd)
	equityCmd.Flags().BoolVar(&equityBaseline, "baseline", false, "start from the account equity at the window start")
	equityCmd.Flags().BoolVar(&equityDaily, "daily", false, "one point per trading day")
}

func runEquity(cmd *cobra.Command, args []string) error {
	f, err := filter()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if equityDaily && !equityBaseline {
		days := analytics.DailyProfit(engine.Dataset(ctx, f))
		if ok, err := printJSON(out, days); ok {
			return err
		}
		report.PrintWindow(out, f.Window)
		report.PrintDaily(out, days)
		return nil
	}

	var curve []analytics.EquityPoint
	if equityDaily {
		curve = analytics.WindowEquity(engine.LoadPortfolio(ctx), f.Window)
	} else {
		curve = engine.EquityCurve(ctx, f, equityBaseline)
	}
	if ok, err := printJSON(out, curve); ok {
		return err
	}
	report.PrintWindow(out, f.Window)
	report.PrintEquity(out, curve)
	return nil
}
