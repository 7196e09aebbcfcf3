package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rustyeddy/portfolio/analytics"
	"github.com/rustyeddy/portfolio/report"
)

var breakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Per strategy, symbol or account statistics",
	Long: `Group the selected trades and print totals, averages, win rate,
maximum drawdown and recovery factor per group, best group first.

Examples:
  portfolio breakdown
  portfolio breakdown --by instrument
  portfolio breakdown --by account --from 2024-01-01`,
	Args: cobra.NoArgs,
	RunE: runBreakdown,
}

var breakdownBy string

func init() {
	rootCmd.AddCommand(breakdownCmd)
	breakdownCmd.Flags().StringVar(&breakdownBy, "by", "strategy", "group by strategy, instrument or account")
}

func runBreakdown(cmd *cobra.Command, args []string) error {
	by, err := analytics.ParseGroupBy(breakdownBy)
	if err != nil {
		return err
	}
	f, err := filter()
	if err != nil {
		return err
	}

	stats := engine.Breakdown(cmd.Context(), f, by)
	out := cmd.OutOrStdout()
	if ok, err := printJSON(out, stats); ok {
		return err
	}
	report.PrintWindow(out, f.Window)
	report.PrintBreakdown(out, by, stats)
	return nil
}
