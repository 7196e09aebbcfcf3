package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rustyeddy/portfolio/report"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the portfolio headline numbers",
	Long: `Print trade counts, win rate, net profit and the best and worst
strategy and symbol of the selected records.

Examples:
  portfolio summary
  portfolio summary --from 2024-01-01 --to 2024-03-31
  portfolio summary --account MT4-Live --json`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	f, err := filter()
	if err != nil {
		return err
	}

	s := engine.Summary(cmd.Context(), f)
	out := cmd.OutOrStdout()
	if ok, err := printJSON(out, s); ok {
		return err
	}
	report.PrintWindow(out, f.Window)
	report.PrintSummary(out, s)
	return nil
}
