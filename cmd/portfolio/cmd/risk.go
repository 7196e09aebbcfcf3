package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rustyeddy/portfolio/analytics"
	"github.com/rustyeddy/portfolio/report"
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Loss streak profile per group",
	Long: `Scan each group's trades in time order for runs of consecutive losses
and print the longest run, the number of runs and the worst and average
run loss. The riskiest groups come first.

Examples:
  portfolio risk
  portfolio risk --by instrument`,
	Args: cobra.NoArgs,
	RunE: runRisk,
}

var riskBy string

func init() {
	rootCmd.AddCommand(riskCmd)
	riskCmd.Flags().StringVar(&riskBy, "by", "strategy", "group by strategy, instrument or account")
}

func runRisk(cmd *cobra.Command, args []string) error {
	by, err := analytics.ParseGroupBy(riskBy)
	if err != nil {
		return err
	}
	f, err := filter()
	if err != nil {
		return err
	}

	insights := engine.RiskInsights(cmd.Context(), f, by)
	out := cmd.OutOrStdout()
	if ok, err := printJSON(out, insights); ok {
		return err
	}
	report.PrintWindow(out, f.Window)
	report.PrintRisk(out, by, insights)
	return nil
}
