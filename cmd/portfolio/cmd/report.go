package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/portfolio/analytics"
	"github.com/rustyeddy/portfolio/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Full portfolio report as text or Org-mode",
	Long: `Combine the summary, strategy and symbol breakdowns, loss streaks and
duplicate check into one report.

Examples:
  portfolio report
  portfolio report --org -o review.org --recent 10`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

var (
	reportOrg    bool
	reportOutput string
	reportTitle  string
	reportRecent int
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().BoolVar(&reportOrg, "org", false, "write an Org-mode document")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output file (default stdout)")
	reportCmd.Flags().StringVar(&reportTitle, "title", "Portfolio", "report title")
	reportCmd.Flags().IntVar(&reportRecent, "recent", 0, "append this many recent trades to the Org report")
}

func runReport(cmd *cobra.Command, args []string) error {
	f, err := filter()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	p := report.Portfolio{
		Title:    reportTitle,
		Created:  time.Now(),
		LoadID:   engine.LoadReport(ctx).LoadID,
		Window:   f.Window,
		Summary:  engine.Summary(ctx, f),
		Curve:    engine.EquityCurve(ctx, f, false),
		Strategy: engine.Breakdown(ctx, f, analytics.GroupByStrategy),
		Symbols:  engine.Breakdown(ctx, f, analytics.GroupByInstrument),
		Risk:     engine.RiskInsights(ctx, f, analytics.GroupByStrategy),
		Dups:     analytics.Duplicates(engine.Dataset(ctx, f)),
	}
	if reportRecent > 0 {
		p.Recent = analytics.RecentTrades(engine.Dataset(ctx, f), reportRecent)
	}

	out := cmd.OutOrStdout()
	if reportOutput != "" {
		file, err := os.Create(reportOutput)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer file.Close()
		out = file
	}

	if reportOrg {
		if err := report.WriteOrg(out, p); err != nil {
			return fmt.Errorf("write org report: %w", err)
		}
	} else {
		report.PrintWindow(out, p.Window)
		report.PrintSummary(out, p.Summary)
		report.PrintBreakdown(out, analytics.GroupByStrategy, p.Strategy)
		report.PrintBreakdown(out, analytics.GroupByInstrument, p.Symbols)
		report.PrintRisk(out, analytics.GroupByStrategy, p.Risk)
		if len(p.Dups) > 0 {
			report.PrintDuplicates(out, p.Dups)
		}
	}

	if reportOutput != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report: %s\n", reportOutput)
	}
	return nil
}
