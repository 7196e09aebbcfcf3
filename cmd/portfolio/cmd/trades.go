package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/portfolio/analytics"
	"github.com/rustyeddy/portfolio/journal"
)

var tradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "List the most recent trades as Org entries",
	Long: `Print the latest trades, newest first, as Org-mode entries with an
empty Review section for notes.

Examples:
  portfolio trades
  portfolio trades --strategy Scalper --limit 5
  portfolio trades --instrument EURUSD --from 2024-01-15 --to 2024-01-15`,
	Args: cobra.NoArgs,
	RunE: runTrades,
}

var tradesLimit int

func init() {
	rootCmd.AddCommand(tradesCmd)
	tradesCmd.Flags().IntVarP(&tradesLimit, "limit", "n", analytics.DefaultRecent, "number of trades")
}

func runTrades(cmd *cobra.Command, args []string) error {
	f, err := filter()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var recs []journal.TradeRecord
	switch {
	case f.Strategy != "":
		recs, err = engine.StrategyData(ctx, f.Strategy)
	case f.Instrument != "":
		recs, err = engine.InstrumentData(ctx, f.Instrument)
	default:
		recs = engine.LoadPortfolio(ctx)
	}
	if err != nil {
		return err
	}

	recent := analytics.RecentTrades(f.Apply(recs), tradesLimit)
	out := cmd.OutOrStdout()
	if ok, err := printJSON(out, recent); ok {
		return err
	}
	if len(recent) == 0 {
		fmt.Fprintln(out, "No trades.")
		return nil
	}
	fmt.Fprintln(out, journal.FormatTradesOrg(recent))
	return nil
}
