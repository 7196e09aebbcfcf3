package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/portfolio/analytics"
	"github.com/rustyeddy/portfolio/journal"
	"github.com/rustyeddy/portfolio/report"
)

var detailCmd = &cobra.Command{
	Use:   "detail <strategy|instrument|account> <key>",
	Short: "Full profile of one strategy, symbol or account",
	Long: `Print statistics, drawdown, loss streaks and a second-level breakdown
for a single key.

Examples:
  portfolio detail strategy Scalper
  portfolio detail instrument EURUSD --from 2024-01-01`,
	Args: cobra.ExactArgs(2),
	RunE: runDetail,
}

func init() {
	rootCmd.AddCommand(detailCmd)
}

func runDetail(cmd *cobra.Command, args []string) error {
	by, err := analytics.ParseGroupBy(args[0])
	if err != nil {
		return err
	}
	f, err := filter()
	if err != nil {
		return err
	}

	d, err := engine.Detail(cmd.Context(), f, by, args[1])
	if errors.Is(err, analytics.ErrNotFound) {
		return fmt.Errorf("%w (known: %s)", err, strings.Join(known(engine.Dataset(cmd.Context(), f), by), ", "))
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if ok, err := printJSON(out, d); ok {
		return err
	}
	report.PrintWindow(out, f.Window)
	report.PrintDetail(out, d)
	return nil
}

func known(recs []journal.TradeRecord, by analytics.GroupBy) []string {
	switch by {
	case analytics.GroupByInstrument:
		return analytics.Instruments(recs)
	case analytics.GroupByAccount:
		return analytics.Accounts(recs)
	default:
		return analytics.Strategies(recs)
	}
}
