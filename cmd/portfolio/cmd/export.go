package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/portfolio/analytics"
	"github.com/rustyeddy/portfolio/journal"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the normalized trade history to CSV or SQLite",
	Long: `Export the selected records and their equity curve.

Formats:
  csv    - trades and equity curve as two CSV files
  sqlite - one SQLite database, each export stamped with a run id

Examples:
  portfolio export --format csv --trades trades.csv --equity equity.csv
  portfolio export --format sqlite --db portfolio.db --from 2024-01-01`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat string
	exportTrades string
	exportEquity string
	exportDB     string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "csv or sqlite (default from config)")
	exportCmd.Flags().StringVar(&exportTrades, "trades", "", "trades CSV path (default from config)")
	exportCmd.Flags().StringVar(&exportEquity, "equity", "", "equity CSV path (default from config)")
	exportCmd.Flags().StringVar(&exportDB, "db", "", "SQLite path (default from config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	f, err := filter()
	if err != nil {
		return err
	}
	recs := engine.Dataset(cmd.Context(), f)
	curve := engine.EquityCurve(cmd.Context(), f, false)

	format := or(exportFormat, cfg.Export.Format)
	out := cmd.OutOrStdout()

	switch format {
	case "csv":
		trades, equity := or(exportTrades, cfg.Export.TradesFile), or(exportEquity, cfg.Export.EquityFile)
		j, err := journal.NewCSV(trades, equity)
		if err != nil {
			return fmt.Errorf("open csv journal: %w", err)
		}
		if err := write(j, recs, curve); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Exported %d records to %s\n", len(recs), trades)
		if equity != "" {
			fmt.Fprintf(out, "✓ Exported %d equity points to %s\n", len(curve), equity)
		}

	case "sqlite":
		path := or(exportDB, cfg.Export.DBPath)
		j, err := journal.NewSQLite(path)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		runID := j.RunID()
		if err := write(j, recs, curve); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Exported %d records to %s (run %s)\n", len(recs), path, runID)

	default:
		return fmt.Errorf("unknown export format %q (want csv or sqlite)", format)
	}
	return nil
}

// write records every trade and equity point and closes j.
func write(j journal.Journal, recs []journal.TradeRecord, curve []analytics.EquityPoint) error {
	for _, r := range recs {
		if err := j.RecordTrade(r); err != nil {
			j.Close()
			return fmt.Errorf("record trade: %w", err)
		}
	}
	for _, p := range curve {
		if err := j.RecordEquity(journal.EquitySnapshot{Time: p.Time, Equity: p.CumulativeProfit}); err != nil {
			j.Close()
			return fmt.Errorf("record equity: %w", err)
		}
	}
	log.Debug().Int("trades", len(recs)).Int("equity", len(curve)).Msg("export written")
	return j.Close()
}

func or(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
