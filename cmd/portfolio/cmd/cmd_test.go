package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/portfolio/analytics"
)

const header = "Ticket;EA_Name;Symbol;Type;TimeOpen;TimeClose;Profit\n"

// fixture writes one account with two history files and a config pointing
// at it, and returns the config path.
func fixture(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	data := filepath.Join(dir, "live")
	require.NoError(t, os.Mkdir(data, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(data, "Scalper_History.csv"), []byte(header+
		"0;;;Deposit;2024.01.01 00:00:00;;1000\n"+
		"1;Scalper;EURUSD;BUY;2024.01.02 09:00:00;2024.01.02 10:00:00;10\n"+
		"2;Scalper;EURUSD;SELL;2024.01.03 09:00:00;2024.01.03 10:00:00;-4\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(data, "Grid_History.csv"), []byte(header+
		"3;Grid;GBPUSD;BUY;2024.01.04 09:00:00;2024.01.04 10:00:00;3\n"), 0o644))

	cfgPath := filepath.Join(dir, "portfolio.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"sources:\n  - name: Live\n    path: live\n    enabled: true\n    delimiter: \";\"\nlog:\n  level: error\n"), 0o644))
	return cfgPath
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI once with fresh flags and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSummaryCommand(t *testing.T) {
	cfgPath := fixture(t)

	out, err := execute(t, "summary", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Trades:        3\n")
	assert.Contains(t, out, "Net P/L:       9.00\n")
	assert.Contains(t, out, "Best Strategy: Scalper (6.00)\n")
}

func TestSummaryWindow(t *testing.T) {
	cfgPath := fixture(t)

	out, err := execute(t, "summary", "--config", cfgPath, "--from", "2024-01-03")
	require.NoError(t, err)
	assert.Contains(t, out, "Period:        2024-01-03 .. now\n")
	assert.Contains(t, out, "Trades:        2\n")
	assert.Contains(t, out, "Net P/L:       -1.00\n")

	_, err = execute(t, "summary", "--config", cfgPath, "--from", "03/01/2024")
	assert.ErrorContains(t, err, "--from")

	_, err = execute(t, "summary", "--config", cfgPath, "--from", "2024-02-01", "--to", "2024-01-01")
	assert.ErrorContains(t, err, "is before")
}

func TestBreakdownJSON(t *testing.T) {
	cfgPath := fixture(t)

	out, err := execute(t, "breakdown", "--config", cfgPath, "--by", "symbol", "--json")
	require.NoError(t, err)

	var stats []analytics.GroupStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	require.Len(t, stats, 2)
	assert.Equal(t, "EURUSD", stats[0].Key)
	assert.Equal(t, 6.0, stats[0].TotalProfit)
	assert.Equal(t, "GBPUSD", stats[1].Key)

	_, err = execute(t, "breakdown", "--config", cfgPath, "--by", "weekday")
	assert.ErrorContains(t, err, "unknown grouping")
}

func TestEquityCommand(t *testing.T) {
	cfgPath := fixture(t)

	out, err := execute(t, "equity", "--config", cfgPath, "--from", "2024-01-03", "--baseline", "--json")
	require.NoError(t, err)

	var curve []analytics.EquityPoint
	require.NoError(t, json.Unmarshal([]byte(out), &curve))
	assert.Equal(t, []float64{1006, 1009}, analytics.Values(curve))
}

func TestEquityDaily(t *testing.T) {
	cfgPath := fixture(t)

	out, err := execute(t, "equity", "--config", cfgPath, "--daily")
	require.NoError(t, err)
	assert.Contains(t, out, "Daily Profit")
	assert.Contains(t, out, "2024-01-03         -4.00          6.00\n")

	out, err = execute(t, "equity", "--config", cfgPath, "--from", "2024-01-03", "--daily", "--baseline", "--json")
	require.NoError(t, err)

	var curve []analytics.EquityPoint
	require.NoError(t, json.Unmarshal([]byte(out), &curve))
	assert.Equal(t, []float64{1006, 1009}, analytics.Values(curve))
}

func TestTradesCommand(t *testing.T) {
	cfgPath := fixture(t)

	out, err := execute(t, "trades", "--config", cfgPath, "--limit", "2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "** Grid: GBPUSD BUY\n"))
	assert.Contains(t, out, "** Scalper: EURUSD SELL\n")
	assert.NotContains(t, out, "EURUSD BUY")

	out, err = execute(t, "trades", "--config", cfgPath, "--strategy", "Scalper", "--json")
	require.NoError(t, err)
	var recs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	assert.Len(t, recs, 2)

	_, err = execute(t, "trades", "--config", cfgPath, "--instrument", "XAUUSD")
	assert.ErrorIs(t, err, analytics.ErrNotFound)
}

func TestRiskCommand(t *testing.T) {
	cfgPath := fixture(t)

	out, err := execute(t, "risk", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Loss Streaks by strategy")
	assert.Regexp(t, `(?m)^Scalper\s+1\s+1\s+-4\.00\s+-4\.00$`, out)
}

func TestDetailCommand(t *testing.T) {
	cfgPath := fixture(t)

	out, err := execute(t, "detail", "strategy", "Scalper", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, " strategy: Scalper\n")
	assert.Contains(t, out, "Breakdown by instrument")

	_, err = execute(t, "detail", "strategy", "Nope", "--config", cfgPath)
	require.ErrorIs(t, err, analytics.ErrNotFound)
	assert.ErrorContains(t, err, "known: Grid, Scalper")

	_, err = execute(t, "detail", "strategy", "--config", cfgPath)
	assert.Error(t, err)
}

func TestExportCSV(t *testing.T) {
	cfgPath := fixture(t)
	dir := t.TempDir()
	trades := filepath.Join(dir, "trades.csv")
	equity := filepath.Join(dir, "equity.csv")

	out, err := execute(t, "export", "--config", cfgPath, "--format", "csv", "--trades", trades, "--equity", equity)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 4 records")
	assert.Contains(t, out, "Exported 3 equity points")

	data, err := os.ReadFile(trades)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 5)

	data, err = os.ReadFile(equity)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 4)
}

func TestExportSQLite(t *testing.T) {
	cfgPath := fixture(t)
	db := filepath.Join(t.TempDir(), "portfolio.db")

	out, err := execute(t, "export", "--config", cfgPath, "--format", "sqlite", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 4 records to "+db)

	_, err = os.Stat(db)
	assert.NoError(t, err)

	_, err = execute(t, "export", "--config", cfgPath, "--format", "xlsx")
	assert.ErrorContains(t, err, "unknown export format")
}

func TestReportOrg(t *testing.T) {
	cfgPath := fixture(t)
	orgPath := filepath.Join(t.TempDir(), "review.org")

	out, err := execute(t, "report", "--config", cfgPath, "--org", "-o", orgPath, "--recent", "2", "--title", "Live")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote report: "+orgPath)

	data, err := os.ReadFile(orgPath)
	require.NoError(t, err)
	org := string(data)
	assert.Contains(t, org, "* REPORT: Live\n")
	assert.Contains(t, org, ":TRADES:      3\n")
	assert.Contains(t, org, "| Scalper | 2 | 6.00 |")
	assert.Contains(t, org, "** Grid: GBPUSD BUY\n")
}

func TestReportText(t *testing.T) {
	cfgPath := fixture(t)

	out, err := execute(t, "report", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Portfolio Summary")
	assert.Contains(t, out, "Breakdown by strategy")
	assert.Contains(t, out, "Breakdown by instrument")
	assert.Contains(t, out, "Loss Streaks by strategy")
}

func TestCheckCommand(t *testing.T) {
	cfgPath := fixture(t)

	out, err := execute(t, "check", "--config", cfgPath, "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, "No duplicates found.")

	// the same trade exported twice
	data := filepath.Join(filepath.Dir(cfgPath), "live")
	require.NoError(t, os.WriteFile(filepath.Join(data, "Copy_History.csv"), []byte(header+
		"3;Grid;GBPUSD;BUY;2024.01.04 09:00:00;2024.01.04 10:00:00;3\n"), 0o644))

	out, err = execute(t, "check", "--config", cfgPath, "--strict")
	assert.ErrorContains(t, err, "1 duplicate groups")
	assert.Contains(t, out, "x2")
}

func TestSourcesCommand(t *testing.T) {
	cfgPath := fixture(t)

	out, err := execute(t, "sources", "--config", cfgPath, "--metrics")
	require.NoError(t, err)
	assert.Regexp(t, `(?m)^Live\s+enabled`, out)
	assert.Contains(t, out, "Records:       4\n")
	assert.Contains(t, out, "portfolio_loader_files_loaded_total 2\n")
	assert.Contains(t, out, "portfolio_loader_records_total 4\n")
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")

	out, err := execute(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created example configuration")

	out, err = execute(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "Source: MT4-Live (enabled)")
	assert.Contains(t, out, "Cache: 300s TTL, 100 entries")

	require.NoError(t, os.WriteFile(path, []byte("cache:\n  ttl_seconds: -1\n"), 0o644))
	_, err = execute(t, "config", "validate", "-f", path)
	assert.ErrorContains(t, err, "validation failed")
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources:\n  - name: x\n"), 0o644))

	_, err := execute(t, "summary", "--config", path)
	assert.ErrorContains(t, err, "path is required")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "portfolio version "+version)
}
