// Package report renders analytics results for terminals and Org files.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/portfolio/analytics"
	"github.com/rustyeddy/portfolio/cache"
	"github.com/rustyeddy/portfolio/loader"
	"github.com/rustyeddy/portfolio/source"
)

const rule = "--------------------------------------------------"

func header(w io.Writer, title string) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, " %s\n", title)
	fmt.Fprintln(w, "==================================================")
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
}

// PrintWindow writes the period line when w is bounded.
func PrintWindow(w io.Writer, win analytics.Window) {
	if win.IsZero() {
		return
	}
	fmt.Fprintf(w, "Period:        %s .. %s\n", bound(win.Start, "start"), bound(win.End, "now"))
}

func bound(t time.Time, open string) string {
	if t.IsZero() {
		return open
	}
	return t.Format("2006-01-02")
}

func PrintSummary(w io.Writer, s analytics.Summary) {
	header(w, "Portfolio Summary")

	section(w, "Trade Statistics")
	fmt.Fprintf(w, "Trades:        %d\n", s.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", s.ProfitableTrades)
	fmt.Fprintf(w, "Losses:        %d\n", s.LosingTrades)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", s.WinRate)
	fmt.Fprintf(w, "Avg Profit:    %.2f\n", s.AvgProfit)
	fmt.Fprintf(w, "Avg Loss:      %.2f\n", s.AvgLoss)

	section(w, "Performance")
	fmt.Fprintf(w, "Net P/L:       %.2f\n", s.TotalProfit)
	fmt.Fprintf(w, "Strategies:    %d\n", s.Strategies)
	fmt.Fprintf(w, "Instruments:   %d\n", s.Instruments)
	if s.BestStrategy.Key != "" {
		fmt.Fprintf(w, "Best Strategy: %s (%.2f)\n", s.BestStrategy.Key, s.BestStrategy.Profit)
		fmt.Fprintf(w, "Worst Strategy: %s (%.2f)\n", s.WorstStrategy.Key, s.WorstStrategy.Profit)
	}
	if s.BestInstrument.Key != "" {
		fmt.Fprintf(w, "Best Symbol:   %s (%.2f)\n", s.BestInstrument.Key, s.BestInstrument.Profit)
		fmt.Fprintf(w, "Worst Symbol:  %s (%.2f)\n", s.WorstInstrument.Key, s.WorstInstrument.Profit)
	}
	fmt.Fprintln(w)
}

// PrintBreakdown writes one row per group in the order given.
func PrintBreakdown(w io.Writer, by analytics.GroupBy, stats []analytics.GroupStats) {
	header(w, "Breakdown by "+string(by))
	fmt.Fprintln(w)
	if len(stats) == 0 {
		fmt.Fprintln(w, "(no trades)")
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintf(w, "%-20s %7s %12s %10s %8s %12s %9s\n", "KEY", "TRADES", "TOTAL", "AVG", "WIN%", "MAX DD", "RECOVERY")
	for _, st := range stats {
		fmt.Fprintf(w, "%-20s %7d %12.2f %10.2f %8.2f %12.2f %9.2f\n",
			st.Key, st.Trades, st.TotalProfit, st.AvgProfit, st.WinRate, st.MaxDrawdown, st.RecoveryFactor)
	}
	fmt.Fprintln(w)
}

func PrintRisk(w io.Writer, by analytics.GroupBy, insights []analytics.RiskInsight) {
	header(w, "Loss Streaks by "+string(by))
	fmt.Fprintln(w)
	if len(insights) == 0 {
		fmt.Fprintln(w, "(no trades)")
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintf(w, "%-20s %8s %8s %12s %12s\n", "KEY", "LONGEST", "STREAKS", "WORST", "AVG LOSS")
	for _, ri := range insights {
		fmt.Fprintf(w, "%-20s %8d %8d %12.2f %12.2f\n",
			ri.Key, ri.MaxStreakLen, ri.StreakCount, ri.WorstStreakLoss, ri.AvgStreakLoss)
	}
	fmt.Fprintln(w)
}

func PrintEquity(w io.Writer, curve []analytics.EquityPoint) {
	header(w, "Equity Curve")
	fmt.Fprintln(w)
	for _, p := range curve {
		fmt.Fprintf(w, "%s  %12.2f\n", p.Time.Format(time.RFC3339), p.CumulativeProfit)
	}
	if len(curve) > 0 {
		dd := analytics.Drawdown(analytics.Values(curve))
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Max Drawdown:  %.2f\n", dd.Max)
		fmt.Fprintf(w, "Recovery:      %.2f\n", dd.RecoveryFactor)
	}
	fmt.Fprintln(w)
}

// PrintDaily writes each day's profit and the running total.
func PrintDaily(w io.Writer, days []analytics.DailyPoint) {
	header(w, "Daily Profit")
	fmt.Fprintln(w)
	total := 0.0
	for _, d := range days {
		total += d.Profit
		fmt.Fprintf(w, "%s  %12.2f  %12.2f\n", d.Day.Format("2006-01-02"), d.Profit, total)
	}
	fmt.Fprintln(w)
}

func PrintDetail(w io.Writer, d analytics.GroupDetail) {
	header(w, fmt.Sprintf("%s: %s", d.By, d.Key))

	section(w, "Trade Statistics")
	fmt.Fprintf(w, "Records:       %d\n", d.Records)
	fmt.Fprintf(w, "Trades:        %d\n", d.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", d.ProfitableTrades)
	fmt.Fprintf(w, "Losses:        %d\n", d.LosingTrades)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", d.WinRate)
	fmt.Fprintf(w, "Net P/L:       %.2f\n", d.TotalProfit)
	fmt.Fprintf(w, "Avg Profit:    %.2f\n", d.AvgProfit)
	fmt.Fprintf(w, "Avg Loss:      %.2f\n", d.AvgLoss)
	fmt.Fprintf(w, "Best Trade:    %.2f\n", d.MaxProfit)
	fmt.Fprintf(w, "Worst Trade:   %.2f\n", d.MaxLoss)

	section(w, "Risk")
	fmt.Fprintf(w, "Max Drawdown:  %.2f\n", d.MaxDrawdown)
	fmt.Fprintf(w, "Recovery:      %.2f\n", d.RecoveryFactor)
	fmt.Fprintf(w, "Max Losses:    %d (%.2f)\n", d.MaxConsecutiveLosses, d.LongestStreakLoss)
	fmt.Fprintf(w, "Current Run:   %d\n", d.CurrentLossStreak)
	fmt.Fprintf(w, "Streaks:       %d (avg %.2f, worst %.2f)\n",
		d.Streaks.StreakCount, d.Streaks.AvgStreakLoss, d.Streaks.WorstStreakLoss)

	if len(d.Breakdown) > 0 {
		fmt.Fprintln(w)
		by := analytics.GroupByStrategy
		if d.By == analytics.GroupByStrategy {
			by = analytics.GroupByInstrument
		}
		PrintBreakdown(w, by, d.Breakdown)
		return
	}
	fmt.Fprintln(w)
}

func PrintDuplicates(w io.Writer, dups []analytics.Duplicate) {
	header(w, "Duplicate Records")
	fmt.Fprintln(w)
	if len(dups) == 0 {
		fmt.Fprintln(w, "No duplicates found.")
		fmt.Fprintln(w)
		return
	}
	for _, d := range dups {
		fmt.Fprintf(w, "%s  %s  %.2f  x%d\n", d.Account, d.EventTime.Format(time.RFC3339), d.Profit, d.Count)
		for _, o := range d.Origins {
			fmt.Fprintf(w, "- %s\n", o)
		}
	}
	fmt.Fprintln(w)
}

// PrintSources lists the configured sources and, when rep is not nil, what
// the last load did with each of their files.
func PrintSources(w io.Writer, srcs []source.Source, rep *loader.Report) {
	header(w, "Sources")
	fmt.Fprintln(w)
	for _, s := range srcs {
		state := "disabled"
		if s.Enabled {
			state = "enabled"
		}
		fmt.Fprintf(w, "%-16s %-8s %s (%s)\n", s.Label(), state, s.Path, s.Glob())
	}
	if rep == nil {
		fmt.Fprintln(w)
		return
	}

	section(w, "Last Load "+rep.LoadID)
	for _, f := range rep.Files {
		switch {
		case f.Skipped != "":
			fmt.Fprintf(w, "SKIP %-10s %s: %s\n", f.Skipped, f.Path, f.Err)
		case f.Degraded > 0:
			fmt.Fprintf(w, "OK   %5d rows  %s (%d degraded cells)\n", f.Records, f.Path, f.Degraded)
		default:
			fmt.Fprintf(w, "OK   %5d rows  %s\n", f.Records, f.Path)
		}
	}
	fmt.Fprintf(w, "Records:       %d\n", rep.Records)
	fmt.Fprintf(w, "Duration:      %s\n", rep.Duration.Round(time.Millisecond))
	fmt.Fprintln(w)
}

func PrintCacheStats(w io.Writer, st cache.Stats) {
	section(w, "Cache")
	fmt.Fprintf(w, "Entries:       %d/%d\n", st.Size, st.MaxSize)
	fmt.Fprintf(w, "TTL:           %ds\n", st.TTLSeconds())
	fmt.Fprintf(w, "Hits/Misses:   %d/%d\n", st.Hits, st.Misses)
	fmt.Fprintf(w, "Evictions:     %d\n", st.Evictions)
}

func fmtMoney(x float64) string {
	return fmt.Sprintf("%.2f", x)
}
