package analytics

import (
	"slices"

	"github.com/rustyeddy/portfolio/journal"
)

// GroupStats is one row of a breakdown.
type GroupStats struct {
	Key            string  `json:"key"`
	Trades         int     `json:"trades"`
	TotalProfit    float64 `json:"total_profit"`
	AvgProfit      float64 `json:"avg_profit"`
	WinRate        float64 `json:"win_rate"`
	MaxDrawdown    float64 `json:"max_drawdown"`
	RecoveryFactor float64 `json:"recovery_factor"`
}

// Breakdown groups the trade rows of records by g and sorts the groups by
// total profit descending. Groups with equal totals keep first-seen order.
func Breakdown(records []journal.TradeRecord, g GroupBy) []GroupStats {
	out := []GroupStats{}
	for _, grp := range groupRecords(Trades(records), g) {
		out = append(out, groupStats(grp.key, grp.recs))
	}
	slices.SortStableFunc(out, func(a, b GroupStats) int {
		switch {
		case a.TotalProfit > b.TotalProfit:
			return -1
		case a.TotalProfit < b.TotalProfit:
			return 1
		}
		return 0
	})
	return out
}

func groupStats(key string, trades []journal.TradeRecord) GroupStats {
	wins := 0
	for _, r := range trades {
		if r.Profit > 0 {
			wins++
		}
	}

	total := sum(trades)
	dd := MaxDrawdown(cumulative(ordered(trades)))
	return GroupStats{
		Key:            key,
		Trades:         len(trades),
		TotalProfit:    total,
		AvgProfit:      mean(total, len(trades)),
		WinRate:        pct(wins, len(trades)),
		MaxDrawdown:    dd,
		RecoveryFactor: RecoveryFactor(total, dd),
	}
}
