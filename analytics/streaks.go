package analytics

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/portfolio/journal"
)

// Streak is a maximal run of consecutive losing trades.
type Streak struct {
	Count   int     `json:"count"`
	LossSum float64 `json:"loss_sum"`
}

// LossStreaks scans profits once. A streak opens on a loss that follows a
// non-negative profit (or the start) and closes on the next profit >= 0.
func LossStreaks(profits []float64) []Streak {
	out := []Streak{}
	var (
		cur  Streak
		loss decimal.Decimal
	)
	for _, p := range profits {
		if p < 0 {
			cur.Count++
			loss = loss.Add(dec(p))
			continue
		}
		if cur.Count > 0 {
			cur.LossSum = loss.InexactFloat64()
			out = append(out, cur)
		}
		cur, loss = Streak{}, decimal.Zero
	}
	if cur.Count > 0 {
		cur.LossSum = loss.InexactFloat64()
		out = append(out, cur)
	}
	return out
}

type StreakStats struct {
	MaxStreakLen    int     `json:"max_streak_len"`
	WorstStreakLoss float64 `json:"worst_streak_loss"`
	StreakCount     int     `json:"streak_count"`
	AvgStreakLoss   float64 `json:"avg_streak_loss"`
}

// SummarizeStreaks reports the longest streak, the lowest loss sum, the
// number of streaks and their mean loss. The worst streak is the first one
// holding the minimum loss sum.
func SummarizeStreaks(streaks []Streak) StreakStats {
	st := StreakStats{StreakCount: len(streaks)}
	if len(streaks) == 0 {
		return st
	}

	worst := 0
	total := decimal.Zero
	for i, s := range streaks {
		if s.Count > st.MaxStreakLen {
			st.MaxStreakLen = s.Count
		}
		if s.LossSum < streaks[worst].LossSum {
			worst = i
		}
		total = total.Add(dec(s.LossSum))
	}
	st.WorstStreakLoss = streaks[worst].LossSum
	st.AvgStreakLoss = total.InexactFloat64() / float64(len(streaks))
	return st
}

// RiskInsight is the streak profile of one group.
type RiskInsight struct {
	Key string `json:"key"`
	StreakStats
}

// RiskInsights computes streak statistics per group over time-ordered trades,
// riskiest first: longest streak, then lowest worst loss, then first seen.
func RiskInsights(records []journal.TradeRecord, g GroupBy) []RiskInsight {
	out := []RiskInsight{}
	for _, grp := range groupRecords(ordered(Trades(records)), g) {
		out = append(out, RiskInsight{
			Key:         grp.key,
			StreakStats: SummarizeStreaks(LossStreaks(profits(grp.recs))),
		})
	}
	slices.SortStableFunc(out, func(a, b RiskInsight) int {
		switch {
		case a.MaxStreakLen != b.MaxStreakLen:
			return b.MaxStreakLen - a.MaxStreakLen
		case a.WorstStreakLoss < b.WorstStreakLoss:
			return -1
		case a.WorstStreakLoss > b.WorstStreakLoss:
			return 1
		}
		return 0
	})
	return out
}

// CurrentLossStreak counts the losses at the end of profits.
func CurrentLossStreak(profits []float64) int {
	n := 0
	for i := len(profits) - 1; i >= 0 && profits[i] < 0; i-- {
		n++
	}
	return n
}

func profits(records []journal.TradeRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Profit
	}
	return out
}
