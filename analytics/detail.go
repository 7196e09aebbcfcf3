package analytics

import (
	"fmt"

	"github.com/rustyeddy/portfolio/journal"
)

// GroupDetail is the full profile of one strategy, instrument or account.
type GroupDetail struct {
	Key              string  `json:"key"`
	By               GroupBy `json:"by"`
	Records          int     `json:"records"`
	TotalTrades      int     `json:"total_trades"`
	TotalProfit      float64 `json:"total_profit"`
	WinRate          float64 `json:"win_rate"`
	ProfitableTrades int     `json:"profitable_trades"`
	LosingTrades     int     `json:"losing_trades"`
	AvgProfit        float64 `json:"avg_profit"`
	AvgLoss          float64 `json:"avg_loss"`
	MaxProfit        float64 `json:"max_profit"`
	MaxLoss          float64 `json:"max_loss"`

	// MaxConsecutiveLosses is the longest streak and LongestStreakLoss the
	// loss of the first streak reaching that length.
	MaxConsecutiveLosses int         `json:"max_consecutive_losses"`
	LongestStreakLoss    float64     `json:"longest_streak_loss"`
	CurrentLossStreak    int         `json:"current_loss_streak"`
	Streaks              StreakStats `json:"streaks"`

	MaxDrawdown    float64       `json:"max_drawdown"`
	RecoveryFactor float64       `json:"recovery_factor"`
	Equity         []EquityPoint `json:"equity"`

	// Breakdown splits the group along a second dimension: instruments for
	// a strategy, strategies for an instrument or account.
	Breakdown []GroupStats `json:"breakdown"`
}

// Detail profiles the records whose g key equals key. A key with no records
// at all, ledger entries included, is ErrNotFound.
func Detail(records []journal.TradeRecord, g GroupBy, key string) (GroupDetail, error) {
	var mine []journal.TradeRecord
	for _, r := range records {
		if k, ok := g.Key(r); ok && k == key {
			mine = append(mine, r)
		}
	}
	if len(mine) == 0 {
		return GroupDetail{}, fmt.Errorf("%s %q: %w", g, key, ErrNotFound)
	}

	s := Summarize(mine)
	d := GroupDetail{
		Key:              key,
		By:               g,
		Records:          len(mine),
		TotalTrades:      s.TotalTrades,
		TotalProfit:      s.TotalProfit,
		WinRate:          s.WinRate,
		ProfitableTrades: s.ProfitableTrades,
		LosingTrades:     s.LosingTrades,
		AvgProfit:        s.AvgProfit,
		AvgLoss:          s.AvgLoss,
		Equity:           EquityCurve(mine),
	}

	trades := ordered(Trades(mine))
	for i, r := range trades {
		if i == 0 || r.Profit > d.MaxProfit {
			d.MaxProfit = r.Profit
		}
		if i == 0 || r.Profit < d.MaxLoss {
			d.MaxLoss = r.Profit
		}
	}

	ps := profits(trades)
	streaks := LossStreaks(ps)
	d.Streaks = SummarizeStreaks(streaks)
	d.CurrentLossStreak = CurrentLossStreak(ps)
	for _, st := range streaks {
		if st.Count > d.MaxConsecutiveLosses {
			d.MaxConsecutiveLosses = st.Count
			d.LongestStreakLoss = st.LossSum
		}
	}

	d.MaxDrawdown = MaxDrawdown(cumulative(trades))
	d.RecoveryFactor = RecoveryFactor(d.TotalProfit, d.MaxDrawdown)

	switch g {
	case GroupByStrategy:
		d.Breakdown = Breakdown(mine, GroupByInstrument)
	default:
		d.Breakdown = Breakdown(mine, GroupByStrategy)
	}
	return d, nil
}
