package analytics

import (
	"github.com/rustyeddy/portfolio/journal"
)

// Extreme names the best or worst key of a grouping.
type Extreme struct {
	Key    string  `json:"key"`
	Profit float64 `json:"profit"`
}

// Summary is the portfolio headline. Ledger entries do not count.
type Summary struct {
	TotalTrades      int     `json:"total_trades"`
	TotalProfit      float64 `json:"total_profit"`
	WinRate          float64 `json:"win_rate"`
	ProfitableTrades int     `json:"profitable_trades"`
	LosingTrades     int     `json:"losing_trades"`
	AvgProfit        float64 `json:"avg_profit"`
	AvgLoss          float64 `json:"avg_loss"`
	// Strategies and Instruments count distinct keys over trade rows only.
	Strategies       int     `json:"total_strategies"`
	Instruments      int     `json:"total_instruments"`

	BestStrategy    Extreme `json:"best_strategy"`
	WorstStrategy   Extreme `json:"worst_strategy"`
	BestInstrument  Extreme `json:"best_instrument"`
	WorstInstrument Extreme `json:"worst_instrument"`
}

func Summarize(records []journal.TradeRecord) Summary {
	trades := Trades(records)

	var (
		s            Summary
		wins, losses []journal.TradeRecord
	)
	for _, r := range trades {
		switch {
		case r.Profit > 0:
			wins = append(wins, r)
		case r.Profit < 0:
			losses = append(losses, r)
		}
	}

	s.TotalTrades = len(trades)
	s.TotalProfit = sum(trades)
	s.ProfitableTrades = len(wins)
	s.LosingTrades = len(losses)
	s.WinRate = pct(len(wins), len(trades))
	s.AvgProfit = mean(sum(wins), len(wins))
	s.AvgLoss = mean(sum(losses), len(losses))

	byStrategy := Breakdown(trades, GroupByStrategy)
	byInstrument := Breakdown(trades, GroupByInstrument)
	s.Strategies = len(byStrategy)
	s.Instruments = len(byInstrument)
	s.BestStrategy, s.WorstStrategy = extremes(byStrategy)
	s.BestInstrument, s.WorstInstrument = extremes(byInstrument)
	return s
}

// extremes picks best and worst from a breakdown already sorted by total
// descending; among equal minimums the earliest entry is the worst.
func extremes(stats []GroupStats) (best, worst Extreme) {
	if len(stats) == 0 {
		return Extreme{}, Extreme{}
	}
	best = Extreme{Key: stats[0].Key, Profit: stats[0].TotalProfit}
	worst = best
	for _, st := range stats[1:] {
		if st.TotalProfit < worst.Profit {
			worst = Extreme{Key: st.Key, Profit: st.TotalProfit}
		}
	}
	return best, worst
}
