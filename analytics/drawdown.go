package analytics

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/portfolio/journal"
)

// DrawdownStats describes the declines of an equity series from its
// running peak. Series holds current minus peak for every point (<= 0).
type DrawdownStats struct {
	Series         []float64 `json:"series"`
	Max            float64   `json:"max_drawdown"`
	RecoveryFactor float64   `json:"recovery_factor"`
}

// Drawdown scans equity once. The peak starts at the first value and the
// recovery factor uses last minus first as the total profit.
func Drawdown(equity []float64) DrawdownStats {
	st := DrawdownStats{Series: make([]float64, len(equity))}
	if len(equity) == 0 {
		return st
	}

	peak := equity[0]
	for i, v := range equity {
		if v > peak {
			peak = v
		}
		dd := v - peak
		st.Series[i] = dd
		if dd < st.Max {
			st.Max = dd
		}
	}
	st.RecoveryFactor = RecoveryFactor(equity[len(equity)-1]-equity[0], st.Max)
	return st
}

// MaxDrawdown is the most negative point of Drawdown(equity).Series, 0 when
// the series never declines.
func MaxDrawdown(equity []float64) float64 {
	return Drawdown(equity).Max
}

// RecoveryFactor is total / |maxDD|. It is 0 when there was no drawdown or
// the total is not a profit.
func RecoveryFactor(total, maxDD float64) float64 {
	if maxDD == 0 || total <= 0 {
		return 0
	}
	return total / math.Abs(maxDD)
}

// cumulative returns the running profit total over records in the given order.
func cumulative(records []journal.TradeRecord) []float64 {
	out := make([]float64, len(records))
	run := decimal.Zero
	for i, r := range records {
		run = run.Add(dec(r.Profit))
		out[i] = run.InexactFloat64()
	}
	return out
}
