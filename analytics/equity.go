package analytics

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/portfolio/journal"
)

type EquityPoint struct {
	Time             time.Time `json:"time"`
	CumulativeProfit float64   `json:"cumulative_profit"`
}

// EquityCurve is the running profit of the trade rows in event-time order.
// Rows without an event time are left out.
func EquityCurve(records []journal.TradeRecord) []EquityPoint {
	return EquityCurveFrom(records, 0)
}

// EquityCurveFrom is EquityCurve offset by a starting balance.
func EquityCurveFrom(records []journal.TradeRecord, baseline float64) []EquityPoint {
	out := []EquityPoint{}
	run := dec(baseline)
	for _, r := range ordered(Trades(records)) {
		if r.EventTime == nil {
			continue
		}
		run = run.Add(dec(r.Profit))
		out = append(out, EquityPoint{Time: *r.EventTime, CumulativeProfit: run.InexactFloat64()})
	}
	return out
}

// Values returns the cumulative profit column of a curve.
func Values(curve []EquityPoint) []float64 {
	out := make([]float64, len(curve))
	for i, p := range curve {
		out[i] = p.CumulativeProfit
	}
	return out
}

// StartingEquity is the account balance at windowStart: the first deposit
// plus every profit, ledger entries included, recorded strictly before
// windowStart. Unlike a plain "deposit + profit before start" sum, the
// deposit row is not counted a second time when it precedes windowStart.
func StartingEquity(all []journal.TradeRecord, windowStart time.Time) float64 {
	deposit := firstDeposit(all)

	total := decimal.Zero
	if deposit >= 0 {
		total = dec(all[deposit].Profit)
	}
	for i, r := range all {
		if i == deposit || r.EventTime == nil {
			continue
		}
		if r.EventTime.Before(windowStart) {
			total = total.Add(dec(r.Profit))
		}
	}
	return total.InexactFloat64()
}

// firstDeposit is the index of the first "Deposit" row, -1 when none.
func firstDeposit(all []journal.TradeRecord) int {
	for i, r := range all {
		if strings.EqualFold(strings.TrimSpace(r.RecordType), "deposit") {
			return i
		}
	}
	return -1
}

// DailyPoint is the net profit of one UTC calendar day.
type DailyPoint struct {
	Day    time.Time `json:"day"`
	Profit float64   `json:"profit"`
}

// DailyProfit sums trade profit per UTC day, oldest first.
func DailyProfit(records []journal.TradeRecord) []DailyPoint {
	return daily(Trades(records))
}

// daily sums the profit of every timed record per UTC day, oldest first.
func daily(records []journal.TradeRecord) []DailyPoint {
	out := []DailyPoint{}
	var run decimal.Decimal
	for _, r := range ordered(records) {
		if r.EventTime == nil {
			continue
		}
		day := truncateDay(*r.EventTime)
		if n := len(out); n > 0 && out[n-1].Day.Equal(day) {
			run = run.Add(dec(r.Profit))
			out[n-1].Profit = run.InexactFloat64()
			continue
		}
		run = dec(r.Profit)
		out = append(out, DailyPoint{Day: day, Profit: run.InexactFloat64()})
	}
	return out
}

// WindowEquity is the account equity at the end of every active day inside
// w, starting from StartingEquity at the window start. Deposits and
// withdrawals inside w move the equity like trades do; the first deposit is
// already part of the starting balance.
func WindowEquity(all []journal.TradeRecord, w Window) []EquityPoint {
	deposit := firstDeposit(all)
	var in []journal.TradeRecord
	for i, r := range all {
		if i != deposit && r.EventTime != nil && w.Contains(r.EventTime) {
			in = append(in, r)
		}
	}

	run := dec(StartingEquity(all, w.Start))
	out := []EquityPoint{}
	for _, d := range daily(in) {
		run = run.Add(dec(d.Profit))
		out = append(out, EquityPoint{Time: d.Day, CumulativeProfit: run.InexactFloat64()})
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
