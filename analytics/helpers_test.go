package analytics

import (
	"time"

	"github.com/rustyeddy/portfolio/journal"
)

var day0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(hours int) *time.Time {
	t := day0.Add(time.Duration(hours) * time.Hour)
	return &t
}

func rec(strategy, instrument, typ string, hour int, profit float64) journal.TradeRecord {
	r := journal.TradeRecord{
		StrategyID:   strategy,
		AccountLabel: "Live",
		Instrument:   instrument,
		RecordType:   typ,
		Profit:       profit,
	}
	if hour >= 0 {
		r.SetTimes(nil, at(hour))
	}
	return r
}

// series builds one strategy's trades an hour apart.
func series(strategy string, profits ...float64) []journal.TradeRecord {
	out := make([]journal.TradeRecord, len(profits))
	for i, p := range profits {
		out[i] = rec(strategy, "EURUSD", "BUY", i+1, p)
	}
	return out
}
