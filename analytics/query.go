package analytics

import (
	"slices"
	"time"

	"github.com/rustyeddy/portfolio/journal"
)

// DefaultRecent is the RecentTrades limit used for non-positive limits.
const DefaultRecent = 20

// RecentTrades returns up to limit timed trade rows, newest first.
func RecentTrades(records []journal.TradeRecord, limit int) []journal.TradeRecord {
	if limit <= 0 {
		limit = DefaultRecent
	}

	out := []journal.TradeRecord{}
	trades := ordered(Trades(records))
	for i := len(trades) - 1; i >= 0 && len(out) < limit; i-- {
		if trades[i].EventTime == nil {
			continue
		}
		out = append(out, trades[i])
	}
	return out
}

func Strategies(records []journal.TradeRecord) []string {
	return distinct(records, func(r journal.TradeRecord) string { return r.StrategyID })
}

func Instruments(records []journal.TradeRecord) []string {
	return distinct(records, func(r journal.TradeRecord) string { return r.Instrument })
}

func Accounts(records []journal.TradeRecord) []string {
	return distinct(records, func(r journal.TradeRecord) string { return r.AccountLabel })
}

// distinct returns the sorted non-empty values of key over records.
func distinct(records []journal.TradeRecord, key func(journal.TradeRecord) string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, r := range records {
		k := key(r)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Duplicate is a set of records sharing one identity (account, event time,
// profit), typically the same trade present in overlapping exports.
type Duplicate struct {
	Account   string    `json:"account"`
	EventTime time.Time `json:"event_time"`
	Profit    float64   `json:"profit"`
	Count     int       `json:"count"`
	Origins   []string  `json:"origins"`
}

// Duplicates reports identity collisions among timed records, in order of
// first appearance. It only reports; nothing is removed.
func Duplicates(records []journal.TradeRecord) []Duplicate {
	index := map[string]int{}
	all := []Duplicate{}
	for _, r := range records {
		if r.EventTime == nil {
			continue
		}
		k := r.Key()
		i, ok := index[k]
		if !ok {
			i = len(all)
			index[k] = i
			all = append(all, Duplicate{Account: r.AccountLabel, EventTime: *r.EventTime, Profit: r.Profit})
		}
		all[i].Count++
		all[i].Origins = append(all[i].Origins, r.Origin)
	}

	out := []Duplicate{}
	for _, d := range all {
		if d.Count > 1 {
			out = append(out, d)
		}
	}
	return out
}
