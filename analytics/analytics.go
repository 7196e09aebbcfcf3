// Package analytics derives statistics from the canonical dataset. Every
// function is pure: inputs are never modified and returned collections are
// never nil.
package analytics

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/portfolio/journal"
)

// ErrNotFound is returned when a grouping key has no records.
var ErrNotFound = errors.New("not found")

var ledgerTypes = map[string]bool{
	"balance":    true,
	"deposit":    true,
	"withdrawal": true,
	"credit":     true,
	"bonus":      true,
	"correction": true,
}

// IsLedger reports whether r is an account ledger entry rather than a trade.
func IsLedger(r journal.TradeRecord) bool {
	return ledgerTypes[strings.ToLower(strings.TrimSpace(r.RecordType))]
}

// Trades returns the records that are not ledger entries, in input order.
func Trades(records []journal.TradeRecord) []journal.TradeRecord {
	out := make([]journal.TradeRecord, 0, len(records))
	for _, r := range records {
		if !IsLedger(r) {
			out = append(out, r)
		}
	}
	return out
}

// GroupBy selects the dimension records are grouped on.
type GroupBy string

const (
	GroupByStrategy   GroupBy = "strategy"
	GroupByInstrument GroupBy = "instrument"
	GroupByAccount    GroupBy = "account"
)

func ParseGroupBy(s string) (GroupBy, error) {
	switch g := GroupBy(strings.ToLower(strings.TrimSpace(s))); g {
	case GroupByStrategy, GroupByInstrument, GroupByAccount:
		return g, nil
	case "ea":
		return GroupByStrategy, nil
	case "symbol":
		return GroupByInstrument, nil
	}
	return "", fmt.Errorf("unknown grouping %q (want strategy, instrument or account)", s)
}

// Key returns the grouping key of r and whether r takes part in the grouping.
// Records with an empty instrument are left out of instrument groupings.
func (g GroupBy) Key(r journal.TradeRecord) (string, bool) {
	switch g {
	case GroupByInstrument:
		return r.Instrument, r.Instrument != ""
	case GroupByAccount:
		return r.AccountLabel, true
	default:
		return r.StrategyID, true
	}
}

// group is one key's records in input order.
type group struct {
	key  string
	recs []journal.TradeRecord
}

// groupRecords partitions records by g, keeping groups in first-seen order.
func groupRecords(records []journal.TradeRecord, g GroupBy) []*group {
	index := map[string]*group{}
	out := []*group{}
	for _, r := range records {
		k, ok := g.Key(r)
		if !ok {
			continue
		}
		grp, seen := index[k]
		if !seen {
			grp = &group{key: k}
			index[k] = grp
			out = append(out, grp)
		}
		grp.recs = append(grp.recs, r)
	}
	return out
}

// ordered returns a copy of records sorted by event time, nil last.
func ordered(records []journal.TradeRecord) []journal.TradeRecord {
	out := slices.Clone(records)
	if out == nil {
		out = []journal.TradeRecord{}
	}
	journal.SortByEventTime(out)
	return out
}

// sum adds profits exactly in decimal so totals do not drift with order.
func sum(records []journal.TradeRecord) float64 {
	d := decimal.Zero
	for _, r := range records {
		d = d.Add(dec(r.Profit))
	}
	return d.InexactFloat64()
}

func dec(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func mean(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
