package analytics

import (
	"time"

	"github.com/rustyeddy/portfolio/journal"
)

// Window is a half-open time range [Start, End). A zero bound is open.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DayWindow covers whole UTC days from through to, both inclusive.
func DayWindow(from, to time.Time) Window {
	var w Window
	if !from.IsZero() {
		w.Start = truncateDay(from)
	}
	if !to.IsZero() {
		w.End = truncateDay(to).AddDate(0, 0, 1)
	}
	return w
}

func (w Window) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Contains reports whether t falls inside w. An untimed record is only
// inside the unbounded window.
func (w Window) Contains(t *time.Time) bool {
	if w.IsZero() {
		return true
	}
	if t == nil {
		return false
	}
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && !t.Before(w.End) {
		return false
	}
	return true
}

// Filter narrows a dataset. Empty fields match everything.
type Filter struct {
	Window     Window
	Strategy   string
	Instrument string
	Account    string
}

func (f Filter) IsZero() bool {
	return f.Window.IsZero() && f.Strategy == "" && f.Instrument == "" && f.Account == ""
}

func (f Filter) Match(r journal.TradeRecord) bool {
	switch {
	case f.Strategy != "" && r.StrategyID != f.Strategy:
		return false
	case f.Instrument != "" && r.Instrument != f.Instrument:
		return false
	case f.Account != "" && r.AccountLabel != f.Account:
		return false
	}
	return f.Window.Contains(r.EventTime)
}

// Apply returns the matching records in input order.
func (f Filter) Apply(records []journal.TradeRecord) []journal.TradeRecord {
	out := make([]journal.TradeRecord, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
