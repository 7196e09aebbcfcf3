package journal

import (
	"fmt"
	"time"
)

// TradeRecord is the canonical row every export format is normalized into.
type TradeRecord struct {
	StrategyID   string     `json:"strategy_id"`
	AccountLabel string     `json:"account_label"`
	Instrument   string     `json:"instrument"`
	RecordType   string     `json:"record_type"`
	OpenTime     *time.Time `json:"open_time"`
	CloseTime    *time.Time `json:"close_time"`
	EventTime    *time.Time `json:"event_time"`
	Profit       float64    `json:"profit"`

	// Origin is the file name the record was read from.
	Origin string `json:"origin,omitempty"`
}

// SetTimes assigns open and close times and derives EventTime from them.
func (t *TradeRecord) SetTimes(open, close *time.Time) {
	t.OpenTime = open
	t.CloseTime = close
	t.EventTime = close
	if t.EventTime == nil {
		t.EventTime = open
	}
}

// Key is the record identity (account, event time, profit) used to spot duplicates.
func (t TradeRecord) Key() string {
	ts := "-"
	if t.EventTime != nil {
		ts = t.EventTime.UTC().Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("%s|%s|%g", t.AccountLabel, ts, t.Profit)
}

// EquitySnapshot is one point of an exported equity curve.
type EquitySnapshot struct {
	Time   time.Time
	Equity float64
}

// Journal receives canonical records and equity points for export.
type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}
