package journal

import (
	"database/sql"
	"time"
)

const tradeColumns = `strategy_id, account_label, instrument, record_type, open_time, close_time, event_time, profit, origin`

// ListTradesBetween returns trades of this run whose event_time is within [start, end).
func (j *SQLite) ListTradesBetween(start, end time.Time) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE run_id = ? AND event_time >= ? AND event_time < ?
		ORDER BY event_time ASC, id ASC`, j.runID, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TradeRecord{}
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountTrades returns how many trades this run has written.
func (j *SQLite) CountTrades() (int, error) {
	var n int
	err := j.db.QueryRow(`SELECT COUNT(*) FROM trades WHERE run_id = ?`, j.runID).Scan(&n)
	return n, err
}

// ListEquity returns the equity points of this run in time order.
func (j *SQLite) ListEquity() ([]EquitySnapshot, error) {
	rows, err := j.db.Query(`
		SELECT time, equity
		FROM equity
		WHERE run_id = ?
		ORDER BY time ASC`, j.runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []EquitySnapshot{}
	for rows.Next() {
		var e EquitySnapshot
		if err := rows.Scan(&e.Time, &e.Equity); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanTrade(rows *sql.Rows) (TradeRecord, error) {
	var (
		rec               TradeRecord
		open, close, evtT sql.NullTime
	)
	err := rows.Scan(
		&rec.StrategyID,
		&rec.AccountLabel,
		&rec.Instrument,
		&rec.RecordType,
		&open,
		&close,
		&evtT,
		&rec.Profit,
		&rec.Origin,
	)
	if err != nil {
		return TradeRecord{}, err
	}
	rec.OpenTime = timePtr(open)
	rec.CloseTime = timePtr(close)
	rec.EventTime = timePtr(evtT)
	return rec, nil
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}
