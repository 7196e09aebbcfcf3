package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/portfolio/internal/id"
)

// SQLite exports canonical records into a SQLite file. Every journal
// opened gets its own run id so repeated exports into one file stay apart.
type SQLite struct {
	db    *sql.DB
	runID string
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	j := &SQLite{db: db, runID: id.New()}
	if _, err := db.Exec(`INSERT INTO export_runs (run_id, created) VALUES (?, ?)`,
		j.runID, time.Now().UTC()); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

// RunID returns the id stamped on every row written by this journal.
func (j *SQLite) RunID() string {
	return j.runID
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(run_id, strategy_id, account_label, instrument, record_type, open_time, close_time, event_time, profit, origin)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.runID, t.StrategyID, t.AccountLabel, t.Instrument, t.RecordType,
		nullTime(t.OpenTime), nullTime(t.CloseTime), nullTime(t.EventTime), t.Profit, t.Origin,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity (run_id, time, equity)
		VALUES (?, ?, ?)`,
		j.runID, e.Time.UTC(), e.Equity,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
