package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('trades','equity','export_runs')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["trades"])
	assert.True(t, found["equity"])
	assert.True(t, found["export_runs"])
}

func TestSQLiteRunRecorded(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	runID := j.RunID()
	assert.Len(t, runID, 26)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var got string
	require.NoError(t, db.QueryRow(`SELECT run_id FROM export_runs`).Scan(&got))
	assert.Equal(t, runID, got)
}

func TestSQLiteRecordTrade(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)

	closeT := time.Date(2024, 1, 2, 4, 5, 6, 0, time.UTC)
	rec := TradeRecord{
		StrategyID:   "Grid",
		AccountLabel: "Live1",
		Instrument:   "EURUSD",
		RecordType:   "BUY",
		Profit:       -12.5,
		Origin:       "Grid_History.csv",
	}
	rec.SetTimes(nil, &closeT)

	require.NoError(t, j.RecordTrade(rec))
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var (
		strategy, account, instrument, recordType, origin string
		openTime, closeTime                               sql.NullTime
		profit                                            float64
	)
	err = db.QueryRow(`
		SELECT strategy_id, account_label, instrument, record_type, open_time, close_time, profit, origin
		FROM trades LIMIT 1`).Scan(
		&strategy, &account, &instrument, &recordType, &openTime, &closeTime, &profit, &origin,
	)
	require.NoError(t, err)

	assert.Equal(t, "Grid", strategy)
	assert.Equal(t, "Live1", account)
	assert.Equal(t, "EURUSD", instrument)
	assert.Equal(t, "BUY", recordType)
	assert.False(t, openTime.Valid)
	require.True(t, closeTime.Valid)
	assert.True(t, closeTime.Time.Equal(closeT))
	assert.InDelta(t, -12.5, profit, 1e-9)
	assert.Equal(t, "Grid_History.csv", origin)
}

func TestSQLiteRecordEquity(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	t0 := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	require.NoError(t, j.RecordEquity(EquitySnapshot{Time: t0.Add(time.Hour), Equity: 1010}))
	require.NoError(t, j.RecordEquity(EquitySnapshot{Time: t0, Equity: 1000}))

	got, err := j.ListEquity()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Time.Equal(t0))
	assert.InDelta(t, 1000.0, got[0].Equity, 1e-9)
	assert.InDelta(t, 1010.0, got[1].Equity, 1e-9)
}

func TestSQLiteBadPath(t *testing.T) {
	t.Parallel()

	_, err := NewSQLite(filepath.Join(t.TempDir(), "missing", "x.db"))
	assert.Error(t, err)
}
