package journal

const Schema = `
CREATE TABLE IF NOT EXISTS export_runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	strategy_id TEXT NOT NULL,
	account_label TEXT NOT NULL,
	instrument TEXT NOT NULL,
	record_type TEXT NOT NULL,
	open_time DATETIME,
	close_time DATETIME,
	event_time DATETIME,
	profit REAL NOT NULL,
	origin TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	run_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	equity REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_event_time ON trades(event_time);
CREATE INDEX IF NOT EXISTS idx_equity_time ON equity(time);
`
