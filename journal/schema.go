package journal

// Schema stores times in UTC for ordering together with their original
// UTC offsets. open_date and trade_date hold the day labels the reports use
// ("unknown" for undated trades).
const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	quantity REAL NOT NULL,
	open_price REAL NOT NULL,
	close_price REAL NOT NULL,
	open_time DATETIME,
	open_offset INTEGER NOT NULL DEFAULT 0,
	open_date TEXT NOT NULL,
	trade_time DATETIME,
	trade_offset INTEGER NOT NULL DEFAULT 0,
	trade_date TEXT NOT NULL,
	pnl REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_trade_time ON trades(trade_time);
CREATE INDEX IF NOT EXISTS idx_trades_trade_date ON trades(trade_date);
`
