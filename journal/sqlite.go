package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/fillpnl/ledger"
)

// SQLite is a Journal backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens the database at path and creates the schema if needed.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// RecordTrade inserts t, replacing any trade with the same id. Undated
// times are stored as NULL.
func (j *SQLite) RecordTrade(t ledger.RealizedTrade) error {
	t = withID(t)
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO trades
		(trade_id, symbol, quantity, open_price, close_price,
		 open_time, open_offset, open_date, trade_time, trade_offset, trade_date, pnl)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Symbol, t.Quantity, t.OpenPrice, t.ClosePrice,
		nullTime(t.OpenTime), offset(t.OpenTime), t.OpenDate(),
		nullTime(t.TradeTime), offset(t.TradeTime), t.TradeDate(),
		t.PnL,
	)
	return err
}

// Close closes the database.
func (j *SQLite) Close() error {
	return j.db.Close()
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: !t.IsZero()}
}

func offset(t time.Time) int {
	_, off := t.Zone()
	return off
}

// restore puts a UTC time read back from the database into its original
// offset.
func restore(t sql.NullTime, off int) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	if off == 0 {
		return t.Time.UTC()
	}
	return t.Time.In(time.FixedZone("", off))
}
