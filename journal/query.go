package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/fillpnl/ledger"
)

const selectTrades = `
	SELECT trade_id, symbol, quantity, open_price, close_price,
	       open_time, open_offset, trade_time, trade_offset, pnl
	FROM trades`

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(s scanner) (ledger.RealizedTrade, error) {
	var rec ledger.RealizedTrade
	var open, closed sql.NullTime
	var openOff, closedOff int
	err := s.Scan(
		&rec.ID,
		&rec.Symbol,
		&rec.Quantity,
		&rec.OpenPrice,
		&rec.ClosePrice,
		&open,
		&openOff,
		&closed,
		&closedOff,
		&rec.PnL,
	)
	if err != nil {
		return ledger.RealizedTrade{}, err
	}
	rec.OpenTime = restore(open, openOff)
	rec.TradeTime = restore(closed, closedOff)
	return rec, nil
}

// GetTrade returns a single trade by id.
func (j *SQLite) GetTrade(tradeID string) (ledger.RealizedTrade, error) {
	rec, err := scanTrade(j.db.QueryRow(selectTrades+` WHERE trade_id = ?`, tradeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.RealizedTrade{}, fmt.Errorf("trade %q not found", tradeID)
		}
		return ledger.RealizedTrade{}, err
	}
	return rec, nil
}

// ListTradesClosedBetween returns trades whose trade_time is within
// [start, end), oldest first.
func (j *SQLite) ListTradesClosedBetween(start, end time.Time) ([]ledger.RealizedTrade, error) {
	return j.list(selectTrades+`
		WHERE trade_time >= ? AND trade_time < ?
		ORDER BY trade_time ASC, trade_id ASC`, start.UTC(), end.UTC())
}

// ListTradesOnDate returns trades whose closing day, as labeled in the
// reports, is date (YYYY-MM-DD or "unknown").
func (j *SQLite) ListTradesOnDate(date string) ([]ledger.RealizedTrade, error) {
	return j.list(selectTrades+`
		WHERE trade_date = ?
		ORDER BY trade_time ASC, trade_id ASC`, date)
}

// ListTrades returns every journaled trade. Undated trades come first.
func (j *SQLite) ListTrades() ([]ledger.RealizedTrade, error) {
	return j.list(selectTrades + ` ORDER BY trade_time ASC, trade_id ASC`)
}

func (j *SQLite) list(query string, args ...any) ([]ledger.RealizedTrade, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.RealizedTrade
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
