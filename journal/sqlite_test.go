package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/fillpnl/ledger"
	"github.com/rustyeddy/fillpnl/orders"
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

func sampleTrade(id string, closed time.Time, pnl float64) ledger.RealizedTrade {
	return ledger.RealizedTrade{
		ID:         id,
		Symbol:     "TSLA240119C00250000",
		Quantity:   2,
		OpenPrice:  1.25,
		ClosePrice: 1.75,
		PnL:        pnl,
		TradeTime:  closed,
		OpenTime:   closed.Add(-24 * time.Hour),
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='trades'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "trades", name)
}

func TestSQLiteGetTrade(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	closed := time.Date(2024, 4, 10, 15, 30, 0, 0, time.UTC)
	want := sampleTrade("T123", closed, 100)
	require.NoError(t, j.RecordTrade(want))

	got, err := j.GetTrade("T123")
	require.NoError(t, err)
	assert.Equal(t, want.Symbol, got.Symbol)
	assert.InDelta(t, want.Quantity, got.Quantity, 1e-9)
	assert.InDelta(t, want.OpenPrice, got.OpenPrice, 1e-9)
	assert.InDelta(t, want.ClosePrice, got.ClosePrice, 1e-9)
	assert.InDelta(t, want.PnL, got.PnL, 1e-9)
	assert.True(t, want.TradeTime.Equal(got.TradeTime))
	assert.True(t, want.OpenTime.Equal(got.OpenTime))
}

func TestSQLiteGetTradeNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetTrade("nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteUndatedTrade(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	require.NoError(t, j.RecordTrade(ledger.RealizedTrade{ID: "U1", Symbol: "SPY", Quantity: 1, PnL: -5}))

	got, err := j.GetTrade("U1")
	require.NoError(t, err)
	assert.True(t, got.TradeTime.IsZero())
	assert.Equal(t, ledger.UnknownDate, got.TradeDate())
}

func TestSQLiteAssignsIDs(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	closed := time.Date(2024, 4, 10, 15, 30, 0, 0, time.UTC)
	recorded, err := RecordAll(j, []ledger.RealizedTrade{
		sampleTrade("", closed, 1),
		sampleTrade("", closed.Add(time.Hour), 2),
	})
	require.NoError(t, err)
	require.Len(t, recorded, 2)
	assert.Len(t, recorded[0].ID, 26)
	assert.Less(t, recorded[0].ID, recorded[1].ID)

	all, err := j.ListTrades()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, recorded[0].ID, all[0].ID)
}

func TestListTradesClosedBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, h := range []int{1, 5, 10, 24} {
		tr := sampleTrade(string(rune('A'+i)), base.Add(time.Duration(h)*time.Hour), float64(h))
		require.NoError(t, j.RecordTrade(tr))
	}
	require.NoError(t, j.RecordTrade(ledger.RealizedTrade{ID: "Z", Symbol: "SPY"}))

	got, err := j.ListTradesClosedBetween(base.Add(3*time.Hour), base.Add(12*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].ID)
	assert.Equal(t, "C", got[1].ID)

	all, err := j.ListTrades()
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "Z", all[0].ID, "undated trades sort first")
}

func fill(side string, qty, price float64, ts string) orders.Order {
	return orders.Order{
		Symbol:     "SPY240119P00470000",
		Side:       side,
		Status:     "Filled",
		Filled:     qty,
		TotalQty:   qty,
		Price:      orders.Ptr(price),
		FilledTime: ts,
	}
}

func TestSQLiteRecordingTwiceKeepsOneCopy(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.db")
	// two identical opening fills close as two distinct trades
	ords := []orders.Order{
		fill("Buy", 1, 2.00, "01/02/2024 10:00:00 EST"),
		fill("Buy", 1, 2.00, "01/02/2024 10:00:00 EST"),
		fill("Sell", 2, 2.50, "01/03/2024 10:00:00 EST"),
	}

	var ids [][]string
	for i := 0; i < 2; i++ {
		res := ledger.ComputeRealizedTrades(ords)
		require.Len(t, res.Trades, 2)

		j, err := NewSQLite(path)
		require.NoError(t, err)
		recorded, err := RecordAll(j, res.Trades)
		require.NoError(t, err)
		require.NoError(t, j.Close())
		ids = append(ids, []string{recorded[0].ID, recorded[1].ID})
	}
	assert.Equal(t, ids[0], ids[1])
	assert.NotEqual(t, ids[0][0], ids[0][1])

	j, err := NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	all, err := j.ListTrades()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSQLiteKeepsReportDay(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	est := time.FixedZone("EST", -5*3600)
	closed := time.Date(2024, 1, 2, 20, 0, 0, 0, est)
	require.NoError(t, j.RecordTrade(sampleTrade("LATE", closed, 25)))
	require.NoError(t, j.RecordTrade(ledger.RealizedTrade{ID: "U1", Symbol: "SPY", Quantity: 1}))

	got, err := j.GetTrade("LATE")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", got.TradeDate())
	assert.Equal(t, "2024-01-01", got.OpenDate())
	assert.True(t, closed.Equal(got.TradeTime))
	_, off := got.TradeTime.Zone()
	assert.Equal(t, -5*3600, off)

	day, err := j.ListTradesOnDate("2024-01-02")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "LATE", day[0].ID)

	next, err := j.ListTradesOnDate("2024-01-03")
	require.NoError(t, err)
	assert.Empty(t, next)

	undated, err := j.ListTradesOnDate(ledger.UnknownDate)
	require.NoError(t, err)
	require.Len(t, undated, 1)
	assert.Equal(t, "U1", undated[0].ID)
}
