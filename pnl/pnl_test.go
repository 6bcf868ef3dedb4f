package pnl

import (
	"math"
	"testing"
	"time"

	"github.com/rustyeddy/fillpnl/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 15, 0, 0, 0, time.UTC)
}

func trade(sym string, pnl float64, closed, opened time.Time) ledger.RealizedTrade {
	return ledger.RealizedTrade{
		Symbol:     sym,
		Quantity:   1,
		ClosePrice: 1.5,
		PnL:        pnl,
		TradeTime:  closed,
		OpenTime:   opened,
	}
}

func TestSummarizeDaily(t *testing.T) {
	t.Parallel()

	trades := []ledger.RealizedTrade{
		trade("TSLA240119C00250000", 150, day(3), day(2)),
		trade("SPY", -40, day(2), day(1)),
		trade("TSLA240119C00250000", 0, day(3), day(2)),
		trade("SPY", -10, day(3), day(1)),
		trade("AAPL", 25, time.Time{}, time.Time{}),
	}

	days := SummarizeDaily(trades)
	require.Len(t, days, 3)
	assert.Equal(t, ledger.UnknownDate, days[0].Date)
	assert.Equal(t, "2024-01-02", days[1].Date)
	assert.Equal(t, "2024-01-03", days[2].Date)

	d2 := days[1]
	assert.Equal(t, 0.0, d2.Winners.Total)
	assert.Empty(t, d2.Winners.Lines)
	assert.Equal(t, -40.0, d2.Losers.Total)
	require.Len(t, d2.Losers.Lines, 1)
	assert.Equal(t, "SPY x1 @ 1.5 -$40.00", d2.Losers.Lines[0].Summary)
	assert.Equal(t, "Initiated 2024-01-01", d2.Losers.Lines[0].Initiated)

	d3 := days[2]
	assert.Equal(t, 150.0, d3.Winners.Total)
	require.Len(t, d3.Winners.Lines, 2, "flat trades count as winners")
	assert.Equal(t, "TSLA 2024-01-19 Call 250 x1 @ 1.5 +$150.00", d3.Winners.Lines[0].Summary)
	assert.Equal(t, -10.0, d3.Losers.Total)
	assert.Equal(t, 140.0, d3.Net())

	var sum float64
	for _, d := range days {
		sum += d.Winners.Total + d.Losers.Total
	}
	assert.InDelta(t, Total(trades), sum, 1e-9)
}

func TestSummarizeDailyEmpty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, SummarizeDaily(nil))
}

func TestRoot(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "TSLA", Root("TSLA240119C00250000"))
	assert.Equal(t, "SPY", Root("SPY"))
	assert.Equal(t, "BRK.B", Root("BRK.B250117P00400000"))
	assert.Equal(t, "", Root("123"))
}

func TestSymbolRiskReward(t *testing.T) {
	t.Parallel()

	trades := []ledger.RealizedTrade{
		trade("TSLA240119C00250000", 300, day(2), day(1)),
		trade("TSLA240126C00260000", 100, day(2), day(1)),
		trade("TSLA240119C00250000", -100, day(2), day(1)),
		trade("SPY240119P00450000", 50, day(2), day(1)),
		trade("QQQ240119P00400000", -75, day(2), day(1)),
		trade("IWM", 0, day(2), day(1)),
	}

	rr := SymbolRiskReward(trades)
	assert.InDelta(t, 2.0, rr["TSLA"], 1e-9)
	assert.True(t, math.IsInf(rr["SPY"], 1))
	assert.Equal(t, 0.0, rr["QQQ"])
	assert.Equal(t, 0.0, rr["IWM"])
	_, ok := rr["AAPL"]
	assert.False(t, ok)
}

func TestRR(t *testing.T) {
	t.Parallel()

	assert.True(t, math.IsInf(RR(10, 0), 1))
	assert.Equal(t, 0.0, RR(0, 0))
	assert.Equal(t, 0.0, RR(0, 5))
	assert.InDelta(t, 0.5, RR(5, 10), 1e-12)
}

func TestKelly(t *testing.T) {
	t.Parallel()

	trades := []ledger.RealizedTrade{
		trade("TSLA1", 300, day(2), day(1)),
		trade("TSLA1", -100, day(2), day(1)),
		trade("SPY1", 50, day(2), day(1)),
		trade("SPY1", -50, day(2), day(1)),
	}
	s := Summarize(trades)
	assert.InDelta(t, 0.5, s.WinRate(), 1e-12)

	r, ok := s.AverageRiskReward()
	require.True(t, ok)
	assert.InDelta(t, 2.0, r, 1e-12) // (3 + 1) / 2

	k, ok := s.Kelly()
	require.True(t, ok)
	assert.InDelta(t, 0.25, k, 1e-12)
}

func TestKellyUnavailable(t *testing.T) {
	t.Parallel()

	// only winners: ratio is +Inf and is excluded from the mean
	s := Summarize([]ledger.RealizedTrade{trade("SPY", 10, day(2), day(1))})
	_, ok := s.Kelly()
	assert.False(t, ok)

	_, ok = Summarize(nil).Kelly()
	assert.False(t, ok)
	assert.Equal(t, 0.0, Summarize(nil).WinRate())
}

func TestGrouping(t *testing.T) {
	t.Parallel()

	trades := []ledger.RealizedTrade{
		trade("TSLA240119C00250000", 300, day(2), day(1)),
		trade("TSLA240126C00260000", -100, day(2), day(1)),
		trade("TSLA240119C00250000", 50, day(2), day(1)),
	}
	assert.Equal(t, map[string]float64{
		"TSLA240119C00250000": 350,
		"TSLA240126C00260000": -100,
	}, ByContract(trades))
	assert.Equal(t, map[string]float64{"TSLA": 250}, ByRoot(trades))
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	s := Describe([]float64{5, -2, 3, 3, -2, 0})
	assert.Equal(t, 6, s.Count)
	assert.InDelta(t, 7, s.Total, 1e-12)
	assert.InDelta(t, 7.0/6.0, s.Mean, 1e-12)
	assert.Equal(t, 3.0, s.Median) // sorted: -2 -2 0 3 3 5
	assert.Equal(t, -2.0, s.Mode)  // -2 and 3 tie; smallest wins
	assert.Equal(t, -2.0, s.Min)
	assert.Equal(t, 5.0, s.Max)
	assert.Equal(t, 3, s.Wins)
	assert.Equal(t, 2, s.Losses)
	assert.Equal(t, 1, s.Flats)
	assert.InDelta(t, 0.5, s.WinRate(), 1e-12)
	assert.InDelta(t, 1.0/3.0, s.LossRate(), 1e-12)
	assert.InDelta(t, 2.926886, s.StdDev, 1e-6)
}

func TestDescribeSmall(t *testing.T) {
	t.Parallel()

	s := Describe(nil)
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, 0.0, s.StdDev)
	assert.Equal(t, 0.0, s.WinRate())

	s = Describe([]float64{42})
	assert.Equal(t, 42.0, s.Mean)
	assert.Equal(t, 42.0, s.Median)
	assert.Equal(t, 42.0, s.Mode)
	assert.Equal(t, 0.0, s.StdDev)
}

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1,234.50", FormatMoney(1234.5))
	assert.Equal(t, "+$1,234,567.00", FormatSignedMoney(1234567))
	assert.Equal(t, "-$0.25", FormatSignedMoney(-0.25))
	assert.Equal(t, "+$0.00", FormatSignedMoney(0))
}
