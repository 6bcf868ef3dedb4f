package pnl

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/rustyeddy/fillpnl/ledger"
	"github.com/rustyeddy/fillpnl/occ"
)

// Line describes one realized trade in a day bucket.
type Line struct {
	Summary   string
	Initiated string
}

// Bucket is the winners or losers of a day.
type Bucket struct {
	Total float64
	Lines []Line
}

// DayPnL is the realized PnL of one trade date.
type DayPnL struct {
	Date    string
	Winners Bucket
	Losers  Bucket
}

// Net is winners plus losers.
func (d DayPnL) Net() float64 {
	return d.Winners.Total + d.Losers.Total
}

// SummarizeDaily buckets trades by trade date. Trades with pnl >= 0 are
// winners. Days come back in ascending date order with undated trades
// first.
func SummarizeDaily(trades []ledger.RealizedTrade) []DayPnL {
	days := map[string]*DayPnL{}
	for _, t := range trades {
		date := t.TradeDate()
		d, ok := days[date]
		if !ok {
			d = &DayPnL{Date: date}
			days[date] = d
		}

		b := &d.Losers
		if t.PnL >= 0 {
			b = &d.Winners
		}
		b.Total += t.PnL
		b.Lines = append(b.Lines, Line{
			Summary:   TradeSummary(t),
			Initiated: "Initiated " + t.OpenDate(),
		})
	}

	out := make([]DayPnL, 0, len(days))
	for _, d := range days {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		return dateLess(out[i].Date, out[j].Date)
	})
	return out
}

func dateLess(a, b string) bool {
	if a == ledger.UnknownDate {
		return b != ledger.UnknownDate
	}
	if b == ledger.UnknownDate {
		return false
	}
	return a < b
}

// TradeSummary is "TSLA 2024-01-19 Call 250 x2 @ 1.75 +$100.00".
func TradeSummary(t ledger.RealizedTrade) string {
	return fmt.Sprintf("%s x%s @ %s %s",
		occ.Describe(t.Symbol),
		strconv.FormatFloat(t.Quantity, 'f', -1, 64),
		strconv.FormatFloat(t.ClosePrice, 'f', -1, 64),
		FormatSignedMoney(t.PnL),
	)
}
