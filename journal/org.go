package journal

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/fillpnl/ledger"
	"github.com/rustyeddy/fillpnl/occ"
	"github.com/rustyeddy/fillpnl/pnl"
)

// FormatTradeOrg renders a realized trade as an Org-mode block. Structured
// facts live in the PROPERTIES drawer so they stay searchable.
func FormatTradeOrg(t ledger.RealizedTrade) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Trade: %s (%s)\n", occ.Describe(t.Symbol), shortID(t.ID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":TRADE_ID: %s\n", t.ID)
	fmt.Fprintf(&b, ":SYMBOL: %s\n", t.Symbol)
	fmt.Fprintf(&b, ":ROOT: %s\n", pnl.Root(t.Symbol))
	fmt.Fprintf(&b, ":QUANTITY: %g\n", t.Quantity)
	fmt.Fprintf(&b, ":OPEN_PRICE: %.4f\n", t.OpenPrice)
	fmt.Fprintf(&b, ":CLOSE_PRICE: %.4f\n", t.ClosePrice)
	fmt.Fprintf(&b, ":OPEN_DATE: %s\n", t.OpenDate())
	fmt.Fprintf(&b, ":TRADE_DATE: %s\n", t.TradeDate())
	fmt.Fprintf(&b, ":REALIZED_PL: %.2f\n", t.PnL)
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Review\n- \n")
	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []ledger.RealizedTrade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

// FormatDayOrg renders a day summary heading with winners and losers as
// Org list items.
func FormatDayOrg(d pnl.DayPnL) string {
	var b strings.Builder
	fmt.Fprintf(&b, "* %s Net %s\n", d.Date, pnl.FormatSignedMoney(d.Net()))
	for _, part := range []struct {
		title string
		bk    pnl.Bucket
	}{{"Winners", d.Winners}, {"Losers", d.Losers}} {
		fmt.Fprintf(&b, "** %s %s\n", part.title, pnl.FormatSignedMoney(part.bk.Total))
		for _, l := range part.bk.Lines {
			fmt.Fprintf(&b, "- %s (%s)\n", l.Summary, l.Initiated)
		}
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
