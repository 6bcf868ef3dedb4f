package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/rustyeddy/fillpnl/ledger"
	"github.com/rustyeddy/fillpnl/pnl"
)

// RunSummary is a lightweight summary of one matching run.
type RunSummary struct {
	Source    string
	Orders    int
	Processed int
	Skipped   int
	Trades    []ledger.RealizedTrade
	Positions map[string]*ledger.Position
}

// PrintRunSummary writes the counts, win/loss tally, net PnL and open
// positions of a run.
func PrintRunSummary(w io.Writer, r RunSummary) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Realized PnL")
	fmt.Fprintln(w, "==================================================")
	if r.Source != "" {
		fmt.Fprintf(w, "Source:        %s\n", r.Source)
	}
	fmt.Fprintf(w, "Orders:        %d\n", r.Orders)
	fmt.Fprintf(w, "Matched:       %d\n", r.Processed)
	fmt.Fprintf(w, "Skipped:       %d\n", r.Skipped)

	var wins, losses int
	for _, t := range r.Trades {
		switch {
		case t.PnL > 0:
			wins++
		case t.PnL < 0:
			losses++
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Closures:      %d\n", len(r.Trades))
	fmt.Fprintf(w, "Wins:          %d\n", wins)
	fmt.Fprintf(w, "Losses:        %d\n", losses)
	fmt.Fprintf(w, "Net P/L:       %s\n", pnl.FormatSignedMoney(pnl.Total(r.Trades)))

	open := make([]string, 0, len(r.Positions))
	for sym, p := range r.Positions {
		if !p.Flat() {
			open = append(open, sym)
		}
	}
	if len(open) == 0 {
		fmt.Fprintln(w)
		return
	}
	sort.Strings(open)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Open Positions")
	fmt.Fprintln(w, "--------------------------------------------------")
	for _, sym := range open {
		fmt.Fprintf(w, "%-24s %s\n", sym, strconv.FormatFloat(r.Positions[sym].Net(), 'f', -1, 64))
	}
	fmt.Fprintln(w)
}
