package pnl

import "github.com/rustyeddy/fillpnl/ledger"

// ByContract sums realized pnl per contract symbol.
func ByContract(trades []ledger.RealizedTrade) map[string]float64 {
	out := map[string]float64{}
	for _, t := range trades {
		out[t.Symbol] += t.PnL
	}
	return out
}

// ByRoot sums realized pnl per underlying root.
func ByRoot(trades []ledger.RealizedTrade) map[string]float64 {
	out := map[string]float64{}
	for _, t := range trades {
		out[Root(t.Symbol)] += t.PnL
	}
	return out
}

// Total sums realized pnl over all trades.
func Total(trades []ledger.RealizedTrade) float64 {
	var sum float64
	for _, t := range trades {
		sum += t.PnL
	}
	return sum
}
