package pnl

import (
	"math"
	"strings"

	"github.com/rustyeddy/fillpnl/ledger"
)

// Root returns the symbol up to its first digit, so option contracts map
// to their underlying and plain tickers are unchanged.
func Root(symbol string) string {
	if i := strings.IndexAny(symbol, "0123456789"); i >= 0 {
		return symbol[:i]
	}
	return symbol
}

// RR is avgWin / avgLoss. With no losses it is +Inf when there were wins
// and 0 otherwise.
func RR(avgWin, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgWin > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return avgWin / avgLoss
}

// SymbolRiskReward computes the risk-reward ratio of each underlying root.
// Flat trades are ignored; roots without trades are absent.
func SymbolRiskReward(trades []ledger.RealizedTrade) map[string]float64 {
	type acc struct {
		win, loss   float64
		nWin, nLoss int
	}
	roots := map[string]*acc{}
	for _, t := range trades {
		r := Root(t.Symbol)
		a, ok := roots[r]
		if !ok {
			a = &acc{}
			roots[r] = a
		}
		switch {
		case t.PnL > 0:
			a.win += t.PnL
			a.nWin++
		case t.PnL < 0:
			a.loss += math.Abs(t.PnL)
			a.nLoss++
		}
	}

	out := make(map[string]float64, len(roots))
	for r, a := range roots {
		var avgWin, avgLoss float64
		if a.nWin > 0 {
			avgWin = a.win / float64(a.nWin)
		}
		if a.nLoss > 0 {
			avgLoss = a.loss / float64(a.nLoss)
		}
		out[r] = RR(avgWin, avgLoss)
	}
	return out
}

// RiskSummary carries what the chart needs for its R:R and Kelly lines.
type RiskSummary struct {
	ByRoot  map[string]float64
	Trades  int
	Winners int
}

// Summarize builds a RiskSummary from the trade ledger.
func Summarize(trades []ledger.RealizedTrade) RiskSummary {
	s := RiskSummary{ByRoot: SymbolRiskReward(trades), Trades: len(trades)}
	for _, t := range trades {
		if t.PnL > 0 {
			s.Winners++
		}
	}
	return s
}

// WinRate is the fraction of trades with positive pnl.
func (s RiskSummary) WinRate() float64 {
	if s.Trades == 0 {
		return 0
	}
	return float64(s.Winners) / float64(s.Trades)
}

// AverageRiskReward is the mean of the finite, positive per-root ratios.
func (s RiskSummary) AverageRiskReward() (float64, bool) {
	return AverageRiskReward(s.ByRoot)
}

// Kelly is w - (1-w)/r as a fraction. ok is false when no usable ratio
// exists.
func (s RiskSummary) Kelly() (float64, bool) {
	r, ok := s.AverageRiskReward()
	if !ok {
		return 0, false
	}
	w := s.WinRate()
	return w - (1-w)/r, true
}

// AverageRiskReward averages the finite, positive ratios in rr.
func AverageRiskReward(rr map[string]float64) (float64, bool) {
	var sum float64
	var n int
	for _, v := range rr {
		if v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
