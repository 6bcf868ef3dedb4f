// Package journal persists realized trades so reports can be rebuilt
// without re-reading the order files.
package journal

import (
	"github.com/rustyeddy/fillpnl/ledger"
	"github.com/rustyeddy/fillpnl/pkg/id"
)

// Journal is a destination for realized trades.
type Journal interface {
	RecordTrade(ledger.RealizedTrade) error
	Close() error
}

// RecordAll writes trades in order, assigning ids to trades that lack one.
// The returned slice carries the ids that were used. Ids are derived from
// trade content, so recording the same trades again reuses them.
func RecordAll(j Journal, trades []ledger.RealizedTrade) ([]ledger.RealizedTrade, error) {
	out := make([]ledger.RealizedTrade, len(trades))
	for i, t := range trades {
		t = withID(t)
		if err := j.RecordTrade(t); err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func withID(t ledger.RealizedTrade) ledger.RealizedTrade {
	if t.ID == "" {
		t.ID = id.Derive(t.TradeTime, t.Key())
	}
	return t
}
