package cmd

import (
	"fmt"

	"github.com/rustyeddy/fillpnl/config"
	"github.com/rustyeddy/fillpnl/journal"
	"github.com/rustyeddy/fillpnl/ledger"
	"github.com/rustyeddy/fillpnl/orders"
	"go.uber.org/zap"
)

// matchFile loads an orders.csv, optionally narrows it to one symbol and
// runs the matcher with the configured multiplier.
func matchFile(path, symbol string) ([]orders.Order, ledger.Result, error) {
	ords, err := orders.LoadFile(path)
	if err != nil {
		return nil, ledger.Result{}, fmt.Errorf("load orders: %w", err)
	}
	ords = orders.FilterBySymbol(ords, symbol)

	res := ledger.Compute(ords, cfg.Accounting.Multiplier, logger)
	logger.Sugar().Infow("matched orders",
		"file", path,
		"orders", len(ords),
		"processed", res.Processed,
		"skipped", res.Skipped,
		"trades", len(res.Trades),
	)
	return ords, res, nil
}

// openJournal returns nil when journaling is disabled.
func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "":
		return nil, nil
	case "csv":
		return journal.NewCSV(jc.TradesFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	}
	return nil, fmt.Errorf("unknown journal type %q", jc.Type)
}

func recordTrades(jc config.JournalConfig, trades []ledger.RealizedTrade) error {
	j, err := openJournal(jc)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if j == nil {
		return nil
	}
	defer j.Close()

	if _, err := journal.RecordAll(j, trades); err != nil {
		return fmt.Errorf("record trades: %w", err)
	}
	logger.Info("journaled trades", zap.String("type", jc.Type), zap.Int("count", len(trades)))
	return nil
}
