package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/fillpnl/config"
	"github.com/rustyeddy/fillpnl/journal"
	"github.com/rustyeddy/fillpnl/ledger"
	"github.com/rustyeddy/fillpnl/pnl"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Record and query realized trades",
	Long: `Record realized trades to a SQLite journal and query them back.

Subcommands:
  record - Match an orders.csv and record its realized trades
  trade  - Get details of a specific trade by ID
  list   - List every journaled trade
  day    - List trades closed on a specific day
  csv    - Print a CSV trade journal grouped by day

Examples:
  fillpnl journal record orders.csv
  fillpnl journal trade <trade-id>
  fillpnl journal day 2024-01-15`,
}

var journalRecordCmd = &cobra.Command{
	Use:   "record <orders.csv>",
	Short: "Record the realized trades of an orders.csv",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalRecord,
}

var journalTradeCmd = &cobra.Command{
	Use:   "trade <trade-id>",
	Short: "Get details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrade,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every journaled trade",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD|unknown>",
	Short: "List trades closed on a specific day, as dated in reports",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalCSVCmd = &cobra.Command{
	Use:   "csv <trades.csv>",
	Short: "Print a CSV trade journal grouped by day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalCSV,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRecordCmd)
	journalCmd.AddCommand(journalTradeCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalDayCmd)
	journalCmd.AddCommand(journalCSVCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "", "path to SQLite journal DB (default from config)")
}

func dbPath() string {
	if journalDBPath != "" {
		return journalDBPath
	}
	return cfg.Journal.DBPath
}

func openSQLite() (*journal.SQLite, error) {
	j, err := journal.NewSQLite(dbPath())
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalRecord(cmd *cobra.Command, args []string) error {
	_, res, err := matchFile(args[0], "")
	if err != nil {
		return err
	}
	if err := recordTrades(config.JournalConfig{Type: "sqlite", DBPath: dbPath()}, res.Trades); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d trades to %s\n", len(res.Trades), dbPath())
	return nil
}

func runJournalTrade(cmd *cobra.Command, args []string) error {
	j, err := openSQLite()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.GetTrade(args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))
	return nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	j, err := openSQLite()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListTrades()
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(recs))
	return nil
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	j, err := openSQLite()
	if err != nil {
		return err
	}
	defer j.Close()

	day := args[0]
	if day != ledger.UnknownDate {
		if _, err := time.Parse("2006-01-02", day); err != nil {
			return fmt.Errorf("date: %w", err)
		}
	}

	recs, err := j.ListTradesOnDate(day)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	printDays(cmd, recs)
	return nil
}

func runJournalCSV(cmd *cobra.Command, args []string) error {
	recs, err := journal.ReadCSVFile(args[0])
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}
	printDays(cmd, recs)
	return nil
}

func printDays(cmd *cobra.Command, recs []ledger.RealizedTrade) {
	out := cmd.OutOrStdout()
	days := pnl.SummarizeDaily(recs)
	if len(days) == 0 {
		fmt.Fprintln(out, "No trades.")
		return
	}
	for _, d := range days {
		fmt.Fprintln(out, journal.FormatDayOrg(d))
	}
}
