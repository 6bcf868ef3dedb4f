package cmd

import (
	"fmt"

	"github.com/rustyeddy/fillpnl/pnl"
	"github.com/rustyeddy/fillpnl/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <orders.csv>",
	Short: "Match orders and print the realized PnL report",
	Long: `Report matches the filled orders in an orders.csv into realized trades,
prints a run summary and a per-symbol PnL chart with statistics.

With --interactive the daily navigator reads commands from stdin:
  n/p      next/previous timeline page
  <N>      show day N
  b        back to the timeline
  s        show the symbol chart
  q        quit

Example:
  fillpnl report orders.csv --group contract
  fillpnl report orders.csv -i`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

var (
	reportSymbol      string
	reportGroup       string
	reportInteractive bool
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportSymbol, "symbol", "", "only include orders for this symbol")
	reportCmd.Flags().StringVar(&reportGroup, "group", "", "chart grouping: root or contract (default from config)")
	reportCmd.Flags().BoolVarP(&reportInteractive, "interactive", "i", false, "run the daily navigator on stdin")
}

func runReport(cmd *cobra.Command, args []string) error {
	ords, res, err := matchFile(args[0], reportSymbol)
	if err != nil {
		return err
	}

	group := cfg.Report.GroupBy
	if reportGroup != "" {
		group = reportGroup
	}
	var byKey map[string]float64
	switch group {
	case "root":
		byKey = pnl.ByRoot(res.Trades)
	case "contract":
		byKey = pnl.ByContract(res.Trades)
	default:
		return fmt.Errorf("unknown group %q", group)
	}

	if err := recordTrades(cfg.Journal, res.Trades); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	report.PrintRunSummary(out, report.RunSummary{
		Source:    args[0],
		Orders:    len(ords),
		Processed: res.Processed,
		Skipped:   res.Skipped,
		Trades:    res.Trades,
		Positions: res.Positions,
	})

	risk := pnl.Summarize(res.Trades)
	chart := report.RenderContractPnlChart(byKey, &risk, cfg.Report.ChartWidth)

	if reportInteractive {
		days := pnl.SummarizeDaily(res.Trades)
		report.RunInteractiveReport(days, chart, cmd.InOrStdin(), out, report.NavOptions{
			PageSize: cfg.Report.PageSize,
			BarWidth: cfg.Report.BarWidth,
		})
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, chart)
	return nil
}
