package cmd

import (
	"fmt"

	"github.com/rustyeddy/fillpnl/pnl"
	"github.com/rustyeddy/fillpnl/report"
	"github.com/spf13/cobra"
)

var dailyCmd = &cobra.Command{
	Use:   "daily <orders.csv>",
	Short: "Print the daily winners/losers timeline",
	Long: `Daily prints every day's winning and losing totals on one page.
With --detail each day's trades follow the timeline.

Example:
  fillpnl daily orders.csv --detail`,
	Args: cobra.ExactArgs(1),
	RunE: runDaily,
}

var (
	dailySymbol string
	dailyDetail bool
)

func init() {
	rootCmd.AddCommand(dailyCmd)

	dailyCmd.Flags().StringVar(&dailySymbol, "symbol", "", "only include orders for this symbol")
	dailyCmd.Flags().BoolVar(&dailyDetail, "detail", false, "print each day's trades")
}

func runDaily(cmd *cobra.Command, args []string) error {
	_, res, err := matchFile(args[0], dailySymbol)
	if err != nil {
		return err
	}

	days := pnl.SummarizeDaily(res.Trades)
	out := cmd.OutOrStdout()
	fmt.Fprint(out, report.RenderTimeline(days, 0, max(1, len(days)), cfg.Report.BarWidth))

	if dailyDetail {
		for i, d := range days {
			fmt.Fprintln(out)
			fmt.Fprint(out, report.RenderDetail(d, i, len(days)))
		}
	}
	return nil
}
