package cmd

import (
	"fmt"

	"github.com/rustyeddy/fillpnl/orders"
	"github.com/spf13/cobra"
)

var ordersCmd = &cobra.Command{
	Use:   "orders <orders.csv>",
	Short: "Filter and scale an orders.csv",
	Long: `Orders rewrites an orders.csv, keeping only one symbol and/or scaling
filled and total quantities. Without --output the result goes to stdout.

Example:
  fillpnl orders orders.csv --symbol SPY240119C00470000 --quantity-multiplier 2 -o spy.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runOrders,
}

var (
	ordersSymbol string
	ordersScale  float64
	ordersOutput string
)

func init() {
	rootCmd.AddCommand(ordersCmd)

	ordersCmd.Flags().StringVar(&ordersSymbol, "symbol", "", "only keep orders for this symbol")
	ordersCmd.Flags().Float64Var(&ordersScale, "quantity-multiplier", 1, "multiply filled and total quantities")
	ordersCmd.Flags().StringVarP(&ordersOutput, "output", "o", "", "output CSV path (default stdout)")
}

func runOrders(cmd *cobra.Command, args []string) error {
	ords, err := orders.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	ords = orders.FilterBySymbol(ords, ordersSymbol)
	if ordersScale != 1 {
		ords = orders.ScaleQuantities(ords, ordersScale)
	}

	if ordersOutput == "" {
		if err := orders.Save(cmd.OutOrStdout(), ords); err != nil {
			return fmt.Errorf("write orders: %w", err)
		}
		return nil
	}
	if err := orders.SaveFile(ordersOutput, ords); err != nil {
		return fmt.Errorf("write orders: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d orders to %s\n", len(ords), ordersOutput)
	return nil
}
