package cmd

import (
	"fmt"
	"os"

	"github.com/rustyeddy/fillpnl/orders"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert broker exports to orders.csv",
}

var convertSchwabCmd = &cobra.Command{
	Use:   "schwab <transactions.csv>",
	Short: "Convert a Schwab transactions export",
	Long: `Convert the option buy/sell/expired rows of a Schwab transactions CSV
into an orders.csv with OCC symbols.

Example:
  fillpnl convert schwab Individual_Transactions.csv -o orders.csv --timezone EST`,
	Args: cobra.ExactArgs(1),
	RunE: runConvertSchwab,
}

var (
	convertOutput string
	convertTZ     string
)

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.AddCommand(convertSchwabCmd)

	convertSchwabCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output orders.csv path (default stdout)")
	convertSchwabCmd.Flags().StringVar(&convertTZ, "timezone", "EST", "zone abbreviation appended to timestamps")
}

func runConvertSchwab(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	ords, err := orders.ConvertSchwab(f, convertTZ)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	logger.Sugar().Infow("converted schwab export", "file", args[0], "orders", len(ords))

	if convertOutput == "" {
		return orders.Save(cmd.OutOrStdout(), ords)
	}
	if err := orders.SaveFile(convertOutput, ords); err != nil {
		return fmt.Errorf("write orders: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d orders to %s\n", len(ords), convertOutput)
	return nil
}
