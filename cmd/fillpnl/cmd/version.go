package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the fillpnl CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fillpnl version %s\n", version)
		fmt.Fprintln(cmd.OutOrStdout(), "Realized PnL accounting for option order fills")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
