package cmd

import (
	"fmt"

	"github.com/rustyeddy/fillpnl/config"
	"github.com/rustyeddy/fillpnl/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "fillpnl",
	Short: "Realized PnL accounting for option order fills",
	Long: `fillpnl matches filled option orders into realized trades and reports
the results.

It provides tools for:
  - FIFO lot matching with a contract multiplier
  - Daily winners/losers timelines and an interactive navigator
  - Per-symbol PnL charts with risk:reward and Kelly statistics
  - Converting Schwab transaction exports to orders.csv
  - Journaling realized trades to CSV or SQLite`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile  string
	envFile  string
	logLevel string

	cfg    = config.Default()
	logger = zap.NewNop()
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	defer func() { _ = logger.Sync() }()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "dotenv file with FILLPNL_* overrides (default ./.env if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// setup resolves configuration as flags > env > .env > config file > defaults.
func setup(cmd *cobra.Command, args []string) error {
	c := config.Default()
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		c = loaded
	}
	if err := c.ApplyEnv(envFile); err != nil {
		return fmt.Errorf("apply env: %w", err)
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}

	l, err := logging.New(c.Log.Level, c.Log.File)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	cfg = c
	logger = l
	return nil
}
