package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "backtester",
	Short: "A bar-driven backtesting engine for trading strategies",
	Long: `Backtester replays daily OHLCV data through trading strategies and
reports how each one would have performed.

It provides tools for:
  - Running a strategy over a CSV dataset with realistic costs
  - Comparing several strategies on the same data
  - Persisting runs, trades and equity curves to SQLite or CSV
  - Querying past runs from the journal`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
