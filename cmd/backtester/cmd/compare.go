package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/config"
	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/metrics"
	"github.com/rustyeddy/backtester/report"
	"github.com/rustyeddy/backtester/strategies"
)

var compareCmd = &cobra.Command{
	Use:   "compare <data.csv>",
	Short: "Compare several strategies on the same dataset",
	Long: `Run each named strategy over the same data with identical settings and
print their reports side by side.

Example:
  backtester compare data/005930.csv -s rsi -s macd -s bbands`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

var (
	compareConfigPath string
	compareStrategies []string
	compareSMA        []int
)

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVarP(&compareConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	compareCmd.Flags().StringSliceVarP(&compareStrategies, "strategy", "s", nil, "strategy names to compare (repeatable)")
	compareCmd.Flags().IntSliceVar(&compareSMA, "sma", nil, "attach simple moving averages with these periods")
	compareCmd.MarkFlagRequired("strategy")
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if compareConfigPath != "" {
		loaded, err := config.LoadFromFile(compareConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if len(compareStrategies) < 2 {
		return fmt.Errorf("compare needs at least two strategies")
	}

	series, err := market.LoadCSV(args[0])
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	for _, period := range compareSMA {
		if _, err := series.AttachSMA(period); err != nil {
			return fmt.Errorf("sma %d: %w", period, err)
		}
	}

	strats := make([]strategies.Strategy, 0, len(compareStrategies))
	for _, name := range compareStrategies {
		s, err := strategies.StrategyByName(name)
		if err != nil {
			return err
		}
		strats = append(strats, s)
	}

	bt, err := backtest.New(series, cfg.Backtest())
	if err != nil {
		return err
	}

	cmp, err := bt.CompareStrategies(strats, metrics.WithRiskFreeRate(cfg.Metrics.RiskFreeRate))
	if err != nil {
		return fmt.Errorf("compare: %w", err)
	}

	report.WriteComparison(os.Stdout, cmp)
	return nil
}
