package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/config"
	"github.com/rustyeddy/backtester/journal"
	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/metrics"
	"github.com/rustyeddy/backtester/report"
	"github.com/rustyeddy/backtester/strategies"
)

var runCmd = &cobra.Command{
	Use:   "run <data.csv>",
	Short: "Run a strategy over a CSV dataset",
	Long: `Run a single strategy over daily OHLCV data and print a performance report.

The CSV must carry date,open,high,low,close,volume columns; extra columns are
loaded as indicator series (rsi, macd, bb_lower and so on). Files ending in
.xz are decompressed transparently.

Example:
  backtester run data/005930.csv --strategy rsi
  backtester run data/005930.csv -f configs/basic.yaml --trades`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

var (
	runConfigPath string
	runStrategy   string
	runCapital    float64
	runCommission float64
	runSlippage   float64
	runRiskFree   float64
	runSMA        []int
	runShowTrades bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	runCmd.Flags().StringVarP(&runStrategy, "strategy", "s", "", "strategy name (noop, rsi, macd, ma-cross, bbands, combined)")
	runCmd.Flags().Float64Var(&runCapital, "capital", 0, "starting capital (overrides config)")
	runCmd.Flags().Float64Var(&runCommission, "commission", -1, "commission rate per side (overrides config)")
	runCmd.Flags().Float64Var(&runSlippage, "slippage", -1, "slippage rate per side (overrides config)")
	runCmd.Flags().Float64Var(&runRiskFree, "risk-free", -1, "annual risk-free rate for Sharpe/Sortino")
	runCmd.Flags().IntSliceVar(&runSMA, "sma", nil, "attach simple moving averages with these periods")
	runCmd.Flags().BoolVar(&runShowTrades, "trades", false, "also print the trade ledger")
}

// loadRunConfig merges the config file with flag overrides. Flags win.
func loadRunConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if runConfigPath != "" {
		cfg, err = config.LoadFromFile(runConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	} else {
		cfg = config.Default()
	}

	if runStrategy != "" {
		cfg.Strategy.Name = runStrategy
	}
	if runCapital > 0 {
		cfg.Account.InitialCapital = runCapital
	}
	if runCommission >= 0 {
		cfg.Costs.Commission = runCommission
	}
	if runSlippage >= 0 {
		cfg.Costs.Slippage = runSlippage
	}
	if runRiskFree >= 0 {
		cfg.Metrics.RiskFreeRate = runRiskFree
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "csv":
		return journal.NewCSV(jc.TradesFile, jc.EquityFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return nil, nil
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	dataPath := args[0]

	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}

	series, err := market.LoadCSV(dataPath)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	for _, period := range runSMA {
		if _, err := series.AttachSMA(period); err != nil {
			return fmt.Errorf("sma %d: %w", period, err)
		}
	}

	strat, err := strategies.StrategyFromConfig(cfg.Strategy.Name, cfg.Strategy.Params)
	if err != nil {
		return err
	}

	bt, err := backtest.New(series, cfg.Backtest())
	if err != nil {
		return err
	}

	res, err := bt.Run(strat)
	if err != nil {
		return fmt.Errorf("run backtest: %w", err)
	}

	m, err := bt.Metrics(metrics.WithRiskFreeRate(cfg.Metrics.RiskFreeRate))
	if err != nil {
		return err
	}
	rep := m.All(backtest.MetricsTrades(res.Trades))

	report.WriteSummary(os.Stdout, res, rep, cfg.Account.InitialCapital)
	if runShowTrades {
		fmt.Println()
		report.WriteTrades(os.Stdout, res.Trades)
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if j != nil {
		defer j.Close()
		runID, err := journal.SaveResult(j, dataPath, series, cfg.Backtest(), res)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Printf("\nRun saved: %s\n", runID)
	}

	return nil
}
