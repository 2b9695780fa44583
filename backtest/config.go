package backtest

import "fmt"

// Config holds the friction and capital parameters of a simulation.
// Rates are fractions: Commission applies to traded notional on both
// sides, Slippage is an adverse price adjustment on every fill.
type Config struct {
	InitialCapital float64
	Commission     float64
	Slippage       float64
}

// DefaultConfig mirrors the costs of a retail Korean equity account:
// 10M starting capital, 0.015% commission, 0.1% slippage.
func DefaultConfig() Config {
	return Config{
		InitialCapital: 10_000_000,
		Commission:     0.00015,
		Slippage:       0.001,
	}
}

// Validate rejects degenerate configurations before any simulation step.
func (c Config) Validate() error {
	if c.InitialCapital <= 0 {
		return fmt.Errorf("backtest: initial capital must be positive, got %v", c.InitialCapital)
	}
	if c.Commission < 0 {
		return fmt.Errorf("backtest: commission must be non-negative, got %v", c.Commission)
	}
	if c.Slippage < 0 {
		return fmt.Errorf("backtest: slippage must be non-negative, got %v", c.Slippage)
	}
	return nil
}
