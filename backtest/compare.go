package backtest

import (
	"fmt"

	"github.com/rustyeddy/backtester/metrics"
	"github.com/rustyeddy/backtester/strategies"
)

// Comparison tabulates one performance report per strategy, all produced
// from the same price series and configuration. Names preserves run
// order for stable rendering.
type Comparison struct {
	Names   []string
	Reports map[string]metrics.Report
}

// CompareStrategies runs each strategy in turn and collects its full
// metrics report. A strategy that cannot run (missing indicator) fails
// the comparison; silently dropping a row would misrepresent the table.
func (b *Backtester) CompareStrategies(strats []strategies.Strategy, opts ...metrics.Option) (*Comparison, error) {
	cmp := &Comparison{Reports: make(map[string]metrics.Report, len(strats))}

	for _, strat := range strats {
		res, err := b.Run(strat)
		if err != nil {
			return nil, fmt.Errorf("compare %q: %w", strat.Name(), err)
		}

		m, err := metrics.New(res.Equity, b.cfg.InitialCapital, opts...)
		if err != nil {
			return nil, fmt.Errorf("compare %q: %w", strat.Name(), err)
		}

		if _, dup := cmp.Reports[res.StrategyName]; dup {
			return nil, fmt.Errorf("compare: duplicate strategy name %q", res.StrategyName)
		}
		cmp.Names = append(cmp.Names, res.StrategyName)
		cmp.Reports[res.StrategyName] = m.All(MetricsTrades(res.Trades))
	}
	return cmp, nil
}
