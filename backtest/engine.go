// Package backtest simulates a single long-only position over a price
// series, turning strategy signals into capital-accounted trades and an
// equity curve under commission and slippage frictions.
package backtest

import (
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/metrics"
	"github.com/rustyeddy/backtester/strategies"
)

// ErrNoRun is returned by Metrics before any backtest has completed.
var ErrNoRun = errors.New("backtest: no run yet, call Run first")

// Result is the output of one backtest run. Equity and BuyHold have one
// entry per input bar; Trades are ordered by exit date.
type Result struct {
	StrategyName string
	Equity       []float64
	Trades       []Trade
	FinalCapital float64
	BuyHold      []float64
	BuyHoldFinal float64
}

// position is the simulation-internal long state. Zero shares means flat.
type position struct {
	shares     int64
	entryPrice float64
	entryDate  time.Time
}

// Backtester runs strategies against one validated price series. A
// Backtester owns no shared state: concurrent runs need one Backtester
// (or at least one Run call) each.
type Backtester struct {
	series *market.Series
	cfg    Config
	last   *Result
}

// New validates the series and configuration up front; both are
// configuration errors that fail fast, never mid-simulation.
func New(series *market.Series, cfg Config) (*Backtester, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("backtest: %w", err)
	}
	return &Backtester{series: series, cfg: cfg}, nil
}

// Config returns the friction configuration of this backtester.
func (b *Backtester) Config() Config { return b.cfg }

// Run simulates the strategy over the full series.
//
// Per bar, in fixed order: mark the portfolio to market at the close,
// then act on the bar's signal. A Buy while flat purchases the maximum
// whole-share quantity affordable at the slipped price plus commission;
// when even one share is unaffordable the signal is skipped silently. A
// Sell while long closes the position at the slipped price net of
// commission. A position still open after the last bar is liquidated at
// that bar's close under the same frictions, so no capital stays trapped.
func (b *Backtester) Run(strat strategies.Strategy) (*Result, error) {
	signals, err := strat.GenerateSignals(b.series)
	if err != nil {
		return nil, fmt.Errorf("backtest: %w", err)
	}
	if len(signals) != b.series.Len() {
		return nil, fmt.Errorf("backtest: strategy %q returned %d signals for %d bars",
			strat.Name(), len(signals), b.series.Len())
	}

	cash := b.cfg.InitialCapital
	var pos position
	equity := make([]float64, b.series.Len())
	var trades []Trade

	for i := 0; i < b.series.Len(); i++ {
		bar := b.series.Bar(i)
		price := bar.Close

		// Valuation happens before acting on this bar's signal; the
		// ordering is fixed for reproducibility.
		equity[i] = cash + float64(pos.shares)*price

		switch {
		case signals[i] == strategies.Buy && pos.shares == 0:
			buyPrice := price * (1 + b.cfg.Slippage)
			maxShares := int64(cash / (buyPrice * (1 + b.cfg.Commission)))
			if maxShares > 0 {
				cash -= float64(maxShares) * buyPrice * (1 + b.cfg.Commission)
				pos = position{shares: maxShares, entryPrice: buyPrice, entryDate: bar.Date}
			}
			// Zero affordable shares: liquidity floor, skip silently.

		case signals[i] == strategies.Sell && pos.shares > 0:
			sellPrice := price * (1 - b.cfg.Slippage)
			cash += b.closeTrade(&trades, &pos, sellPrice, bar.Date, ReasonSellSignal)
		}
	}

	// Forced liquidation of a trailing open position at the final close.
	if pos.shares > 0 {
		lastBar := b.series.Bar(b.series.Len() - 1)
		sellPrice := lastBar.Close * (1 - b.cfg.Slippage)
		cash += b.closeTrade(&trades, &pos, sellPrice, lastBar.Date, ReasonEndOfData)
	}

	res := &Result{
		StrategyName: strat.Name(),
		Equity:       equity,
		Trades:       trades,
		FinalCapital: equity[len(equity)-1],
	}
	res.BuyHold, res.BuyHoldFinal = b.buyAndHold()

	b.last = res
	return res, nil
}

// closeTrade books the round trip and returns the sale proceeds.
func (b *Backtester) closeTrade(trades *[]Trade, pos *position, sellPrice float64, exitDate time.Time, reason string) float64 {
	proceeds := float64(pos.shares) * sellPrice * (1 - b.cfg.Commission)
	*trades = append(*trades, Trade{
		EntryDate:  pos.entryDate,
		EntryPrice: pos.entryPrice,
		ExitDate:   exitDate,
		ExitPrice:  sellPrice,
		Shares:     pos.shares,
		PnL:        proceeds - float64(pos.shares)*pos.entryPrice,
		PnLPct:     sellPrice/pos.entryPrice - 1,
		Reason:     reason,
	})
	*pos = position{}
	return proceeds
}

// buyAndHold is the benchmark curve: buy the maximum affordable whole
// shares at the first close (commission, no slippage) and hold.
func (b *Backtester) buyAndHold() ([]float64, float64) {
	first := b.series.Bar(0).Close
	shares := int64(b.cfg.InitialCapital / (first * (1 + b.cfg.Commission)))

	curve := make([]float64, b.series.Len())
	for i := range curve {
		curve[i] = float64(shares) * b.series.Bar(i).Close
	}
	return curve, curve[len(curve)-1]
}

// Metrics returns the statistics engine for the most recent run. Calling
// it before Run is caller misuse and fails rather than returning stale
// defaults.
func (b *Backtester) Metrics(opts ...metrics.Option) (*metrics.PerformanceMetrics, error) {
	if b.last == nil {
		return nil, ErrNoRun
	}
	return metrics.New(b.last.Equity, b.cfg.InitialCapital, opts...)
}

// Last returns the most recent run result, or nil.
func (b *Backtester) Last() *Result { return b.last }
