// Package metrics derives risk and return statistics from a backtest
// equity curve and, optionally, a closed-trade ledger. Everything here is
// a pure function of its inputs: no hidden counters, identical answers on
// repeated calls.
package metrics

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear is the annualization convention used throughout.
const TradingDaysPerYear = 252

// DefaultRiskFreeRate is the annual risk-free rate assumed when none is
// configured.
const DefaultRiskFreeRate = 0.035

// Trade is the slice of a closed trade the statistics need. The backtest
// package converts its richer trade type into this.
type Trade struct {
	EntryDate time.Time
	ExitDate  time.Time
	PnL       float64
}

// PerformanceMetrics computes statistics over one equity curve. The only
// state beyond the inputs is the configured risk-free rate.
type PerformanceMetrics struct {
	equity         []float64
	initialCapital float64
	riskFreeRate   float64
	returns        []float64 // bar-over-bar fractional changes
}

// Option adjusts optional PerformanceMetrics parameters.
type Option func(*PerformanceMetrics)

// WithRiskFreeRate sets the annual risk-free rate used by the Sharpe and
// Sortino ratios.
func WithRiskFreeRate(r float64) Option {
	return func(m *PerformanceMetrics) { m.riskFreeRate = r }
}

// New builds a metrics engine for the given equity curve. The curve must
// be non-empty and the initial capital positive.
func New(equity []float64, initialCapital float64, opts ...Option) (*PerformanceMetrics, error) {
	if len(equity) == 0 {
		return nil, fmt.Errorf("metrics: empty equity curve")
	}
	if initialCapital <= 0 {
		return nil, fmt.Errorf("metrics: initial capital must be positive, got %v", initialCapital)
	}

	m := &PerformanceMetrics{
		equity:         equity,
		initialCapital: initialCapital,
		riskFreeRate:   DefaultRiskFreeRate,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.returns = make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		m.returns = append(m.returns, equity[i]/equity[i-1]-1)
	}
	return m, nil
}

// TotalReturn is the fractional gain of the final equity value over the
// initial capital.
func (m *PerformanceMetrics) TotalReturn() float64 {
	return (m.equity[len(m.equity)-1] - m.initialCapital) / m.initialCapital
}

// CAGR annualizes the total return using the 252 trading-day convention.
func (m *PerformanceMetrics) CAGR() float64 {
	years := float64(len(m.equity)) / TradingDaysPerYear
	if years <= 0 {
		return 0
	}
	growth := m.equity[len(m.equity)-1] / m.initialCapital
	return math.Pow(growth, 1/years) - 1
}

// Volatility is the annualized sample standard deviation of bar-over-bar
// returns. Curves too short to have two returns report 0.
func (m *PerformanceMetrics) Volatility() float64 {
	if len(m.returns) < 2 {
		return 0
	}
	return stat.StdDev(m.returns, nil) * math.Sqrt(TradingDaysPerYear)
}

// DownsideVolatility is the annualized sample standard deviation of the
// negative bar returns only; 0 when fewer than two bars lost value.
func (m *PerformanceMetrics) DownsideVolatility() float64 {
	var negative []float64
	for _, r := range m.returns {
		if r < 0 {
			negative = append(negative, r)
		}
	}
	if len(negative) < 2 {
		return 0
	}
	return stat.StdDev(negative, nil) * math.Sqrt(TradingDaysPerYear)
}

// MaxDrawdown is the deepest fractional decline from a running peak,
// reported as a non-positive number (0 if equity never dips below a peak).
func (m *PerformanceMetrics) MaxDrawdown() float64 {
	peak := m.equity[0]
	worst := 0.0
	for _, v := range m.equity {
		if v > peak {
			peak = v
		}
		dd := (v - peak) / peak
		if dd < worst {
			worst = dd
		}
	}
	return worst
}

// MaxDrawdownDuration is the longest contiguous run of bars, in bars,
// where equity sits strictly below its running peak.
func (m *PerformanceMetrics) MaxDrawdownDuration() int {
	peak := m.equity[0]
	longest, current := 0, 0
	for _, v := range m.equity {
		if v > peak {
			peak = v
		}
		if v < peak {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest
}

// SharpeRatio is excess CAGR over total volatility; 0 when volatility
// is 0 rather than a division error.
func (m *PerformanceMetrics) SharpeRatio() float64 {
	vol := m.Volatility()
	if vol == 0 {
		return 0
	}
	return (m.CAGR() - m.riskFreeRate) / vol
}

// SortinoRatio is excess CAGR over downside volatility; 0 when there is
// no downside volatility.
func (m *PerformanceMetrics) SortinoRatio() float64 {
	downside := m.DownsideVolatility()
	if downside == 0 {
		return 0
	}
	return (m.CAGR() - m.riskFreeRate) / downside
}

// CalmarRatio is CAGR over the absolute max drawdown; 0 when there was
// no drawdown.
func (m *PerformanceMetrics) CalmarRatio() float64 {
	mdd := math.Abs(m.MaxDrawdown())
	if mdd == 0 {
		return 0
	}
	return m.CAGR() / mdd
}

// WinRate is the fraction of trades with positive P&L.
func (m *PerformanceMetrics) WinRate(trades []Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	wins := 0
	for _, tr := range trades {
		if tr.PnL > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(trades))
}

// ProfitFactor is gross profit over gross loss. With wins and no losses
// it is +Inf; with no wins it is 0. Callers formatting reports must
// handle the infinity.
func (m *PerformanceMetrics) ProfitFactor(trades []Trade) float64 {
	var grossProfit, grossLoss float64
	for _, tr := range trades {
		if tr.PnL > 0 {
			grossProfit += tr.PnL
		} else if tr.PnL < 0 {
			grossLoss += -tr.PnL
		}
	}
	if grossLoss == 0 {
		if grossProfit > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return grossProfit / grossLoss
}

// AvgWin is the mean P&L of winning trades; 0 when there are none.
func (m *PerformanceMetrics) AvgWin(trades []Trade) float64 {
	var sum float64
	count := 0
	for _, tr := range trades {
		if tr.PnL > 0 {
			sum += tr.PnL
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// AvgLoss is the mean P&L of losing trades (a negative number); 0 when
// there are none.
func (m *PerformanceMetrics) AvgLoss(trades []Trade) float64 {
	var sum float64
	count := 0
	for _, tr := range trades {
		if tr.PnL < 0 {
			sum += tr.PnL
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// AvgTradeDurationDays is the mean holding period across trades, in days.
func (m *PerformanceMetrics) AvgTradeDurationDays(trades []Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	var total float64
	for _, tr := range trades {
		total += tr.ExitDate.Sub(tr.EntryDate).Hours() / 24
	}
	return total / float64(len(trades))
}
