package metrics

// Report is a flat metric-name to value mapping. Ratios and returns are
// fractions (0.123 means 12.3%); display formatting belongs to callers.
type Report map[string]float64

// Report keys. Trade-statistics keys are present only when a non-empty
// trade ledger was supplied to All.
const (
	KeyTotalReturn     = "total_return"
	KeyCAGR            = "cagr"
	KeyFinalEquity     = "final_equity"
	KeyMaxDrawdown     = "max_drawdown"
	KeyMaxDDDuration   = "max_dd_duration"
	KeyVolatility      = "volatility"
	KeySharpeRatio     = "sharpe_ratio"
	KeySortinoRatio    = "sortino_ratio"
	KeyCalmarRatio     = "calmar_ratio"
	KeyTotalTrades     = "total_trades"
	KeyWinRate         = "win_rate"
	KeyProfitFactor    = "profit_factor"
	KeyAvgWin          = "avg_win"
	KeyAvgLoss         = "avg_loss"
	KeyAvgTradeDays    = "avg_trade_duration_days"
)

// All assembles the full report. Passing a nil or empty ledger yields the
// equity-curve metrics only.
func (m *PerformanceMetrics) All(trades []Trade) Report {
	r := Report{
		KeyTotalReturn:   m.TotalReturn(),
		KeyCAGR:          m.CAGR(),
		KeyFinalEquity:   m.equity[len(m.equity)-1],
		KeyMaxDrawdown:   m.MaxDrawdown(),
		KeyMaxDDDuration: float64(m.MaxDrawdownDuration()),
		KeyVolatility:    m.Volatility(),
		KeySharpeRatio:   m.SharpeRatio(),
		KeySortinoRatio:  m.SortinoRatio(),
		KeyCalmarRatio:   m.CalmarRatio(),
	}

	if len(trades) > 0 {
		r[KeyTotalTrades] = float64(len(trades))
		r[KeyWinRate] = m.WinRate(trades)
		r[KeyProfitFactor] = m.ProfitFactor(trades)
		r[KeyAvgWin] = m.AvgWin(trades)
		r[KeyAvgLoss] = m.AvgLoss(trades)
		r[KeyAvgTradeDays] = m.AvgTradeDurationDays(trades)
	}
	return r
}
