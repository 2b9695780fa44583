package backtest

import (
	"time"

	"github.com/rustyeddy/backtester/metrics"
)

// Close reasons recorded on each trade.
const (
	ReasonSellSignal = "SellSignal"
	ReasonEndOfData  = "EndOfData"
)

// Trade is one closed round trip. Entry and exit prices include slippage;
// PnL is exit proceeds net of exit commission minus the slipped entry
// notional. Immutable once appended to the ledger.
type Trade struct {
	EntryDate  time.Time
	EntryPrice float64
	ExitDate   time.Time
	ExitPrice  float64
	Shares     int64
	PnL        float64
	PnLPct     float64
	Reason     string
}

// MetricsTrades converts a ledger into the reduced view the metrics
// package consumes.
func MetricsTrades(trades []Trade) []metrics.Trade {
	out := make([]metrics.Trade, len(trades))
	for i, tr := range trades {
		out[i] = metrics.Trade{
			EntryDate: tr.EntryDate,
			ExitDate:  tr.ExitDate,
			PnL:       tr.PnL,
		}
	}
	return out
}
