// Package journal persists backtest runs: a summary row per run plus the
// full trade ledger and equity curve, to SQLite for querying or to CSV
// for handoff to external tooling.
package journal

import "time"

// Run summarizes one backtest run.
type Run struct {
	RunID    string
	Created  time.Time
	Strategy string
	Dataset  string

	InitialCapital float64
	Commission     float64
	Slippage       float64

	Start time.Time
	End   time.Time

	Trades int
	Wins   int
	Losses int

	FinalCapital float64
	TotalReturn  float64
	MaxDrawdown  float64
}

// TradeRecord is one closed round trip as stored.
type TradeRecord struct {
	RunID      string
	EntryDate  time.Time
	EntryPrice float64
	ExitDate   time.Time
	ExitPrice  float64
	Shares     int64
	PnL        float64
	PnLPct     float64
	Reason     string
}

// EquityPoint is one bar of the equity curve as stored.
type EquityPoint struct {
	RunID  string
	Date   time.Time
	Equity float64
}

// Journal records backtest output somewhere durable.
type Journal interface {
	RecordRun(Run) error
	RecordTrade(TradeRecord) error
	RecordEquity(EquityPoint) error
	Close() error
}
