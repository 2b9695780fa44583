package journal

import (
	"fmt"
	"time"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/metrics"
	"github.com/rustyeddy/backtester/pkg/id"
)

// SaveResult journals a completed backtest run: one summary row, the
// full trade ledger, and the equity curve. Returns the generated run ID.
func SaveResult(j Journal, dataset string, series *market.Series, cfg backtest.Config, res *backtest.Result) (string, error) {
	if series.Len() != len(res.Equity) {
		return "", fmt.Errorf("journal: series has %d bars but equity curve has %d points",
			series.Len(), len(res.Equity))
	}

	runID := id.New()

	wins, losses := 0, 0
	for _, tr := range res.Trades {
		if tr.PnL > 0 {
			wins++
		} else if tr.PnL < 0 {
			losses++
		}
	}

	m, err := metrics.New(res.Equity, cfg.InitialCapital)
	if err != nil {
		return "", fmt.Errorf("journal: %w", err)
	}

	run := Run{
		RunID:          runID,
		Created:        time.Now().UTC(),
		Strategy:       res.StrategyName,
		Dataset:        dataset,
		InitialCapital: cfg.InitialCapital,
		Commission:     cfg.Commission,
		Slippage:       cfg.Slippage,
		Start:          series.Bar(0).Date,
		End:            series.Bar(series.Len() - 1).Date,
		Trades:         len(res.Trades),
		Wins:           wins,
		Losses:         losses,
		FinalCapital:   res.FinalCapital,
		TotalReturn:    m.TotalReturn(),
		MaxDrawdown:    m.MaxDrawdown(),
	}
	if err := j.RecordRun(run); err != nil {
		return "", fmt.Errorf("journal: record run: %w", err)
	}

	for _, tr := range res.Trades {
		rec := TradeRecord{
			RunID:      runID,
			EntryDate:  tr.EntryDate,
			EntryPrice: tr.EntryPrice,
			ExitDate:   tr.ExitDate,
			ExitPrice:  tr.ExitPrice,
			Shares:     tr.Shares,
			PnL:        tr.PnL,
			PnLPct:     tr.PnLPct,
			Reason:     tr.Reason,
		}
		if err := j.RecordTrade(rec); err != nil {
			return "", fmt.Errorf("journal: record trade: %w", err)
		}
	}

	for i, v := range res.Equity {
		point := EquityPoint{
			RunID:  runID,
			Date:   series.Bar(i).Date,
			Equity: v,
		}
		if err := j.RecordEquity(point); err != nil {
			return "", fmt.Errorf("journal: record equity: %w", err)
		}
	}

	return runID, nil
}
