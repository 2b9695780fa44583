package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/strategies"
)

func risingSeries(t *testing.T, n int) *market.Series {
	t.Helper()

	bars := make([]market.Bar, n)
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		price := 100 + float64(i)
		bars[i] = market.Bar{
			Date:   day.AddDate(0, 0, i),
			Open:   price,
			High:   price + 1,
			Low:    price - 1,
			Close:  price,
			Volume: 1000,
		}
	}

	s := market.NewSeries(bars)
	require.NoError(t, s.Validate())
	return s
}

func TestSaveResult(t *testing.T) {
	t.Parallel()

	series := risingSeries(t, 20)
	cfg := backtest.DefaultConfig()

	bt, err := backtest.New(series, cfg)
	require.NoError(t, err)

	strat := strategies.SignalFunc{
		Label: "scripted",
		Fn: func(s *market.Series) ([]strategies.Signal, error) {
			sigs := make([]strategies.Signal, s.Len())
			sigs[2] = strategies.Buy
			sigs[10] = strategies.Sell
			return sigs, nil
		},
	}

	res, err := bt.Run(strat)
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	runID, err := SaveResult(j, "rising.csv", series, cfg, res)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	run, err := j.GetRun(runID)
	require.NoError(t, err)
	assert.Equal(t, "scripted", run.Strategy)
	assert.Equal(t, "rising.csv", run.Dataset)
	assert.Equal(t, 1, run.Trades)
	assert.Equal(t, 1, run.Wins)
	assert.Equal(t, 0, run.Losses)
	assert.Equal(t, cfg.InitialCapital, run.InitialCapital)
	assert.InDelta(t, res.FinalCapital, run.FinalCapital, 1e-6)
	assert.True(t, run.Start.Equal(series.Bar(0).Date))
	assert.True(t, run.End.Equal(series.Bar(series.Len()-1).Date))

	trades, err := j.TradesByRun(runID)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, res.Trades[0].Shares, trades[0].Shares)
	assert.InDelta(t, res.Trades[0].PnL, trades[0].PnL, 1e-6)

	points, err := j.EquityByRun(runID)
	require.NoError(t, err)
	require.Len(t, points, series.Len())
	assert.InDelta(t, res.Equity[0], points[0].Equity, 1e-6)
	assert.InDelta(t, res.Equity[series.Len()-1], points[series.Len()-1].Equity, 1e-6)
}

func TestSaveResultLengthMismatch(t *testing.T) {
	t.Parallel()

	series := risingSeries(t, 5)
	res := &backtest.Result{
		StrategyName: "bad",
		Equity:       []float64{1, 2, 3},
	}

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	_, err := SaveResult(j, "x.csv", series, backtest.DefaultConfig(), res)
	assert.Error(t, err)
}
