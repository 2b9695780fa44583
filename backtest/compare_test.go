package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backtester/metrics"
	"github.com/rustyeddy/backtester/strategies"
)

func TestCompareStrategies(t *testing.T) {
	t.Parallel()

	s := linearSeries(t, 20, 100, 1)
	b, err := New(s, DefaultConfig())
	require.NoError(t, err)

	strats := []strategies.Strategy{
		strategies.Noop{},
		buyAtSellAt(20, 0, 19),
	}

	cmp, err := b.CompareStrategies(strats)
	require.NoError(t, err)

	require.Equal(t, []string{"noop", "script"}, cmp.Names)
	require.Len(t, cmp.Reports, 2)

	noop := cmp.Reports["noop"]
	assert.Zero(t, noop[metrics.KeyTotalReturn])
	assert.NotContains(t, noop, metrics.KeyWinRate)

	active := cmp.Reports["script"]
	assert.Positive(t, active[metrics.KeyTotalReturn])
	assert.Equal(t, 1.0, active[metrics.KeyTotalTrades])
}

func TestCompareStrategiesFailsOnBrokenStrategy(t *testing.T) {
	t.Parallel()

	b, err := New(linearSeries(t, 10, 100, 1), DefaultConfig())
	require.NoError(t, err)

	_, err = b.CompareStrategies([]strategies.Strategy{
		strategies.Noop{},
		strategies.NewThresholdCross("rsi", 30, 70),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, strategies.ErrMissingIndicator)
}

func TestCompareStrategiesRejectsDuplicateNames(t *testing.T) {
	t.Parallel()

	b, err := New(linearSeries(t, 10, 100, 1), DefaultConfig())
	require.NoError(t, err)

	_, err = b.CompareStrategies([]strategies.Strategy{
		strategies.Noop{},
		strategies.Noop{},
	})
	assert.Error(t, err)
}
