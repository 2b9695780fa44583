package strategies

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backtester/market"
)

// seriesWithCloses builds a series from closes with flat OHLC around each
// close and one bar per weekday-agnostic calendar day.
func seriesWithCloses(t *testing.T, closes []float64) *market.Series {
	t.Helper()

	bars := make([]market.Bar, len(closes))
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = market.Bar{
			Date:   day.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	s := market.NewSeries(bars)
	require.NoError(t, s.Validate())
	return s
}

func TestThresholdCross(t *testing.T) {
	t.Parallel()

	t.Run("buy on upward cross through low", func(t *testing.T) {
		t.Parallel()
		s := seriesWithCloses(t, []float64{100, 100, 100, 100})
		require.NoError(t, s.SetIndicator("rsi", []float64{25, 28, 32, 40}))

		strat := NewThresholdCross("rsi", 30, 70)
		sig, err := strat.GenerateSignals(s)
		require.NoError(t, err)
		assert.Equal(t, []Signal{Hold, Hold, Buy, Hold}, sig)
	})

	t.Run("sell on upward cross through high", func(t *testing.T) {
		t.Parallel()
		s := seriesWithCloses(t, []float64{100, 100, 100})
		require.NoError(t, s.SetIndicator("rsi", []float64{60, 68, 74}))

		sig, err := NewThresholdCross("rsi", 30, 70).GenerateSignals(s)
		require.NoError(t, err)
		assert.Equal(t, []Signal{Hold, Hold, Sell}, sig)
	})

	t.Run("level without crossing is no signal", func(t *testing.T) {
		t.Parallel()
		// Sits exactly at the low threshold, then stays above: no cross
		// from below, so no buy.
		s := seriesWithCloses(t, []float64{100, 100, 100})
		require.NoError(t, s.SetIndicator("rsi", []float64{30, 31, 33}))

		sig, err := NewThresholdCross("rsi", 30, 70).GenerateSignals(s)
		require.NoError(t, err)
		assert.Equal(t, []Signal{Hold, Hold, Hold}, sig)
	})

	t.Run("nan warm-up holds", func(t *testing.T) {
		t.Parallel()
		s := seriesWithCloses(t, []float64{100, 100, 100, 100})
		require.NoError(t, s.SetIndicator("rsi", []float64{math.NaN(), math.NaN(), 25, 31}))

		sig, err := NewThresholdCross("rsi", 30, 70).GenerateSignals(s)
		require.NoError(t, err)
		assert.Equal(t, []Signal{Hold, Hold, Hold, Buy}, sig)
	})

	t.Run("missing indicator", func(t *testing.T) {
		t.Parallel()
		s := seriesWithCloses(t, []float64{100, 100})

		_, err := NewThresholdCross("rsi", 30, 70).GenerateSignals(s)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingIndicator)
		assert.Contains(t, err.Error(), "rsi")
	})
}

func TestCrossover(t *testing.T) {
	t.Parallel()

	t.Run("golden and dead cross", func(t *testing.T) {
		t.Parallel()
		s := seriesWithCloses(t, []float64{100, 100, 100, 100, 100})
		require.NoError(t, s.SetIndicator("fast", []float64{1, 2, 4, 4, 2}))
		require.NoError(t, s.SetIndicator("slow", []float64{3, 3, 3, 3, 3}))

		strat := &Crossover{FastColumn: "fast", SlowColumn: "slow"}
		sig, err := strat.GenerateSignals(s)
		require.NoError(t, err)
		assert.Equal(t, []Signal{Hold, Hold, Buy, Hold, Sell}, sig)
	})

	t.Run("equal then above counts as cross", func(t *testing.T) {
		t.Parallel()
		s := seriesWithCloses(t, []float64{100, 100})
		require.NoError(t, s.SetIndicator("fast", []float64{3, 4}))
		require.NoError(t, s.SetIndicator("slow", []float64{3, 3}))

		sig, err := (&Crossover{FastColumn: "fast", SlowColumn: "slow"}).GenerateSignals(s)
		require.NoError(t, err)
		assert.Equal(t, []Signal{Hold, Buy}, sig)
	})

	t.Run("missing slow column", func(t *testing.T) {
		t.Parallel()
		s := seriesWithCloses(t, []float64{100, 100})
		require.NoError(t, s.SetIndicator("fast", []float64{1, 2}))

		_, err := (&Crossover{FastColumn: "fast", SlowColumn: "slow"}).GenerateSignals(s)
		assert.ErrorIs(t, err, ErrMissingIndicator)
	})
}

func TestBandTouch(t *testing.T) {
	t.Parallel()

	// Close dips below the lower band then recovers to it: buy. Later it
	// pushes through the upper band from below: sell.
	s := seriesWithCloses(t, []float64{95, 98, 104, 107})
	require.NoError(t, s.SetIndicator("bb_lower", []float64{97, 97, 97, 97}))
	require.NoError(t, s.SetIndicator("bb_upper", []float64{106, 106, 106, 106}))

	strat := &BandTouch{LowerColumn: "bb_lower", UpperColumn: "bb_upper"}
	sig, err := strat.GenerateSignals(s)
	require.NoError(t, err)
	assert.Equal(t, []Signal{Hold, Buy, Hold, Sell}, sig)
}

func TestVoting(t *testing.T) {
	t.Parallel()

	fixed := func(name string, sig []Signal) Strategy {
		return SignalFunc{Label: name, Fn: func(s *market.Series) ([]Signal, error) {
			return sig, nil
		}}
	}
	failing := SignalFunc{Label: "broken", Fn: func(s *market.Series) ([]Signal, error) {
		return nil, ErrMissingIndicator
	}}

	t.Run("quorum met", func(t *testing.T) {
		t.Parallel()
		s := seriesWithCloses(t, []float64{100, 100, 100})
		v := &Voting{
			Members: []Strategy{
				fixed("a", []Signal{Buy, Hold, Sell}),
				fixed("b", []Signal{Buy, Hold, Sell}),
				fixed("c", []Signal{Hold, Hold, Hold}),
			},
			Quorum: 2,
		}
		sig, err := v.GenerateSignals(s)
		require.NoError(t, err)
		assert.Equal(t, []Signal{Buy, Hold, Sell}, sig)
	})

	t.Run("sub-quorum holds", func(t *testing.T) {
		t.Parallel()
		s := seriesWithCloses(t, []float64{100, 100})
		v := &Voting{
			Members: []Strategy{
				fixed("a", []Signal{Buy, Hold}),
				fixed("b", []Signal{Hold, Sell}),
			},
			Quorum: 2,
		}
		sig, err := v.GenerateSignals(s)
		require.NoError(t, err)
		assert.Equal(t, []Signal{Hold, Hold}, sig)
	})

	t.Run("tie holds", func(t *testing.T) {
		t.Parallel()
		s := seriesWithCloses(t, []float64{100})
		v := &Voting{
			Members: []Strategy{
				fixed("a", []Signal{Buy}),
				fixed("b", []Signal{Sell}),
			},
			Quorum: 1,
		}
		sig, err := v.GenerateSignals(s)
		require.NoError(t, err)
		assert.Equal(t, []Signal{Hold}, sig)
	})

	t.Run("failing member votes hold", func(t *testing.T) {
		t.Parallel()
		s := seriesWithCloses(t, []float64{100, 100})
		v := &Voting{
			Members: []Strategy{
				failing,
				fixed("a", []Signal{Buy, Hold}),
			},
			Quorum: 1,
		}
		sig, err := v.GenerateSignals(s)
		require.NoError(t, err)
		assert.Equal(t, []Signal{Buy, Hold}, sig)
	})

	t.Run("no members", func(t *testing.T) {
		t.Parallel()
		s := seriesWithCloses(t, []float64{100, 100})
		sig, err := (&Voting{Quorum: 1}).GenerateSignals(s)
		require.NoError(t, err)
		assert.Equal(t, []Signal{Hold, Hold}, sig)
	})

	t.Run("bad quorum", func(t *testing.T) {
		t.Parallel()
		s := seriesWithCloses(t, []float64{100})
		_, err := (&Voting{Members: []Strategy{failing}, Quorum: 0}).GenerateSignals(s)
		assert.Error(t, err)
	})
}

func TestPositions(t *testing.T) {
	t.Parallel()

	s := seriesWithCloses(t, []float64{100, 100, 100, 100, 100, 100})
	strat := SignalFunc{Fn: func(s *market.Series) ([]Signal, error) {
		return []Signal{Hold, Buy, Hold, Buy, Sell, Hold}, nil
	}}

	pos, err := Positions(strat, s)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1, 1, 0, 0}, pos)
}

func TestNoLookAhead(t *testing.T) {
	t.Parallel()

	// The signal at bar i must depend only on bars 0..i: recomputing over
	// a series whose future indicator values changed must leave earlier
	// signals untouched.
	closes := []float64{100, 100, 100, 100, 100, 100}
	rsi := []float64{25, 28, 32, 40, 55, 72}

	s1 := seriesWithCloses(t, closes)
	require.NoError(t, s1.SetIndicator("rsi", rsi))

	mutated := append([]float64(nil), rsi...)
	mutated[4] = 10
	mutated[5] = 90
	s2 := seriesWithCloses(t, closes)
	require.NoError(t, s2.SetIndicator("rsi", mutated))

	strat := NewThresholdCross("rsi", 30, 70)
	sig1, err := strat.GenerateSignals(s1)
	require.NoError(t, err)
	sig2, err := strat.GenerateSignals(s2)
	require.NoError(t, err)

	assert.Equal(t, sig1[:4], sig2[:4])
}

func TestStrategyByName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"noop", "rsi", "macd", "ma-cross", "bbands", "combined"} {
		strat, err := StrategyByName(name)
		require.NoError(t, err, name)
		require.NotNil(t, strat, name)
	}

	_, err := StrategyByName("momentum")
	assert.Error(t, err)
}

func TestStrategyFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("rsi thresholds", func(t *testing.T) {
		t.Parallel()
		strat, err := StrategyFromConfig("rsi", map[string]float64{"low": 20, "high": 80})
		require.NoError(t, err)

		tc, ok := strat.(*ThresholdCross)
		require.True(t, ok)
		assert.Equal(t, 20.0, tc.Low)
		assert.Equal(t, 80.0, tc.High)
	})

	t.Run("ma-cross periods", func(t *testing.T) {
		t.Parallel()
		strat, err := StrategyFromConfig("ma-cross", map[string]float64{"fast": 10, "slow": 50})
		require.NoError(t, err)

		c, ok := strat.(*Crossover)
		require.True(t, ok)
		assert.Equal(t, "sma_10", c.FastColumn)
		assert.Equal(t, "sma_50", c.SlowColumn)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()
		_, err := StrategyFromConfig("rsi", map[string]float64{"period": 14})
		assert.Error(t, err)
	})

	t.Run("no params passes through", func(t *testing.T) {
		t.Parallel()
		strat, err := StrategyFromConfig("noop", nil)
		require.NoError(t, err)
		assert.Equal(t, "noop", strat.Name())
	})

	t.Run("parameterless strategy rejects params", func(t *testing.T) {
		t.Parallel()
		_, err := StrategyFromConfig("noop", map[string]float64{"x": 1})
		assert.Error(t, err)
	})
}
