package market

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Series is an ordered OHLCV series plus zero or more named indicator
// columns. Indicator columns are the same length as the bar slice; slots
// where an indicator is not yet defined (lookback warm-up) hold NaN.
//
// A Series is read-only from the point of view of strategies and the
// backtester: they only inspect bars and indicator values.
type Series struct {
	bars       []Bar
	indicators map[string][]float64
}

// NewSeries wraps the given bars. The slice is used directly, not copied;
// the caller must not mutate it while a backtest is running.
func NewSeries(bars []Bar) *Series {
	return &Series{
		bars:       bars,
		indicators: make(map[string][]float64),
	}
}

// Len returns the number of bars.
func (s *Series) Len() int { return len(s.bars) }

// Bar returns the bar at index i.
func (s *Series) Bar(i int) Bar { return s.bars[i] }

// Bars returns the underlying bar slice.
func (s *Series) Bars() []Bar { return s.bars }

// Dates returns the bar timestamps as a new slice.
func (s *Series) Dates() []time.Time {
	out := make([]time.Time, len(s.bars))
	for i, b := range s.bars {
		out[i] = b.Date
	}
	return out
}

// Closes returns the close prices as a new slice.
func (s *Series) Closes() []float64 {
	out := make([]float64, len(s.bars))
	for i, b := range s.bars {
		out[i] = b.Close
	}
	return out
}

// Indicator returns the named indicator column. The second return value
// reports whether the column exists.
func (s *Series) Indicator(name string) ([]float64, bool) {
	vals, ok := s.indicators[name]
	return vals, ok
}

// IndicatorNames returns the attached indicator column names, sorted.
func (s *Series) IndicatorNames() []string {
	names := make([]string, 0, len(s.indicators))
	for name := range s.indicators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetIndicator attaches a named indicator column. The column must be the
// same length as the bar slice.
func (s *Series) SetIndicator(name string, vals []float64) error {
	if len(vals) != len(s.bars) {
		return fmt.Errorf("indicator %q: length %d does not match %d bars",
			name, len(vals), len(s.bars))
	}
	s.indicators[name] = vals
	return nil
}

// Validate checks the whole series: at least one bar, every bar valid,
// strictly increasing timestamps (duplicates rejected), and indicator
// columns aligned with the bars.
func (s *Series) Validate() error {
	if len(s.bars) == 0 {
		return fmt.Errorf("series: no bars")
	}
	for i, b := range s.bars {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("series: %w", err)
		}
		if i > 0 && !b.Date.After(s.bars[i-1].Date) {
			return fmt.Errorf("series: bars out of order at index %d (%s not after %s)",
				i, b.Date.Format("2006-01-02"), s.bars[i-1].Date.Format("2006-01-02"))
		}
	}
	for name, vals := range s.indicators {
		if len(vals) != len(s.bars) {
			return fmt.Errorf("series: indicator %q length %d does not match %d bars",
				name, len(vals), len(s.bars))
		}
	}
	return nil
}

// AttachSMA computes a simple moving average of the closes over the given
// period and attaches it as column "sma_<period>". The first period-1
// slots are NaN. Returns the column name.
func (s *Series) AttachSMA(period int) (string, error) {
	if period <= 0 {
		return "", fmt.Errorf("sma: period must be positive, got %d", period)
	}
	name := fmt.Sprintf("sma_%d", period)

	vals := make([]float64, len(s.bars))
	sum := 0.0
	for i, b := range s.bars {
		sum += b.Close
		if i >= period {
			sum -= s.bars[i-period].Close
		}
		if i >= period-1 {
			vals[i] = sum / float64(period)
		} else {
			vals[i] = math.NaN()
		}
	}
	if err := s.SetIndicator(name, vals); err != nil {
		return "", err
	}
	return name, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
