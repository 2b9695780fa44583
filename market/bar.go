// Package market holds the price-series data model consumed by strategies
// and the backtest engine: OHLCV bars plus named, precomputed indicator
// columns aligned with the bars.
package market

import (
	"fmt"
	"time"
)

// Bar is one row of an OHLCV time series.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Validate checks a single bar for usable values. Prices must be positive
// and finite; volume must be non-negative.
func (b Bar) Validate() error {
	for _, p := range []struct {
		name string
		val  float64
	}{
		{"open", b.Open},
		{"high", b.High},
		{"low", b.Low},
		{"close", b.Close},
	} {
		if !isFinite(p.val) || p.val <= 0 {
			return fmt.Errorf("bar %s: %s must be positive and finite, got %v",
				b.Date.Format("2006-01-02"), p.name, p.val)
		}
	}
	if !isFinite(b.Volume) || b.Volume < 0 {
		return fmt.Errorf("bar %s: volume must be non-negative and finite, got %v",
			b.Date.Format("2006-01-02"), b.Volume)
	}
	return nil
}
