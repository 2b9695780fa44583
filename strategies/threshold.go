package strategies

import (
	"fmt"

	"github.com/rustyeddy/backtester/market"
)

// ThresholdCross signals on upward breakouts of an oscillator column
// through two levels: Buy when the value crosses up through Low (leaving
// the oversold zone), Sell when it crosses up through High (entering the
// overbought zone). Reaching a level without crossing it produces no
// signal.
type ThresholdCross struct {
	Column string
	Low    float64
	High   float64
}

// NewThresholdCross is the usual constructor; the classic RSI setup is
// NewThresholdCross("rsi", 30, 70).
func NewThresholdCross(column string, low, high float64) *ThresholdCross {
	return &ThresholdCross{Column: column, Low: low, High: high}
}

func (t *ThresholdCross) Name() string {
	return fmt.Sprintf("%s(%g/%g)", t.Column, t.Low, t.High)
}

func (t *ThresholdCross) GenerateSignals(s *market.Series) ([]Signal, error) {
	col, err := indicator(s, "threshold-cross", t.Column)
	if err != nil {
		return nil, err
	}

	signals := make([]Signal, s.Len())
	for i := 1; i < len(col); i++ {
		prev, cur := col[i-1], col[i]
		// NaN warm-up values fail every comparison, leaving Hold.
		switch {
		case prev < t.Low && cur >= t.Low:
			signals[i] = Buy
		case prev < t.High && cur >= t.High:
			signals[i] = Sell
		}
	}
	return signals, nil
}
