package strategies

import (
	"fmt"

	"github.com/rustyeddy/backtester/market"
)

// BandTouch implements a band re-entry rule on the close price: Buy when
// the close, having been below the lower band on the previous bar, comes
// back to at or above it; Sell on the symmetric upper-band re-entry.
type BandTouch struct {
	LowerColumn string
	UpperColumn string
}

func (b *BandTouch) Name() string {
	return fmt.Sprintf("band(%s/%s)", b.LowerColumn, b.UpperColumn)
}

func (b *BandTouch) GenerateSignals(s *market.Series) ([]Signal, error) {
	lower, err := indicator(s, "band-touch", b.LowerColumn)
	if err != nil {
		return nil, err
	}
	upper, err := indicator(s, "band-touch", b.UpperColumn)
	if err != nil {
		return nil, err
	}

	signals := make([]Signal, s.Len())
	for i := 1; i < s.Len(); i++ {
		prevClose := s.Bar(i - 1).Close
		curClose := s.Bar(i).Close
		switch {
		case prevClose < lower[i-1] && curClose >= lower[i]:
			signals[i] = Buy
		case prevClose < upper[i-1] && curClose >= upper[i]:
			signals[i] = Sell
		}
	}
	return signals, nil
}
