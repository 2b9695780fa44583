package strategies

import "github.com/rustyeddy/backtester/market"

// Noop never signals. Useful as a baseline and in tests.
type Noop struct{}

func (Noop) Name() string { return "noop" }

func (Noop) GenerateSignals(s *market.Series) ([]Signal, error) {
	return make([]Signal, s.Len()), nil
}
