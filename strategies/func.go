package strategies

import "github.com/rustyeddy/backtester/market"

// SignalFunc adapts a plain function into a Strategy, for one-off rules
// that do not deserve their own type.
type SignalFunc struct {
	Label string
	Fn    func(s *market.Series) ([]Signal, error)
}

func (f SignalFunc) Name() string {
	if f.Label != "" {
		return f.Label
	}
	return "custom"
}

func (f SignalFunc) GenerateSignals(s *market.Series) ([]Signal, error) {
	return f.Fn(s)
}
