package strategies

import (
	"fmt"

	"github.com/rustyeddy/backtester/market"
)

// Crossover signals on crossings of a fast line over a slow line (moving
// averages, or an oscillator against its signal line): Buy on the bar
// where fast moves from <= slow to > slow, Sell on the reverse crossing.
type Crossover struct {
	Label      string // optional display name
	FastColumn string
	SlowColumn string
}

func (c *Crossover) Name() string {
	if c.Label != "" {
		return c.Label
	}
	return fmt.Sprintf("%s/%s cross", c.FastColumn, c.SlowColumn)
}

func (c *Crossover) GenerateSignals(s *market.Series) ([]Signal, error) {
	fast, err := indicator(s, "crossover", c.FastColumn)
	if err != nil {
		return nil, err
	}
	slow, err := indicator(s, "crossover", c.SlowColumn)
	if err != nil {
		return nil, err
	}

	signals := make([]Signal, s.Len())
	for i := 1; i < len(fast); i++ {
		pf, ps := fast[i-1], slow[i-1]
		cf, cs := fast[i], slow[i]
		switch {
		case pf <= ps && cf > cs:
			signals[i] = Buy
		case pf >= ps && cf < cs:
			signals[i] = Sell
		}
	}
	return signals, nil
}
