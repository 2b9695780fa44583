// Package strategies turns an indicator-annotated price series into
// per-bar trading signals. Strategies are stateless between calls and
// deterministic: the signal at bar i depends only on bars 0..i.
package strategies

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rustyeddy/backtester/market"
)

// Signal is a per-bar trading decision.
type Signal int8

const (
	Sell Signal = -1
	Hold Signal = 0
	Buy  Signal = +1
)

func (s Signal) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// ErrMissingIndicator reports that a strategy needs an indicator column
// the series does not carry. This is a configuration error: attach the
// column before running, it is never recovered from silently.
var ErrMissingIndicator = errors.New("missing indicator column")

// Strategy generates one signal per input bar. The returned slice has the
// same length as the series; warm-up bars (indicator still NaN) are Hold.
type Strategy interface {
	Name() string
	GenerateSignals(s *market.Series) ([]Signal, error)
}

// Positions folds a strategy's signals into a long(1)/flat(0) sequence:
// switch to long on Buy, to flat on Sell, carry the last state across
// Hold bars.
func Positions(strat Strategy, s *market.Series) ([]int, error) {
	signals, err := strat.GenerateSignals(s)
	if err != nil {
		return nil, err
	}

	positions := make([]int, len(signals))
	state := 0
	for i, sig := range signals {
		switch sig {
		case Buy:
			state = 1
		case Sell:
			state = 0
		}
		positions[i] = state
	}
	return positions, nil
}

func indicator(s *market.Series, strat, column string) ([]float64, error) {
	vals, ok := s.Indicator(column)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", strat, ErrMissingIndicator, column)
	}
	return vals, nil
}

// StrategyByName builds one of the stock strategies from its short name.
// Supported: noop, rsi, macd, ma-cross, bbands, combined.
func StrategyByName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "noop", "none":
		return Noop{}, nil

	case "rsi":
		return NewThresholdCross("rsi", 30, 70), nil

	case "macd":
		return &Crossover{Label: "MACD", FastColumn: "macd", SlowColumn: "macd_signal"}, nil

	case "ma-cross", "macross":
		return &Crossover{Label: "MA(20/60)", FastColumn: "sma_20", SlowColumn: "sma_60"}, nil

	case "bbands", "bollinger":
		return &BandTouch{LowerColumn: "bb_lower", UpperColumn: "bb_upper"}, nil

	case "combined":
		return &Voting{
			Label: "Combined",
			Members: []Strategy{
				NewThresholdCross("rsi", 30, 70),
				&Crossover{Label: "MACD", FastColumn: "macd", SlowColumn: "macd_signal"},
			},
			Quorum: 2,
		}, nil

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: noop, rsi, macd, ma-cross, bbands, combined)", name)
	}
}

// StrategyFromConfig builds a strategy by name and applies numeric
// parameter overrides where the strategy has any: rsi takes low/high,
// ma-cross takes fast/slow SMA periods, combined takes quorum. Unknown
// parameter keys are rejected.
func StrategyFromConfig(name string, params map[string]float64) (Strategy, error) {
	strat, err := StrategyByName(name)
	if err != nil {
		return nil, err
	}

	for key, val := range params {
		switch s := strat.(type) {
		case *ThresholdCross:
			switch key {
			case "low":
				s.Low = val
			case "high":
				s.High = val
			default:
				return nil, fmt.Errorf("strategy %q: unknown parameter %q", name, key)
			}
		case *Crossover:
			switch key {
			case "fast":
				s.FastColumn = fmt.Sprintf("sma_%d", int(val))
			case "slow":
				s.SlowColumn = fmt.Sprintf("sma_%d", int(val))
			default:
				return nil, fmt.Errorf("strategy %q: unknown parameter %q", name, key)
			}
			s.Label = ""
		case *Voting:
			if key != "quorum" {
				return nil, fmt.Errorf("strategy %q: unknown parameter %q", name, key)
			}
			s.Quorum = int(val)
		default:
			return nil, fmt.Errorf("strategy %q takes no parameters", name)
		}
	}
	return strat, nil
}
