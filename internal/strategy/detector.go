package strategy

import (
	"math"

	"CoinSentinel/internal/model"
)

// Oscillator thresholds for the crossover rules.
const (
	OversoldLevel   = 30.0
	OverboughtLevel = 70.0
)

// Detect applies the crossover rules to the two most recent completed RSI
// values and returns the raw decision kind.
//
// The buy rule is an upward-turn test: it fires while the oscillator is
// still at or below the oversold level as long as it turned up. The sell
// rule is a genuine threshold crossing back below the overbought level.
// The asymmetry is intentional (early entry, confirmed exit).
func Detect(previous, current float64) model.DecisionKind {
	if math.IsNaN(previous) || math.IsNaN(current) {
		return model.NoOp
	}
	if previous <= OversoldLevel && current > previous {
		return model.Buy
	}
	if previous >= OverboughtLevel && current < OverboughtLevel {
		return model.Sell
	}
	return model.NoOp
}

// DecisionPoints picks the two completed RSI values from a series: the last
// element is the still-forming candle and is excluded. Returns false when
// the series is too short to decide.
func DecisionPoints(rsi []float64) (previous, current float64, ok bool) {
	if len(rsi) < 3 {
		return 0, 0, false
	}
	return rsi[len(rsi)-3], rsi[len(rsi)-2], true
}
