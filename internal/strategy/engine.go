package strategy

import "CoinSentinel/internal/model"

// Policy controls optional behavior of the decision engine.
type Policy struct {
	// TrackPositions suppresses repeat buy signals for markets already
	// entered through this engine. The historical behavior is off: every
	// cycle re-evaluates from scratch and may re-fire the same buy.
	TrackPositions bool
}

// Engine turns raw crossover detections into per-market decisions,
// optionally tracking which markets are currently held.
type Engine struct {
	policy Policy
	held   map[string]bool
}

// NewEngine creates a decision engine with the given policy.
func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy, held: make(map[string]bool)}
}

// Decide evaluates one market's completed RSI pair.
func (e *Engine) Decide(market string, previous, current float64) model.Decision {
	d := model.Decision{
		Kind:        Detect(previous, current),
		Market:      market,
		RSICurrent:  current,
		RSIPrevious: previous,
	}
	if d.Kind == model.Buy && e.policy.TrackPositions && e.held[market] {
		d.Kind = model.NoOp
	}
	return d
}

// MarkBought records an executed entry for the market.
func (e *Engine) MarkBought(market string) {
	e.held[market] = true
}

// MarkSold records an executed exit for the market.
func (e *Engine) MarkSold(market string) {
	delete(e.held, market)
}
