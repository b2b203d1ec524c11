package strategy

import (
	"math"
	"testing"

	"CoinSentinel/internal/model"
)

func TestDetect_BuyBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		previous float64
		current  float64
		want     model.DecisionKind
	}{
		{"oversold turning up", 25, 27, model.Buy},
		{"exactly at level, turning up", 30, 30.01, model.Buy},
		{"turn up while still below level", 20, 22, model.Buy},
		{"just above level", 30.01, 35, model.NoOp},
		{"oversold but still falling", 25, 24, model.NoOp},
		{"oversold and flat", 25, 25, model.NoOp},
	}
	for _, tt := range tests {
		if got := Detect(tt.previous, tt.current); got != tt.want {
			t.Errorf("%s: Detect(%.2f, %.2f) = %v, want %v",
				tt.name, tt.previous, tt.current, got, tt.want)
		}
	}
}

func TestDetect_SellBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		previous float64
		current  float64
		want     model.DecisionKind
	}{
		{"crossing back below level", 75, 65, model.Sell},
		{"exactly at level, crossing down", 70, 69.99, model.Sell},
		{"still above level", 75, 71, model.NoOp},
		{"landing exactly on level", 75, 70, model.NoOp},
		{"below level already", 69.99, 60, model.NoOp},
	}
	for _, tt := range tests {
		if got := Detect(tt.previous, tt.current); got != tt.want {
			t.Errorf("%s: Detect(%.2f, %.2f) = %v, want %v",
				tt.name, tt.previous, tt.current, got, tt.want)
		}
	}
}

func TestDetect_NaNIsNoSignal(t *testing.T) {
	nan := math.NaN()
	if got := Detect(nan, 50); got != model.NoOp {
		t.Errorf("Detect(NaN, 50) = %v, want NoOp", got)
	}
	if got := Detect(25, nan); got != model.NoOp {
		t.Errorf("Detect(25, NaN) = %v, want NoOp", got)
	}
}

func TestDecisionPoints(t *testing.T) {
	if _, _, ok := DecisionPoints([]float64{1, 2}); ok {
		t.Error("expected not ok for short series")
	}
	prev, cur, ok := DecisionPoints([]float64{10, 20, 30, 40})
	if !ok {
		t.Fatal("expected ok")
	}
	if prev != 20 || cur != 30 {
		t.Errorf("got prev=%v cur=%v, want 20, 30 (last element excluded)", prev, cur)
	}
}

func TestEngine_RepeatBuyDefault(t *testing.T) {
	e := NewEngine(Policy{})
	d1 := e.Decide("KRW-BTC", 25, 28)
	if d1.Kind != model.Buy {
		t.Fatalf("first decision = %v, want Buy", d1.Kind)
	}
	e.MarkBought("KRW-BTC")
	// Historical behavior: no position memory, the same pattern re-fires.
	d2 := e.Decide("KRW-BTC", 26, 29)
	if d2.Kind != model.Buy {
		t.Errorf("second decision = %v, want Buy (tracking off)", d2.Kind)
	}
}

func TestEngine_RepeatBuySuppressed(t *testing.T) {
	e := NewEngine(Policy{TrackPositions: true})
	e.MarkBought("KRW-ETH")
	if d := e.Decide("KRW-ETH", 25, 28); d.Kind != model.NoOp {
		t.Errorf("held market decision = %v, want NoOp", d.Kind)
	}
	// Other markets are unaffected.
	if d := e.Decide("KRW-BTC", 25, 28); d.Kind != model.Buy {
		t.Errorf("unheld market decision = %v, want Buy", d.Kind)
	}
	// Selling clears the hold.
	e.MarkSold("KRW-ETH")
	if d := e.Decide("KRW-ETH", 25, 28); d.Kind != model.Buy {
		t.Errorf("after sell decision = %v, want Buy", d.Kind)
	}
	// Sell signals are never suppressed by tracking.
	e.MarkBought("KRW-XRP")
	if d := e.Decide("KRW-XRP", 75, 65); d.Kind != model.Sell {
		t.Errorf("sell on held market = %v, want Sell", d.Kind)
	}
}
