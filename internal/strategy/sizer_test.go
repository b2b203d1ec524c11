package strategy

import (
	"math"
	"testing"
)

func TestSizeSell_FullBalance(t *testing.T) {
	plan, ok := SizeSell(0.5, 20000, 5000, 5000)
	if !ok {
		t.Fatal("expected sell above the floor to proceed")
	}
	if plan.Quantity != 0.5 {
		t.Errorf("quantity = %v, want full balance 0.5", plan.Quantity)
	}
	if plan.Notional != 10000 {
		t.Errorf("notional = %v, want 10000", plan.Notional)
	}
	wantProfit := (20000.0 - 5000.0) * 0.5
	if math.Abs(plan.Profit-wantProfit) > 1e-9 {
		t.Errorf("profit = %v, want %v", plan.Profit, wantProfit)
	}
	wantRate := wantProfit / 5000.0 * 100
	if math.Abs(plan.ProfitRate-wantRate) > 1e-9 {
		t.Errorf("profit rate = %v, want %v", plan.ProfitRate, wantRate)
	}
}

func TestSizeSell_SuppressedBelowFloor(t *testing.T) {
	plan, ok := SizeSell(0.001, 100000, 5000, 5000)
	if ok {
		t.Errorf("notional %v is below the floor, sell must be suppressed", plan.Notional)
	}
}

func TestSizeSell_ExactFloorProceeds(t *testing.T) {
	if _, ok := SizeSell(1, 5000, 5000, 5000); !ok {
		t.Error("notional equal to the floor should proceed")
	}
}

func TestSizeSell_ZeroBalance(t *testing.T) {
	plan, ok := SizeSell(0, 100000, 5000, 5000)
	if ok {
		t.Error("zero balance must never produce an executable sell")
	}
	if plan.Notional != 0 {
		t.Errorf("notional = %v, want 0", plan.Notional)
	}
}

func TestSizeSell_Loss(t *testing.T) {
	plan, ok := SizeSell(2, 3000, 5000, 5000)
	if !ok {
		t.Fatal("expected sell to proceed")
	}
	if plan.Profit >= 0 {
		t.Errorf("profit = %v, want negative", plan.Profit)
	}
}
