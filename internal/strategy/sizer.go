package strategy

// SellPlan is the sized outcome of a sell decision.
type SellPlan struct {
	Quantity   float64
	Notional   float64
	Profit     float64
	ProfitRate float64
}

// SizeSell sizes a sell as the entire owned balance at the current best ask
// and computes the realized profit against the flat bid amount.
//
// The profit formula uses the bid amount (a currency notional) as the entry
// price reference. That conflation is a known modeling defect inherited
// from the deployed rules and is reproduced verbatim; see DESIGN.md before
// changing it.
//
// ok is false when the notional is below minOrderValue, in which case the
// sell must be suppressed.
func SizeSell(balance, askPrice, bidAmount, minOrderValue float64) (SellPlan, bool) {
	plan := SellPlan{
		Quantity: balance,
		Notional: balance * askPrice,
	}
	if plan.Notional < minOrderValue {
		return plan, false
	}
	plan.Profit = (askPrice - bidAmount) * balance
	if bidAmount != 0 {
		plan.ProfitRate = plan.Profit / bidAmount * 100
	}
	return plan, true
}
