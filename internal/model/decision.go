package model

// DecisionKind classifies the outcome of one signal evaluation.
type DecisionKind int

const (
	NoOp DecisionKind = iota
	Buy
	Sell
)

func (k DecisionKind) String() string {
	switch k {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "NOOP"
	}
}

// Decision is the per-market output of the signal detector plus the RSI
// values that produced it.
type Decision struct {
	Kind        DecisionKind
	Market      string
	RSICurrent  float64
	RSIPrevious float64
}

// TradeResult describes an executed (or suppressed) order. Profit fields
// are meaningful only for sells.
type TradeResult struct {
	Market     string
	Kind       DecisionKind
	Price      float64
	Quantity   float64
	Notional   float64
	Profit     float64
	ProfitRate float64
}

// OrderReceipt is the exchange's acknowledgement of a placed order.
type OrderReceipt struct {
	UUID      string
	Market    string
	Side      string
	Price     float64
	Volume    float64
	CreatedAt string
}
