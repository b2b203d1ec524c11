package recorder

// DecisionEvent captures one buy/sell decision, whether or not it executed.
type DecisionEvent struct {
	Market      string
	Kind        string // BUY or SELL
	Executed    bool
	Reason      string // set when not executed, e.g. below minimum order value
	Price       float64
	Quantity    float64
	Notional    float64
	Profit      float64
	ProfitRate  float64
	RSICurrent  float64
	RSIPrevious float64
}

// CycleEvent captures the outcome of one scan cycle.
type CycleEvent struct {
	MarketsScanned int
	OrdersPlaced   int
	Err            string // empty on success
}

// Recorder persists decision and cycle history for later analysis.
type Recorder interface {
	RecordDecision(e *DecisionEvent) error
	RecordCycle(e *CycleEvent) error
	Close() error
}
