package recorder

// NoopRecorder discards all events. Used when no database path is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordDecision(*DecisionEvent) error { return nil }
func (n *NoopRecorder) RecordCycle(*CycleEvent) error       { return nil }
func (n *NoopRecorder) Close() error                        { return nil }
