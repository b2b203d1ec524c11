package notifier

// Notifier delivers a message to the operator's chat channel. Delivery is
// best-effort: callers log failures and move on, never abort on them.
type Notifier interface {
	Send(text string) error
	Name() string
}

// NoopNotifier discards every message. Used when no backend is configured.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

func (n *NoopNotifier) Send(string) error { return nil }
func (n *NoopNotifier) Name() string      { return "noop" }
