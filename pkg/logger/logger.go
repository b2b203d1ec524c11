package logger

import (
	"fmt"

	"go.uber.org/zap"
)

var (
	base        = zap.NewNop()
	serviceName = "coinsentinel"
)

// Init replaces the no-op logger with a production zap logger. Must be
// called once from main before any logging.
func Init(service string) error {
	l, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init zap: %w", err)
	}
	base = l
	if service != "" {
		serviceName = service
	}
	return nil
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	_ = base.Sync()
}

func Info(format string, args ...interface{}) {
	base.With(zap.String("service", serviceName)).Info(fmt.Sprintf(format, args...))
}

func Warn(format string, args ...interface{}) {
	base.With(zap.String("service", serviceName)).Warn(fmt.Sprintf(format, args...))
}

func Error(format string, args ...interface{}) {
	base.With(zap.String("service", serviceName)).Error(fmt.Sprintf(format, args...))
}

func Fatal(format string, args ...interface{}) {
	base.With(zap.String("service", serviceName)).Fatal(fmt.Sprintf(format, args...))
}
