package main

// Analytics receives named product events. Nothing is returned to the caller.
type Analytics interface {
	Capture(event string, props map[string]any)
}

// LogAnalytics records events through the package logger.
type LogAnalytics struct{}

func (LogAnalytics) Capture(event string, props map[string]any) {
	args := []any{"event", event}
	for k, v := range props {
		args = append(args, k, v)
	}
	Logger().Info("analytics", args...)
}
