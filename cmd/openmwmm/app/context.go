package app

import (
	"context"
	"os/signal"
	"syscall"
)

// ContextWithSignals derives a context cancelled on SIGINT or SIGTERM so an
// in-flight install copy or merge can stop at the next cancellation check.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// Context is ContextWithSignals rooted at context.Background.
func Context() (context.Context, context.CancelFunc) {
	return ContextWithSignals(context.Background())
}
