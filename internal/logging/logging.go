// Package logging configures the engine's structured logger.
//
// The engine logs through the logr API; zap is the sink. Components receive
// their logger through context the same way they receive cancellation.
package logging

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels used with logr's V().
const (
	INFO  = 0
	DEBUG = 1
	TRACE = 2
)

// NewLogger returns a production logger emitting JSON at the given verbosity.
func NewLogger(verbosity int) logr.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	z, err := cfg.Build()
	if err != nil {
		// Config is fixed apart from the level; Build cannot fail on it.
		panic(err)
	}
	return zapr.NewLogger(z)
}

// NewTestLogger returns a development logger suitable for test output.
func NewTestLogger() logr.Logger {
	z, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return zapr.NewLogger(z)
}

// IntoContext returns a context carrying the logger.
func IntoContext(ctx context.Context, log logr.Logger) context.Context {
	return logr.NewContext(ctx, log)
}

// FromContext returns the logger carried by ctx, or a discarding logger.
func FromContext(ctx context.Context) logr.Logger {
	return logr.FromContextOrDiscard(ctx)
}
