// Package logger provides the structured logging facade used throughout
// the runtime. Every subsystem receives a *zap.SugaredLogger constructed
// here rather than building its own, so log output stays consistent in
// shape (JSON in production, console-friendly in development) regardless
// of which component emits it.
package logger

import (
	"go.uber.org/zap"
)

// New builds a production-configured *zap.SugaredLogger tagged with the
// given component name. The name becomes the logger's name (zap's Named),
// which appears on every entry and lets log aggregation distinguish the heap's
// collection messages from the lookup engine's or the actor registry's.
func New(component string) *zap.SugaredLogger {
	base, err := zap.NewProduction()
	if err != nil {
		// zap.NewProduction only fails if its default config can't build
		// its own encoder/sink, which does not happen with the stock
		// config. Falling back to NewNop keeps callers from having to
		// handle a realistically-impossible error.
		base = zap.NewNop()
	}

	return base.Sugar().Named(component)
}

// NewDevelopment builds a development-configured *zap.SugaredLogger,
// suited for local runs and tests where human-readable, colorized output
// matters more than structured JSON.
func NewDevelopment(component string) *zap.SugaredLogger {
	base, err := zap.NewDevelopment()
	if err != nil {
		base = zap.NewNop()
	}

	return base.Sugar().Named(component)
}

// NewNop builds a logger that discards everything. Useful in tests that
// exercise subsystems without asserting on log output.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
