package ggmask

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for ggmask and its sub-packages.
// By default, ggmask produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior.
//
// Log levels used by ggmask:
//   - [slog.LevelDebug]: stencil material creation and destruction
//   - [slog.LevelInfo]: GPU material factory lifecycle
//   - [slog.LevelWarn]: stencil depth budget exceeded, material factory failures
//
// Example:
//
//	ggmask.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	// Propagate to the default cache's factory if it keeps its own logger.
	propagateLogger(DefaultMaterialCache().factory, l)
}

// Logger returns the current logger used by ggmask.
// Sub-packages (canvas, gpu) call this to share the same configuration.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by material factories that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the logger to a factory if it implements
// loggerSetter.
func propagateLogger(f MaterialFactory, l *slog.Logger) {
	if ls, ok := f.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}
