package ggmask

// Notifier is told whenever a mask's stencil contribution changes, so that
// the materials of the affected subtree can be re-derived.
type Notifier interface {
	NotifyStencilStateChanged(n Node)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Node)

// NotifyStencilStateChanged calls f(n).
func (f NotifierFunc) NotifyStencilStateChanged(n Node) { f(n) }

type nopNotifier struct{}

func (nopNotifier) NotifyStencilStateChanged(Node) {}

// Diagnostics receives non-fatal problems found while deriving materials.
type Diagnostics interface {
	Warn(msg string, n Node)
}

// DiagnosticsFunc adapts a function to the Diagnostics interface.
type DiagnosticsFunc func(msg string, n Node)

// Warn calls f(msg, n).
func (f DiagnosticsFunc) Warn(msg string, n Node) { f(msg, n) }

// logDiagnostics reports through the package logger.
type logDiagnostics struct{}

func (logDiagnostics) Warn(msg string, n Node) {
	Logger().Warn(msg, "node", n)
}
