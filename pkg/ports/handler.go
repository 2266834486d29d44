package ports

import "context"

// StepHandler performs one step's external interaction (presenting a
// verification UI, opening a web view) and produces a flat string result map
// for the remote engine.
//
// Handle receives the raw, still transport-encoded payload so the handler can
// extract its own step-specific parameters. It must return exactly once,
// either with a result map or with an error; a handler that never returns
// leaves the orchestrator suspended for the lifetime of its context.
type StepHandler interface {
	Handle(ctx context.Context, payload []byte) (map[string]string, error)
}

// StepHandlerFunc adapts a plain function to the StepHandler interface.
type StepHandlerFunc func(ctx context.Context, payload []byte) (map[string]string, error)

// Handle calls f.
func (f StepHandlerFunc) Handle(ctx context.Context, payload []byte) (map[string]string, error) {
	return f(ctx, payload)
}
