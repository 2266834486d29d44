package flowkit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/effective-digital/flowkit/internal/logging"
	"github.com/effective-digital/flowkit/internal/runtime"
	"github.com/effective-digital/flowkit/pkg/bus"
	"github.com/effective-digital/flowkit/pkg/domain"
	"github.com/effective-digital/flowkit/pkg/ports"
	"github.com/effective-digital/flowkit/pkg/registry"
	"github.com/effective-digital/flowkit/pkg/session"
)

// Version of the flowkit library.
var Version = "0.1.0"

// DefaultRecognizedKeys is the parameter set extracted from instruction
// payloads when no custom key set is configured. Step handlers may extract
// further keys of their own from the raw payload.
var DefaultRecognizedKeys = []string{"token", "clientID", "secondParams", "transactionId", "amount"}

// Instruction is one inbound continuation trigger as delivered by the host:
// banner tap, notification tap, or a server-pushed redirect.
type Instruction = runtime.Instruction

// Engine is the high-level entry point for the flowkit library. It bundles
// the step handler registry, the flow state bus, the session gate, and the
// continuation orchestrator behind a single constructor.
type Engine struct {
	registry  *registry.Registry
	bus       *bus.Bus
	gate      *session.Gate
	presenter ports.Presenter
	hooks     domain.LifecycleHooks
	keys      []string
	logger    *slog.Logger

	orchestrator *runtime.Orchestrator
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks. Combine multiple hook sets with
// domain.MergeHooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithRegistry injects a pre-populated handler registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = reg
	}
}

// WithHandler registers a single step handler. May be repeated.
func WithHandler(step string, h ports.StepHandler) Option {
	return func(e *Engine) {
		if e.registry == nil {
			e.registry = registry.New()
		}
		e.registry.Register(step, h)
	}
}

// WithBus injects an externally owned flow state bus, letting the host share
// one bus across engine rebuilds (e.g. login cycles).
func WithBus(b *bus.Bus) Option {
	return func(e *Engine) {
		e.bus = b
	}
}

// WithSessionGate injects a configured session gate (e.g. with leeway).
func WithSessionGate(g *session.Gate) Option {
	return func(e *Engine) {
		e.gate = g
	}
}

// WithRecognizedKeys replaces DefaultRecognizedKeys for payload decoding.
func WithRecognizedKeys(keys ...string) Option {
	return func(e *Engine) {
		e.keys = keys
	}
}

// New initializes a flowkit Engine. The presenter is the host's screen
// surface and is required; everything else has a usable default.
func New(presenter ports.Presenter, opts ...Option) (*Engine, error) {
	if presenter == nil {
		return nil, fmt.Errorf("presenter is required")
	}

	e := &Engine{presenter: presenter}
	for _, opt := range opts {
		opt(e)
	}

	if e.registry == nil {
		e.registry = registry.New()
	}
	if e.bus == nil {
		e.bus = bus.New()
	}
	if e.gate == nil {
		e.gate = session.NewGate()
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.keys == nil {
		e.keys = DefaultRecognizedKeys
	}

	e.orchestrator = runtime.New(e.registry, e.presenter, e.bus,
		runtime.WithLogger(e.logger),
		runtime.WithHooks(e.hooks),
		runtime.WithRecognizedKeys(e.keys...),
	)
	return e, nil
}

// Continue runs one flow continuation to completion: decode the instruction,
// dismiss the current screen, dispatch the step handler, submit the result
// through instr.Submit, and publish the next presentation state on the bus.
// Returns domain.ErrRunInFlight if another continuation holds the flow slot.
func (e *Engine) Continue(ctx context.Context, instr Instruction) error {
	return e.orchestrator.Continue(ctx, instr)
}

// Resume loads a stored trigger, consults the session gate on the token
// captured at delivery time, and continues the flow.
//
// An expired session deletes the trigger (it will never become valid) and
// returns domain.ErrSessionExpired. An indeterminate session leaves the
// trigger in place and returns domain.ErrSessionIndeterminate so the host can
// decide its own policy and retry.
func (e *Engine) Resume(ctx context.Context, store ports.TriggerStore, key string, checkExpiry bool, submit ports.SubmitFunc) error {
	trigger, err := store.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("load pending trigger: %w", err)
	}

	decision, gateErr := e.gate.Check(trigger.Token, checkExpiry)
	switch decision {
	case session.Expired:
		if delErr := store.Delete(ctx, key); delErr != nil {
			e.logger.Error("deleting expired trigger failed", "error", delErr, "key", key)
		}
		return gateErr
	case session.Indeterminate:
		return gateErr
	}

	if err := store.Delete(ctx, key); err != nil {
		e.logger.Error("deleting consumed trigger failed", "error", err, "key", key)
	}

	return e.Continue(ctx, Instruction{
		TransitionID: trigger.TransitionID,
		ProcessID:    trigger.ProcessID,
		Payload:      trigger.Payload,
		Submit:       submit,
	})
}

// Registry returns the step handler registry for host extension.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Bus returns the flow state bus the engine publishes on.
func (e *Engine) Bus() *bus.Bus {
	return e.bus
}

// Gate returns the engine's session gate.
func (e *Engine) Gate() *session.Gate {
	return e.gate
}
