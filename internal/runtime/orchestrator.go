// Package runtime contains the continuation orchestrator: the state machine
// that drives one flow continuation from inbound instruction to published
// outcome.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/effective-digital/flowkit/internal/logging"
	"github.com/effective-digital/flowkit/pkg/bus"
	"github.com/effective-digital/flowkit/pkg/codec"
	"github.com/effective-digital/flowkit/pkg/domain"
	"github.com/effective-digital/flowkit/pkg/ports"
	"github.com/effective-digital/flowkit/pkg/registry"
)

// State identifies where a continuation run currently is. Exposed for
// introspection and tests; hosts should not branch on it.
type State string

const (
	StateIdle            State = "idle"
	StateDecoding        State = "decoding"
	StateDismissing      State = "dismissing"
	StateAwaitingHandler State = "awaiting_handler"
	StateSubmitting      State = "submitting"
)

// Instruction is one inbound continuation trigger: the transition and process
// identifiers, the opaque payload, and the bound submit callback that reports
// the step result back to the remote engine.
type Instruction struct {
	TransitionID string
	ProcessID    string
	Payload      []byte
	Submit       ports.SubmitFunc
}

// Orchestrator sequences dismissal of the current screen, handler dispatch,
// result submission, and outcome publication. It holds the single logical
// flow slot: at most one run is in flight at a time.
type Orchestrator struct {
	registry  *registry.Registry
	presenter ports.Presenter
	bus       *bus.Bus
	keys      []string
	hooks     domain.LifecycleHooks
	logger    *slog.Logger

	inFlight atomic.Bool
	state    atomic.Value // State
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets a structured logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithHooks registers lifecycle callbacks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(o *Orchestrator) {
		o.hooks = hooks
	}
}

// WithRecognizedKeys sets the payload keys extracted during decoding, in
// addition to the step identifier.
func WithRecognizedKeys(keys ...string) Option {
	return func(o *Orchestrator) {
		o.keys = keys
	}
}

// New creates an orchestrator bound to a handler registry, a presenter, and
// an outcome bus.
func New(reg *registry.Registry, presenter ports.Presenter, b *bus.Bus, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry:  reg,
		presenter: presenter,
		bus:       b,
		logger:    logging.NewNop(),
	}
	o.state.Store(StateIdle)
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the orchestrator's current state.
func (o *Orchestrator) State() State {
	return o.state.Load().(State)
}

// Continue runs one flow continuation to its terminal state.
//
// The five phases of a run execute strictly in order: decode, dismiss the
// current screen and raise the interstitial, dispatch the step handler,
// submit the encoded result, publish the outcome. No phase begins before the
// previous one has completed. Every failure is terminal for the run: logged,
// the interstitial dismissed if it was raised, nothing published, no retry.
//
// A second Continue while a run is in flight returns domain.ErrRunInFlight
// without touching the UI; callers are expected to serialize triggers.
func (o *Orchestrator) Continue(ctx context.Context, instr Instruction) error {
	if !o.inFlight.CompareAndSwap(false, true) {
		o.logger.Warn("continuation rejected, run already in flight",
			"transition_id", instr.TransitionID, "process_id", instr.ProcessID)
		return domain.ErrRunInFlight
	}
	defer func() {
		o.state.Store(StateIdle)
		o.inFlight.Store(false)
	}()

	run := &runCtx{
		id:      uuid.NewString(),
		instr:   instr,
		started: time.Now(),
	}
	run.logger = o.logger.With("run_id", run.id,
		"transition_id", instr.TransitionID, "process_id", instr.ProcessID)

	o.emitRunStart(ctx, run)
	err := o.run(ctx, run)
	o.emitRunEnd(ctx, run, err)
	return err
}

// runCtx carries the per-run correlation id and decoded instruction through
// the phases.
type runCtx struct {
	id      string
	instr   Instruction
	decoded domain.StepInstruction
	started time.Time
	logger  *slog.Logger
}

func (o *Orchestrator) run(ctx context.Context, run *runCtx) error {
	// Phase 1: decode. Failures here never touch the UI.
	o.state.Store(StateDecoding)
	decoded, err := codec.Decode(run.instr.Payload, o.keys...)
	if err != nil {
		run.logger.Error("instruction decode failed", "error", err)
		return err
	}
	run.decoded = decoded
	run.logger = run.logger.With("step", decoded.Step)

	handler, ok := o.registry.Resolve(decoded.Step)
	if !ok {
		run.logger.Error("no handler for step", "error", domain.ErrUnknownStep)
		return fmt.Errorf("%w: %q", domain.ErrUnknownStep, decoded.Step)
	}

	// Phase 2: clear the screen and raise the interstitial. The handler
	// needs exclusive screen ownership, and the remote round-trip after it
	// completes can take observable time.
	o.state.Store(StateDismissing)
	if err := o.presenter.DismissTop(ctx); err != nil {
		run.logger.Error("dismissing current screen failed", "error", err)
		return fmt.Errorf("dismiss current screen: %w", err)
	}
	if err := o.presenter.ShowInterstitial(ctx); err != nil {
		run.logger.Error("showing interstitial failed", "error", err)
		return fmt.Errorf("show interstitial: %w", err)
	}

	// From here on, every terminal path lowers the interstitial.
	instance, err := o.dispatchAndSubmit(ctx, run, handler)

	if hideErr := o.presenter.HideInterstitial(ctx); hideErr != nil {
		run.logger.Error("hiding interstitial failed", "error", hideErr)
		if err == nil {
			err = fmt.Errorf("hide interstitial: %w", hideErr)
		}
	}
	if err != nil {
		return err
	}

	run.logger.Info("flow continuation complete",
		"next_instance", instance.ID, "next_action", instance.Action,
		"elapsed", time.Since(run.started))
	o.bus.Publish(domain.PresentFlow(*instance))
	return nil
}

// dispatchAndSubmit covers the AwaitingHandler and Submitting phases. The
// interstitial is up for their whole duration; the caller lowers it.
func (o *Orchestrator) dispatchAndSubmit(ctx context.Context, run *runCtx, handler ports.StepHandler) (*domain.ProcessInstance, error) {
	o.state.Store(StateAwaitingHandler)
	o.emitStepDispatch(ctx, run)

	result, err := handler.Handle(ctx, run.instr.Payload)
	o.emitStepReturn(ctx, run, err != nil)
	if err != nil {
		herr := &domain.HandlerError{Step: run.decoded.Step, Err: err}
		run.logger.Error("step handler failed", "error", herr)
		return nil, herr
	}
	if err := ctx.Err(); err != nil {
		run.logger.Error("run cancelled after handler", "error", err)
		return nil, &domain.HandlerError{Step: run.decoded.Step, Err: err}
	}

	encoded, err := codec.Encode(result)
	if err != nil {
		// The submit callback is never invoked on a partial result.
		run.logger.Error("result encode failed", "error", err)
		return nil, err
	}

	o.state.Store(StateSubmitting)
	instance, err := run.instr.Submit(ctx, run.instr.TransitionID, run.instr.ProcessID, encoded)
	if err != nil {
		serr := &domain.SubmitError{
			TransitionID: run.instr.TransitionID,
			ProcessID:    run.instr.ProcessID,
			Err:          err,
		}
		run.logger.Error("transition submit failed", "error", serr)
		return nil, serr
	}
	if instance == nil {
		serr := &domain.SubmitError{
			TransitionID: run.instr.TransitionID,
			ProcessID:    run.instr.ProcessID,
			Err:          errors.New("submit returned no instance"),
		}
		run.logger.Error("transition submit failed", "error", serr)
		return nil, serr
	}
	return instance, nil
}

func (o *Orchestrator) emitRunStart(ctx context.Context, run *runCtx) {
	if o.hooks.OnRunStart == nil {
		return
	}
	o.hooks.OnRunStart(ctx, &domain.RunEvent{
		EventBase:    domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunStart, RunID: run.id},
		TransitionID: run.instr.TransitionID,
		ProcessID:    run.instr.ProcessID,
	})
}

func (o *Orchestrator) emitRunEnd(ctx context.Context, run *runCtx, err error) {
	if o.hooks.OnRunEnd == nil {
		return
	}
	o.hooks.OnRunEnd(ctx, &domain.RunEvent{
		EventBase:    domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunEnd, RunID: run.id},
		TransitionID: run.instr.TransitionID,
		ProcessID:    run.instr.ProcessID,
		Step:         run.decoded.Step,
		Elapsed:      time.Since(run.started),
		Err:          err,
	})
}

func (o *Orchestrator) emitStepDispatch(ctx context.Context, run *runCtx) {
	if o.hooks.OnStepDispatch == nil {
		return
	}
	o.hooks.OnStepDispatch(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStepDispatch, RunID: run.id},
		Step:      run.decoded.Step,
	})
}

func (o *Orchestrator) emitStepReturn(ctx context.Context, run *runCtx, isErr bool) {
	if o.hooks.OnStepReturn == nil {
		return
	}
	o.hooks.OnStepReturn(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStepReturn, RunID: run.id},
		Step:      run.decoded.Step,
		IsError:   isErr,
	})
}
