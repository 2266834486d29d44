package domain

import (
	"errors"
	"fmt"
)

// ErrDecodeFailed is returned when a transport payload cannot be parsed as
// structured data, or when none of the requested keys are present. Callers
// treat it identically to an unsupported instruction: log and abort, no retry.
var ErrDecodeFailed = errors.New("instruction payload decode failed")

// ErrEncodeFailed is returned when a handler result cannot be serialized into
// the transport form. The continuation is aborted without a partial submit.
var ErrEncodeFailed = errors.New("result payload encode failed")

// ErrUnknownStep is returned when no handler is registered for a decoded step
// identifier. The orchestrator logs and takes no further action.
var ErrUnknownStep = errors.New("no handler registered for step")

// ErrRunInFlight is returned when a continuation is triggered while another
// run holds the flow slot. Callers are expected to serialize triggers.
var ErrRunInFlight = errors.New("a flow continuation is already in flight")

// ErrTriggerNotFound is returned when a trigger store holds nothing under the
// requested key.
var ErrTriggerNotFound = errors.New("pending trigger not found")

// ErrSessionExpired is returned when a token's expiry claim lies in the past.
var ErrSessionExpired = errors.New("session expired")

// ErrSessionIndeterminate is returned when a token carries no expiry claim;
// the gate cannot decide and the caller must apply its own policy.
var ErrSessionIndeterminate = errors.New("session validity indeterminate")

// HandlerError wraps a failure reported by a step handler. The cause is
// opaque to the orchestrator.
type HandlerError struct {
	Step string
	Err  error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("step %q handler failed: %v", e.Step, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// SubmitError wraps a transition submission rejected by the remote engine or
// lost to the network.
type SubmitError struct {
	TransitionID string
	ProcessID    string
	Err          error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("transition %q for process %q failed: %v", e.TransitionID, e.ProcessID, e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }
