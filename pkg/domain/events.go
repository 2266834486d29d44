package domain

import (
	"context"
	"time"
)

// EventType defines the category of a lifecycle event.
type EventType string

const (
	EventRunStart     EventType = "run_start"
	EventStepDispatch EventType = "step_dispatch"
	EventStepReturn   EventType = "step_return"
	EventRunEnd       EventType = "run_end"
)

// EventBase contains common fields for all lifecycle events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// RunEvent marks the start or end of one continuation run.
type RunEvent struct {
	EventBase
	TransitionID string        `json:"transition_id"`
	ProcessID    string        `json:"process_id"`
	Step         string        `json:"step,omitempty"`
	Elapsed      time.Duration `json:"elapsed,omitempty"`
	Err          error         `json:"-"`
}

// StepEvent marks handler dispatch or return within a run.
type StepEvent struct {
	EventBase
	Step    string `json:"step"`
	IsError bool   `json:"is_error,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability. Any field may be
// nil. Hooks are invoked synchronously on the orchestrator's goroutine and
// must not block.
type LifecycleHooks struct {
	OnRunStart     func(context.Context, *RunEvent)
	OnStepDispatch func(context.Context, *StepEvent)
	OnStepReturn   func(context.Context, *StepEvent)
	OnRunEnd       func(context.Context, *RunEvent)
}

// MergeHooks combines hook sets; every non-nil callback in each set fires,
// in argument order.
func MergeHooks(sets ...LifecycleHooks) LifecycleHooks {
	var merged LifecycleHooks
	for _, h := range sets {
		h := h
		if h.OnRunStart != nil {
			prev := merged.OnRunStart
			merged.OnRunStart = func(ctx context.Context, e *RunEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnRunStart(ctx, e)
			}
		}
		if h.OnStepDispatch != nil {
			prev := merged.OnStepDispatch
			merged.OnStepDispatch = func(ctx context.Context, e *StepEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnStepDispatch(ctx, e)
			}
		}
		if h.OnStepReturn != nil {
			prev := merged.OnStepReturn
			merged.OnStepReturn = func(ctx context.Context, e *StepEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnStepReturn(ctx, e)
			}
		}
		if h.OnRunEnd != nil {
			prev := merged.OnRunEnd
			merged.OnRunEnd = func(ctx context.Context, e *RunEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnRunEnd(ctx, e)
			}
		}
	}
	return merged
}
