package domain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/effective-digital/flowkit/pkg/domain"
)

func TestContextFlows_Default(t *testing.T) {
	flows := domain.ContextFlows{
		{Name: "empty"},
		{
			Name: "account",
			Instances: []domain.ProcessInstance{
				{ID: "p-1", Action: "VERIFY"},
				{ID: "p-2", Action: "SIGN"},
			},
		},
	}

	def, ok := flows.Default()
	assert.True(t, ok)
	assert.Equal(t, "p-1", def.ID)
}

func TestContextFlows_DefaultEmpty(t *testing.T) {
	_, ok := domain.ContextFlows{}.Default()
	assert.False(t, ok)

	_, ok = domain.ContextFlows{{Name: "hollow"}}.Default()
	assert.False(t, ok)
}

func TestFlowOutcome_Kinds(t *testing.T) {
	present := domain.PresentFlow(domain.ProcessInstance{ID: "p-1"})
	assert.Equal(t, domain.OutcomePresentFlow, present.Kind())
	assert.Equal(t, "p-1", present.Instance().ID)

	ended := domain.SessionEnded()
	assert.Equal(t, domain.OutcomeSessionEnded, ended.Kind())
}

func TestMergeHooks_AllSetsFire(t *testing.T) {
	var order []string

	merged := domain.MergeHooks(
		domain.LifecycleHooks{
			OnRunStart: func(ctx context.Context, e *domain.RunEvent) { order = append(order, "a") },
		},
		domain.LifecycleHooks{
			OnRunStart: func(ctx context.Context, e *domain.RunEvent) { order = append(order, "b") },
			OnRunEnd:   func(ctx context.Context, e *domain.RunEvent) { order = append(order, "b-end") },
		},
	)

	merged.OnRunStart(context.Background(), &domain.RunEvent{})
	merged.OnRunEnd(context.Background(), &domain.RunEvent{})

	assert.Equal(t, []string{"a", "b", "b-end"}, order)
}

func TestMergeHooks_EmptyStaysNil(t *testing.T) {
	merged := domain.MergeHooks(domain.LifecycleHooks{}, domain.LifecycleHooks{})
	assert.Nil(t, merged.OnRunStart)
	assert.Nil(t, merged.OnStepDispatch)
	assert.Nil(t, merged.OnStepReturn)
	assert.Nil(t, merged.OnRunEnd)
}

func TestHandlerError_Wraps(t *testing.T) {
	herr := &domain.HandlerError{Step: "WEB_VIEW", Err: domain.ErrDecodeFailed}
	assert.ErrorIs(t, herr, domain.ErrDecodeFailed)
	assert.Contains(t, herr.Error(), "WEB_VIEW")
}

func TestSubmitError_Wraps(t *testing.T) {
	serr := &domain.SubmitError{TransitionID: "t-1", ProcessID: "p-1", Err: domain.ErrSessionExpired}
	assert.ErrorIs(t, serr, domain.ErrSessionExpired)
	assert.Contains(t, serr.Error(), "t-1")
	assert.Contains(t, serr.Error(), "p-1")
}
