package ports

import (
	"context"

	"github.com/effective-digital/flowkit/pkg/domain"
)

// Presenter is the host's screen surface as seen by the orchestrator. The
// orchestrator owns the presented screen between DismissTop and the end of a
// run; no other component may present or dismiss during that window.
//
// All methods are invoked off the UI thread; implementations are responsible
// for marshalling onto their UI scheduler and must not return before the
// transition has completed. DismissTop dismisses without animation so the
// interstitial never visually overlaps the outgoing screen.
type Presenter interface {
	// DismissTop removes whatever screen is currently on top.
	DismissTop(ctx context.Context) error

	// ShowInterstitial puts up a neutral, input-blocking wait screen.
	ShowInterstitial(ctx context.Context) error

	// HideInterstitial removes the wait screen. Called on every terminal
	// path that reached the Dismissing state, success or failure.
	HideInterstitial(ctx context.Context) error
}

// SubmitFunc reports a completed step's result to the remote engine and
// returns the process instance describing the next state. Supplied per
// instruction by the caller; invoked at most once per run, and never before
// the step's handler has produced a result.
type SubmitFunc func(ctx context.Context, transitionID, processID string, result []byte) (*domain.ProcessInstance, error)
