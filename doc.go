/*
Package flowkit is a client-side orchestration layer that drives a remote,
multi-step business process (onboarding, verification, signing) to completion
inside a host application, while the host plugs in its own UI for each step.

The core is the Flow Continuation Engine: it receives an opaque, server-issued
instruction describing which step must run next, dispatches it to a registered
step handler, collects the handler's result, reports it back to the remote
process engine, and publishes the next presentation state on a single-slot
flow state bus so exactly one flow screen is ever on screen at a time.

# Architecture

The engine is hexagonal: the core state machine lives behind the root Engine
facade, and everything host- or network-facing is a port with adapters under
pkg/adapters. The host supplies a ports.Presenter (screen dismissal and the
wait interstitial), registers step handlers, and listens on the bus for
"present this process instance" and "session ended" outcomes.

# Usage

	eng, err := flowkit.New(presenter,
		flowkit.WithHandler(steps.StepWebRedirect, steps.NewWebRedirect(opener)),
		flowkit.WithLogger(logger),
	)
	if err != nil {
		log.Fatal(err)
	}

	eng.Bus().SetListener(func(outcome domain.FlowOutcome) {
		switch outcome.Kind() {
		case domain.OutcomePresentFlow:
			nav.Show(outcome.Instance())
		case domain.OutcomeSessionEnded:
			nav.TearDown()
		}
	})

	// An inbound trigger (banner tap, push notification, server redirect):
	err = eng.Continue(ctx, flowkit.Instruction{
		TransitionID: "t-1",
		ProcessID:    "p-1",
		Payload:      payload, // base64-encoded JSON from the remote engine
		Submit:       directory.SubmitTransition,
	})

Each continuation runs strictly in sequence: decode, dismiss the current
screen, show the interstitial, run the handler, submit the result, publish
the outcome. Failures are terminal for the run and deliberately silent at the
core level; hosts observe them through lifecycle hooks and may surface their
own dialogs.
*/
package flowkit
