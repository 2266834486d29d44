package domain

// OutcomeKind discriminates the two externally observable flow outcomes.
type OutcomeKind string

const (
	// OutcomePresentFlow asks the host to present a process instance.
	OutcomePresentFlow OutcomeKind = "present_flow"

	// OutcomeSessionEnded tells the host the session is over; any presented
	// flow must be torn down.
	OutcomeSessionEnded OutcomeKind = "session_ended"
)

// FlowOutcome is carried on the flow state bus. At most one outcome is
// "current": later outcomes supersede earlier ones for listeners that only
// care about now. Construct values with PresentFlow or SessionEnded.
type FlowOutcome struct {
	kind     OutcomeKind
	instance ProcessInstance
}

// PresentFlow builds the outcome asking the host to present inst.
func PresentFlow(inst ProcessInstance) FlowOutcome {
	return FlowOutcome{kind: OutcomePresentFlow, instance: inst}
}

// SessionEnded builds the session-teardown outcome.
func SessionEnded() FlowOutcome {
	return FlowOutcome{kind: OutcomeSessionEnded}
}

// Kind returns the outcome discriminator.
func (o FlowOutcome) Kind() OutcomeKind {
	return o.kind
}

// Instance returns the process instance to present. Only meaningful when
// Kind is OutcomePresentFlow.
func (o FlowOutcome) Instance() ProcessInstance {
	return o.instance
}
