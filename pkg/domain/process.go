package domain

import "time"

// ProcessInstance identifies one in-progress run of a remote multi-step
// business process. A new instance value replaces the old one on every
// transition; instances are never mutated after being received.
type ProcessInstance struct {
	// ID is the unique identifier assigned by the remote engine.
	ID string `json:"id"`

	// Action is the intent tag telling the host which step screen to render.
	Action string `json:"action"`

	// Metadata carries implementation-defined hints for the host UI.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ContextFlow is a named group of process instances associated with a
// business context (e.g. "account"). The first instance is conventionally
// treated as the default selection.
type ContextFlow struct {
	Name      string            `json:"name"`
	Instances []ProcessInstance `json:"instances"`
}

// ContextFlows is the read-only result of a directory query. It is fetched
// on demand and never cached across calls.
type ContextFlows []ContextFlow

// Default returns the conventional default selection: the first instance of
// the first flow. The second return is false when the result is empty.
func (c ContextFlows) Default() (ProcessInstance, bool) {
	for _, flow := range c {
		if len(flow.Instances) > 0 {
			return flow.Instances[0], true
		}
	}
	return ProcessInstance{}, false
}

// PendingTrigger is a continuation request held between delivery (e.g. a push
// notification arriving while the app is backgrounded) and resume. The token
// captured at delivery time is what the session gate inspects on resume.
type PendingTrigger struct {
	TransitionID string    `json:"transition_id"`
	ProcessID    string    `json:"process_id"`
	Payload      []byte    `json:"payload"`
	Token        string    `json:"token,omitempty"`
	StoredAt     time.Time `json:"stored_at"`
}
