package domain

// StepInstruction is the decoded form of an opaque transport payload: the
// step identifier plus the named string parameters the caller asked for.
// A StepInstruction with an empty Step never leaves the codec; decoding
// fails instead.
type StepInstruction struct {
	Step   string
	Params map[string]string
}

// Param returns the named parameter, or "" when absent.
func (s StepInstruction) Param(key string) string {
	return s.Params[key]
}

// TransitionRequest is the tuple sent back to the remote engine to advance a
// process after its step handler has produced a result. It is never built
// speculatively.
type TransitionRequest struct {
	TransitionID string `json:"transitionId"`
	ProcessID    string `json:"processId"`
	Result       []byte `json:"result"`
}
