package agent

// ModelResponse is the output of one decision cycle. Action == nil is a
// message-only turn the dispatcher must treat as a no-op.
type ModelResponse struct {
	Message           string       `json:"message"`
	Rationale         string       `json:"rationale,omitempty"`
	Action            *AgentAction `json:"action,omitempty"`
	IsComplete        bool         `json:"isComplete"`
	NeedsConfirmation bool         `json:"needsConfirmation"`
	NeedsTakeover     bool         `json:"needsTakeover"`
}
