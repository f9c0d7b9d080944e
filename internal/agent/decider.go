package agent

import "context"

// Decider is the decision-maker contract: given the user's goal and a fresh
// observation of the screen, produce the next response. Implementations own
// their own reasoning; the automation core only consumes the envelope.
type Decider interface {
	Decide(ctx context.Context, goal string, screen ScreenContext) (ModelResponse, error)
}
