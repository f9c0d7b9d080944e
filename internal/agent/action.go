// Package agent defines the action protocol between a decision-maker and the
// automation core: the normalized action vocabulary, the per-cycle response
// envelope, and the screen context the decision-maker observes. Any
// decision-maker (rule-based, learned, or remote) that satisfies Decider is a
// drop-in replacement.
package agent

import (
	"encoding/json"
	"strings"
)

// ActionType is the normalized instruction vocabulary a decision-maker can
// target without knowing whether execution lands on the real or virtual
// surface.
type ActionType string

const (
	ActionTap        ActionType = "TAP"
	ActionSwipe      ActionType = "SWIPE"
	ActionScroll     ActionType = "SCROLL"
	ActionInputText  ActionType = "TYPE"
	ActionLaunchApp  ActionType = "LAUNCH_APP"
	ActionBack       ActionType = "BACK"
	ActionHome       ActionType = "HOME"
	ActionScreenshot ActionType = "SCREENSHOT"
	ActionWait       ActionType = "WAIT"
	ActionComplete   ActionType = "COMPLETE"
	ActionUnknown    ActionType = "UNKNOWN"
)

var knownActionTypes = map[ActionType]bool{
	ActionTap:        true,
	ActionSwipe:      true,
	ActionScroll:     true,
	ActionInputText:  true,
	ActionLaunchApp:  true,
	ActionBack:       true,
	ActionHome:       true,
	ActionScreenshot: true,
	ActionWait:       true,
	ActionComplete:   true,
	ActionUnknown:    true,
}

// Point is a screen coordinate pair.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// AgentAction is one normalized instruction produced by a decision-maker.
// It is produced once per decision cycle, consumed exactly once by the
// dispatcher, and never mutated after creation.
type AgentAction struct {
	Type       ActionType `json:"actionType"`
	Points     []Point    `json:"points,omitempty"`
	Text       string     `json:"text,omitempty"`
	App        string     `json:"app,omitempty"`
	DurationMS int        `json:"durationMs,omitempty"`
}

// UnmarshalJSON normalizes unrecognized action types to ActionUnknown instead
// of failing: an unknown action is never fatal, it is surfaced to the
// decision loop as a no-op outcome.
func (a *AgentAction) UnmarshalJSON(data []byte) error {
	type alias AgentAction
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw.Type = ActionType(strings.ToUpper(strings.TrimSpace(string(raw.Type))))
	if !knownActionTypes[raw.Type] {
		raw.Type = ActionUnknown
	}
	*a = AgentAction(raw)
	return nil
}
