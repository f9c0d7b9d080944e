package agent

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// KeywordDecider is a stand-in decision-maker that picks actions by keyword
// matching on the goal text. It exists so the decision loop can run end to
// end without a model; real deciders implement the same interface.
type KeywordDecider struct{}

var (
	tapRe  = regexp.MustCompile(`\btap\s+(?:at\s+)?(\d+)\s*[, ]\s*(\d+)`)
	waitRe = regexp.MustCompile(`\bwait\s+(\d+)`)
	openRe = regexp.MustCompile(`\b(?:open|launch|start)\s+([\w./]+)`)
	typeRe = regexp.MustCompile(`\btype\s+"([^"]+)"|\btype\s+(.+)$`)
)

// Decide implements Decider.
func (KeywordDecider) Decide(_ context.Context, goal string, _ ScreenContext) (ModelResponse, error) {
	lower := strings.ToLower(strings.TrimSpace(goal))

	switch {
	case lower == "":
		return ModelResponse{Message: "Nothing to do."}, nil

	case strings.Contains(lower, "done") || strings.Contains(lower, "complete") || strings.Contains(lower, "finish"):
		return ModelResponse{
			Message:    "Task finished.",
			Action:     &AgentAction{Type: ActionComplete},
			IsComplete: true,
		}, nil

	case tapRe.MatchString(lower):
		m := tapRe.FindStringSubmatch(lower)
		x, _ := strconv.Atoi(m[1])
		y, _ := strconv.Atoi(m[2])
		return ModelResponse{
			Message: fmt.Sprintf("Tapping at (%d, %d).", x, y),
			Action:  &AgentAction{Type: ActionTap, Points: []Point{{X: x, Y: y}}},
		}, nil

	case strings.Contains(lower, "screenshot"):
		return ModelResponse{
			Message: "Capturing the screen.",
			Action:  &AgentAction{Type: ActionScreenshot},
		}, nil

	case strings.Contains(lower, "go back") || lower == "back":
		return ModelResponse{
			Message: "Navigating back.",
			Action:  &AgentAction{Type: ActionBack},
		}, nil

	case strings.Contains(lower, "home"):
		return ModelResponse{
			Message: "Going to the home screen.",
			Action:  &AgentAction{Type: ActionHome},
		}, nil

	case typeRe.MatchString(goal):
		m := typeRe.FindStringSubmatch(goal)
		text := m[1]
		if text == "" {
			text = strings.TrimSpace(m[2])
		}
		return ModelResponse{
			Message: fmt.Sprintf("Typing %q.", text),
			Action:  &AgentAction{Type: ActionInputText, Text: text},
		}, nil

	case openRe.MatchString(lower):
		m := openRe.FindStringSubmatch(lower)
		return ModelResponse{
			Message:   "Launching " + m[1] + ".",
			Rationale: "The goal names an app to open.",
			Action:    &AgentAction{Type: ActionLaunchApp, App: m[1]},
		}, nil

	case strings.Contains(lower, "scroll") || strings.Contains(lower, "swipe"):
		return ModelResponse{
			Message: "Scrolling.",
			Action:  &AgentAction{Type: ActionScroll},
		}, nil

	case waitRe.MatchString(lower):
		m := waitRe.FindStringSubmatch(lower)
		ms, _ := strconv.Atoi(m[1])
		return ModelResponse{
			Message: fmt.Sprintf("Waiting %d ms.", ms),
			Action:  &AgentAction{Type: ActionWait, DurationMS: ms},
		}, nil
	}

	return ModelResponse{
		Message: "I don't know how to do that yet.",
		Action:  &AgentAction{Type: ActionUnknown},
	}, nil
}
