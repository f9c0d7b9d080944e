package agent

import "bytes"

// ScreenContext is what the decision-maker observes each cycle: the current
// screenshot, the accessibility node tree, and the foreground component. It
// is a value type built fresh per cycle and never retained beyond it.
type ScreenContext struct {
	Screenshot         []byte `json:"-"`
	NodeTree           string `json:"nodeTree,omitempty"`
	ForegroundPackage  string `json:"foregroundPackage,omitempty"`
	ForegroundActivity string `json:"foregroundActivity,omitempty"`
}

// Equal compares contexts by content, including binary equality on the
// screenshot bytes.
func (c ScreenContext) Equal(other ScreenContext) bool {
	return bytes.Equal(c.Screenshot, other.Screenshot) &&
		c.NodeTree == other.NodeTree &&
		c.ForegroundPackage == other.ForegroundPackage &&
		c.ForegroundActivity == other.ForegroundActivity
}
