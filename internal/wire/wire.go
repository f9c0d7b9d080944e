// Package wire builds the shell command strings the automation core sends
// through the command execution channel. Commands are typed values that
// serialize to an exact wire string, so construction stays unit-testable
// without ever invoking a shell, and parsing heuristics stay out of the
// state machines that use them.
package wire

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

// Command is a single device command ready to be serialized.
type Command interface {
	// Wire returns the exact command string sent to the channel.
	Wire() string
}

// Target selects the display an input or capture command addresses. The zero
// value targets the primary display.
type Target struct {
	id     int
	scoped bool
}

// Primary targets the device's primary display.
func Primary() Target { return Target{} }

// Display targets the virtual display with the given identifier.
func Display(id int) Target { return Target{id: id, scoped: true} }

// Scoped reports whether the target addresses a specific display.
func (t Target) Scoped() bool { return t.scoped }

// ID returns the targeted display identifier (meaningful only when scoped).
func (t Target) ID() int { return t.id }

func (t Target) inputPrefix() string {
	if t.scoped {
		return "input -d " + strconv.Itoa(t.id) + " "
	}
	return "input "
}

// CreateDisplay provisions a new virtual display with the fixed session name.
type CreateDisplay struct {
	Width, Height, DPI int
	Name               string
}

func (c CreateDisplay) Wire() string {
	return fmt.Sprintf("create-display --width %d --height %d --density %d %s", c.Width, c.Height, c.DPI, c.Name)
}

// RemoveDisplay tears down the virtual display with the given identifier.
type RemoveDisplay struct {
	ID int
}

func (c RemoveDisplay) Wire() string {
	return fmt.Sprintf("remove-display %d", c.ID)
}

// ListDisplays asks the OS for its current display inventory. The output is
// free text; see display.ResolveDisplayID for the scanning rules.
type ListDisplays struct{}

func (ListDisplays) Wire() string { return "list-displays" }

// Capture writes a screenshot of the targeted display to a device-side path.
type Capture struct {
	On   Target
	Path string
}

func (c Capture) Wire() string {
	if c.On.Scoped() {
		return fmt.Sprintf("capture -d %d -p %s", c.On.ID(), c.Path)
	}
	return fmt.Sprintf("capture -p %s", c.Path)
}

// Tap injects a tap at the given coordinates.
type Tap struct {
	On   Target
	X, Y int
}

func (c Tap) Wire() string {
	return fmt.Sprintf("%stap %d %d", c.On.inputPrefix(), c.X, c.Y)
}

// Swipe injects a swipe gesture over the given duration.
type Swipe struct {
	On             Target
	X1, Y1, X2, Y2 int
	DurationMS     int
}

func (c Swipe) Wire() string {
	return fmt.Sprintf("%sswipe %d %d %d %d %d", c.On.inputPrefix(), c.X1, c.Y1, c.X2, c.Y2, c.DurationMS)
}

// KeyEvent injects a synthetic key press.
type KeyEvent struct {
	On   Target
	Code int
}

func (c KeyEvent) Wire() string {
	return fmt.Sprintf("%skeyevent %d", c.On.inputPrefix(), c.Code)
}

// MotionAction is a pointer event phase for MotionEvent.
type MotionAction string

const (
	MotionDown MotionAction = "DOWN"
	MotionMove MotionAction = "MOVE"
	MotionUp   MotionAction = "UP"
)

// MotionEvent injects a single pointer event, used by the remote session
// bridge to forward streamed touch input.
type MotionEvent struct {
	On     Target
	Action MotionAction
	X, Y   int
}

func (c MotionEvent) Wire() string {
	return fmt.Sprintf("%smotionevent %s %d %d", c.On.inputPrefix(), c.Action, c.X, c.Y)
}

// ScreenSize queries the primary display dimensions.
type ScreenSize struct{}

func (ScreenSize) Wire() string { return "wm size" }

// LaunchApp launches a package via its launcher intent category.
type LaunchApp struct {
	Package string
}

func (c LaunchApp) Wire() string {
	return fmt.Sprintf("monkey -p %s -c android.intent.category.LAUNCHER 1", c.Package)
}

// StartActivity launches an explicit component ("pkg/.Activity").
type StartActivity struct {
	Component string
}

func (c StartActivity) Wire() string {
	return fmt.Sprintf("am start -n %s", c.Component)
}

// CommitText forwards a string to the active input method as base64, since
// synthetic key injection cannot express arbitrary Unicode text.
type CommitText struct {
	Text string
}

func (c CommitText) Wire() string {
	encoded := base64.StdEncoding.EncodeToString([]byte(c.Text))
	return fmt.Sprintf("am broadcast -a ADB_INPUT_B64 --es msg %s", encoded)
}

// ForegroundWindow queries the currently focused window for the foreground
// package and activity.
type ForegroundWindow struct{}

func (ForegroundWindow) Wire() string { return "dumpsys window | grep mCurrentFocus" }

// DumpNodeTree dumps the accessibility node tree to a device path and prints it.
type DumpNodeTree struct {
	Path string
}

func (c DumpNodeTree) Wire() string {
	return fmt.Sprintf("uiautomator dump %s && cat %s", c.Path, c.Path)
}
