// Package dispatch routes decision-maker responses onto the device. Routing
// is virtual-first: display-scoped actions prefer the isolated virtual
// surface when a session is active and fall back to primary-display
// automation otherwise. The dispatcher is pure routing with no retry policy;
// whether a failed action is retried, reported, or handed to a human is the
// decision loop's call.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zizip/droid-cli/internal/agent"
)

// Screen is the primary-display automation surface the dispatcher targets.
type Screen interface {
	Tap(ctx context.Context, x, y int) bool
	Swipe(ctx context.Context, x1, y1, x2, y2, durationMS int) bool
	PressBack(ctx context.Context) bool
	PressHome(ctx context.Context) bool
	InputText(ctx context.Context, text string) bool
	Screenshot(ctx context.Context) (string, bool)
	Size(ctx context.Context) (width, height int, ok bool)
}

// VirtualDisplay is the isolated automation surface the dispatcher prefers
// when a session is active.
type VirtualDisplay interface {
	Active() bool
	Tap(ctx context.Context, x, y int) bool
	Swipe(ctx context.Context, x1, y1, x2, y2, durationMS int) bool
	Screenshot(ctx context.Context) (string, bool)
	Size() (width, height int, ok bool)
}

// Launcher starts an app by package name or explicit component.
type Launcher interface {
	Launch(ctx context.Context, app string) bool
}

// Surfaces name where an action ultimately executed.
const (
	SurfaceVirtual = "virtual"
	SurfacePrimary = "primary"
)

// Outcome reports how one response was handled. It feeds the decision loop's
// retry/terminate/handoff policy and the operator's logs.
type Outcome struct {
	ExecutionID    string           `yaml:"executionId"              json:"executionId"`
	Action         agent.ActionType `yaml:"action,omitempty"         json:"action,omitempty"`
	OK             bool             `yaml:"ok"                       json:"ok"`
	NoOp           bool             `yaml:"noOp,omitempty"           json:"noOp,omitempty"`
	Done           bool             `yaml:"done,omitempty"           json:"done,omitempty"`
	Surface        string           `yaml:"surface,omitempty"        json:"surface,omitempty"`
	ScreenshotPath string           `yaml:"screenshotPath,omitempty" json:"screenshotPath,omitempty"`
	Detail         string           `yaml:"detail,omitempty"         json:"detail,omitempty"`
}

const (
	defaultSwipeDurationMS = 300
	scrollDistance         = 600
	fallbackCenterX        = 540
	fallbackCenterY        = 960
)

// Dispatcher maps action types onto the automation surfaces.
type Dispatcher struct {
	screen   Screen
	display  VirtualDisplay
	launcher Launcher
	log      *zap.Logger

	sleep func(ctx context.Context, d time.Duration) error
	newID func() string
}

// New wires a dispatcher. display and launcher may be nil; the corresponding
// actions then fall back to the primary surface or fail as no-ops.
func New(screen Screen, display VirtualDisplay, launcher Launcher, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		screen:   screen,
		display:  display,
		launcher: launcher,
		log:      log.Named("dispatch"),
		sleep:    sleepCtx,
		newID:    uuid.NewString,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Execute consumes one ModelResponse. A nil action is a message-only turn
// and yields a successful no-op outcome.
func (d *Dispatcher) Execute(ctx context.Context, resp agent.ModelResponse) Outcome {
	out := Outcome{ExecutionID: d.newID(), Done: resp.IsComplete}
	if resp.Action == nil {
		out.OK = true
		out.NoOp = true
		return out
	}

	action := *resp.Action
	out.Action = action.Type
	log := d.log.With(
		zap.String("execution_id", out.ExecutionID),
		zap.String("action", string(action.Type)))

	switch action.Type {
	case agent.ActionTap:
		if len(action.Points) < 1 {
			return d.invalid(out, log, "TAP requires coordinates")
		}
		p := action.Points[0]
		out.Surface, out.OK = d.routeTap(ctx, p.X, p.Y)

	case agent.ActionSwipe, agent.ActionScroll:
		start, end, err := d.swipeStroke(ctx, action)
		if err != nil {
			return d.invalid(out, log, err.Error())
		}
		dur := action.DurationMS
		if dur <= 0 {
			dur = defaultSwipeDurationMS
		}
		out.Surface, out.OK = d.routeSwipe(ctx, start.X, start.Y, end.X, end.Y, dur)

	case agent.ActionInputText:
		if action.Text == "" {
			return d.invalid(out, log, "TYPE requires text")
		}
		out.Surface = SurfacePrimary
		out.OK = d.screen.InputText(ctx, action.Text)

	case agent.ActionLaunchApp:
		if action.App == "" {
			return d.invalid(out, log, "LAUNCH_APP requires an app name")
		}
		if d.launcher == nil {
			return d.invalid(out, log, "no launcher wired")
		}
		out.OK = d.launcher.Launch(ctx, action.App)

	case agent.ActionBack:
		out.Surface = SurfacePrimary
		out.OK = d.screen.PressBack(ctx)

	case agent.ActionHome:
		out.Surface = SurfacePrimary
		out.OK = d.screen.PressHome(ctx)

	case agent.ActionScreenshot:
		out.Surface, out.ScreenshotPath, out.OK = d.routeScreenshot(ctx)

	case agent.ActionWait:
		if action.DurationMS <= 0 {
			return d.invalid(out, log, "WAIT requires durationMs")
		}
		if err := d.sleep(ctx, time.Duration(action.DurationMS)*time.Millisecond); err != nil {
			out.Detail = err.Error()
			return out
		}
		out.OK = true

	case agent.ActionComplete:
		out.OK = true
		out.Done = true

	default:
		// Unknown actions are never fatal: surface a no-op so the loop
		// can terminate, retry differently, or request a handoff.
		log.Warn("unknown action type, ignoring")
		out.OK = true
		out.NoOp = true
		out.Detail = "unknown action type"
	}

	if !out.OK && out.Detail == "" {
		out.Detail = "action failed"
		if out.Surface != "" {
			out.Detail = "action failed on " + out.Surface + " surface"
		}
	}
	log.Debug("action dispatched",
		zap.Bool("ok", out.OK),
		zap.String("surface", out.Surface),
		zap.Bool("done", out.Done))
	return out
}

func (d *Dispatcher) invalid(out Outcome, log *zap.Logger, detail string) Outcome {
	log.Warn("invalid action", zap.String("detail", detail))
	out.NoOp = true
	out.Detail = detail
	return out
}

func (d *Dispatcher) virtualActive() bool {
	return d.display != nil && d.display.Active()
}

func (d *Dispatcher) routeTap(ctx context.Context, x, y int) (string, bool) {
	if d.virtualActive() {
		return SurfaceVirtual, d.display.Tap(ctx, x, y)
	}
	return SurfacePrimary, d.screen.Tap(ctx, x, y)
}

func (d *Dispatcher) routeSwipe(ctx context.Context, x1, y1, x2, y2, dur int) (string, bool) {
	if d.virtualActive() {
		return SurfaceVirtual, d.display.Swipe(ctx, x1, y1, x2, y2, dur)
	}
	return SurfacePrimary, d.screen.Swipe(ctx, x1, y1, x2, y2, dur)
}

func (d *Dispatcher) routeScreenshot(ctx context.Context) (string, string, bool) {
	if d.virtualActive() {
		path, ok := d.display.Screenshot(ctx)
		return SurfaceVirtual, path, ok
	}
	path, ok := d.screen.Screenshot(ctx)
	return SurfacePrimary, path, ok
}

// swipeStroke derives the start and end points of a SWIPE or SCROLL. SWIPE
// needs both points from the decision-maker; SCROLL is a swipe with vertical
// bias, so missing points are synthesized as an upward stroke through the
// surface center (content scrolls down).
func (d *Dispatcher) swipeStroke(ctx context.Context, action agent.AgentAction) (start, end agent.Point, err error) {
	if len(action.Points) >= 2 {
		return action.Points[0], action.Points[1], nil
	}
	if action.Type == agent.ActionSwipe {
		return start, end, fmt.Errorf("SWIPE requires start and end points")
	}

	if len(action.Points) == 1 {
		start = action.Points[0]
	} else {
		w, h := d.surfaceSize(ctx)
		start = agent.Point{X: w / 2, Y: h / 2}
	}
	end = agent.Point{X: start.X, Y: start.Y - scrollDistance}
	if end.Y < 0 {
		end.Y = 0
	}
	return start, end, nil
}

func (d *Dispatcher) surfaceSize(ctx context.Context) (int, int) {
	if d.virtualActive() {
		if w, h, ok := d.display.Size(); ok {
			return w, h
		}
	} else if w, h, ok := d.screen.Size(ctx); ok {
		return w, h
	}
	return fallbackCenterX * 2, fallbackCenterY * 2
}
