package dispatch

import (
	"context"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/zizip/droid-cli/internal/agent"
	"github.com/zizip/droid-cli/internal/shell"
	"github.com/zizip/droid-cli/internal/wire"
)

const nodeTreeDumpPath = "/sdcard/window_dump.xml"

// focus lines look like: mCurrentFocus=Window{1a2b3c u0 com.pkg/com.pkg.Activity}
var focusRe = regexp.MustCompile(`mCurrentFocus=Window\{\S+\s+\S+\s+([\w.]+)/([\w.$]+)\}`)

// Observer assembles the per-step screen observation handed to the
// decision-maker. Every field is best-effort: a failed capture or dump
// leaves its field empty rather than aborting the observation.
type Observer struct {
	runner  shell.Runner
	screen  Screen
	display VirtualDisplay
	log     *zap.Logger

	readFile func(string) ([]byte, error)
}

func NewObserver(runner shell.Runner, screen Screen, display VirtualDisplay, log *zap.Logger) *Observer {
	return &Observer{
		runner:   runner,
		screen:   screen,
		display:  display,
		log:      log.Named("observer"),
		readFile: os.ReadFile,
	}
}

// Observe captures the current screen state. Screenshots follow the same
// virtual-first routing as actions so the decision-maker sees the surface
// its actions will land on.
func (o *Observer) Observe(ctx context.Context) agent.ScreenContext {
	var sc agent.ScreenContext

	path, ok := o.capture(ctx)
	if ok {
		data, err := o.readFile(path)
		if err != nil {
			o.log.Warn("screenshot unreadable", zap.String("path", path), zap.Error(err))
		} else {
			sc.Screenshot = data
		}
	}

	sc.NodeTree = o.nodeTree(ctx)
	sc.ForegroundPackage, sc.ForegroundActivity = o.foreground(ctx)
	return sc
}

func (o *Observer) capture(ctx context.Context) (string, bool) {
	if o.display != nil && o.display.Active() {
		return o.display.Screenshot(ctx)
	}
	if o.screen != nil {
		return o.screen.Screenshot(ctx)
	}
	return "", false
}

func (o *Observer) nodeTree(ctx context.Context) string {
	res := o.runner.Run(ctx, wire.DumpNodeTree{Path: nodeTreeDumpPath}.Wire())
	if !res.Success {
		o.log.Warn("node tree dump failed", zap.String("error", res.Err))
		return ""
	}
	return stripDumpPreamble(res.Output)
}

// stripDumpPreamble drops the status chatter uiautomator prints before the
// XML document ("UI hierchary dumped to: ..." and friends).
func stripDumpPreamble(out string) string {
	if i := strings.Index(out, "<?xml"); i >= 0 {
		return strings.TrimSpace(out[i:])
	}
	if i := strings.Index(out, "<hierarchy"); i >= 0 {
		return strings.TrimSpace(out[i:])
	}
	return ""
}

func (o *Observer) foreground(ctx context.Context) (pkg, activity string) {
	res := o.runner.Run(ctx, wire.ForegroundWindow{}.Wire())
	if !res.Success {
		o.log.Warn("foreground window query failed", zap.String("error", res.Err))
		return "", ""
	}
	return ParseForeground(res.Output)
}

// ParseForeground extracts the package and activity from window manager
// focus output. Both are empty when nothing holds focus (mCurrentFocus=null).
func ParseForeground(out string) (pkg, activity string) {
	m := focusRe.FindStringSubmatch(out)
	if m == nil {
		return "", ""
	}
	return m[1], m[2]
}
