package display

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/zizip/droid-cli/internal/shell"
	"github.com/zizip/droid-cli/internal/wire"
)

// Keyboard forwards text to the device's active input method. Synthetic key
// injection cannot reliably express arbitrary Unicode text, so text input
// goes through this collaborator instead of an input command.
type Keyboard interface {
	Commit(ctx context.Context, text string) error
}

// Screen automates the primary display. It holds no session state; every
// call is independently issued against the default display.
type Screen struct {
	runner     shell.Runner
	keyboard   Keyboard
	log        *zap.Logger
	captureDir string

	// test seams
	fileSize func(string) (int64, error)
	now      func() time.Time
}

// NewScreen returns a primary-display controller. keyboard may be nil when
// text input is not needed; InputText then always reports failure.
func NewScreen(runner shell.Runner, keyboard Keyboard, captureDir string, log *zap.Logger) *Screen {
	if captureDir == "" {
		captureDir = "/sdcard/Download"
	}
	return &Screen{
		runner:     runner,
		keyboard:   keyboard,
		log:        log.Named("screen"),
		captureDir: captureDir,
		fileSize: func(path string) (int64, error) {
			fi, err := os.Stat(path)
			if err != nil {
				return 0, err
			}
			return fi.Size(), nil
		},
		now: time.Now,
	}
}

// Screenshot captures the primary display to a unique timestamped file and
// returns its path, verifying the file exists and is non-empty.
func (s *Screen) Screenshot(ctx context.Context) (string, bool) {
	path := filepath.Join(s.captureDir, fmt.Sprintf("screen_%s.png", s.now().Format("20060102-150405.000")))
	res := s.runner.Run(ctx, wire.Capture{Path: path}.Wire())
	if !res.Success {
		s.log.Warn("primary display capture failed", zap.String("stderr", res.Err))
		return "", false
	}
	size, err := s.fileSize(path)
	if err != nil || size == 0 {
		s.log.Warn("captured screenshot missing or empty",
			zap.String("path", path), zap.Error(err))
		return "", false
	}
	return path, true
}

// Tap injects a tap on the primary display.
func (s *Screen) Tap(ctx context.Context, x, y int) bool {
	return s.run(ctx, wire.Tap{X: x, Y: y})
}

// Swipe injects a swipe gesture on the primary display.
func (s *Screen) Swipe(ctx context.Context, x1, y1, x2, y2, durationMS int) bool {
	return s.run(ctx, wire.Swipe{X1: x1, Y1: y1, X2: x2, Y2: y2, DurationMS: durationMS})
}

// Key injects a key event on the primary display.
func (s *Screen) Key(ctx context.Context, code int) bool {
	return s.run(ctx, wire.KeyEvent{Code: code})
}

// PressBack injects the back navigation key.
func (s *Screen) PressBack(ctx context.Context) bool { return s.Key(ctx, KeycodeBack) }

// PressHome injects the home key.
func (s *Screen) PressHome(ctx context.Context) bool { return s.Key(ctx, KeycodeHome) }

// InputText forwards text to the active input method and reports whether the
// request was accepted.
func (s *Screen) InputText(ctx context.Context, text string) bool {
	if s.keyboard == nil {
		s.log.Warn("text input requested but no input method is wired")
		return false
	}
	if err := s.keyboard.Commit(ctx, text); err != nil {
		s.log.Warn("input method rejected text", zap.Error(err))
		return false
	}
	return true
}

// sizeRe matches "Physical size: 1080x1920" and "Override size: 720x1280".
var sizeRe = regexp.MustCompile(`(Override|Physical) size:\s*(\d+)x(\d+)`)

// Size queries the primary display dimensions, preferring an override size
// when the device reports one.
func (s *Screen) Size(ctx context.Context) (width, height int, ok bool) {
	res := s.runner.Run(ctx, wire.ScreenSize{}.Wire())
	if !res.Success {
		s.log.Warn("screen size query failed", zap.String("stderr", res.Err))
		return 0, 0, false
	}
	return parseScreenSize(res.Output)
}

func parseScreenSize(output string) (int, int, bool) {
	var physW, physH int
	found := false
	for _, m := range sizeRe.FindAllStringSubmatch(output, -1) {
		w, errW := strconv.Atoi(m[2])
		h, errH := strconv.Atoi(m[3])
		if errW != nil || errH != nil || w <= 0 || h <= 0 {
			continue
		}
		if m[1] == "Override" {
			return w, h, true
		}
		physW, physH = w, h
		found = true
	}
	return physW, physH, found
}

func (s *Screen) run(ctx context.Context, cmd wire.Command) bool {
	res := s.runner.Run(ctx, cmd.Wire())
	if !res.Success {
		s.log.Debug("input command failed",
			zap.String("command", cmd.Wire()),
			zap.String("stderr", res.Err))
	}
	return res.Success
}
