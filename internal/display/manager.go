// Package display owns the device's display surfaces: the lifecycle of one
// virtual display session (Manager) and stateless automation of the primary
// display (Screen). Both issue commands through the shell channel and
// collapse every failure into a false/none result plus a logged diagnostic;
// call sites live in a long-lived decision loop, and one failed step must
// never take the loop down.
package display

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zizip/droid-cli/internal/shell"
	"github.com/zizip/droid-cli/internal/wire"
)

// Common Android key codes used by the controllers.
const (
	KeycodeHome = 3
	KeycodeBack = 4
)

// Options parameterizes a Manager. Zero-value fields fall back to the
// defaults below.
type Options struct {
	Name         string        // logical session label; also the listing search token
	FallbackID   int           // identifier assumed when the listing has no marker
	SettleDelay  time.Duration // wait before the first listing after creation
	PollAttempts int           // listing polls before giving up on resolution
	PollInterval time.Duration // delay between listing polls
	CaptureDir   string        // device directory screenshots are written to
}

func (o *Options) fillDefaults() {
	if o.Name == "" {
		o.Name = "ZiZipVirtual"
	}
	if o.FallbackID == 0 {
		o.FallbackID = 2
	}
	if o.SettleDelay == 0 {
		o.SettleDelay = 500 * time.Millisecond
	}
	if o.PollAttempts == 0 {
		o.PollAttempts = 5
	}
	if o.PollInterval == 0 {
		o.PollInterval = 200 * time.Millisecond
	}
	if o.CaptureDir == "" {
		o.CaptureDir = "/sdcard/Download"
	}
}

// Manager owns the lifecycle of at most one virtual display session:
// create, locate, use (capture/input), destroy. The session is exclusively
// owned by the Manager; all operations are serialized by an internal mutex
// because the underlying channel gives no concurrency guarantees.
type Manager struct {
	runner shell.Runner
	log    *zap.Logger
	opts   Options

	mu      sync.Mutex
	active  bool
	id      int
	width   int
	height  int
	dpi     int

	// test seams
	sleep    func(time.Duration)
	fileSize func(string) (int64, error)
	now      func() time.Time
}

// NewManager returns an inactive manager. runner is the privileged command
// channel; opts fields left zero take documented defaults.
func NewManager(runner shell.Runner, opts Options, log *zap.Logger) *Manager {
	opts.fillDefaults()
	return &Manager{
		runner: runner,
		log:    log.Named("vdisplay"),
		opts:   opts,
		sleep:  time.Sleep,
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

// Active reports whether a session currently holds a display identifier.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// ID returns the session's display identifier. ok is false when Inactive.
func (m *Manager) ID() (id int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id, m.active
}

// Size returns the dimensions the active session was created with.
func (m *Manager) Size() (width, height int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height, m.active
}

// Create provisions a virtual display of the given dimensions and resolves
// its OS-assigned identifier. An already-active session is torn down first so
// two sessions can never leak. Returns false and leaves the manager Inactive
// when the creation command fails or the identifier cannot be resolved;
// callers are expected to fall back to primary-display automation.
func (m *Manager) Create(ctx context.Context, width, height, dpi int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if width <= 0 || height <= 0 {
		m.log.Warn("rejecting create with non-positive dimensions",
			zap.Int("width", width), zap.Int("height", height))
		return false
	}
	if dpi <= 0 {
		dpi = 320
	}

	if m.active {
		m.removeLocked(ctx)
	}

	cmd := wire.CreateDisplay{Width: width, Height: height, DPI: dpi, Name: m.opts.Name}
	res := m.runner.Run(ctx, cmd.Wire())
	if !res.Success {
		m.log.Error("virtual display creation failed",
			zap.String("command", cmd.Wire()),
			zap.String("stderr", res.Err))
		return false
	}

	id, ok := m.resolveNewDisplay(ctx)
	if !ok {
		m.log.Error("could not resolve virtual display identifier, abandoning session")
		return false
	}

	m.active = true
	m.id = id
	m.width = width
	m.height = height
	m.dpi = dpi
	m.log.Info("virtual display active",
		zap.Int("display_id", id),
		zap.Int("width", width), zap.Int("height", height), zap.Int("dpi", dpi))
	return true
}

// resolveNewDisplay waits for the OS to register the new display, then polls
// the listing until the session's identifier appears or the attempts run out.
// There is no event-based readiness signal, so the settle delay plus listing
// polls stand in for one. A listing that succeeds without any recognizable
// marker yields the configured fallback identifier rather than a failure; a
// channel that never returns a successful listing is a hard failure.
func (m *Manager) resolveNewDisplay(ctx context.Context) (int, bool) {
	m.sleep(m.opts.SettleDelay)

	listed := false
	for attempt := 0; attempt < m.opts.PollAttempts; attempt++ {
		if attempt > 0 {
			m.sleep(m.opts.PollInterval)
		}
		res := m.runner.Run(ctx, wire.ListDisplays{}.Wire())
		if !res.Success {
			m.log.Warn("display listing failed",
				zap.Int("attempt", attempt+1),
				zap.String("stderr", res.Err))
			continue
		}
		listed = true
		if id, matched := ResolveDisplayID(res.Output, m.opts.Name); matched {
			return id, true
		}
	}

	if listed {
		// The listing format is not a stable contract; assume the
		// conventional identifier instead of failing outright.
		m.log.Warn("no virtual display marker in listing output, using fallback identifier",
			zap.Int("fallback_id", m.opts.FallbackID))
		return m.opts.FallbackID, true
	}
	return 0, false
}

// Screenshot captures the session's surface to a unique timestamped file and
// returns its path. Returns ("", false) when Inactive or when the written
// file cannot be verified non-empty.
func (m *Manager) Screenshot(ctx context.Context) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active {
		m.log.Warn("screenshot requested with no active virtual display")
		return "", false
	}

	path := m.capturePath()
	cmd := wire.Capture{On: wire.Display(m.id), Path: path}
	res := m.runner.Run(ctx, cmd.Wire())
	if !res.Success {
		m.log.Warn("virtual display capture failed", zap.String("stderr", res.Err))
		return "", false
	}
	size, err := m.fileSize(path)
	if err != nil || size == 0 {
		m.log.Warn("captured screenshot missing or empty",
			zap.String("path", path), zap.Error(err))
		return "", false
	}
	return path, true
}

// Tap injects a tap scoped to the session. Returns the command's success
// flag verbatim; retries belong to the dispatcher, not here.
func (m *Manager) Tap(ctx context.Context, x, y int) bool {
	return m.input(ctx, func(t wire.Target) wire.Command { return wire.Tap{On: t, X: x, Y: y} })
}

// Swipe injects a swipe gesture scoped to the session.
func (m *Manager) Swipe(ctx context.Context, x1, y1, x2, y2, durationMS int) bool {
	return m.input(ctx, func(t wire.Target) wire.Command {
		return wire.Swipe{On: t, X1: x1, Y1: y1, X2: x2, Y2: y2, DurationMS: durationMS}
	})
}

// Key injects a key event scoped to the session.
func (m *Manager) Key(ctx context.Context, code int) bool {
	return m.input(ctx, func(t wire.Target) wire.Command { return wire.KeyEvent{On: t, Code: code} })
}

// Motion injects a single pointer event scoped to the session, for streamed
// touch forwarding.
func (m *Manager) Motion(ctx context.Context, action wire.MotionAction, x, y int) bool {
	return m.input(ctx, func(t wire.Target) wire.Command {
		return wire.MotionEvent{On: t, Action: action, X: x, Y: y}
	})
}

func (m *Manager) input(ctx context.Context, build func(wire.Target) wire.Command) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active {
		m.log.Warn("input requested with no active virtual display")
		return false
	}
	cmd := build(wire.Display(m.id))
	res := m.runner.Run(ctx, cmd.Wire())
	if !res.Success {
		m.log.Debug("scoped input failed",
			zap.String("command", cmd.Wire()),
			zap.String("stderr", res.Err))
	}
	return res.Success
}

// Remove tears down the session. It is a no-op when Inactive. Local state is
// cleared even when the teardown command reports failure: a dangling local
// handle with no way to recover the session is worse than losing track of an
// OS-side display that will be reclaimed on cleanup.
func (m *Manager) Remove(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(ctx)
}

func (m *Manager) removeLocked(ctx context.Context) {
	if !m.active {
		return
	}
	cmd := wire.RemoveDisplay{ID: m.id}
	res := m.runner.Run(ctx, cmd.Wire())
	if !res.Success {
		m.log.Warn("virtual display teardown command failed, clearing local state anyway",
			zap.Int("display_id", m.id),
			zap.String("stderr", res.Err))
	} else {
		m.log.Info("virtual display removed", zap.Int("display_id", m.id))
	}
	m.active = false
	m.id = 0
	m.width = 0
	m.height = 0
	m.dpi = 0
}

func (m *Manager) capturePath() string {
	ts := m.now().Format("20060102-150405.000")
	return filepath.Join(m.opts.CaptureDir, fmt.Sprintf("vd_%s.png", ts))
}
