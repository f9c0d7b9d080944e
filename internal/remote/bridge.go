package remote

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/zizip/droid-cli/internal/display"
	"github.com/zizip/droid-cli/internal/wire"
)

const defaultScreenshotTimeout = 5 * time.Second

// Bridge exposes a virtual display session as a remote Session. It owns no
// state of its own; the manager remains the single source of truth for the
// session lifecycle.
type Bridge struct {
	manager *display.Manager
	log     *zap.Logger

	width, height, dpi int

	readFile func(string) ([]byte, error)
}

// NewBridge wraps manager. The dimensions are used when EnsureConnected has
// to create the session itself.
func NewBridge(manager *display.Manager, width, height, dpi int, log *zap.Logger) *Bridge {
	return &Bridge{
		manager:  manager,
		log:      log.Named("remote"),
		width:    width,
		height:   height,
		dpi:      dpi,
		readFile: os.ReadFile,
	}
}

// EnsureConnected implements Session. When no session is active it attempts
// to create one with the bridge's configured dimensions.
func (b *Bridge) EnsureConnected(ctx context.Context) bool {
	if b.manager.Active() {
		return true
	}
	if !b.manager.Create(ctx, b.width, b.height, b.dpi) {
		b.log.Warn("could not establish virtual display for remote session")
		return false
	}
	return true
}

// VideoSize implements Session.
func (b *Bridge) VideoSize() (int, int, bool) {
	return b.manager.Size()
}

// IsStreaming implements Session. The bridge serves frames on demand, so
// streaming means an active session.
func (b *Bridge) IsStreaming() bool {
	return b.manager.Active()
}

// TouchDown implements Session.
func (b *Bridge) TouchDown(ctx context.Context, x, y int) bool {
	return b.manager.Motion(ctx, wire.MotionDown, x, y)
}

// TouchMove implements Session.
func (b *Bridge) TouchMove(ctx context.Context, x, y int) bool {
	return b.manager.Motion(ctx, wire.MotionMove, x, y)
}

// TouchUp implements Session.
func (b *Bridge) TouchUp(ctx context.Context, x, y int) bool {
	return b.manager.Motion(ctx, wire.MotionUp, x, y)
}

// RequestScreenshot implements Session. The capture is bounded by the given
// timeout so a stalled channel cannot freeze the viewer's frame loop.
func (b *Bridge) RequestScreenshot(ctx context.Context, timeout time.Duration) ([]byte, bool) {
	if timeout <= 0 {
		timeout = defaultScreenshotTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	path, ok := b.manager.Screenshot(ctx)
	if !ok {
		return nil, false
	}
	data, err := b.readFile(path)
	if err != nil || len(data) == 0 {
		b.log.Warn("screenshot file unreadable", zap.String("path", path), zap.Error(err))
		return nil, false
	}
	return data, true
}

// Shutdown implements Session.
func (b *Bridge) Shutdown(ctx context.Context) {
	b.manager.Remove(ctx)
}
