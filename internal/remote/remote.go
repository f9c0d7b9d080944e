// Package remote adapts the virtual display session to the interface a
// remote-viewer transport expects: a connected video surface that accepts
// streamed touch input and serves frame grabs on demand.
package remote

import (
	"context"
	"time"
)

// Session is the surface a remote display consumer drives. Implementations
// report failures as false/nil results; a remote viewer cannot do anything
// useful with an error value beyond dropping the frame or gesture.
type Session interface {
	// EnsureConnected reports whether the underlying display is usable,
	// (re)establishing it if the implementation can.
	EnsureConnected(ctx context.Context) bool

	// VideoSize returns the streamed surface dimensions in pixels.
	VideoSize() (width, height int, ok bool)

	// IsStreaming reports whether the surface is currently serving frames.
	IsStreaming() bool

	// TouchDown, TouchMove and TouchUp forward one streamed pointer phase.
	TouchDown(ctx context.Context, x, y int) bool
	TouchMove(ctx context.Context, x, y int) bool
	TouchUp(ctx context.Context, x, y int) bool

	// RequestScreenshot grabs one frame as encoded image bytes, giving up
	// after the given timeout (a non-positive timeout uses a default).
	RequestScreenshot(ctx context.Context, timeout time.Duration) ([]byte, bool)

	// Shutdown releases the session. Safe to call repeatedly.
	Shutdown(ctx context.Context)
}
