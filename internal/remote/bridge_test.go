package remote

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zizip/droid-cli/internal/display"
	"github.com/zizip/droid-cli/internal/shell"
)

// fakeChannel answers listing queries with a registered session and writes a
// real file for capture commands so path verification sees actual bytes.
type fakeChannel struct {
	commands []string
	frame    []byte
}

func (f *fakeChannel) Run(_ context.Context, command string) shell.Result {
	f.commands = append(f.commands, command)
	switch {
	case strings.HasPrefix(command, "list-displays"):
		return shell.Result{Success: true, Output: "Display: ZiZipVirtual displayId=7 state ON"}
	case strings.HasPrefix(command, "capture"):
		fields := strings.Fields(command)
		path := fields[len(fields)-1]
		if err := os.WriteFile(path, f.frame, 0o644); err != nil {
			return shell.Result{Err: err.Error()}
		}
		return shell.Result{Success: true}
	}
	return shell.Result{Success: true}
}

func newTestBridge(t *testing.T, ch *fakeChannel) *Bridge {
	t.Helper()
	mgr := display.NewManager(ch, display.Options{
		SettleDelay:  time.Nanosecond,
		PollAttempts: 1,
		PollInterval: time.Nanosecond,
		CaptureDir:   t.TempDir(),
	}, zap.NewNop())
	return NewBridge(mgr, 1080, 1920, 320, zap.NewNop())
}

func TestBridge_EnsureConnectedCreatesSession(t *testing.T) {
	ch := &fakeChannel{}
	b := newTestBridge(t, ch)

	require.True(t, b.EnsureConnected(context.Background()))
	assert.Equal(t, "create-display --width 1080 --height 1920 --density 320 ZiZipVirtual", ch.commands[0])

	// Second call finds the session active and issues nothing new.
	n := len(ch.commands)
	require.True(t, b.EnsureConnected(context.Background()))
	assert.Len(t, ch.commands, n)

	w, h, ok := b.VideoSize()
	require.True(t, ok)
	assert.Equal(t, 1080, w)
	assert.Equal(t, 1920, h)
}

func TestBridge_TouchPhasesForwardScopedMotion(t *testing.T) {
	ch := &fakeChannel{}
	b := newTestBridge(t, ch)
	require.True(t, b.EnsureConnected(context.Background()))
	start := len(ch.commands)

	require.True(t, b.TouchDown(context.Background(), 10, 20))
	require.True(t, b.TouchMove(context.Background(), 15, 25))
	require.True(t, b.TouchUp(context.Background(), 15, 25))

	assert.Equal(t, []string{
		"input -d 7 motionevent DOWN 10 20",
		"input -d 7 motionevent MOVE 15 25",
		"input -d 7 motionevent UP 15 25",
	}, ch.commands[start:])
}

func TestBridge_RequestScreenshot(t *testing.T) {
	ch := &fakeChannel{frame: []byte{0x89, 'P', 'N', 'G'}}
	b := newTestBridge(t, ch)
	require.True(t, b.EnsureConnected(context.Background()))

	data, ok := b.RequestScreenshot(context.Background(), time.Second)
	require.True(t, ok)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
	assert.True(t, b.IsStreaming())
}

func TestBridge_RequestScreenshotWithoutSession(t *testing.T) {
	ch := &fakeChannel{}
	b := newTestBridge(t, ch)

	data, ok := b.RequestScreenshot(context.Background(), 0)
	assert.False(t, ok)
	assert.Nil(t, data)
	assert.False(t, b.IsStreaming())
	assert.Empty(t, ch.commands, "inactive session must not touch the channel")
}

func TestBridge_Shutdown(t *testing.T) {
	ch := &fakeChannel{}
	b := newTestBridge(t, ch)
	require.True(t, b.EnsureConnected(context.Background()))

	b.Shutdown(context.Background())
	assert.Equal(t, "remove-display 7", ch.commands[len(ch.commands)-1])

	// Shutdown twice is safe.
	n := len(ch.commands)
	b.Shutdown(context.Background())
	assert.Len(t, ch.commands, n)
}
