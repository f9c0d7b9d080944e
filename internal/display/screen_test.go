package display

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/zizip/droid-cli/internal/shell"
)

type acceptAllKeyboard struct{ texts []string }

func (k *acceptAllKeyboard) Commit(_ context.Context, text string) error {
	k.texts = append(k.texts, text)
	return nil
}

type rejectingKeyboard struct{}

func (rejectingKeyboard) Commit(context.Context, string) error {
	return errors.New("ime not active")
}

func newTestScreen(r shell.Runner, kb Keyboard) *Screen {
	s := NewScreen(r, kb, "", zap.NewNop())
	s.fileSize = func(string) (int64, error) { return 2048, nil }
	s.now = func() time.Time { return time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestScreen_InputCommands(t *testing.T) {
	r := &stubRunner{}
	s := newTestScreen(r, nil)
	ctx := context.Background()

	tests := []struct {
		run  func() bool
		want string
	}{
		{func() bool { return s.Tap(ctx, 100, 200) }, "input tap 100 200"},
		{func() bool { return s.Swipe(ctx, 540, 1500, 540, 500, 300) }, "input swipe 540 1500 540 500 300"},
		{func() bool { return s.Key(ctx, 66) }, "input keyevent 66"},
		{func() bool { return s.PressBack(ctx) }, "input keyevent 4"},
		{func() bool { return s.PressHome(ctx) }, "input keyevent 3"},
	}
	for _, tt := range tests {
		if !tt.run() {
			t.Errorf("%s: expected success", tt.want)
		}
		if got := r.commands[len(r.commands)-1]; got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestScreen_Screenshot(t *testing.T) {
	r := &stubRunner{}
	s := newTestScreen(r, nil)

	path, ok := s.Screenshot(context.Background())
	if !ok {
		t.Fatal("expected screenshot success")
	}
	if !strings.HasPrefix(path, "/sdcard/Download/screen_") {
		t.Errorf("unexpected path %q", path)
	}
	if got, want := r.commands[0], "capture -p "+path; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	s.fileSize = func(string) (int64, error) { return 0, nil }
	if _, ok := s.Screenshot(context.Background()); ok {
		t.Error("empty capture file must fail verification")
	}
}

func TestScreen_InputText(t *testing.T) {
	kb := &acceptAllKeyboard{}
	s := newTestScreen(&stubRunner{}, kb)

	if !s.InputText(context.Background(), "hello world") {
		t.Error("expected accepted text input")
	}
	if len(kb.texts) != 1 || kb.texts[0] != "hello world" {
		t.Errorf("keyboard got %v", kb.texts)
	}

	s = newTestScreen(&stubRunner{}, rejectingKeyboard{})
	if s.InputText(context.Background(), "hello") {
		t.Error("rejected text input must report failure")
	}

	s = newTestScreen(&stubRunner{}, nil)
	if s.InputText(context.Background(), "hello") {
		t.Error("missing keyboard must report failure")
	}
}

func TestParseScreenSize(t *testing.T) {
	tests := []struct {
		name   string
		output string
		w, h   int
		ok     bool
	}{
		{"physical", "Physical size: 1080x1920\n", 1080, 1920, true},
		{"override preferred", "Physical size: 1080x1920\nOverride size: 720x1280\n", 720, 1280, true},
		{"garbage", "no sizes here", 0, 0, false},
		{"empty", "", 0, 0, false},
	}
	for _, tt := range tests {
		w, h, ok := parseScreenSize(tt.output)
		if w != tt.w || h != tt.h || ok != tt.ok {
			t.Errorf("%s: got (%d,%d,%v), want (%d,%d,%v)", tt.name, w, h, ok, tt.w, tt.h, tt.ok)
		}
	}
}

func TestScreen_SizeFailure(t *testing.T) {
	r := &stubRunner{results: map[string]shell.Result{
		"wm": {Success: false, Err: "wm: not found"},
	}}
	s := newTestScreen(r, nil)
	if _, _, ok := s.Size(context.Background()); ok {
		t.Error("channel failure must surface as not-ok")
	}
}
