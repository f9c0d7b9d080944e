package ime

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/zizip/droid-cli/internal/shell"
)

type fakeRunner struct {
	commands []string
	result   shell.Result
}

func (f *fakeRunner) Run(_ context.Context, command string) shell.Result {
	f.commands = append(f.commands, command)
	return f.result
}

func TestCommit_IssuesBroadcast(t *testing.T) {
	r := &fakeRunner{result: shell.Result{Success: true}}
	k := NewBroadcastKeyboard(r, zap.NewNop())

	if err := k.Commit(context.Background(), "hello"); err != nil {
		t.Fatal(err)
	}
	if len(r.commands) != 1 {
		t.Fatalf("expected 1 command, got %d", len(r.commands))
	}
	want := "am broadcast -a ADB_INPUT_B64 --es msg aGVsbG8="
	if r.commands[0] != want {
		t.Errorf("got %q, want %q", r.commands[0], want)
	}
}

func TestCommit_EmptyTextIsNoop(t *testing.T) {
	r := &fakeRunner{result: shell.Result{Success: true}}
	k := NewBroadcastKeyboard(r, zap.NewNop())

	if err := k.Commit(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	if len(r.commands) != 0 {
		t.Errorf("empty text should not touch the channel, got %v", r.commands)
	}
}

func TestCommit_FailureSurfacesError(t *testing.T) {
	r := &fakeRunner{result: shell.Result{Success: false, Err: "no receiver"}}
	k := NewBroadcastKeyboard(r, zap.NewNop())

	if err := k.Commit(context.Background(), "hello"); err == nil {
		t.Error("expected error when broadcast fails")
	}
}
