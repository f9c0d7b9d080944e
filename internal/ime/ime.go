// Package ime implements the input-method collaborator used for text input.
// Text goes to the active input method as a base64 broadcast because
// synthetic key injection cannot express arbitrary Unicode text.
package ime

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zizip/droid-cli/internal/shell"
	"github.com/zizip/droid-cli/internal/wire"
)

// BroadcastKeyboard commits text through an ADB-keyboard style broadcast
// receiver registered by the companion input method on the device.
type BroadcastKeyboard struct {
	runner shell.Runner
	log    *zap.Logger
}

// NewBroadcastKeyboard returns a Keyboard backed by the command channel.
func NewBroadcastKeyboard(runner shell.Runner, log *zap.Logger) *BroadcastKeyboard {
	return &BroadcastKeyboard{runner: runner, log: log.Named("ime")}
}

// Commit forwards text to the active input method. An empty string is
// accepted as a no-op.
func (k *BroadcastKeyboard) Commit(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	res := k.runner.Run(ctx, wire.CommitText{Text: text}.Wire())
	if !res.Success {
		k.log.Warn("ime broadcast failed", zap.String("stderr", res.Err))
		return fmt.Errorf("input method rejected text: %s", res.Err)
	}
	return nil
}
