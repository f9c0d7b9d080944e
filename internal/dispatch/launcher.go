package dispatch

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/zizip/droid-cli/internal/shell"
	"github.com/zizip/droid-cli/internal/wire"
)

// ShellLauncher starts apps over the privileged shell channel. A bare
// package name launches the default LAUNCHER activity; a "pkg/Activity"
// component is started directly.
type ShellLauncher struct {
	runner shell.Runner
	log    *zap.Logger
}

func NewShellLauncher(runner shell.Runner, log *zap.Logger) *ShellLauncher {
	return &ShellLauncher{runner: runner, log: log.Named("launcher")}
}

// Launch implements Launcher.
func (l *ShellLauncher) Launch(ctx context.Context, app string) bool {
	var cmd wire.Command
	if strings.Contains(app, "/") {
		cmd = wire.StartActivity{Component: app}
	} else {
		cmd = wire.LaunchApp{Package: app}
	}
	res := l.runner.Run(ctx, cmd.Wire())
	if !res.Success {
		l.log.Warn("app launch failed", zap.String("app", app), zap.String("error", res.Err))
		return false
	}
	l.log.Info("app launched", zap.String("app", app))
	return true
}
