package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// AdbRunner executes commands through `adb shell`, the usual channel when
// droid-cli drives a device from a host machine.
type AdbRunner struct {
	adbPath string
	serial  string
	timeout time.Duration
	log     *zap.Logger
}

// NewAdbRunner returns a runner that shells out to the given adb binary.
// serial may be empty when a single device is attached.
func NewAdbRunner(adbPath, serial string, timeout time.Duration, log *zap.Logger) *AdbRunner {
	return &AdbRunner{adbPath: adbPath, serial: serial, timeout: timeout, log: log}
}

// Run implements Runner.
func (r *AdbRunner) Run(ctx context.Context, command string) Result {
	args := make([]string, 0, 4)
	if r.serial != "" {
		args = append(args, "-s", r.serial)
	}
	args = append(args, "shell", command)
	return execute(ctx, r.adbPath, args, command, r.timeout, r.log)
}

// LocalRunner executes commands through a local `sh -c`, for running
// droid-cli on the device itself under a privileged shell daemon.
type LocalRunner struct {
	timeout time.Duration
	log     *zap.Logger
}

// NewLocalRunner returns a runner that executes commands in a local shell.
func NewLocalRunner(timeout time.Duration, log *zap.Logger) *LocalRunner {
	return &LocalRunner{timeout: timeout, log: log}
}

// Run implements Runner.
func (r *LocalRunner) Run(ctx context.Context, command string) Result {
	return execute(ctx, "sh", []string{"-c", command}, command, r.timeout, r.log)
}

func execute(ctx context.Context, name string, args []string, command string, timeout time.Duration, log *zap.Logger) Result {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Success: err == nil,
		Output:  stdout.String(),
		Err:     stderr.String(),
	}
	if err == nil {
		return res
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.Err = appendDiag(res.Err, "command timed out")
		log.Warn("command timed out",
			zap.String("command", command),
			zap.Duration("timeout", timeout))
	case errors.Is(err, exec.ErrNotFound):
		res.Err = appendDiag(res.Err, name+": executable not found")
		log.Error("channel binary not found", zap.String("binary", name))
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Debug("command failed",
				zap.String("command", command),
				zap.Int("exit_code", exitErr.ExitCode()),
				zap.String("stderr", strings.TrimSpace(res.Err)))
		} else {
			res.Err = appendDiag(res.Err, err.Error())
			log.Warn("command did not run",
				zap.String("command", command),
				zap.Error(err))
		}
	}
	return res
}

func appendDiag(stderr, diag string) string {
	if stderr == "" {
		return diag
	}
	return strings.TrimRight(stderr, "\n") + "\n" + diag
}
