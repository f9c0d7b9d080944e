// Package shell is the command execution channel: it runs a single
// shell-style command string with elevated privilege and reports a pass/fail
// outcome with captured output. Implementations never panic across the
// boundary and never return Go errors; every failure collapses into the
// Result so long-lived automation loops cannot be crashed by one bad command.
package shell

import "context"

// Result is the outcome of one command invocation. It is immutable and owned
// by the caller.
type Result struct {
	Success bool   // the command ran and exited zero
	Output  string // captured stdout
	Err     string // captured stderr or a channel-level diagnostic
}

// Runner executes one command string against the device. Run must honor the
// context deadline and report a timeout identically to a command failure.
type Runner interface {
	Run(ctx context.Context, command string) Result
}
