// Copyright 2025 Joseph Cumines

// Package runner invokes the external processes that drive Things: the
// AppleScript interpreter for reads and scripted writes, and the OS URL
// opener for things:/// scheme dispatches.
//
// Every failure, whether the binary is missing, automation permission was
// denied, Things is not running, or the script does not compile, is reported
// as a *ProcessError that matches ErrProcessFailed. The raw diagnostic text
// from the process is preserved verbatim.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrProcessFailed is matched (via errors.Is) by every error returned from
// Exec.
var ErrProcessFailed = errors.New("external process failed")

// Default binaries, resolved via PATH.
const (
	DefaultInterpreter = "osascript"
	DefaultOpener      = "open"
)

// Runner runs prepared scripts and opens prepared URLs.
type Runner interface {
	// RunScript executes AppleScript source and returns its trimmed stdout.
	RunScript(ctx context.Context, script string) (string, error)

	// OpenURL hands rawURL to the OS handler. It waits for the opener to
	// exit, which only confirms the URL was dispatched.
	OpenURL(ctx context.Context, rawURL string) error
}

// ProcessError describes a failed external process invocation.
//
//lint:ignore BETTERALIGN struct is intentionally ordered for clarity
type ProcessError struct {
	// Op is "run script" or "open url".
	Op string

	// Command is the binary that was executed.
	Command string

	// Output is the raw diagnostic text (stderr, falling back to stdout).
	Output string

	// Err is the underlying exec error.
	Err error
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("%s (%s)", e.Op, e.Command)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

func (e *ProcessError) Unwrap() error { return e.Err }

// Is reports ErrProcessFailed for every ProcessError.
func (e *ProcessError) Is(target error) bool { return target == ErrProcessFailed }

// Exec is the os/exec backed Runner.
type Exec struct {
	// Interpreter is the AppleScript interpreter binary.
	Interpreter string

	// Opener is the URL opener binary.
	Opener string
}

// NewExec returns an Exec using the given binaries, defaulting empty values.
func NewExec(interpreter, opener string) *Exec {
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}
	if opener == "" {
		opener = DefaultOpener
	}
	return &Exec{Interpreter: interpreter, Opener: opener}
}

// RunScript implements Runner.
func (x *Exec) RunScript(ctx context.Context, script string) (string, error) {
	return x.run(ctx, "run script", x.Interpreter, "-e", script)
}

// OpenURL implements Runner.
func (x *Exec) OpenURL(ctx context.Context, rawURL string) error {
	_, err := x.run(ctx, "open url", x.Opener, rawURL)
	return err
}

func (x *Exec) run(ctx context.Context, op, name string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		output := strings.TrimSpace(stderr.String())
		if output == "" {
			output = strings.TrimSpace(stdout.String())
		}
		return "", &ProcessError{
			Op:      op,
			Command: name,
			Output:  output,
			Err:     err,
		}
	}

	return strings.TrimSpace(stdout.String()), nil
}
