// Package proc wraps the process primitives used to drive external tools:
// spawning a command, capturing its output and reading its exit status.
//
// Callers depend on the [System] interface so that probes and subprocess
// output can be injected as plain data in tests.
package proc

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Command describes a subprocess invocation.
type Command struct {
	Name string
	Args []string
	// Env holds additional KEY=VALUE pairs appended to the inherited
	// environment.
	Env []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Stderr, when non-nil, receives the command's standard error as it is
	// produced, in addition to the captured copy in [Output].
	Stderr io.Writer
}

// String returns the command line with arguments quoted where needed.
func (c Command) String() string {
	var sb strings.Builder

	sb.WriteString(quote(c.Name))

	for _, arg := range c.Args {
		sb.WriteByte(' ')
		sb.WriteString(quote(arg))
	}

	return sb.String()
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"'\\$") {
		return strconv.Quote(s)
	}

	return s
}

// Output is the captured result of a completed command.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the command exited with status zero.
func (o Output) Success() bool { return o.ExitCode == 0 }

// System provides the host primitives consumed by this module.
type System interface {
	// Run executes cmd to completion. The returned error is non-nil only when
	// the process could not be started or waited on; a non-zero exit status
	// is reported through [Output.ExitCode].
	Run(ctx context.Context, cmd Command) (Output, error)
	// Exists reports whether a file exists at path.
	Exists(path string) bool
	// Getpid returns the process ID of the caller.
	Getpid() int
}

// InterruptWait is how long a command may keep running after it has been
// interrupted by a cancelled context before it is killed.
const InterruptWait = 30 * time.Second

// OS is the [System] backed by os/exec.
type OS struct{}

// Run implements [System].
//
// Cancelling ctx sends the process an interrupt, as Ctrl-C would, and the
// process is only killed if it is still running after [InterruptWait]. The
// exit status the process reports is returned either way.
func (OS) Run(ctx context.Context, c Command) (Output, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = InterruptWait
	cmd.Dir = c.Dir

	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if c.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, c.Stderr)
	}

	err := cmd.Run()

	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	if cmd.ProcessState == nil {
		return out, err
	}

	out.ExitCode = cmd.ProcessState.ExitCode()

	return out, nil
}

// Exists implements [System].
func (OS) Exists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

// Getpid implements [System].
func (OS) Getpid() int { return os.Getpid() }
