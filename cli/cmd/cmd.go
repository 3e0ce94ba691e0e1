package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"github.com/ardnew/cargo-instruments/cli/cmd/picker"
	"github.com/ardnew/cargo-instruments/instruments"
	"github.com/ardnew/cargo-instruments/pkg/proc"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Runtime holds the host facilities used by commands.
type Runtime struct {
	// System runs external tools.
	System proc.System
	// Stdout receives command output such as the template listing.
	Stdout io.Writer
	// Stderr receives status lines and compiler diagnostics.
	Stderr io.Writer
	// Interactive reports whether the user can answer prompts.
	Interactive bool
	// Pick asks the user to choose one of names.
	Pick func(ctx context.Context, title string, names []string) (string, error)
	// Planner places trace files.
	Planner instruments.Planner
	// Getwd returns the working directory.
	Getwd func() (string, error)
	// Getenv reads the environment.
	Getenv func(key string) string
}

// DefaultRuntime returns the Runtime of the current process.
func DefaultRuntime() Runtime {
	return Runtime{
		System:      proc.OS{},
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Interactive: term.IsTerminal(int(os.Stdin.Fd())),
		Pick:        picker.Pick,
		Planner:     instruments.DefaultPlanner(),
		Getwd:       os.Getwd,
		Getenv:      os.Getenv,
	}
}

type runtimeKey struct{}

// WithRuntime returns a new context.Context carrying rt.
func WithRuntime(ctx context.Context, rt Runtime) context.Context {
	return context.WithValue(ctx, runtimeKey{}, rt)
}

// runtimeFrom returns the Runtime stored by [WithRuntime], or
// [DefaultRuntime] if there is none.
func runtimeFrom(ctx context.Context) Runtime {
	if rt, ok := ctx.Value(runtimeKey{}).(Runtime); ok {
		return rt
	}

	return DefaultRuntime()
}
