package instruments

import (
	"context"
	"slices"

	"github.com/ardnew/cargo-instruments/pkg/proc"
)

// fakeSystem answers commands from a table keyed by the command line.
type fakeSystem struct {
	outputs map[string]proc.Output
	errs    map[string]error
	files   []string
	pid     int

	ran []proc.Command
	// ctxErr is the context error seen by the last Run, as it returned.
	ctxErr error
}

func (f *fakeSystem) Run(ctx context.Context, cmd proc.Command) (proc.Output, error) {
	f.ran = append(f.ran, cmd)
	f.ctxErr = ctx.Err()

	key := cmd.String()
	if err, ok := f.errs[key]; ok {
		return proc.Output{}, err
	}

	if out, ok := f.outputs[key]; ok {
		return out, nil
	}

	return proc.Output{ExitCode: 127}, nil
}

func (f *fakeSystem) Exists(path string) bool { return slices.Contains(f.files, path) }

func (f *fakeSystem) Getpid() int { return f.pid }

func stdout(s string) proc.Output { return proc.Output{Stdout: []byte(s)} }
