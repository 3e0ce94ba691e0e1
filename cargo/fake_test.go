package cargo

import (
	"context"

	"github.com/ardnew/cargo-instruments/pkg/proc"
)

type fakeSystem struct {
	outputs map[string]proc.Output
	ran     []proc.Command
}

func (f *fakeSystem) Run(_ context.Context, cmd proc.Command) (proc.Output, error) {
	f.ran = append(f.ran, cmd)

	if out, ok := f.outputs[cmd.String()]; ok {
		return out, nil
	}

	return proc.Output{ExitCode: 101}, nil
}

func (f *fakeSystem) Exists(string) bool { return false }

func (f *fakeSystem) Getpid() int { return 1 }
