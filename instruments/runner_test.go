package instruments

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/ardnew/cargo-instruments/pkg"
	"github.com/ardnew/cargo-instruments/pkg/proc"
)

func TestRun(t *testing.T) {
	cmd := BuildCommand(ToolInstruments, Request{
		Template: "Leaks", Output: "a.trace", Target: "app",
	}, "")

	t.Run("success", func(t *testing.T) {
		sys := &fakeSystem{outputs: map[string]proc.Output{cmd.String(): {}}}

		got, err := Run(t.Context(), sys, cmd, "a.trace")
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		if got != "a.trace" {
			t.Errorf("Run() = %q", got)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		sys := &fakeSystem{outputs: map[string]proc.Output{cmd.String(): {}}}

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		got, err := Run(ctx, sys, cmd, "a.trace")
		if err != nil || got != "a.trace" {
			t.Fatalf("Run() = %q, %v", got, err)
		}

		if sys.ctxErr != nil {
			t.Errorf("recording saw context error %v", sys.ctxErr)
		}
	})

	t.Run("failure", func(t *testing.T) {
		sys := &fakeSystem{outputs: map[string]proc.Output{cmd.String(): {
			ExitCode: 2,
			Stderr:   []byte("bad template"),
			Stdout:   []byte("partial"),
		}}}

		_, err := Run(t.Context(), sys, cmd, "a.trace")
		if !errors.Is(err, pkg.ErrProfile) {
			t.Fatalf("Run() error = %v, want ErrProfile", err)
		}

		var perr *ProfileError
		if !errors.As(err, &perr) {
			t.Fatalf("Run() error %T is not *ProfileError", err)
		}

		if perr.ExitCode != 2 {
			t.Errorf("ExitCode = %d", perr.ExitCode)
		}

		if want := "instruments errored: bad template partial"; err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("invalid_utf8", func(t *testing.T) {
		sys := &fakeSystem{outputs: map[string]proc.Output{cmd.String(): {
			ExitCode: 1,
			Stderr:   []byte{0xff, 0xfe},
			Stdout:   []byte{0xc3},
		}}}

		_, err := Run(t.Context(), sys, cmd, "a.trace")

		var perr *ProfileError
		if !errors.As(err, &perr) {
			t.Fatalf("Run() error = %v", err)
		}

		if perr.Stderr != "failed to capture stderr" || perr.Stdout != "failed to capture stdout" {
			t.Errorf("ProfileError = %+v", perr)
		}
	})

	t.Run("not_started", func(t *testing.T) {
		sys := &fakeSystem{errs: map[string]error{cmd.String(): os.ErrNotExist}}

		_, err := Run(t.Context(), sys, cmd, "a.trace")
		if !errors.Is(err, pkg.ErrProfile) || !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("Run() error = %v", err)
		}
	})
}

func TestDepsDir(t *testing.T) {
	tests := []struct{ artifact, want string }{
		{"/w/target/release/app", "/w/target/release/deps"},
		{"/w/target/release/deps/bench-0123abcd", "/w/target/release/deps"},
		{"/w/target/debug/examples/demo", "/w/target/debug/deps"},
	}

	for _, tt := range tests {
		if got := DepsDir(tt.artifact); got != tt.want {
			t.Errorf("DepsDir(%q) = %q, want %q", tt.artifact, got, tt.want)
		}
	}
}

func TestLibraryPathEnv(t *testing.T) {
	got := LibraryPathEnv("/w/target/release/app", "/opt/lib")

	key, value, ok := strings.Cut(got, "=")
	if !ok || key != LibraryPathVar {
		t.Fatalf("LibraryPathEnv() = %q", got)
	}

	if !strings.HasPrefix(value, "/w/target/release/deps") {
		t.Errorf("value = %q, want deps directory first", value)
	}

	if !strings.Contains(value, "/opt/lib") {
		t.Errorf("value = %q, want existing entries kept", value)
	}
}
