package instruments

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/ardnew/mung"

	"github.com/ardnew/cargo-instruments/log"
	"github.com/ardnew/cargo-instruments/pkg"
	"github.com/ardnew/cargo-instruments/pkg/proc"
)

// ProfileError reports a profiling command that exited with a non-zero
// status. It matches [pkg.ErrProfile] with errors.Is.
type ProfileError struct {
	Command  string
	ExitCode int
	Stderr   string
	Stdout   string
}

// Error implements error.
func (e *ProfileError) Error() string {
	return fmt.Sprintf("%s: %s %s", pkg.ErrProfile, e.Stderr, e.Stdout)
}

// Unwrap returns [pkg.ErrProfile].
func (e *ProfileError) Unwrap() error { return pkg.ErrProfile }

// LogValue implements [slog.LogValuer].
func (e *ProfileError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("command", e.Command),
		slog.Int("status", e.ExitCode),
		slog.String("stderr", e.Stderr),
		slog.String("stdout", e.Stdout),
	)
}

func decode(b []byte, stream string) string {
	if !utf8.Valid(b) {
		return "failed to capture " + stream
	}

	return string(b)
}

// Run executes a profiling command built by [BuildCommand] and waits for it
// to finish.
//
// On success tracePath is returned as is; whether Instruments actually wrote
// the file is not checked.
//
// Cancelling ctx does not stop the recording. An interrupt from the terminal
// reaches Instruments directly, which then saves the trace and exits; its
// exit status decides the result.
func Run(ctx context.Context, sys proc.System, cmd proc.Command, tracePath string) (string, error) {
	log.DebugContext(ctx, "exec", slog.String("command", cmd.String()))

	out, err := sys.Run(context.WithoutCancel(ctx), cmd)
	if err != nil {
		return "", pkg.ErrProfile.Wrap(err)
	}

	if !out.Success() {
		return "", &ProfileError{
			Command:  cmd.String(),
			ExitCode: out.ExitCode,
			Stderr:   decode(out.Stderr, "stderr"),
			Stdout:   decode(out.Stdout, "stdout"),
		}
	}

	return tracePath, nil
}

// LibraryPathVar is the dynamic loader search path extended for profiled
// targets.
const LibraryPathVar = "DYLD_FALLBACK_LIBRARY_PATH"

// LibraryPathEnv returns a KEY=VALUE pair that prefixes the current value of
// [LibraryPathVar] with the deps directory next to artifact, where Cargo
// places dylibs the target links against.
//
// The pair is set on the profiling command. With System Integrity Protection
// enabled, macOS drops DYLD_* variables when it starts the tools in /usr/bin,
// so it only reaches the target on hosts without that protection.
func LibraryPathEnv(artifact, current string) string {
	value := mung.Make(
		mung.WithSubjectItems(current),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(DepsDir(artifact)),
	).String()

	return LibraryPathVar + "=" + value
}

// DepsDir returns the deps directory of a Cargo artifact. Test and bench
// harnesses already live in it, examples live in a sibling directory and
// other executables are one level above.
func DepsDir(artifact string) string {
	dir := filepath.Dir(artifact)

	switch filepath.Base(dir) {
	case "deps":
		return dir
	case "examples":
		return filepath.Join(filepath.Dir(dir), "deps")
	default:
		return filepath.Join(dir, "deps")
	}
}
