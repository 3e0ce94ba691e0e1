package instruments

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ardnew/cargo-instruments/log"
	"github.com/ardnew/cargo-instruments/pkg"
	"github.com/ardnew/cargo-instruments/pkg/proc"
)

// Request holds everything needed to record one trace.
type Request struct {
	// Template is the full template name, aliases already expanded.
	Template string
	// TimeLimit stops the recording after the given duration. Zero records
	// until the target exits.
	TimeLimit time.Duration
	// Output is the trace file path.
	Output string
	// Target is the path of the executable to launch.
	Target string
	// Args are passed to the target verbatim.
	Args []string
	// Env holds extra KEY=VALUE pairs for the profiling command.
	Env []string
}

// BuildCommand returns the recording command for tool.
//
// With xctrace and a non-empty tty, the target's stdin and stdout are
// attached to that terminal; the legacy tool always inherits them. tool must
// be one of the values returned by [Detect].
func BuildCommand(tool Tool, req Request, tty string) proc.Command {
	var cmd proc.Command

	switch tool {
	case ToolXcTrace:
		cmd.Name = "xcrun"
		cmd.Args = []string{"xctrace", "record", "--template", req.Template}

		if req.TimeLimit > 0 {
			cmd.Args = append(cmd.Args, "--time-limit", millis(req.TimeLimit)+"ms")
		}

		cmd.Args = append(cmd.Args, "--output", req.Output)

		if tty != "" {
			cmd.Args = append(cmd.Args,
				"--target-stdin", tty,
				"--target-stdout", tty,
			)
		}

		cmd.Args = append(cmd.Args, "--launch", "--", req.Target)

	case ToolInstruments:
		cmd.Name = "instruments"
		cmd.Args = []string{"-t", req.Template, "-D", req.Output}

		if req.TimeLimit > 0 {
			cmd.Args = append(cmd.Args, "-l", millis(req.TimeLimit))
		}

		cmd.Args = append(cmd.Args, req.Target)

	default:
		panic("internal error: unsupported tool " + tool.String())
	}

	cmd.Args = append(cmd.Args, req.Args...)
	cmd.Env = req.Env

	return cmd
}

func millis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}

// LookupTTY returns the device path of the controlling terminal of the
// current process, as reported by "ps otty= <pid>".
//
// An empty path with a nil error means the process has no terminal.
func LookupTTY(ctx context.Context, sys proc.System) (string, error) {
	cmd := proc.Command{
		Name: "ps",
		Args: []string{"otty=", strconv.Itoa(sys.Getpid())},
	}

	log.TraceContext(ctx, "exec", slog.String("command", cmd.String()))

	out, err := sys.Run(ctx, cmd)
	if err != nil {
		return "", err
	}

	if !out.Success() {
		return "", pkg.MakeErrorf("%s exited with status %d: %s",
			cmd.Name, out.ExitCode, strings.TrimSpace(string(out.Stderr)))
	}

	fields := strings.Fields(string(out.Stdout))
	if len(fields) == 0 {
		return "", nil
	}

	switch name := fields[0]; name {
	case "?", "??":
		return "", nil
	default:
		return "/dev/" + name, nil
	}
}
