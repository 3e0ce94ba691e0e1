package instruments

//go:generate go tool stringer --linecomment --type Tool --output tool_string.go

import (
	"context"
	"log/slog"

	"github.com/ardnew/cargo-instruments/log"
	"github.com/ardnew/cargo-instruments/pkg"
	"github.com/ardnew/cargo-instruments/pkg/proc"
)

// Tool identifies the installed generation of the Instruments command line
// tools.
type Tool int

const (
	// ToolInstruments is the legacy /usr/bin/instruments binary used before
	// macOS 10.15.
	ToolInstruments Tool = iota // instruments
	// ToolXcTrace is "xcrun xctrace", available from macOS 10.15.
	ToolXcTrace // xctrace
)

// Probe paths. The Command Line Tools git binary is the same marker
// Homebrew's installer uses to detect a CLT installation.
const (
	cltMarkerPath       = "/Library/Developer/CommandLineTools/usr/bin/git"
	instrumentsToolPath = "/usr/bin/instruments"
)

// Detect determines which tool generation is installed and usable on the
// current macOS version.
func Detect(ctx context.Context, sys proc.System) (Tool, error) {
	ver, err := OSVersion(ctx, sys)
	if err != nil {
		return 0, err
	}

	return detectFor(ctx, sys, ver)
}

func detectFor(ctx context.Context, sys proc.System, ver Version) (Tool, error) {
	if ver.AtLeast(xctraceVersion) {
		if sys.Exists(cltMarkerPath) {
			log.DebugContext(ctx, "selected xctrace",
				slog.String("macos", ver.String()))

			return ToolXcTrace, nil
		}
	} else if sys.Exists(instrumentsToolPath) {
		log.DebugContext(ctx, "selected legacy instruments",
			slog.String("macos", ver.String()))

		return ToolInstruments, nil
	}

	return 0, pkg.ErrNotInstalled
}

// OSVersion reports the macOS version from "sw_vers -productVersion".
func OSVersion(ctx context.Context, sys proc.System) (Version, error) {
	cmd := proc.Command{Name: "sw_vers", Args: []string{"-productVersion"}}

	log.TraceContext(ctx, "exec", slog.String("command", cmd.String()))

	out, err := sys.Run(ctx, cmd)
	if err != nil {
		return Version{}, pkg.ErrOSVersion.Wrap(err)
	}

	if !out.Success() {
		return Version{}, pkg.ErrOSVersion
	}

	return ParseVersion(string(out.Stdout))
}
