package cargo

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/ardnew/cargo-instruments/log"
	"github.com/ardnew/cargo-instruments/pkg"
	"github.com/ardnew/cargo-instruments/pkg/proc"
)

// BuildCommand returns the cargo invocation that builds t.
func BuildCommand(opts Options, t Target) proc.Command {
	args := []string{"build", "--message-format=json-render-diagnostics"}

	if opts.ManifestPath != "" {
		args = append(args, "--manifest-path", opts.ManifestPath)
	}

	if opts.Package != "" {
		args = append(args, "--package", opts.Package)
	}

	switch {
	case opts.Profile != "":
		args = append(args, "--profile", opts.Profile)
	case opts.Release:
		args = append(args, "--release")
	}

	if fs := opts.FeatureList(); len(fs) > 0 {
		args = append(args, "--features", strings.Join(fs, ","))
	}

	if opts.AllFeatures {
		args = append(args, "--all-features")
	}

	if opts.NoDefaultFeatures {
		args = append(args, "--no-default-features")
	}

	switch t.kind {
	case KindBin:
		args = append(args, "--bin", t.name)
	case KindExample:
		args = append(args, "--example", t.name)
	case KindBench:
		args = append(args, "--bench", t.name)
	case KindTest:
		args = append(args, "--test", t.name)
	}

	return proc.Command{Name: "cargo", Args: args}
}

// Build compiles t and returns the executables Cargo reported. Compiler
// diagnostics are copied to stderr as they are produced.
func Build(
	ctx context.Context,
	sys proc.System,
	opts Options,
	t Target,
	stderr io.Writer,
) (BuildResult, error) {
	cmd := BuildCommand(opts, t)
	cmd.Stderr = stderr

	log.DebugContext(ctx, "exec", slog.String("command", cmd.String()))

	out, err := sys.Run(ctx, cmd)
	if err != nil {
		return BuildResult{}, pkg.ErrBuild.Wrap(err)
	}

	if !out.Success() {
		return BuildResult{}, pkg.ErrBuild.Wrapf("cargo exited with status %d",
			out.ExitCode)
	}

	return ParseMessages(out.Stdout), nil
}

// ParseMessages collects the executables from a stream of Cargo JSON
// messages, one per line. Lines that are not compiler-artifact messages with
// an executable are ignored.
func ParseMessages(stream []byte) BuildResult {
	var r BuildResult

	sc := bufio.NewScanner(bytes.NewReader(stream))
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)

	for sc.Scan() {
		line := sc.Bytes()
		if !gjson.ValidBytes(line) {
			continue
		}

		msg := gjson.ParseBytes(line)
		if msg.Get("reason").String() != "compiler-artifact" {
			continue
		}

		exe := msg.Get("executable")
		if exe.Type != gjson.String || exe.String() == "" {
			continue
		}

		if msg.Get("profile.test").Bool() {
			r.Tests = append(r.Tests, TestOutput{
				Target: msg.Get("target.name").String(),
				Path:   exe.String(),
			})
		} else {
			r.Binaries = append(r.Binaries, exe.String())
		}
	}

	return r
}
