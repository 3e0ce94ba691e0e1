package cmd

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/cargo-instruments/cargo"
	"github.com/ardnew/cargo-instruments/instruments"
	"github.com/ardnew/cargo-instruments/log"
	"github.com/ardnew/cargo-instruments/pkg"
	"github.com/ardnew/cargo-instruments/pkg/proc"
)

// Instruments builds a Cargo target and records a trace of it with Xcode
// Instruments.
type Instruments struct {
	ListTemplates bool   `help:"List available templates."                                          short:"l"`
	Template      string `help:"Template to record with (alias or full name, see --list-templates)." placeholder:"NAME" short:"t"`
	Format        string `default:"text" enum:"text,json,yaml" help:"Output format of --list-templates."`

	Package string `help:"Package containing the target."  short:"p"`
	Example string `help:"Example binary to profile."        xor:"target"`
	Bin     string `help:"Binary to profile."                xor:"target"`
	Bench   string `help:"Benchmark target to profile."      xor:"target"`
	Harness string `help:"Test harness target to profile."   xor:"target"`
	Test    string `help:"Test to run within the harness."`

	Release           bool   `help:"Build in release mode."                            xor:"profile"`
	Profile           string `help:"Build with the named Cargo profile."               xor:"profile"`
	Features          string `help:"Space or comma separated list of features to enable."`
	AllFeatures       bool   `help:"Enable all features."`
	NoDefaultFeatures bool   `help:"Do not enable the default feature."`
	ManifestPath      string `help:"Path to Cargo.toml."                                type:"path"`

	Output    string `help:"Trace file path (default: target/instruments/<name>.trace)." short:"o" type:"path"`
	TimeLimit uint64 `help:"Stop recording after the given number of milliseconds."    placeholder:"MS"`

	// Open restates the default. It is accepted so existing invocations keep
	// working and cannot be combined with NoOpen.
	Open   bool `help:"Open the trace file (default)."                 hidden:"" xor:"open"`
	NoOpen bool `help:"Do not open the trace file in Instruments.app."           xor:"open"`

	Args []string `arg:"" help:"Arguments passed to the profiled target." optional:"" passthrough:""`
}

// Run executes the instruments command.
func (c *Instruments) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	rt := runtimeFrom(ctx)

	tool, err := instruments.Detect(ctx, rt.System)
	if err != nil {
		return err
	}

	if c.ListTemplates {
		catalog, err := instruments.ListTemplates(ctx, rt.System, tool)
		if err != nil {
			return err
		}

		return c.writeCatalog(rt.Stdout, catalog)
	}

	template, err := c.template(ctx, rt, tool)
	if err != nil {
		return err
	}

	target, err := cargo.Resolve(c.selectors())
	if err != nil {
		return ErrTarget.Wrap(err)
	}

	opts := c.cargoOptions()

	ws, err := cargo.Metadata(ctx, rt.System, opts)
	if err != nil {
		return err
	}

	dir, err := c.packageDir(rt)
	if err != nil {
		return err
	}

	pack, err := ws.Package(c.Package, dir)
	if err != nil {
		return ErrTarget.Wrap(err)
	}

	if err := cargo.Validate(target, pack); err != nil {
		return ErrTarget.
			With(slog.String("package", pack.Name)).
			Wrap(err)
	}

	opts.Package = pack.Name

	log.DebugContext(ctx, "building target",
		slog.String("package", pack.Name),
		slog.String("target", target.String()),
		slog.String("profile", opts.ProfileName()),
	)

	result, err := cargo.Build(ctx, rt.System, opts, target, rt.Stderr)
	if err != nil {
		return err
	}

	artifact, err := cargo.SelectArtifact(target, result)
	if err != nil {
		return ErrTarget.Wrap(err)
	}

	tracePath, err := rt.Planner.Plan(artifact.Path, template, c.Output, ws.Root)
	if err != nil {
		return ErrProfile.Wrap(err)
	}

	status(rt.Stderr, "Profiling", "%s with template '%s'",
		shortPath(artifact.Path, ws.Root), template)

	req := instruments.Request{
		Template:  template,
		TimeLimit: time.Duration(c.TimeLimit) * time.Millisecond,
		Output:    tracePath,
		Target:    artifact.Path,
		Args:      append(target.HarnessArgs(), c.Args...),
		Env: []string{
			instruments.LibraryPathEnv(artifact.Path,
				rt.Getenv(instruments.LibraryPathVar)),
		},
	}

	tracePath, err = instruments.Run(ctx, rt.System,
		instruments.BuildCommand(tool, req, c.tty(ctx, rt, tool)), tracePath)
	if err != nil {
		return err
	}

	status(rt.Stderr, "Trace file", "%s", shortPath(tracePath, ws.Root))

	if c.NoOpen {
		return nil
	}

	return open(ctx, rt.System, tracePath)
}

// template returns the full name of the template to record with.
func (c *Instruments) template(
	ctx context.Context,
	rt Runtime,
	tool instruments.Tool,
) (string, error) {
	catalog, listErr := instruments.ListTemplates(ctx, rt.System, tool)

	if c.Template != "" {
		name := instruments.ResolveAlias(c.Template)

		switch {
		case listErr != nil:
			log.DebugContext(ctx, "cannot verify template",
				slog.String("template", name),
				slog.Any("error", listErr),
			)
		case !catalog.Contains(name):
			log.WarnContext(ctx, "template not found in catalog",
				slog.String("template", name),
			)
		}

		return name, nil
	}

	if listErr != nil {
		return "", listErr
	}

	if !rt.Interactive || rt.Pick == nil {
		return "", pkg.ErrTemplateRequired
	}

	name, err := rt.Pick(ctx, "Select an Instruments template", catalog.Names())
	if err != nil {
		return "", ErrTemplate.Wrap(err)
	}

	return name, nil
}

func (c *Instruments) writeCatalog(w io.Writer, catalog instruments.Catalog) error {
	switch c.Format {
	case "json":
		data, err := json.MarshalIndent(catalog, "", "  ")
		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		_, err = w.Write(append(data, '\n'))

		return err

	case "yaml":
		data, err := yaml.Marshal(catalog)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		_, err = w.Write(data)

		return err

	case "", "text":
		_, err := io.WriteString(w, instruments.Render(catalog))

		return err

	default:
		return pkg.ErrInvalidFormat.Wrapf("%q", c.Format)
	}
}

// tty returns the terminal to attach the target to, or "" to leave the
// target's standard streams with xctrace.
func (c *Instruments) tty(
	ctx context.Context,
	rt Runtime,
	tool instruments.Tool,
) string {
	if tool != instruments.ToolXcTrace {
		return ""
	}

	tty, err := instruments.LookupTTY(ctx, rt.System)
	if err != nil {
		log.WarnContext(ctx, "cannot determine terminal, target output is not shown",
			slog.Any("error", err))

		return ""
	}

	if tty == "" {
		log.DebugContext(ctx, "no controlling terminal, target output is not shown")
	}

	return tty
}

func (c *Instruments) selectors() cargo.Selectors {
	return cargo.Selectors{
		Example: c.Example,
		Bin:     c.Bin,
		Bench:   c.Bench,
		Harness: c.Harness,
		Test:    c.Test,
	}
}

func (c *Instruments) cargoOptions() cargo.Options {
	return cargo.Options{
		ManifestPath:      c.ManifestPath,
		Package:           c.Package,
		Release:           c.Release,
		Profile:           c.Profile,
		Features:          c.Features,
		AllFeatures:       c.AllFeatures,
		NoDefaultFeatures: c.NoDefaultFeatures,
	}
}

// packageDir returns the directory used to pick the workspace member when
// no package is named: the manifest's directory if one was given, otherwise
// the working directory.
func (c *Instruments) packageDir(rt Runtime) (string, error) {
	if c.ManifestPath != "" {
		return filepath.Dir(c.ManifestPath), nil
	}

	return rt.Getwd()
}

// open shows the trace file in Instruments.app.
func open(ctx context.Context, sys proc.System, path string) error {
	cmd := proc.Command{Name: "open", Args: []string{path}}

	log.DebugContext(ctx, "exec", slog.String("command", cmd.String()))

	out, err := sys.Run(ctx, cmd)
	if err != nil {
		return pkg.ErrOpen.Wrap(err)
	}

	if !out.Success() {
		return pkg.ErrOpen.Wrapf("%s: %s", path,
			strings.TrimSpace(string(out.Stderr)))
	}

	return nil
}

// shortPath returns path relative to root when it lies within it.
func shortPath(path, root string) string {
	if root == "" {
		return path
	}

	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}

	return rel
}
