package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/cargo-instruments/cli/cmd"
	"github.com/ardnew/cargo-instruments/pkg"
)

// CLI is the top-level command-line interface for cargo-instruments.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version information and exit." short:"V"`

	Init cmd.Init `cmd:"" help:"Write the current flag values to the configuration file."`

	// Cargo runs external subcommands with the subcommand name as the first
	// argument, so "cargo instruments -t time" arrives here as
	// "instruments -t time". [trimSubcommand] removes it before parsing.
	Instruments cmd.Instruments `cmd:"" default:"withargs" help:"Profile a Cargo target with Xcode Instruments."`
}

// Run executes the cargo-instruments CLI with the given context and
// arguments. The exit function is called with the appropriate exit code upon
// completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	args = trimSubcommand(args)

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	// The provider reads ctx when a command runs, after the values below are
	// added to it.
	parser, err := newParser(ctx, &cli, exit, configPath(baseConfig),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithRuntime(ctx, cmd.DefaultRuntime())

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}

// trimSubcommand removes the subcommand name Cargo passes as the first
// argument. Left in place it would make kong keep a following "--" among the
// target's arguments.
func trimSubcommand(args []string) []string {
	if len(args) > 0 && args[0] == pkg.Subcommand {
		return args[1:]
	}

	return args
}

// newParser returns the kong parser for cli, reading configuration files
// from configFilePath with a ".json" or ".yaml" extension.
func newParser(
	ctx context.Context,
	cli *CLI,
	exit func(code int),
	configFilePath string,
	opts ...kong.Option,
) (*kong.Kong, error) {
	vars := kong.Vars{
		"version":            pkg.Name + " " + pkg.Version(),
		cmd.ConfigIdentifier: configFilePath + ".yaml",
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	return kong.New(cli, append([]kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx), configFilePath+".yaml"),
		vars,
	}, opts...)...)
}
