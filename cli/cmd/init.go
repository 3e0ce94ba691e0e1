package cmd

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/cargo-instruments/log"
	"github.com/ardnew/cargo-instruments/profile"
)

// configFileMode is the permission mode of a written configuration file.
const configFileMode = 0o600

// Init generates a configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.Marshal(i.values(ktx))
	if err != nil {
		return ErrYAMLMarshal.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	err = os.WriteFile(confPath, data, configFileMode)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// values returns the configurable flags of every command with their current
// values, in declaration order. Unset flags are omitted.
func (i *Init) values(ktx *kong.Context) yaml.MapSlice {
	var (
		items yaml.MapSlice
		seen  = map[string]bool{}
	)

	prefixIgnore := []string{"help", profile.Tag}

	for _, flag := range allFlags(ktx.Model.Node) {
		if flag.Hidden || seen[flag.Name] ||
			slices.ContainsFunc(prefixIgnore, func(s string) bool {
				return strings.HasPrefix(flag.Name, s)
			}) {
			continue
		}

		seen[flag.Name] = true

		if val := configValue(ktx.FlagValue(flag)); val != nil {
			items = append(items, yaml.MapItem{Key: flag.Name, Value: val})
		}
	}

	return items
}

// allFlags returns the flags of n and all of its descendants.
func allFlags(n *kong.Node) []*kong.Flag {
	flags := slices.Clone(n.Flags)

	for _, child := range n.Children {
		flags = append(flags, allFlags(child)...)
	}

	return flags
}

// configValue returns val as written to the configuration file, or nil if
// val is unset.
func configValue(val any) any {
	switch v := val.(type) {
	case nil:
		return nil
	case bool:
		if !v {
			return nil
		}
	case string:
		if v == "" {
			return nil
		}
	case []string:
		if len(v) == 0 {
			return nil
		}
	case int:
		if v == 0 {
			return nil
		}
	case uint64:
		if v == 0 {
			return nil
		}
	}

	return val
}
