package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/cargo-instruments/log"
)

// resolve returns a [kong.ConfigurationLoader] that parses YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config.yaml")
//
// The document is a flat mapping from flag names to values. Keys may use
// hyphens or underscores:
//
//	log-level: debug
//	release: true
//	template: time
//	time_limit: 5000
//
// Command-line flags override config file values. A file that cannot be
// parsed is logged and ignored.
func resolve(ctx context.Context) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}

		var doc map[string]any

		err = yaml.Unmarshal(data, &doc)
		if err != nil {
			log.WarnContext(ctx, "ignoring invalid configuration file",
				slog.String("error", err.Error()))

			return config{}, nil
		}

		return makeConfig(doc), nil
	}
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// makeConfig normalizes decoded YAML values to what Kong accepts.
func makeConfig(doc map[string]any) config {
	c := make(config, len(doc))

	for key, val := range doc {
		c[strings.ReplaceAll(key, "_", "-")] = normalize(val)
	}

	return c
}

// normalize converts numbers to strings, as Kong parses numeric flags from
// their text form, and descends into sequences.
func normalize(val any) any {
	switch v := val.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalize(e)
		}

		return out
	default:
		return v
	}
}

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
