//go:build !pprof

package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/cargo-instruments/profile"
)

// pprofConfig is empty when built without pprof tag.
type pprofConfig struct{}

func (pprofConfig) vars() kong.Vars { return kong.Vars{} }

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: "pprof", Title: "Profiling (pprof)"}
}

// start returns the no-op stop function of a disabled profiler.
func (pprofConfig) start(context.Context) (stop func()) {
	return profile.Config(func() (string, string, bool) { return "", "", false }).Start().Stop
}
