// Package profile provides optional runtime profiling of cargo-instruments
// itself, for investigating the tool rather than the profiled target.
//
// It wraps [github.com/pkg/profile] and must be enabled at build time with
// the "pprof" build tag:
//
//	go build -tags pprof .
//	cargo-instruments --pprof-mode=cpu -t time
//
// Without the tag, [Modes] is empty and [Config.Start] returns a no-op
// profiler. Profiles are written to the cache directory by default
// (for example ~/Library/Caches/cargo-instruments/pprof on macOS) and can be
// inspected with "go tool pprof".
//
// The supported modes are allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread and trace.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
