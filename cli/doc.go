// Package cli contains the command line interface for cargo-instruments.
//
// # Usage
//
// Cargo runs the binary as an external subcommand:
//
//	cargo instruments -t time --release --bin app -- --input data.txt
//
// Arguments after "--" are passed to the profiled target. Run with
// --list-templates to print the templates known to the installed Xcode
// Instruments, in text, JSON or YAML (--format).
//
// # Configuration Files
//
// Flag defaults are read from config.json and config.yaml in the user
// configuration directory (~/Library/Application Support/cargo-instruments
// on macOS). Keys are flag names; underscores may replace hyphens in YAML:
//
//	template: time
//	release: true
//	log-level: debug
//
// "cargo-instruments init" writes config.yaml from the current flag values.
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling cargo-instruments itself is only available when built with the
// pprof build tag; see package profile.
package cli
