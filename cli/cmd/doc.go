// Package cmd implements the cargo-instruments commands.
//
// [Instruments] is the default command. It detects the installed Instruments
// tooling, builds the selected Cargo target and records a trace of it.
// [Init] writes the current flag values to the configuration file.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
