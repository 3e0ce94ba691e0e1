// Package cargo drives the Cargo build system on behalf of the profiler.
//
// It resolves which build target the user selected ([Resolve]), checks the
// selection against the package manifest ([Validate]), reads workspace
// metadata ([Metadata]), builds the target ([Build]) and collapses the build
// output to the single executable that will be profiled ([SelectArtifact]).
//
// Cargo itself is treated as a black box driven through its JSON interfaces:
// "cargo metadata --format-version 1" and the compiler message stream of
// "cargo build --message-format=json".
package cargo
