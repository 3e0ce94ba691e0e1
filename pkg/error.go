package pkg

// Sentinel errors shared by the instruments, cargo and cli packages.
// Every sentinel can be matched with errors.Is after being wrapped.

import (
	"fmt"
	"slices"
	"strings"
)

// Error represents a chain of errors.
type Error []error

// Environment errors: the host cannot run Xcode Instruments.
var (
	// ErrNotInstalled is returned when neither generation of the Instruments
	// command line tools can be found.
	ErrNotInstalled = MakeErrorf(
		"Xcode Instruments is not installed. " +
			"Please install the Xcode Command Line Tools.",
	)

	// ErrOSVersion is returned when the macOS version cannot be determined.
	ErrOSVersion = MakeErrorf("macOS version cannot be determined")
)

// Configuration errors: the request cannot be satisfied by the project.
var (
	// ErrInvalidVersion is returned when a version string is malformed.
	ErrInvalidVersion = MakeErrorf("invalid version")

	// ErrMissingTarget is returned when the requested target is not declared
	// by the package. It should be wrapped with the target description.
	ErrMissingTarget = MakeErrorf("missing target")

	// ErrConflictingTargets is returned when more than one target selector is
	// given.
	ErrConflictingTargets = MakeErrorf("conflicting target selectors")

	// ErrNoTargets is returned when the build produced no candidate binary.
	ErrNoTargets = MakeErrorf("no targets found")

	// ErrMultipleTargets is returned when the build produced more than one
	// candidate binary. It should be wrapped with the candidate paths.
	ErrMultipleTargets = MakeErrorf("unexpectedly built multiple targets")

	// ErrMissingArtifact is returned when a bench or test harness was built
	// but no executable matched its name.
	ErrMissingArtifact = MakeErrorf("could not find harness executable")

	// ErrAmbiguousPackage is returned when the workspace has several packages
	// and none was selected.
	ErrAmbiguousPackage = MakeErrorf(
		"workspace has multiple packages (use --package to select one)",
	)

	// ErrTemplateRequired is returned when no template was given and none
	// could be picked interactively.
	ErrTemplateRequired = MakeErrorf(
		"a template is required (see --list-templates)",
	)

	// ErrInvalidFormat is returned when an invalid output format is requested.
	ErrInvalidFormat = MakeErrorf("invalid format")
)

// Parse errors: an external listing command printed something unexpected.
var (
	// ErrListTemplates is returned when the template listing command fails.
	ErrListTemplates = MakeErrorf(
		"Could not list templates. " +
			"Please check your Xcode Instruments installation.",
	)

	// ErrNoTemplates is returned when the template listing contains no
	// standard templates.
	ErrNoTemplates = MakeErrorf(
		"No available templates. " +
			"Please check your Xcode Instruments installation.",
	)

	// ErrMetadata is returned when cargo metadata fails or cannot be decoded.
	ErrMetadata = MakeErrorf("cannot read cargo metadata")
)

// Build and execution errors.
var (
	// ErrBuild is returned when cargo fails to compile the target.
	ErrBuild = MakeErrorf("build failed")

	// ErrProfile is returned when the profiling command exits non-zero.
	ErrProfile = MakeErrorf("instruments errored")

	// ErrOpen is returned when the trace file cannot be opened.
	ErrOpen = MakeErrorf("cannot open trace file")
)

// MakeError constructs an Error from the given errors.
// The errors are stored in the order they are provided:
// the first argument is the innermost error in the chain.
// Nil is returned if no errors are provided.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, UnwrapErrors(err)...)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted error message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error returns a concatenated string representation of all errors
// in the error chain, separated by ": ", from innermost to outermost.
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range slices.All(e) {
		if i > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Wrap returns a copy of the receiver with err appended.
func (e Error) Wrap(err ...error) Error {
	return append(slices.Clip(e), err...)
}

// Wrapf returns a copy of the receiver with a formatted error appended.
func (e Error) Wrapf(format string, args ...any) Error {
	return append(slices.Clip(e), fmt.Errorf(format, args...))
}

// Unwrap returns the slice of errors contained in the receiver.
func (e Error) Unwrap() []error {
	return e
}

// Is reports whether every error of target also appears in the receiver.
// Error is a slice and therefore not comparable, so errors.Is relies on this
// method to match wrapped sentinels.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok || len(t) == 0 {
		return false
	}

	for _, want := range t {
		if !slices.ContainsFunc(e, func(err error) bool { return err == want }) {
			return false
		}
	}

	return true
}

// UnwrapErrors recursively unwraps an error chain and returns a slice
// containing all errors in the chain, starting from the innermost error.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	chain := Error{}

	if e, ok := err.(interface{ Unwrap() []error }); ok {
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}

		if _, isChain := err.(Error); isChain {
			return chain
		}
	} else if e, ok := err.(interface{ Unwrap() error }); ok {
		chain = append(chain, UnwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}
