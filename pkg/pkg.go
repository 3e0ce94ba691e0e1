//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// Version is the semantic version of cargo-instruments embedded at build
// time. It is reported by --version.
//
//go:embed VERSION
var version string

// Version returns the embedded version with surrounding whitespace removed.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the executable name Cargo looks up for the "instruments"
	// subcommand. It also names the user configuration directory.
	Name = "cargo-instruments"
	// Subcommand is the argument Cargo inserts when it runs Name on behalf of
	// "cargo instruments".
	Subcommand = "instruments"
	// Description is a short summary used in help output.
	Description = "Profile a Cargo target with Xcode Instruments"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
