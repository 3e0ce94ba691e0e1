package instruments

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-version"

	"github.com/ardnew/cargo-instruments/pkg"
)

// Version is a three-component macOS version.
type Version struct {
	Major, Minor, Patch int
}

// xctraceVersion is the first macOS release shipping xctrace.
var xctraceVersion = Version{10, 15, 0}

// ParseVersion parses the output of "sw_vers -productVersion".
//
// One or two components are accepted and padded with zeros ("11.2" is
// 11.2.0). More than three components, empty components and anything other
// than decimal digits are rejected.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)

	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return Version{}, pkg.ErrInvalidVersion.Wrapf("%q: too many components", s)
	}

	var comp [3]int

	for i, part := range parts {
		if part == "" || strings.TrimLeft(part, "0123456789") != "" {
			return Version{}, pkg.ErrInvalidVersion.Wrapf("%q: non-numeric component %q", s, part)
		}

		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, pkg.ErrInvalidVersion.Wrapf("%q", s).Wrap(err)
		}

		comp[i] = n
	}

	return Version{comp[0], comp[1], comp[2]}, nil
}

// String returns the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// semver converts v for comparison.
func (v Version) semver() *version.Version {
	return version.Must(version.NewVersion(v.String()))
}

// Compare returns -1, 0 or +1 depending on whether v is less than, equal to,
// or greater than w.
func (v Version) Compare(w Version) int {
	return v.semver().Compare(w.semver())
}

// AtLeast reports whether v is greater than or equal to w.
func (v Version) AtLeast(w Version) bool {
	return v.semver().GreaterThanOrEqual(w.semver())
}
