package cargo

//go:generate go tool stringer --linecomment --type ArtifactKind --output artifact_string.go

import (
	"strings"

	"github.com/ardnew/cargo-instruments/pkg"
)

// ArtifactKind is the build output category an executable came from.
type ArtifactKind int

const (
	// ArtifactBinary is an ordinary binary or example.
	ArtifactBinary ArtifactKind = iota // binary
	// ArtifactBench is a benchmark harness.
	ArtifactBench // bench
	// ArtifactTest is a test harness.
	ArtifactTest // test
)

// Artifact is the executable selected for profiling.
type Artifact struct {
	Path string
	Kind ArtifactKind
}

// TestOutput is an executable built with the test profile.
type TestOutput struct {
	Target string
	Path   string
}

// BuildResult holds the executables produced by a build.
type BuildResult struct {
	// Binaries are executables built with a non-test profile.
	Binaries []string
	// Tests are bench and test harnesses.
	Tests []TestOutput
}

// SelectArtifact collapses r to the single executable built for t.
func SelectArtifact(t Target, r BuildResult) (Artifact, error) {
	switch t.kind {
	case KindBench:
		return findHarness(t, r, ArtifactBench)
	case KindTest:
		return findHarness(t, r, ArtifactTest)
	}

	switch len(r.Binaries) {
	case 0:
		return Artifact{}, pkg.ErrNoTargets
	case 1:
		return Artifact{Path: r.Binaries[0], Kind: ArtifactBinary}, nil
	default:
		return Artifact{}, pkg.ErrMultipleTargets.Wrapf("%s",
			strings.Join(r.Binaries, ", "))
	}
}

func findHarness(t Target, r BuildResult, kind ArtifactKind) (Artifact, error) {
	for _, out := range r.Tests {
		if out.Target == t.name {
			return Artifact{Path: out.Path, Kind: kind}, nil
		}
	}

	return Artifact{}, pkg.ErrMissingArtifact.Wrapf("%s", t)
}
