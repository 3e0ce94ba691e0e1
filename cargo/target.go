package cargo

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import (
	"fmt"
	"strings"

	"github.com/ardnew/cargo-instruments/pkg"
)

// Kind is the category of a build target.
type Kind int

const (
	// KindMain is the package's default binary (src/main.rs).
	KindMain Kind = iota // bin
	// KindBin is a named binary.
	KindBin // bin
	// KindExample is a named example.
	KindExample // example
	// KindBench is a named benchmark harness.
	KindBench // bench
	// KindTest is an integration test harness.
	KindTest // test
)

// Target identifies the one build target to profile. The zero value is the
// main binary.
type Target struct {
	kind Kind
	name string
	test string
}

// Main returns the default binary target.
func Main() Target { return Target{kind: KindMain} }

// Bin returns the named binary target.
func Bin(name string) Target { return Target{kind: KindBin, name: name} }

// Example returns the named example target.
func Example(name string) Target { return Target{kind: KindExample, name: name} }

// Bench returns the named benchmark target.
func Bench(name string) Target { return Target{kind: KindBench, name: name} }

// Test returns the test harness target. A non-empty test restricts the
// harness to the tests matching that filter.
func Test(harness, test string) Target {
	return Target{kind: KindTest, name: harness, test: test}
}

// Kind returns the target's category.
func (t Target) Kind() Kind { return t.kind }

// Name returns the target name, or "" for [KindMain].
func (t Target) Name() string { return t.name }

// TestName returns the test filter of a [KindTest] target.
func (t Target) TestName() string { return t.test }

// String returns the target as shown in messages.
func (t Target) String() string {
	switch t.kind {
	case KindBin:
		return "bin/" + t.name + ".rs"
	case KindExample:
		return "examples/" + t.name + ".rs"
	case KindBench:
		return "bench " + t.name
	case KindTest:
		return "test " + t.name + " " + t.test
	default:
		return "src/main.rs"
	}
}

// HarnessArgs returns the arguments a libtest harness needs ahead of the
// user's own arguments: benchmarks run in bench mode, and test harnesses are
// filtered to the selected test.
func (t Target) HarnessArgs() []string {
	switch t.kind {
	case KindBench:
		return []string{"--bench"}
	case KindTest:
		if t.test != "" {
			return []string{t.test}
		}
	}

	return nil
}

// Selectors holds the target selection flags as given by the user.
type Selectors struct {
	Example string
	Bin     string
	Bench   string
	Harness string
	Test    string
}

// Resolve returns the Target named by the selectors.
//
// At most one of Example, Bin, Bench and Harness may be set; several set
// selectors are reported with [pkg.ErrConflictingTargets] rather than picking
// one. The documented order example > bin > bench > harness is only used to
// name the conflicting flags. Test requires Harness. With no selector the
// main binary is returned.
func Resolve(s Selectors) (Target, error) {
	flags := []struct {
		flag, value string
		make        func() Target
	}{
		{"--example", s.Example, func() Target { return Example(s.Example) }},
		{"--bin", s.Bin, func() Target { return Bin(s.Bin) }},
		{"--bench", s.Bench, func() Target { return Bench(s.Bench) }},
		{"--harness", s.Harness, func() Target { return Test(s.Harness, s.Test) }},
	}

	var (
		set    []string
		target = Main()
	)

	for _, f := range flags {
		if f.value == "" {
			continue
		}

		if len(set) == 0 {
			target = f.make()
		}

		set = append(set, f.flag)
	}

	if len(set) > 1 {
		return Target{}, pkg.ErrConflictingTargets.Wrapf("%s", strings.Join(set, ", "))
	}

	if s.Test != "" && target.kind != KindTest {
		return Target{}, pkg.ErrConflictingTargets.Wrapf("--test %q requires --harness", s.Test)
	}

	return target, nil
}

// describe returns the target as named in a missing-target error.
func (t Target) describe() string {
	if t.kind == KindMain {
		return fmt.Sprintf("%s (no bin target)", t)
	}

	return t.String()
}
