package cargo

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/ardnew/cargo-instruments/pkg"
	"github.com/ardnew/cargo-instruments/pkg/proc"
)

const messages = `{"reason":"compiler-artifact","package_id":"dep 0.1.0","target":{"kind":["lib"],"name":"dep"},"profile":{"test":false},"filenames":["/t/release/deps/libdep.rlib"],"executable":null,"fresh":true}
{"reason":"compiler-message","package_id":"tries 0.2.0","message":{"rendered":"warning: unused"}}
{"reason":"compiler-artifact","package_id":"tries 0.2.0","target":{"kind":["bin"],"name":"tries"},"profile":{"test":false},"executable":"/t/release/tries","fresh":false}
{"reason":"compiler-artifact","package_id":"tries 0.2.0","target":{"kind":["bench"],"name":"speed"},"profile":{"test":true},"executable":"/t/release/deps/speed-0a1b2c","fresh":false}
not json
{"reason":"build-finished","success":true}
`

func TestParseMessages(t *testing.T) {
	r := ParseMessages([]byte(messages))

	if !slices.Equal(r.Binaries, []string{"/t/release/tries"}) {
		t.Errorf("Binaries = %q", r.Binaries)
	}

	want := []TestOutput{{Target: "speed", Path: "/t/release/deps/speed-0a1b2c"}}
	if !slices.Equal(r.Tests, want) {
		t.Errorf("Tests = %+v, want %+v", r.Tests, want)
	}

	if empty := ParseMessages(nil); len(empty.Binaries)+len(empty.Tests) != 0 {
		t.Errorf("ParseMessages(nil) = %+v", empty)
	}
}

func TestBuildCommand(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		target Target
		want   []string
	}{
		{
			name:   "main_dev",
			target: Main(),
			want:   []string{"build", "--message-format=json-render-diagnostics"},
		},
		{
			name:   "bin_release",
			opts:   Options{Release: true, Package: "tries"},
			target: Bin("tries"),
			want: []string{
				"build", "--message-format=json-render-diagnostics",
				"--package", "tries", "--release", "--bin", "tries",
			},
		},
		{
			name: "bench_profile_features",
			opts: Options{
				ManifestPath: "/w/Cargo.toml",
				Profile:      "profiling",
				Features:     "simd jemalloc",
				AllFeatures:  true,
			},
			target: Bench("speed"),
			want: []string{
				"build", "--message-format=json-render-diagnostics",
				"--manifest-path", "/w/Cargo.toml", "--profile", "profiling",
				"--features", "simd,jemalloc", "--all-features", "--bench", "speed",
			},
		},
		{
			name:   "example_no_default",
			opts:   Options{NoDefaultFeatures: true},
			target: Example("demo"),
			want: []string{
				"build", "--message-format=json-render-diagnostics",
				"--no-default-features", "--example", "demo",
			},
		},
		{
			name:   "test_harness",
			target: Test("integration", "roundtrip"),
			want: []string{
				"build", "--message-format=json-render-diagnostics",
				"--test", "integration",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildCommand(tt.opts, tt.target)

			if got.Name != "cargo" || !slices.Equal(got.Args, tt.want) {
				t.Errorf("BuildCommand() = %s\nwant args %q", got, tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	cmd := BuildCommand(Options{}, Main())

	sys := &fakeSystem{outputs: map[string]proc.Output{
		cmd.String(): {Stdout: []byte(messages)},
	}}

	var stderr bytes.Buffer

	r, err := Build(t.Context(), sys, Options{}, Main(), &stderr)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(r.Binaries) != 1 {
		t.Errorf("Binaries = %q", r.Binaries)
	}

	if len(sys.ran) != 1 || sys.ran[0].Stderr != &stderr {
		t.Error("Build() did not forward stderr")
	}

	_, err = Build(t.Context(), sys, Options{Release: true}, Main(), &stderr)
	if !errors.Is(err, pkg.ErrBuild) {
		t.Errorf("Build() error = %v, want ErrBuild", err)
	}
}
