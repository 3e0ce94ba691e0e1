package cargo

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"

	"github.com/ardnew/cargo-instruments/log"
	"github.com/ardnew/cargo-instruments/pkg"
	"github.com/ardnew/cargo-instruments/pkg/proc"
)

// Options holds the Cargo flags forwarded to every cargo invocation.
type Options struct {
	ManifestPath      string
	Package           string
	Release           bool
	Profile           string
	Features          string
	AllFeatures       bool
	NoDefaultFeatures bool
}

// ProfileName returns the Cargo build profile selected by o.
func (o Options) ProfileName() string {
	switch {
	case o.Profile != "":
		return o.Profile
	case o.Release:
		return "release"
	default:
		return "dev"
	}
}

// FeatureList splits the features flag on spaces and commas, the separators
// Cargo accepts.
func (o Options) FeatureList() []string {
	return strings.FieldsFunc(o.Features, func(r rune) bool {
		return r == ' ' || r == ','
	})
}

// TargetInfo is one build target declared by a package manifest.
type TargetInfo struct {
	Name    string   `json:"name"`
	Kind    []string `json:"kind"`
	SrcPath string   `json:"src_path"`
}

// Is reports whether the target is of kind k.
func (t TargetInfo) Is(k Kind) bool {
	return slices.Contains(t.Kind, k.String())
}

// Package is one workspace member.
type Package struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	ID           string       `json:"id"`
	ManifestPath string       `json:"manifest_path"`
	Targets      []TargetInfo `json:"targets"`
}

// Dir returns the directory containing the package manifest.
func (p Package) Dir() string { return filepath.Dir(p.ManifestPath) }

// Workspace is the subset of "cargo metadata" output used by the profiler.
type Workspace struct {
	Root      string    `json:"workspace_root"`
	TargetDir string    `json:"target_directory"`
	Members   []string  `json:"workspace_members"`
	Packages  []Package `json:"packages"`
}

// ParseMetadata decodes the JSON printed by "cargo metadata".
func ParseMetadata(data []byte) (Workspace, error) {
	var ws Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return Workspace{}, pkg.ErrMetadata.Wrap(err)
	}

	return ws, nil
}

// Metadata runs "cargo metadata" for the manifest selected by opts.
func Metadata(ctx context.Context, sys proc.System, opts Options) (Workspace, error) {
	cmd := proc.Command{
		Name: "cargo",
		Args: []string{"metadata", "--format-version", "1", "--no-deps"},
	}

	if opts.ManifestPath != "" {
		cmd.Args = append(cmd.Args, "--manifest-path", opts.ManifestPath)
	}

	log.DebugContext(ctx, "exec", slog.String("command", cmd.String()))

	out, err := sys.Run(ctx, cmd)
	if err != nil {
		return Workspace{}, pkg.ErrMetadata.Wrap(err)
	}

	if !out.Success() {
		return Workspace{}, pkg.ErrMetadata.Wrapf("%s",
			strings.TrimSpace(string(out.Stderr)))
	}

	return ParseMetadata(out.Stdout)
}

// Package returns the package to build.
//
// A non-empty name selects that package. Otherwise the package whose
// manifest directory most closely contains dir is chosen, falling back to
// the only package of a single-member workspace.
func (w Workspace) Package(name, dir string) (Package, error) {
	if name != "" {
		for _, p := range w.Packages {
			if p.Name == name {
				return p, nil
			}
		}

		return Package{}, pkg.MakeErrorf("package %q not found in workspace %q", name, w.Root)
	}

	best := -1

	for i, p := range w.Packages {
		if !within(dir, p.Dir()) {
			continue
		}

		if best < 0 || len(p.Dir()) > len(w.Packages[best].Dir()) {
			best = i
		}
	}

	switch {
	case best >= 0:
		return w.Packages[best], nil
	case len(w.Packages) == 1:
		return w.Packages[0], nil
	default:
		return Package{}, pkg.ErrAmbiguousPackage
	}
}

// within reports whether path is root or one of its descendants.
func within(path, root string) bool {
	if path == "" || root == "" {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
