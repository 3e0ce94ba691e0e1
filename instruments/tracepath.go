package instruments

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ardnew/cargo-instruments/pkg"
)

// TraceDir is the directory, relative to the workspace root, that receives
// generated trace files.
var TraceDir = filepath.Join("target", "instruments")

// traceDirMode is the permission mode of a created TraceDir.
const traceDirMode fs.FileMode = 0o755

// Planner computes where a trace file is written.
type Planner struct {
	Now      func() time.Time
	MkdirAll func(path string, perm fs.FileMode) error
}

// DefaultPlanner returns a Planner using the wall clock and the real
// filesystem.
func DefaultPlanner() Planner {
	return Planner{Now: time.Now, MkdirAll: os.MkdirAll}
}

// Plan returns the trace file path for a recording of artifact with the
// given template.
//
// A non-empty explicit path is returned verbatim without touching the
// filesystem; Instruments appends a new run when that file already exists.
// Otherwise TraceDir is created under root if needed and a name is derived
// from the artifact, the template and the current time (see
// [TraceFileName]).
func (p Planner) Plan(artifact, template, explicit, root string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	dir := filepath.Join(root, TraceDir)

	// MkdirAll treats an existing directory as success, which also covers
	// concurrent runs creating it at the same time.
	if err := p.MkdirAll(dir, traceDirMode); err != nil {
		return "", fmt.Errorf("failed to create %q: %w", dir, err)
	}

	name, err := TraceFileName(artifact, template, p.Now())
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, name), nil
}

// traceTimeLayout formats the date and whole seconds of a trace file name;
// milliseconds are appended separately because time layouts only accept a
// fractional second after "." or ",".
const traceTimeLayout = "2006-01-02_150405"

// TraceFileName returns "{stem}_{template}_{timestamp}.trace", where stem is
// the artifact file name without extension, spaces in the template are
// replaced with dashes, and timestamp is the local time formatted as
// "YYYY-MM-DD_HHMMSS-mmm".
//
// Two recordings of the same artifact and template started within the same
// millisecond get the same name.
func TraceFileName(artifact, template string, now time.Time) (string, error) {
	base := filepath.Base(artifact)

	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		return "", pkg.MakeErrorf("invalid target path %q", artifact)
	}

	stamp := fmt.Sprintf("%s-%03d",
		now.Format(traceTimeLayout), now.Nanosecond()/int(time.Millisecond))

	return fmt.Sprintf("%s_%s_%s.trace",
		stem, strings.ReplaceAll(template, " ", "-"), stamp), nil
}
