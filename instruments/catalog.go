package instruments

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ardnew/cargo-instruments/log"
	"github.com/ardnew/cargo-instruments/pkg"
	"github.com/ardnew/cargo-instruments/pkg/proc"
)

// Catalog lists the recording templates known to the installed tool, in the
// order the tool reported them.
type Catalog struct {
	// Standard holds the templates shipped with Instruments. It is never
	// empty in a catalog returned without error.
	Standard []string `json:"standard" yaml:"standard"`
	// Custom holds user-authored templates.
	Custom []string `json:"custom" yaml:"custom"`
}

// Names returns the standard templates followed by the custom ones.
func (c Catalog) Names() []string {
	return slices.Concat(c.Standard, c.Custom)
}

// Contains reports whether name is a standard or custom template.
func (c Catalog) Contains(name string) bool {
	return slices.Contains(c.Standard, name) || slices.Contains(c.Custom, name)
}

// ListTemplates runs the tool's template listing and parses its output.
func ListTemplates(ctx context.Context, sys proc.System, tool Tool) (Catalog, error) {
	var cmd proc.Command

	switch tool {
	case ToolXcTrace:
		cmd = proc.Command{Name: "xcrun", Args: []string{"xctrace", "list", "templates"}}
	case ToolInstruments:
		cmd = proc.Command{Name: "instruments", Args: []string{"-s", "templates"}}
	default:
		return Catalog{}, pkg.ErrNotInstalled
	}

	log.DebugContext(ctx, "listing templates", slog.String("command", cmd.String()))

	out, err := sys.Run(ctx, cmd)
	if err != nil {
		return Catalog{}, pkg.ErrListTemplates.Wrap(err)
	}

	if !out.Success() {
		return Catalog{}, pkg.ErrListTemplates.Wrapf("%s exited with status %d",
			cmd.Name, out.ExitCode)
	}

	switch tool {
	case ToolXcTrace:
		return ParseXcTrace(out.Stdout, out.Stderr)
	case ToolInstruments:
		return ParseInstruments(out.Stdout)
	default:
		return Catalog{}, pkg.ErrNotInstalled
	}
}

func lines(b []byte) []string {
	var ls []string

	sc := bufio.NewScanner(bytes.NewReader(b))
	sc.Buffer(make([]byte, 0, 4096), 1<<20)

	for sc.Scan() {
		ls = append(ls, sc.Text())
	}

	return ls
}

// ParseXcTrace parses the output of "xctrace list templates":
//
//	== Standard Templates ==
//	Activity Monitor
//	Allocations
//	...
//
//	== Custom Templates ==
//	MyTemplate
//
// Older xctrace releases print the listing on stderr, newer ones on stdout;
// stdout is used unless it is empty.
func ParseXcTrace(stdout, stderr []byte) (Catalog, error) {
	output := stdout
	if len(output) == 0 {
		output = stderr
	}

	ls := lines(output)
	if len(ls) > 0 {
		ls = ls[1:] // section header
	}

	var c Catalog

	i := 0
	for ; i < len(ls); i++ {
		line := strings.TrimSpace(ls[i])
		if line == "" || strings.HasPrefix(line, "=") {
			break
		}

		c.Standard = append(c.Standard, line)
	}

	if len(c.Standard) == 0 {
		return Catalog{}, pkg.ErrNoTemplates
	}

	// Skip the separator and the custom section header.
	for ; i < len(ls); i++ {
		line := strings.TrimSpace(ls[i])
		if line != "" && !strings.HasPrefix(line, "=") {
			break
		}
	}

	for ; i < len(ls); i++ {
		if line := strings.TrimSpace(ls[i]); line != "" {
			c.Custom = append(c.Custom, line)
		}
	}

	return c, nil
}

// userTemplatePrefix starts every custom template path printed by the legacy
// tool.
const userTemplatePrefix = "~/Library/"

// ParseInstruments parses the output of "instruments -s templates":
//
//	Known Templates:
//	"Activity Monitor"
//	"Allocations"
//	...
//	"~/Library/Application Support/Instruments/Templates/MyTemplate.tracetemplate"
//
// Custom templates are named by their file name without extension.
func ParseInstruments(stdout []byte) (Catalog, error) {
	ls := lines(stdout)
	if len(ls) > 0 {
		ls = ls[1:] // "Known Templates:"
	}

	unquote := func(s string) string {
		return strings.Trim(strings.TrimSpace(s), `"`)
	}

	var c Catalog

	i := 0
	for ; i < len(ls); i++ {
		line := unquote(ls[i])
		if strings.HasPrefix(line, userTemplatePrefix) {
			break
		}

		if line != "" {
			c.Standard = append(c.Standard, line)
		}
	}

	if len(c.Standard) == 0 {
		return Catalog{}, pkg.ErrNoTemplates
	}

	for ; i < len(ls); i++ {
		line := unquote(ls[i])
		if line == "" {
			break
		}

		base := filepath.Base(line)
		c.Custom = append(c.Custom, strings.TrimSuffix(base, filepath.Ext(base)))
	}

	return c, nil
}

// aliases maps the short names accepted by --template to full template
// names.
var aliases = []struct{ abbrev, name string }{
	{"time", "Time Profiler"},
	{"alloc", "Allocations"},
	{"io", "File Activity"},
	{"sys", "System Trace"},
}

// ResolveAlias returns the full template name for a known abbreviation.
// Any other string is returned unchanged, so full names (including custom
// templates) can be given directly.
func ResolveAlias(name string) string {
	for _, a := range aliases {
		if a.abbrev == name {
			return a.name
		}
	}

	return name
}

// Abbrev returns the abbreviation of a template name, if it has one.
func Abbrev(name string) (string, bool) {
	for _, a := range aliases {
		if a.name == name {
			return a.abbrev, true
		}
	}

	return "", false
}

// Render formats the catalog as a two-column listing of template names and
// their abbreviations:
//
//	Xcode Instruments templates:
//
//	built-in            abbrev
//	--------------------------
//	Activity Monitor
//	Allocations         (alloc)
//	...
//
//	custom
//	--------------------------
//	MyTemplate
func Render(c Catalog) string {
	width := 0
	for _, name := range c.Names() {
		width = max(width, len(name))
	}

	rule := strings.Repeat("-", width+8)

	var sb strings.Builder

	sb.WriteString("Xcode Instruments templates:\n")

	fmt.Fprintf(&sb, "\n%-*sabbrev", width+2, "built-in")
	sb.WriteString("\n" + rule)

	for _, name := range c.Standard {
		sb.WriteByte('\n')

		if abbrev, ok := Abbrev(strings.Trim(name, `"`)); ok {
			fmt.Fprintf(&sb, "%-*s(%s)", width+2, name, abbrev)
		} else {
			sb.WriteString(name)
		}
	}

	sb.WriteByte('\n')

	fmt.Fprintf(&sb, "\n%-*s", width+2, "custom")
	sb.WriteString("\n" + rule)

	for _, name := range c.Custom {
		sb.WriteByte('\n')
		sb.WriteString(name)
	}

	sb.WriteByte('\n')

	return sb.String()
}
