package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// statusWidth is the column Cargo right-aligns its status verbs to.
const statusWidth = 12

// status prints a Cargo-style progress line such as
//
//	   Profiling target/release/app with template 'Time Profiler'
//
// The verb is bold green when w is a color terminal.
func status(w io.Writer, verb, format string, args ...any) {
	style := lipgloss.NewRenderer(w).NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("2")).
		Width(statusWidth).
		Align(lipgloss.Right)

	fmt.Fprintf(w, "%s %s\n", style.Render(verb), fmt.Sprintf(format, args...))
}
