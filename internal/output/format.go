// Package output provides terminal output formatting utilities for the
// CLI. This package is designed to have minimal dependencies to avoid
// import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// StdinIsTerminal reports whether stdin is attached to a terminal.
// Notify mode uses this to refuse waiting on an interactive stdin.
func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// PrintStep prints a pipeline progress line (e.g. "📊 Analyzing ...").
func PrintStep(out io.Writer, emoji, format string, args ...any) {
	fmt.Fprintf(out, "%s %s\n", emoji, fmt.Sprintf(format, args...))
}

// PrintSuccess prints a green success line.
func PrintSuccess(out io.Writer, format string, args ...any) {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✅"), fmt.Sprintf(format, args...))
}

// PrintWarning prints a yellow warning line.
func PrintWarning(out io.Writer, format string, args ...any) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(out, "%s\n", yellow("⚠️ "+fmt.Sprintf(format, args...)))
}

// PrintFailure prints a red failure line.
func PrintFailure(out io.Writer, format string, args ...any) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(out, "%s\n", red("❌ "+fmt.Sprintf(format, args...)))
}

// PrintRule prints a full-width horizontal rule used to frame the
// rendered changelog on stdout.
func PrintRule(out io.Writer) {
	width := GetTerminalWidth()
	if width > 80 {
		width = 80
	}
	fmt.Fprintln(out, strings.Repeat("=", width))
}
