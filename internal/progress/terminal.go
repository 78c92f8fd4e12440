// Package progress shows a spinner while the pipeline blocks on the AI
// provider call, degrading to plain text on dumb terminals and to
// nothing when stdout is not a TTY.
package progress

import (
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the attached terminal supports.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// DetectTerminalCapabilities detects terminal features.
// Checks: stdout isatty, NO_COLOR env, CHANGELOG_AI_ASCII env, width.
func DetectTerminalCapabilities() TerminalCapabilities {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("CHANGELOG_AI_ASCII") == "1"

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}

// spinnerCharset selects the spinner animation for the capabilities:
// braille dots on Unicode terminals, |/-\ otherwise.
func spinnerCharset(caps TerminalCapabilities) int {
	if caps.SupportsUnicode {
		return 14
	}
	return 9
}
