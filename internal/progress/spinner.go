package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner wraps the terminal spinner shown during the blocking AI
// request. On non-TTY output it prints the message once and animates
// nothing, so piped runs stay clean.
type Spinner struct {
	s       *spinner.Spinner
	message string
	enabled bool
}

// NewSpinner creates a spinner with the given message. The spinner is
// disabled when stdout is not a terminal.
func NewSpinner(message string) *Spinner {
	caps := DetectTerminalCapabilities()
	if !caps.IsTTY {
		return &Spinner{message: message, enabled: false}
	}

	s := spinner.New(spinner.CharSets[spinnerCharset(caps)], 100*time.Millisecond)
	s.Suffix = " " + message
	return &Spinner{s: s, message: message, enabled: true}
}

// Start begins the animation, or prints the message once when disabled.
func (sp *Spinner) Start() {
	if !sp.enabled {
		fmt.Fprintln(os.Stdout, sp.message)
		return
	}
	sp.s.Start()
}

// Stop ends the animation. Safe to call when disabled or already stopped.
func (sp *Spinner) Stop() {
	if !sp.enabled {
		return
	}
	sp.s.Stop()
}
