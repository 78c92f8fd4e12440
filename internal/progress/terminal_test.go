package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectTerminalCapabilitiesNonTTY(t *testing.T) {
	// Test binaries run with a piped stdout, so every capability that
	// requires a TTY must come back false.
	caps := DetectTerminalCapabilities()
	assert.False(t, caps.IsTTY)
	assert.False(t, caps.SupportsColor)
	assert.False(t, caps.SupportsUnicode)
	assert.Zero(t, caps.Width)
}

func TestSpinnerCharset(t *testing.T) {
	assert.Equal(t, 14, spinnerCharset(TerminalCapabilities{SupportsUnicode: true}))
	assert.Equal(t, 9, spinnerCharset(TerminalCapabilities{SupportsUnicode: false}))
}

func TestSpinnerDisabledOnNonTTY(t *testing.T) {
	sp := NewSpinner("waiting...")
	assert.False(t, sp.enabled)

	// Start and Stop must be safe without an underlying spinner.
	sp.Start()
	sp.Stop()
	sp.Stop()
}
