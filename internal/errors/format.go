package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	headline = color.New(color.FgRed, color.Bold)
	label    = color.New(color.FgYellow)
	fixTitle = color.New(color.FgGreen, color.Bold)
	bullet   = color.New(color.FgGreen)
	usage    = color.New(color.FgCyan)
)

// FormatError renders a CLIError for the terminal: a headline carrying
// the category, then the optional usage line and remediation steps.
// fatih/color disables itself on non-TTY output, so piped runs get
// plain text without a separate code path.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]: %s\n",
		headline.Sprint("Error"),
		label.Sprint(err.Category.String()),
		err.Message)

	if err.Usage != "" {
		fmt.Fprintf(&b, "\n%s\n", usage.Sprintf("Usage: %s", err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&b, "\n%s\n", fixTitle.Sprint("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&b, "  %s %s\n", bullet.Sprint("•"), step)
		}
	}
	return b.String()
}

// PrintError writes a formatted CLIError to stderr.
func PrintError(err *CLIError) {
	FprintError(os.Stderr, err)
}

// FprintError writes a formatted CLIError to w.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	io.WriteString(w, FormatError(err))
}
