// Package version carries build-time version information, injected via
// -ldflags by the release pipeline.
package version

import "fmt"

var (
	// Version is the semantic version of the build (e.g. "1.4.0").
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the full version line shown by --version.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
