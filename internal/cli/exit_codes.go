package cli

import (
	errs "github.com/vfe-athena/git-changelog-ai/internal/errors"
)

// Exit codes returned by the binary.
const (
	ExitSuccess       = 0
	ExitFailure       = 1
	ExitConfiguration = 2
	ExitArgument      = 3
)

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if cliErr := errs.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case errs.Argument:
			return ExitArgument
		case errs.Configuration:
			return ExitConfiguration
		}
	}
	return ExitFailure
}
