package main

import (
	"os"

	"github.com/vfe-athena/git-changelog-ai/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
