package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vfe-athena/git-changelog-ai/internal/config"
	"github.com/vfe-athena/git-changelog-ai/internal/git"
	"github.com/vfe-athena/git-changelog-ai/internal/output"
)

// runList prints available tags, newest first, optionally filtered by
// --date.
func runList(cmd *cobra.Command, cfg *config.Configuration) error {
	out := cmd.OutOrStdout()

	tags, err := git.ListTags("", flagDate, cfg.TagsLimit)
	if err != nil {
		return repositoryCLIError(err)
	}

	if len(tags) == 0 {
		if flagDate != "" {
			output.PrintWarning(out, "no tags match date filter %q", flagDate)
		} else {
			output.PrintWarning(out, "no tags found in this repository")
		}
		return nil
	}

	if flagDate != "" {
		output.PrintStep(out, "🏷️", "Tags matching %q (%d):", flagDate, len(tags))
	} else {
		output.PrintStep(out, "🏷️", "Recent tags (%d):", len(tags))
	}
	for _, t := range tags {
		fmt.Fprintf(out, "  %-40s %s\n", t.Name, t.Date)
	}
	return nil
}
