package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	errs "github.com/vfe-athena/git-changelog-ai/internal/errors"
	"github.com/vfe-athena/git-changelog-ai/internal/notify"
	"github.com/vfe-athena/git-changelog-ai/internal/output"
)

// runNotify sends an existing changelog to the webhook. Unlike the
// post-generate push, a delivery failure here fails the run.
func runNotify(cmd *cobra.Command) error {
	content, err := readNotifyInput(cmd)
	if err != nil {
		return err
	}
	if len(content) == 0 {
		return errs.NewArgumentError("nothing to send: input is empty",
			"Pass a file with --input, or pipe content on stdin")
	}

	url := flagWebhookURL
	if url == "" {
		url = os.Getenv(notify.WebhookURLEnv)
	}
	if url == "" {
		return errs.NewConfigError("webhook URL not configured",
			"export "+notify.WebhookURLEnv+"=<url>",
			"Or pass --webhook-url")
	}

	out := cmd.OutOrStdout()
	trimmed := notify.Truncate(string(content), notify.MaxMessageBytes)
	if len(trimmed) < len(content) {
		output.PrintWarning(cmd.ErrOrStderr(), "content exceeds %d bytes, truncated for webhook", notify.MaxMessageBytes)
	}

	if err := notify.NewSender(url).Send(trimmed); err != nil {
		return errs.WrapWithMessage(err, errs.Provider, "sending to webhook",
			"Check the webhook URL and network connectivity")
	}
	output.PrintSuccess(out, "Changelog sent to WeChat Work")
	return nil
}

// readNotifyInput loads the changelog from --input, or from stdin when
// piped. An interactive stdin with no --input is an argument error
// rather than a silent hang.
func readNotifyInput(cmd *cobra.Command) ([]byte, error) {
	if flagInput != "" {
		content, err := os.ReadFile(flagInput)
		if err != nil {
			return nil, errs.WrapWithMessage(err, errs.Argument, "reading input file",
				"Check that the file exists and is readable")
		}
		return content, nil
	}

	if output.StdinIsTerminal() {
		return nil, errs.NewArgumentError("no input: --notify needs --input or piped stdin",
			"git-changelog-ai --notify --input CHANGELOG.md",
			"cat CHANGELOG.md | git-changelog-ai --notify")
	}
	return io.ReadAll(cmd.InOrStdin())
}
