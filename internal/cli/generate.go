package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vfe-athena/git-changelog-ai/internal/ai"
	"github.com/vfe-athena/git-changelog-ai/internal/changelog"
	"github.com/vfe-athena/git-changelog-ai/internal/config"
	errs "github.com/vfe-athena/git-changelog-ai/internal/errors"
	"github.com/vfe-athena/git-changelog-ai/internal/git"
	"github.com/vfe-athena/git-changelog-ai/internal/notify"
	"github.com/vfe-athena/git-changelog-ai/internal/output"
	"github.com/vfe-athena/git-changelog-ai/internal/progress"
)

// runGenerate drives the full pipeline: collect commits and diffs,
// classify (keyword or AI), aggregate, render, and deliver.
func runGenerate(cmd *cobra.Command, cfg *config.Configuration, fromRef, toRef string) error {
	out := cmd.OutOrStdout()
	output.PrintStep(out, "📊", "Analyzing changes: %s → %s", fromRef, toRef)

	opts := git.Options{
		IgnorePatterns: cfg.IgnorePatterns,
		IgnoreAuthors:  cfg.IgnoreAuthors,
		MaxDiffLines:   cfg.MaxDiffLines,
	}

	commits, err := git.CommitsBetween("", fromRef, toRef, opts)
	if err != nil {
		return repositoryCLIError(err)
	}

	if len(commits) == 0 {
		doc := &changelog.Document{FromRef: fromRef, ToRef: toRef}
		markdown, rerr := changelog.RenderMarkdownString(doc, changelog.FormatOptions{})
		if rerr != nil {
			return rerr
		}
		return deliver(cmd, markdown)
	}
	output.PrintSuccess(out, "Found %d commits", len(commits))

	diff, err := git.DiffBetween("", fromRef, toRef, opts)
	if err != nil {
		return repositoryCLIError(err)
	}
	if n := len(diff.IgnoredFiles); n > 0 {
		output.PrintStep(out, "📁", "%d file changes (%d files ignored)", len(diff.Files), n)
	} else {
		output.PrintStep(out, "📁", "%d file changes", len(diff.Files))
	}

	batch := ai.Batch{
		FromRef:  fromRef,
		ToRef:    toRef,
		Commits:  commits,
		Diff:     diff.Diff,
		DiffStat: diff.Stat,
	}

	var changes []changelog.ClassifiedChange
	switch {
	case flagDryRun:
		return runDryRun(cmd, cfg, batch, diff.IgnoredFiles)
	case flagAI:
		changes, err = classifyWithAI(cmd, cfg, batch)
		if err != nil {
			return err
		}
	default:
		output.PrintStep(out, "🔍", "Classifying commits...")
		changes = changelog.ClassifyCommits(commits)
	}

	doc, warnings := changelog.BuildDocument(changelog.BuildInput{
		FromRef:   fromRef,
		ToRef:     toRef,
		Commits:   commits,
		Changes:   changes,
		FileCount: len(diff.Files),
		DiffStat:  diff.Stat,
	})
	for _, w := range warnings {
		output.PrintWarning(cmd.ErrOrStderr(), "%s", w)
	}

	markdown, err := changelog.RenderMarkdownString(doc, changelog.FormatOptions{Verbose: flagVerbose})
	if err != nil {
		return err
	}
	return deliver(cmd, markdown)
}

// classifyWithAI sends the batch to the selected provider. Malformed
// responses degrade to keyword classification with a warning; auth and
// transport failures abort the run.
func classifyWithAI(cmd *cobra.Command, cfg *config.Configuration, batch ai.Batch) ([]changelog.ClassifiedChange, error) {
	client, err := newAIClient(cfg)
	if err != nil {
		return nil, err
	}

	output.PrintStep(cmd.OutOrStdout(), "🤖", "Using AI (%s) to analyze code changes...", client.Provider.Name())
	sp := progress.NewSpinner("Waiting for AI response...")
	sp.Start()
	entries, err := client.Generate(context.Background(), batch)
	sp.Stop()

	if err != nil {
		if errors.Is(err, ai.ErrUnparsableResponse) {
			output.PrintWarning(cmd.ErrOrStderr(), "AI response could not be parsed, falling back to keyword classification")
			return changelog.ClassifyCommits(batch.Commits), nil
		}
		var missing *ai.MissingKeyError
		if errors.As(err, &missing) {
			return nil, errs.NewConfigError(missing.Error(),
				fmt.Sprintf("export %s=<your key>", missing.EnvVar),
				"Or run without --ai for keyword classification")
		}
		return nil, errs.WrapWithMessage(err, errs.Provider, "AI analysis failed",
			"Retry later, or run without --ai for keyword classification")
	}

	changes := make([]changelog.ClassifiedChange, 0, len(entries))
	for _, e := range entries {
		cat, ok := changelog.ParseCategory(e.Category)
		if !ok {
			output.PrintWarning(cmd.ErrOrStderr(), "unknown category %q, filing under 其他变更", e.Category)
		}
		changes = append(changes, changelog.ClassifiedChange{
			Hash:     e.Hash,
			Category: cat,
			Summary:  e.Summary,
		})
	}
	return changes, nil
}

// runDryRun prints the collected git data and the request that would
// be sent, without any network call.
func runDryRun(cmd *cobra.Command, cfg *config.Configuration, batch ai.Batch, ignored []string) error {
	out := cmd.OutOrStdout()
	client, err := newAIClient(cfg)
	if err != nil {
		return err
	}

	output.PrintRule(out)
	output.PrintStep(out, "🔍", "DRY-RUN mode: request preview, no AI call")
	output.PrintRule(out)

	fmt.Fprintf(out, "\nCommits (%d):\n", len(batch.Commits))
	for _, c := range batch.Commits {
		fmt.Fprintf(out, "  %s  %s  %s\n", c.ShortHash(), c.Date, c.Message)
	}
	if len(ignored) > 0 {
		fmt.Fprintf(out, "\nExcluded %d files:\n", len(ignored))
		for _, f := range ignored {
			fmt.Fprintf(out, "  × %s\n", f)
		}
	}
	if batch.DiffStat != "" {
		fmt.Fprintf(out, "\nDiff stat:\n%s\n", batch.DiffStat)
	}

	dump, err := client.DryRun(batch)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nRequest to %s:\n%s\n", client.Provider.Name(), dump)

	output.PrintRule(out)
	fmt.Fprintln(out, "[DRY-RUN mode - no content generated]")
	return nil
}

// newAIClient builds the provider client for --ai and --dry-run runs.
// A variable so tests can point the provider at a local server.
var newAIClient = func(cfg *config.Configuration) (*ai.Client, error) {
	params := ai.GenerationParams{
		Temperature:     cfg.Temperature,
		MaxOutputTokens: cfg.MaxOutputTokens,
	}
	client, err := ai.NewClient(cfg.Provider, params, cfg.MaxDiffChars)
	if err != nil {
		return nil, errs.WrapWithMessage(err, errs.Argument, "selecting AI provider",
			fmt.Sprintf("Valid providers: %v", ai.ProviderNames()))
	}
	return client, nil
}

// deliver writes the rendered changelog to the configured destination
// and optionally pushes it to the webhook. Webhook failures are logged
// but never fail a generate run.
func deliver(cmd *cobra.Command, markdown string) error {
	out := cmd.OutOrStdout()

	if flagOutput != "" {
		if err := writeFileAtomic(flagOutput, []byte(markdown)); err != nil {
			return errs.WrapWithMessage(err, errs.Argument, "writing output file",
				"Check that the directory exists and is writable")
		}
		output.PrintSuccess(out, "Changelog written to: %s", flagOutput)
	} else {
		output.PrintRule(out)
		fmt.Fprint(out, markdown)
		output.PrintRule(out)
	}

	if flagWebhook || flagWebhookURL != "" {
		if err := sendWebhook(cmd, markdown); err != nil {
			output.PrintWarning(cmd.ErrOrStderr(), "webhook delivery failed: %v", err)
		} else {
			output.PrintSuccess(out, "Changelog sent to WeChat Work")
		}
	}
	return nil
}

// writeFileAtomic writes data to a temp file in the target directory
// and renames it over path. An interrupted run leaves any existing
// changelog untouched instead of a truncated one.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// sendWebhook resolves the webhook URL (flag over environment) and
// pushes the content, truncating to the WeChat Work message limit.
func sendWebhook(cmd *cobra.Command, markdown string) error {
	url := flagWebhookURL
	if url == "" {
		url = os.Getenv(notify.WebhookURLEnv)
	}
	if url == "" {
		return fmt.Errorf("webhook URL not configured (set %s or pass --webhook-url)", notify.WebhookURLEnv)
	}

	content := notify.Truncate(markdown, notify.MaxMessageBytes)
	if len(content) < len(markdown) {
		output.PrintWarning(cmd.ErrOrStderr(), "content exceeds %d bytes, truncated for webhook", notify.MaxMessageBytes)
	}
	return notify.NewSender(url).Send(content)
}
