// Package cli wires the changelog pipeline to its cobra command
// surface: flag parsing, mode dispatch (generate / list / notify), and
// user-facing error reporting.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vfe-athena/git-changelog-ai/internal/ai"
	"github.com/vfe-athena/git-changelog-ai/internal/config"
	errs "github.com/vfe-athena/git-changelog-ai/internal/errors"
	"github.com/vfe-athena/git-changelog-ai/internal/git"
	"github.com/vfe-athena/git-changelog-ai/internal/notify"
	"github.com/vfe-athena/git-changelog-ai/internal/output"
	"github.com/vfe-athena/git-changelog-ai/internal/version"
)

var (
	flagConfig     string
	flagDebug      bool
	flagList       bool
	flagDate       string
	flagLimit      int
	flagRecent     int
	flagOutput     string
	flagVerbose    bool
	flagAI         bool
	flagProvider   string
	flagDryRun     bool
	flagWebhook    bool
	flagWebhookURL string
	flagNotify     bool
	flagInput      string
)

var rootCmd = &cobra.Command{
	Use:   "git-changelog-ai [from_ref] [to_ref]",
	Short: "AI-powered Git changelog generator",
	Long: `AI-powered Git changelog generator - analyze Git changes between two
references and generate release notes, either with static keyword
classification or by delegating summarization to a hosted LLM.`,
	Example: `  # List available tags
  git-changelog-ai --list
  git-changelog-ai --list --date 2025-01

  # Basic mode (keyword-based classification)
  git-changelog-ai --recent 2

  # AI-powered mode
  git-changelog-ai --recent 2 --ai
  git-changelog-ai v1.0.0 v1.1.0 --ai --provider openai

  # Debug mode: show the data and prompt without calling the AI
  git-changelog-ai --recent 2 --dry-run

  # Output to file and push to WeChat Work
  git-changelog-ai --recent 2 --ai --output CHANGELOG.md --webhook

  # Send an existing changelog to the webhook
  git-changelog-ai --notify --input CHANGELOG.md
  cat CHANGELOG.md | git-changelog-ai --notify`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version.String(),
	RunE:          runRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to project config file (default .changelog-ai.yml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.Flags().BoolVarP(&flagList, "list", "l", false, "List available tags")
	rootCmd.Flags().StringVarP(&flagDate, "date", "d", "", "Filter tags by date (YYYY-MM-DD or partial)")
	rootCmd.Flags().IntVar(&flagLimit, "limit", 0, "Limit number of tags to list (default from config)")
	rootCmd.Flags().IntVarP(&flagRecent, "recent", "r", 0, "Compare the N most recent tags")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default stdout)")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Show detailed info (include commit hashes)")
	rootCmd.Flags().BoolVar(&flagAI, "ai", false, "Enable AI-powered analysis mode")
	rootCmd.Flags().StringVar(&flagProvider, "provider", "", fmt.Sprintf("AI provider %v (default %s)", ai.ProviderNames(), ai.DefaultProvider))
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Show git data and AI prompt without calling the AI API")
	rootCmd.Flags().BoolVar(&flagWebhook, "webhook", false, "Send the changelog to the WeChat Work webhook")
	rootCmd.Flags().StringVar(&flagWebhookURL, "webhook-url", "", "Webhook URL (overrides "+notify.WebhookURLEnv+")")
	rootCmd.Flags().BoolVar(&flagNotify, "notify", false, "Send an existing changelog to the webhook without generating")
	rootCmd.Flags().StringVarP(&flagInput, "input", "i", "", "Input file for --notify mode (stdin when omitted)")
}

// Execute runs the root command and reports errors to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	if cliErr := errs.AsCLIError(err); cliErr != nil {
		errs.PrintError(cliErr)
	} else {
		output.PrintFailure(os.Stderr, "%v", err)
	}
	return err
}

func runRoot(cmd *cobra.Command, args []string) error {
	if flagDebug {
		git.SetDebugLogger(func(format string, a ...any) {
			fmt.Fprintf(cmd.ErrOrStderr(), "[DEBUG] "+format+"\n", a...)
		})
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return errs.WrapWithMessage(err, errs.Configuration, "loading configuration",
			"Check the syntax of .changelog-ai.yml",
			"Unset CHANGELOG_AI_* variables that carry invalid values")
	}
	if flagProvider != "" {
		cfg.Provider = flagProvider
		if err := config.Validate(cfg); err != nil {
			return errs.WrapWithMessage(err, errs.Argument, "invalid --provider")
		}
	}
	if flagLimit > 0 {
		cfg.TagsLimit = flagLimit
	}

	// Notify mode needs no repository at all.
	if flagNotify {
		return runNotify(cmd)
	}

	if !git.IsRepository("") {
		return errs.NewRepositoryError("current directory is not a Git repository",
			"Run this command from inside a git repository")
	}

	if flagList {
		return runList(cmd, cfg)
	}

	fromRef, toRef, err := resolveRange(cmd, args)
	if err != nil || fromRef == "" {
		return err
	}

	return runGenerate(cmd, cfg, fromRef, toRef)
}

// resolveRange determines the references to compare from --recent or
// the positional arguments. Returns empty refs (and nil error) when
// neither is given, after printing help.
func resolveRange(cmd *cobra.Command, args []string) (string, string, error) {
	if flagRecent > 0 {
		tags, err := git.ListTags("", "", 0)
		if err != nil {
			return "", "", repositoryCLIError(err)
		}
		if len(tags) < flagRecent {
			return "", "", errs.NewArgumentError(
				fmt.Sprintf("only %d tags available, cannot compare recent %d", len(tags), flagRecent),
				"Use --list to see available tags")
		}
		fromRef, toRef := tags[flagRecent-1].Name, tags[0].Name
		output.PrintStep(cmd.OutOrStdout(), "📌", "Selected Tags: %s → %s", fromRef, toRef)
		return fromRef, toRef, nil
	}

	if len(args) == 1 {
		return "", "", errs.NewArgumentError(
			"both from_ref and to_ref are required",
			"Pass two references: git-changelog-ai v1.0.0 v1.1.0",
			"Or compare recent tags: git-changelog-ai --recent 2")
	}

	if len(args) == 2 {
		for _, ref := range args {
			if !git.RefExists("", ref) {
				return "", "", errs.NewRepositoryError(
					fmt.Sprintf("reference %q not found", ref),
					"Use --list to see available tags")
			}
		}
		return args[0], args[1], nil
	}

	_ = cmd.Help()
	fmt.Fprintln(cmd.OutOrStdout(), "\n💡 Quick Start:")
	fmt.Fprintln(cmd.OutOrStdout(), "   git-changelog-ai --list")
	fmt.Fprintln(cmd.OutOrStdout(), "   git-changelog-ai --recent 2 --ai")
	return "", "", nil
}

// repositoryCLIError converts a git-layer error to a user-facing
// CLIError with remediation.
func repositoryCLIError(err error) *errs.CLIError {
	return errs.WrapWithMessage(err, errs.Repository, "reading repository",
		"Run this command from inside a git repository")
}
