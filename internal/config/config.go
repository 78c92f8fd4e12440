// Package config provides hierarchical configuration management using
// koanf. Configuration is loaded with priority: environment variables >
// project config (.changelog-ai.yml) > user config
// (~/.config/git-changelog-ai/config.yml) > defaults. Legacy JSON
// project configs are still read, with a migration warning.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the environment overrides, e.g.
// CHANGELOG_AI_PROVIDER=openai or CHANGELOG_AI_TAGS_LIMIT=50.
// Provider API keys and the webhook URL keep their own well-known
// variables (GOOGLE_API_KEY, WECOM_WEBHOOK_URL, ...).
const envPrefix = "CHANGELOG_AI_"

// Configuration holds every tunable of the changelog pipeline. It is
// constructed once at process start and passed down; nothing mutates
// it afterward.
type Configuration struct {
	// Provider selects the AI backend: gemini, openai, or deepseek.
	Provider string `koanf:"provider"`

	// IgnorePatterns lists file name globs excluded from diffs,
	// matched against the full path and the basename.
	IgnorePatterns []string `koanf:"ignore_patterns"`

	// IgnoreAuthors lists author identifiers (CI bots and the like)
	// whose commits never reach the changelog.
	IgnoreAuthors []string `koanf:"ignore_authors"`

	// TagsLimit caps how many tags --list shows.
	TagsLimit int `koanf:"tags_limit"`

	// MaxDiffLines caps collected diff text.
	MaxDiffLines int `koanf:"max_diff_lines"`

	// MaxDiffChars caps diff content embedded in the AI prompt.
	MaxDiffChars int `koanf:"max_diff_chars"`

	// Temperature is the sampling temperature for AI requests.
	Temperature float64 `koanf:"temperature"`

	// MaxOutputTokens bounds the AI response length.
	MaxOutputTokens int `koanf:"max_output_tokens"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path
	// (default: .changelog-ai.yml).
	ProjectConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr).
	WarningWriter io.Writer
}

// Load loads configuration from defaults, user config, project config,
// and environment variables, in increasing priority.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := opts.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadUserConfig loads the XDG user config if present.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating user config: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading user config %s: %w", path, err)
	}
	return nil
}

// loadProjectConfig loads the project config (YAML preferred, legacy
// JSON supported with a warning).
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer) error {
	yamlPath := ProjectConfigPath()
	if customPath != "" {
		yamlPath = customPath
	}
	legacyPath := LegacyProjectConfigPath()

	switch {
	case fileExists(yamlPath):
		if err := ValidateYAMLSyntax(yamlPath); err != nil {
			return fmt.Errorf("validating project config: %w", err)
		}
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading project config %s: %w", yamlPath, err)
		}
	case customPath == "" && fileExists(legacyPath):
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("loading legacy project config %s: %w", legacyPath, err)
		}
		fmt.Fprintf(warningWriter, "Warning: using deprecated JSON config at %s\n", legacyPath)
		fmt.Fprintf(warningWriter, "  Rename it to %s in YAML format.\n\n", ProjectConfigPath())
	}
	return nil
}

// envTransform maps CHANGELOG_AI_MAX_DIFF_LINES to max_diff_lines.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
