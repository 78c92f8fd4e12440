package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// validProviders mirrors the providers registered in internal/ai; kept
// here so config validation does not depend on the AI package.
var validProviders = map[string]bool{
	"gemini":   true,
	"openai":   true,
	"deepseek": true,
}

// Validate checks the loaded configuration for values that would only
// fail later and less clearly.
func Validate(cfg *Configuration) error {
	if !validProviders[cfg.Provider] {
		return fmt.Errorf("invalid provider %q (valid: gemini, openai, deepseek)", cfg.Provider)
	}
	if cfg.TagsLimit < 0 {
		return fmt.Errorf("tags_limit must not be negative, got %d", cfg.TagsLimit)
	}
	if cfg.MaxDiffLines < 0 {
		return fmt.Errorf("max_diff_lines must not be negative, got %d", cfg.MaxDiffLines)
	}
	if cfg.MaxDiffChars < 0 {
		return fmt.Errorf("max_diff_chars must not be negative, got %d", cfg.MaxDiffChars)
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %g", cfg.Temperature)
	}
	if cfg.MaxOutputTokens <= 0 {
		return fmt.Errorf("max_output_tokens must be positive, got %d", cfg.MaxOutputTokens)
	}
	return nil
}

// ValidateYAMLSyntax parses the file as YAML and reports syntax errors
// before koanf merges it, so the user sees the file name and not a
// merge failure.
func ValidateYAMLSyntax(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	return nil
}
