package config

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"provider": "gemini",
		// ignore_patterns: files excluded from diffs, .gitignore style.
		// Lockfiles and generated changelogs carry no reviewable signal.
		"ignore_patterns": []string{
			"CHANGELOG.md",
			"CHANGELOG*.md",
			"package-lock.json",
			"yarn.lock",
			"pnpm-lock.yaml",
		},
		// ignore_authors: CI bots whose commits are pure housekeeping.
		"ignore_authors": []string{
			"vfe_athena",
		},
		"tags_limit":     20,
		"max_diff_lines": 3000,
		// max_diff_chars bounds the AI prompt payload.
		"max_diff_chars":    50000,
		"temperature":       0.3,
		"max_output_tokens": 4000,
	}
}
