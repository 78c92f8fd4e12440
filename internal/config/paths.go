package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the XDG-compliant user config path
// (~/.config/git-changelog-ai/config.yml, or $XDG_CONFIG_HOME when set).
func UserConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "git-changelog-ai", "config.yml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "git-changelog-ai", "config.yml"), nil
}

// ProjectConfigPath returns the project-level config path, resolved
// relative to the current working directory.
func ProjectConfigPath() string {
	return ".changelog-ai.yml"
}

// LegacyProjectConfigPath returns the deprecated JSON project config
// path, still read for backward compatibility.
func LegacyProjectConfigPath() string {
	return ".changelog-ai.json"
}
