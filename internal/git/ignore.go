package git

import (
	"path/filepath"
	"strings"
)

// PathFilter excludes files from diffs by exact name or glob pattern.
// Patterns are matched against both the full path and the basename,
// so "package-lock.json" matches at any depth and "CHANGELOG*.md"
// matches generated changelog variants.
type PathFilter struct {
	patterns []string
}

// NewPathFilter builds a filter from the configured ignore patterns.
func NewPathFilter(patterns []string) *PathFilter {
	return &PathFilter{patterns: patterns}
}

// Ignored reports whether the given path matches any ignore pattern.
func (f *PathFilter) Ignored(path string) bool {
	if f == nil {
		return false
	}
	base := filepath.Base(path)
	for _, pattern := range f.patterns {
		if ok, err := filepath.Match(pattern, path); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

// AuthorFilter excludes commits by configured author identifiers
// (typically CI bots). An identifier matches the author name, the full
// email address, or the local part of the email.
type AuthorFilter struct {
	idents []string
}

// NewAuthorFilter builds a filter from the configured ignored authors.
func NewAuthorFilter(idents []string) *AuthorFilter {
	return &AuthorFilter{idents: idents}
}

// Ignored reports whether a commit author matches an ignored identifier.
func (f *AuthorFilter) Ignored(name, email string) bool {
	if f == nil {
		return false
	}
	local := email
	if i := strings.IndexByte(email, '@'); i >= 0 {
		local = email[:i]
	}
	for _, id := range f.idents {
		if strings.EqualFold(id, name) || strings.EqualFold(id, email) || strings.EqualFold(id, local) {
			return true
		}
	}
	return false
}
