package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathFilter(t *testing.T) {
	patterns := []string{"CHANGELOG*.md", "package-lock.json", "yarn.lock", "pnpm-lock.yaml"}
	filter := NewPathFilter(patterns)

	tests := map[string]struct {
		path string
		want bool
	}{
		"exact name":              {path: "package-lock.json", want: true},
		"nested lockfile":         {path: "packages/app/package-lock.json", want: true},
		"glob on changelog":       {path: "CHANGELOG.md", want: true},
		"glob variant":            {path: "CHANGELOG-2025.md", want: true},
		"nested changelog":        {path: "docs/CHANGELOG.md", want: true},
		"yarn lock":               {path: "yarn.lock", want: true},
		"source file passes":      {path: "src/main.js", want: false},
		"similar name passes":     {path: "package.json", want: false},
		"changelog source passes": {path: "src/changelog.go", want: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, filter.Ignored(tc.path))
		})
	}
}

func TestPathFilterNil(t *testing.T) {
	var filter *PathFilter
	assert.False(t, filter.Ignored("anything"))
	assert.False(t, NewPathFilter(nil).Ignored("anything"))
}

func TestAuthorFilter(t *testing.T) {
	filter := NewAuthorFilter([]string{"vfe_athena", "release-bot@example.com"})

	tests := map[string]struct {
		author string
		email  string
		want   bool
	}{
		"name match":             {author: "vfe_athena", email: "x@example.com", want: true},
		"name case insensitive":  {author: "VFE_Athena", email: "x@example.com", want: true},
		"full email match":       {author: "Bot", email: "release-bot@example.com", want: true},
		"email local part match": {author: "CI", email: "vfe_athena@ci.example.com", want: true},
		"regular author passes":  {author: "Dev", email: "dev@example.com", want: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, filter.Ignored(tc.author, tc.email))
		})
	}
}

func TestAuthorFilterNil(t *testing.T) {
	var filter *AuthorFilter
	assert.False(t, filter.Ignored("anyone", "any@example.com"))
}
