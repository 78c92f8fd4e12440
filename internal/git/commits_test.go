package git

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitsBetween(t *testing.T) {
	r := newTestRepo(t)
	h1 := r.commit("feat: initial", map[string]string{"main.js": "console.log(1)\n"})
	r.commit("fix: crash on load", map[string]string{"main.js": "console.log(2)\n"})
	h3 := r.commit("docs: update readme", map[string]string{"README.md": "# app\n"})
	r.tag("v1.0.0", h1)
	r.tag("v1.1.0", h3)

	records, err := CommitsBetween(r.dir, "v1.0.0", "v1.1.0", Options{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Oldest first.
	assert.Equal(t, "fix: crash on load", records[0].Message)
	assert.Equal(t, "docs: update readme", records[1].Message)

	assert.Equal(t, "Dev", records[0].Author)
	assert.Equal(t, "dev@example.com", records[0].Email)
	assert.Equal(t, "2025-01-10", records[0].Date)
	assert.Equal(t, []string{"main.js"}, records[0].Files)
	assert.Contains(t, records[0].Diff, "console.log(2)")
	assert.Equal(t, []string{"README.md"}, records[1].Files)
}

func TestCommitsBetweenEmptyRange(t *testing.T) {
	r := newTestRepo(t)
	h1 := r.commit("feat: initial", map[string]string{"main.js": "1\n"})
	r.tag("v1.0.0", h1)

	records, err := CommitsBetween(r.dir, "v1.0.0", "v1.0.0", Options{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCommitsBetweenIgnoredAuthor(t *testing.T) {
	r := newTestRepo(t)
	h1 := r.commit("feat: initial", map[string]string{"main.js": "1\n"})
	r.commitAs("vfe_athena", "vfe_athena@ci.example.com", "chore: ci build", map[string]string{"build.txt": "ok\n"})
	h3 := r.commit("fix: real work", map[string]string{"main.js": "2\n"})
	r.tag("v1.0.0", h1)
	r.tag("v1.1.0", h3)

	records, err := CommitsBetween(r.dir, "v1.0.0", "v1.1.0", Options{
		IgnoreAuthors: []string{"vfe_athena"},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "fix: real work", records[0].Message)
}

func TestCommitsBetweenIgnoredFilesOnly(t *testing.T) {
	r := newTestRepo(t)
	h1 := r.commit("feat: initial", map[string]string{"main.js": "1\n"})
	r.commit("chore: lockfile churn", map[string]string{"package-lock.json": "{}\n"})
	h3 := r.commit("fix: real work", map[string]string{"main.js": "2\n"})
	r.tag("v1.0.0", h1)
	r.tag("v1.1.0", h3)

	records, err := CommitsBetween(r.dir, "v1.0.0", "v1.1.0", Options{
		IgnorePatterns: []string{"package-lock.json"},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "fix: real work", records[0].Message)
}

func TestCommitsBetweenMultilineMessage(t *testing.T) {
	r := newTestRepo(t)
	h1 := r.commit("feat: initial", map[string]string{"main.js": "1\n"})
	h2 := r.commit("fix: subject line\n\nlong body explaining the fix\n", map[string]string{"main.js": "2\n"})
	r.tag("v1.0.0", h1)
	r.tag("v1.1.0", h2)

	records, err := CommitsBetween(r.dir, "v1.0.0", "v1.1.0", Options{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "fix: subject line", records[0].Message)
}

func TestCommitsBetweenDiffTruncation(t *testing.T) {
	r := newTestRepo(t)
	h1 := r.commit("feat: initial", map[string]string{"main.js": "1\n"})
	h2 := r.commit("feat: big change", map[string]string{"big.txt": strings.Repeat("line\n", 200)})
	r.tag("v1.0.0", h1)
	r.tag("v1.1.0", h2)

	records, err := CommitsBetween(r.dir, "v1.0.0", "v1.1.0", Options{MaxDiffLines: 10})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Diff, "diff too long, truncated")
	assert.LessOrEqual(t, len(strings.Split(records[0].Diff, "\n")), 13)
}

func TestCommitsBetweenRefNotFound(t *testing.T) {
	r := newTestRepo(t)
	h1 := r.commit("feat: initial", map[string]string{"main.js": "1\n"})
	r.tag("v1.0.0", h1)

	_, err := CommitsBetween(r.dir, "v1.0.0", "v9.9.9", Options{})
	var refErr *RefNotFoundError
	require.True(t, errors.As(err, &refErr))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "subject", firstLine("subject\nbody"))
	assert.Equal(t, "subject", firstLine("subject"))
	assert.Equal(t, "", firstLine("\nbody"))
}
