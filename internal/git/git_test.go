package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// testRepo builds throwaway repositories for collector tests. Commits
// advance a fixed clock by one hour each, so ordering and date
// assertions are deterministic.
type testRepo struct {
	t     *testing.T
	dir   string
	repo  *gogit.Repository
	wt    *gogit.Worktree
	clock time.Time
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &testRepo{
		t:     t,
		dir:   dir,
		repo:  repo,
		wt:    wt,
		clock: time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func (r *testRepo) commit(msg string, files map[string]string) plumbing.Hash {
	return r.commitAs("Dev", "dev@example.com", msg, files)
}

func (r *testRepo) commitAs(author, email, msg string, files map[string]string) plumbing.Hash {
	r.t.Helper()
	for name, content := range files {
		full := filepath.Join(r.dir, name)
		require.NoError(r.t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(r.t, os.WriteFile(full, []byte(content), 0o644))
		_, err := r.wt.Add(name)
		require.NoError(r.t, err)
	}

	r.clock = r.clock.Add(time.Hour)
	sig := &object.Signature{Name: author, Email: email, When: r.clock}
	hash, err := r.wt.Commit(msg, &gogit.CommitOptions{Author: sig, Committer: sig})
	require.NoError(r.t, err)
	return hash
}

func (r *testRepo) tag(name string, hash plumbing.Hash) {
	r.t.Helper()
	_, err := r.repo.CreateTag(name, hash, nil)
	require.NoError(r.t, err)
}

func (r *testRepo) annotatedTag(name string, hash plumbing.Hash, when time.Time) {
	r.t.Helper()
	_, err := r.repo.CreateTag(name, hash, &gogit.CreateTagOptions{
		Tagger:  &object.Signature{Name: "Dev", Email: "dev@example.com", When: when},
		Message: name,
	})
	require.NoError(r.t, err)
}
