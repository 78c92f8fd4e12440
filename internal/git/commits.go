package git

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/vfe-athena/git-changelog-ai/internal/changelog"
)

// Options controls commit collection and diff extraction.
type Options struct {
	// IgnorePatterns lists file name globs excluded from diffs.
	IgnorePatterns []string
	// IgnoreAuthors lists author identifiers (name, email, or email
	// local part) whose commits are excluded from the result set.
	IgnoreAuthors []string
	// MaxDiffLines caps diff text; longer diffs are truncated with a
	// trailing notice. Zero means no cap.
	MaxDiffLines int
}

// CommitsBetween returns the commits reachable from toRef but not from
// fromRef, oldest first. Commits by ignored authors are excluded, as
// are commits whose changes touch only ignored files. Each record
// carries the commit's non-ignored changed paths and unified diff.
func CommitsBetween(path, fromRef, toRef string, opts Options) ([]changelog.CommitRecord, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}

	fromCommit, err := resolveCommit(repo, fromRef)
	if err != nil {
		return nil, err
	}
	toCommit, err := resolveCommit(repo, toRef)
	if err != nil {
		return nil, err
	}

	// Mark everything reachable from fromRef, then walk from toRef
	// skipping the marked set. This yields exactly the fromRef..toRef
	// range, branchy histories included.
	seen := make(map[plumbing.Hash]bool)
	base := object.NewCommitPreorderIter(fromCommit, nil, nil)
	err = base.ForEach(func(c *object.Commit) error {
		seen[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history of %q: %w", fromRef, err)
	}

	var raw []*object.Commit
	walker := object.NewCommitPreorderIter(toCommit, seen, nil)
	err = walker.ForEach(func(c *object.Commit) error {
		raw = append(raw, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history of %q: %w", toRef, err)
	}

	// Preorder walks newest first; reverse for chronological order.
	for i, j := 0, len(raw)-1; i < j; i, j = i+1, j-1 {
		raw[i], raw[j] = raw[j], raw[i]
	}

	paths := NewPathFilter(opts.IgnorePatterns)
	authors := NewAuthorFilter(opts.IgnoreAuthors)

	records := make([]changelog.CommitRecord, 0, len(raw))
	for _, c := range raw {
		if authors.Ignored(c.Author.Name, c.Author.Email) {
			logDebug("[git] skipping commit %s by ignored author %s", c.Hash.String()[:7], c.Author.Name)
			continue
		}

		files, diff, err := commitChanges(c, paths, opts.MaxDiffLines)
		if err != nil {
			return nil, fmt.Errorf("diffing commit %s: %w", c.Hash, err)
		}
		// A commit that only touches ignored files never reaches the
		// classification stage.
		if len(files) == 0 {
			logDebug("[git] skipping commit %s: only ignored files", c.Hash.String()[:7])
			continue
		}

		records = append(records, changelog.CommitRecord{
			Hash:    c.Hash.String(),
			Author:  c.Author.Name,
			Email:   c.Author.Email,
			Date:    c.Author.When.Format("2006-01-02"),
			Message: firstLine(c.Message),
			Files:   files,
			Diff:    diff,
		})
	}

	logDebug("[git] CommitsBetween %s..%s: %d commits (%d before filtering)", fromRef, toRef, len(records), len(raw))
	return records, nil
}

// commitChanges computes the non-ignored changed paths and unified diff
// of a commit against its first parent (or the empty tree for root
// commits).
func commitChanges(c *object.Commit, paths *PathFilter, maxLines int) ([]string, string, error) {
	tree, err := c.Tree()
	if err != nil {
		return nil, "", err
	}

	var parentTree *object.Tree
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return nil, "", err
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return nil, "", err
		}
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return nil, "", err
	}

	filtered, files := filterChanges(changes, paths)
	if len(filtered) == 0 {
		return nil, "", nil
	}

	patch, err := filtered.Patch()
	if err != nil {
		return nil, "", err
	}
	return files, truncateLines(patch.String(), maxLines), nil
}

// filterChanges drops changes touching ignored paths and returns the
// remaining changes with their file names.
func filterChanges(changes object.Changes, paths *PathFilter) (object.Changes, []string) {
	var kept object.Changes
	var files []string
	for _, ch := range changes {
		name := changePath(ch)
		if paths.Ignored(name) {
			continue
		}
		kept = append(kept, ch)
		files = append(files, name)
	}
	return kept, files
}

// changePath returns the post-image path of a change, falling back to
// the pre-image path for deletions.
func changePath(ch *object.Change) string {
	if ch.To.Name != "" {
		return ch.To.Name
	}
	return ch.From.Name
}

func firstLine(message string) string {
	for i := 0; i < len(message); i++ {
		if message[i] == '\n' {
			return message[:i]
		}
	}
	return message
}
