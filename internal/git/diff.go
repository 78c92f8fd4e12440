package git

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// RangeDiff holds the aggregate diff between two references, restricted
// to non-ignored files.
type RangeDiff struct {
	// Files are the non-ignored changed paths, in tree order.
	Files []string
	// IgnoredFiles are the changed paths excluded by ignore patterns.
	IgnoredFiles []string
	// Diff is the unified diff text, possibly truncated.
	Diff string
	// Stat is a git --stat style per-file summary.
	Stat string
}

// DiffBetween computes the whole-range diff fromRef..toRef, excluding
// ignored files. The diff text is truncated above opts.MaxDiffLines
// with a trailing notice, mirroring what git log would print for an
// oversized pager-less diff.
func DiffBetween(path, fromRef, toRef string, opts Options) (*RangeDiff, error) {
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

	fromTree, err := fromCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading tree of %q: %w", fromRef, err)
	}
	toTree, err := toCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading tree of %q: %w", toRef, err)
	}

	changes, err := object.DiffTree(fromTree, toTree)
	if err != nil {
		return nil, fmt.Errorf("diffing %s..%s: %w", fromRef, toRef, err)
	}

	paths := NewPathFilter(opts.IgnorePatterns)
	result := &RangeDiff{}
	var kept object.Changes
	for _, ch := range changes {
		name := changePath(ch)
		if paths.Ignored(name) {
			result.IgnoredFiles = append(result.IgnoredFiles, name)
			continue
		}
		kept = append(kept, ch)
		result.Files = append(result.Files, name)
	}

	if len(kept) == 0 {
		logDebug("[git] DiffBetween %s..%s: no non-ignored changes", fromRef, toRef)
		return result, nil
	}

	patch, err := kept.Patch()
	if err != nil {
		return nil, fmt.Errorf("building patch for %s..%s: %w", fromRef, toRef, err)
	}

	result.Diff = truncateLines(patch.String(), opts.MaxDiffLines)
	result.Stat = strings.TrimRight(patch.Stats().String(), "\n")

	logDebug("[git] DiffBetween %s..%s: %d files (%d ignored)", fromRef, toRef, len(result.Files), len(result.IgnoredFiles))
	return result, nil
}

// truncateLines caps text at maxLines lines, appending a truncation
// notice carrying the original length. Zero maxLines means no cap.
func truncateLines(text string, maxLines int) string {
	if maxLines <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) <= maxLines {
		return text
	}
	return strings.Join(lines[:maxLines], "\n") +
		fmt.Sprintf("\n\n... (diff too long, truncated, total %d lines) ...", len(lines))
}
