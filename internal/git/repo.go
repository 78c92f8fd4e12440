// Package git provides read-only repository queries for the changelog
// pipeline: repository detection, reference resolution, tag listing,
// commit range collection, and diff extraction. It uses the go-git
// library exclusively, so no git CLI installation is required.
package git

import (
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default it's a no-op. Set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// RefNotFoundError indicates a reference (tag, commit hash, or branch
// name) could not be resolved in the repository.
type RefNotFoundError struct {
	Ref string
}

func (e *RefNotFoundError) Error() string {
	return fmt.Sprintf("reference %q not found", e.Ref)
}

// RepositoryError indicates the working directory is not inside a git
// repository, or the repository could not be read.
type RepositoryError struct {
	Path string
	Err  error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("opening repository at %s: %v", e.Path, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }

// openRepo opens the repository at path, or the current working
// directory when path is empty. DetectDotGit walks up the directory
// tree to find the repository root, matching git CLI behavior.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, &RepositoryError{Path: path, Err: err}
	}
	return repo, nil
}

// IsRepository checks if the given directory (or the current working
// directory when empty) is within a git repository.
func IsRepository(path string) bool {
	_, err := openRepo(path)
	result := err == nil
	logDebug("[git] IsRepository: %v", result)
	return result
}

// resolveCommit resolves a revision to its commit object, peeling
// annotated tags. Returns RefNotFoundError when the revision does not
// exist.
func resolveCommit(repo *git.Repository, ref string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		logDebug("[git] resolveCommit %q: %v", ref, err)
		return nil, &RefNotFoundError{Ref: ref}
	}

	if commit, err := repo.CommitObject(*hash); err == nil {
		return commit, nil
	}

	// Annotated tag: peel to the target commit.
	tag, err := repo.TagObject(*hash)
	if err != nil {
		return nil, &RefNotFoundError{Ref: ref}
	}
	commit, err := tag.Commit()
	if err != nil {
		return nil, fmt.Errorf("peeling tag %q: %w", ref, err)
	}
	return commit, nil
}

// RefExists reports whether ref resolves in the repository at path.
func RefExists(path, ref string) bool {
	repo, err := openRepo(path)
	if err != nil {
		return false
	}
	_, err = resolveCommit(repo, ref)
	return err == nil
}
