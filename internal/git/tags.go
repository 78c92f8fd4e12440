package git

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Tag is a git tag with its creation date (tagger date for annotated
// tags, committer date for lightweight tags).
type Tag struct {
	Name string
	When time.Time
	Date string // display form, YYYY-MM-DD or YYYY-MM-DD HH:MM
}

// rcTimestampRe extracts the build timestamp embedded in CI release
// candidate tag names (format: ...rc_ci_YYYYMMDDHHmm). When present it
// is preferred over the git date, which can lag behind the build.
var rcTimestampRe = regexp.MustCompile(`rc_ci_(\d{12})`)

// ListTags returns all tags sorted by creation date, newest first.
// An optional dateFilter keeps only tags whose display date contains
// the given substring (e.g. "2025-01"); limit caps the result count
// (0 means unlimited).
func ListTags(path, dateFilter string, limit int) ([]Tag, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, &RepositoryError{Path: path, Err: err}
	}

	var tags []Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		when := tagTime(repo, ref)
		tags = append(tags, Tag{
			Name: name,
			When: when,
			Date: tagDate(name, when),
		})
		return nil
	})
	if err != nil {
		return nil, &RepositoryError{Path: path, Err: err}
	}

	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].When.After(tags[j].When)
	})

	if dateFilter != "" {
		filtered := tags[:0]
		for _, t := range tags {
			if strings.Contains(t.Date, dateFilter) {
				filtered = append(filtered, t)
			}
		}
		tags = filtered
	}

	if limit > 0 && len(tags) > limit {
		tags = tags[:limit]
	}

	logDebug("[git] ListTags: %d tags (filter=%q limit=%d)", len(tags), dateFilter, limit)
	return tags, nil
}

// tagTime resolves the creation time of a tag reference: the tagger
// date for annotated tags, the committer date otherwise.
func tagTime(repo *git.Repository, ref *plumbing.Reference) time.Time {
	if tag, err := repo.TagObject(ref.Hash()); err == nil {
		return tag.Tagger.When
	}
	if commit, err := repo.CommitObject(ref.Hash()); err == nil {
		return commit.Committer.When
	}
	return time.Time{}
}

// tagDate renders the display date for a tag. CI tags carrying an
// rc_ci_YYYYMMDDHHmm timestamp in their name use that timestamp.
func tagDate(name string, when time.Time) string {
	if m := rcTimestampRe.FindStringSubmatch(name); m != nil {
		if parsed, err := time.ParseInLocation("200601021504", m[1], time.Local); err == nil {
			return parsed.Format("2006-01-02 15:04")
		}
	}
	if when.IsZero() {
		return ""
	}
	return when.Format("2006-01-02")
}
