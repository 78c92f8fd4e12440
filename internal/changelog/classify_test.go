package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := map[string]struct {
		message  string
		wantCat  Category
		wantKeep bool
	}{
		"feat prefix": {
			message:  "feat: add user login",
			wantCat:  CategoryFeature,
			wantKeep: true,
		},
		"fix prefix": {
			message:  "fix: crash on empty input",
			wantCat:  CategoryFix,
			wantKeep: true,
		},
		"perf prefix": {
			message:  "perf: cache template parsing",
			wantCat:  CategoryPerformance,
			wantKeep: true,
		},
		"refactor prefix": {
			message:  "refactor: split request builder",
			wantCat:  CategoryRefactor,
			wantKeep: true,
		},
		"docs prefix": {
			message:  "docs: update install guide",
			wantCat:  CategoryDocs,
			wantKeep: true,
		},
		"style prefix": {
			message:  "style: align button spacing",
			wantCat:  CategoryStyle,
			wantKeep: true,
		},
		"chore prefix maps to other": {
			message:  "chore: bump deps",
			wantCat:  CategoryOther,
			wantKeep: true,
		},
		"test prefix maps to other": {
			message:  "test: cover tag filtering",
			wantCat:  CategoryOther,
			wantKeep: true,
		},
		"prefix case insensitive": {
			message:  "Feat: Add dashboard",
			wantCat:  CategoryFeature,
			wantKeep: true,
		},
		"prefix beats keyword": {
			message:  "fix: optimize retry loop",
			wantCat:  CategoryFix,
			wantKeep: true,
		},
		"chinese feature keyword": {
			message:  "新增用户导出功能",
			wantCat:  CategoryFeature,
			wantKeep: true,
		},
		"chinese fix keyword": {
			message:  "修复登录超时问题",
			wantCat:  CategoryFix,
			wantKeep: true,
		},
		"chinese performance keyword": {
			message:  "优化首屏加载速度",
			wantCat:  CategoryPerformance,
			wantKeep: true,
		},
		"english keyword": {
			message:  "implement dark mode toggle",
			wantCat:  CategoryFeature,
			wantKeep: true,
		},
		"keyword order feature before fix": {
			message:  "add missing issue link",
			wantCat:  CategoryFeature,
			wantKeep: true,
		},
		"no match defaults to other": {
			message:  "misc housekeeping",
			wantCat:  CategoryOther,
			wantKeep: true,
		},
		"merge commit skipped": {
			message:  "Merge branch 'develop' into main",
			wantKeep: false,
		},
		"version bump skipped": {
			message:  "bump version to 1.2.0",
			wantKeep: false,
		},
		"chinese version bump skipped": {
			message:  "更新版本号",
			wantKeep: false,
		},
		"release commit skipped": {
			message:  "release v2.0.0",
			wantKeep: false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cat, keep := Classify(tc.message)
			assert.Equal(t, tc.wantKeep, keep)
			if tc.wantKeep {
				assert.Equal(t, tc.wantCat, cat)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	msg := "feat: add retry with backoff"
	cat1, keep1 := Classify(msg)
	cat2, keep2 := Classify(msg)
	assert.Equal(t, cat1, cat2)
	assert.Equal(t, keep1, keep2)
}

func TestClassifyCommits(t *testing.T) {
	commits := []CommitRecord{
		{Hash: "aaa111", Message: "feat: add X"},
		{Hash: "bbb222", Message: "fix: crash on Y"},
		{Hash: "ccc333", Message: "Merge pull request #42"},
		{Hash: "ddd444", Message: "misc housekeeping"},
	}

	changes := ClassifyCommits(commits)
	require.Len(t, changes, 3)

	assert.Equal(t, "aaa111", changes[0].Hash)
	assert.Equal(t, CategoryFeature, changes[0].Category)
	assert.Equal(t, "Add X", changes[0].Summary)

	assert.Equal(t, "bbb222", changes[1].Hash)
	assert.Equal(t, CategoryFix, changes[1].Category)

	assert.Equal(t, "ddd444", changes[2].Hash)
	assert.Equal(t, CategoryOther, changes[2].Category)
}

func TestFormatMessage(t *testing.T) {
	tests := map[string]struct {
		message string
		want    string
	}{
		"strips feat prefix":     {message: "feat: add login", want: "Add login"},
		"strips fix prefix":      {message: "fix: null pointer", want: "Null pointer"},
		"upper cases first rune": {message: "add login", want: "Add login"},
		"chinese untouched":      {message: "新增登录", want: "新增登录"},
		"prefix only keeps raw":  {message: "feat:", want: "Feat:"},
		"prefix and spaces only": {message: "fix:   ", want: "Fix:"},
		"whitespace only":        {message: "   ", want: ""},
		"already capitalized":    {message: "Update README", want: "Update README"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatMessage(tc.message))
		})
	}
}
