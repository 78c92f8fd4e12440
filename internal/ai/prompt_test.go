package ai

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/vfe-athena/git-changelog-ai/internal/changelog"
)

func TestBuildPrompt(t *testing.T) {
	batch := Batch{
		FromRef: "v1.0.0",
		ToRef:   "v1.1.0",
		Commits: []changelog.CommitRecord{
			{Hash: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Author: "Dev", Date: "2025-01-10", Message: "feat: add X"},
			{Hash: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", Author: "Dev", Date: "2025-01-11", Message: "fix: crash"},
		},
		Diff:     "diff --git a/main.js b/main.js\n",
		DiffStat: " main.js | 1 +",
	}

	prompt := BuildPrompt(batch, 50000)

	assert.Contains(t, prompt.System, "JSON")
	assert.Contains(t, prompt.System, "feature")

	assert.Contains(t, prompt.User, "从: v1.0.0")
	assert.Contains(t, prompt.User, "到: v1.1.0")
	assert.Contains(t, prompt.User, "提交记录 (2个提交)")
	assert.Contains(t, prompt.User, "[aaaaaaa] feat: add X (by Dev, 2025-01-10)")
	assert.Contains(t, prompt.User, "[bbbbbbb] fix: crash (by Dev, 2025-01-11)")
	assert.Contains(t, prompt.User, "main.js | 1 +")
	assert.Contains(t, prompt.User, "```diff")
}

func TestBuildPromptDiffCap(t *testing.T) {
	batch := Batch{
		FromRef: "a",
		ToRef:   "b",
		Diff:    strings.Repeat("x", 1000),
	}

	prompt := BuildPrompt(batch, 100)
	assert.Contains(t, prompt.User, strings.Repeat("x", 100))
	assert.NotContains(t, prompt.User, strings.Repeat("x", 101))

	uncapped := BuildPrompt(batch, 0)
	assert.Contains(t, uncapped.User, strings.Repeat("x", 1000))
}

func TestBuildPromptDiffCapRuneBoundary(t *testing.T) {
	batch := Batch{
		FromRef: "a",
		ToRef:   "b",
		Diff:    "+新增导出按钮",
	}

	// "+新" is 4 bytes; a 5-byte cap lands inside 增 and must back off.
	prompt := BuildPrompt(batch, 5)
	assert.True(t, utf8.ValidString(prompt.User))
	assert.Contains(t, prompt.User, "```diff\n+新\n```")
	assert.NotContains(t, prompt.User, "增")
}
