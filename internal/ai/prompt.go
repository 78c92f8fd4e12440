package ai

import (
	"fmt"
	"strings"

	"github.com/vfe-athena/git-changelog-ai/internal/changelog"
)

// systemPrompt instructs the model to act as a release-note editor and
// to answer with machine-parseable JSON entries only.
const systemPrompt = `你是一名资深的版本发布工程师，负责把 Git 提交记录和代码差异整理成简洁、面向用户的更新日志。

输出要求：只输出一个 JSON 数组，不要输出其他任何文字。数组的每个元素形如：
{"hash": "<7位提交哈希>", "category": "<分类>", "summary": "<一句话中文摘要>"}

分类只能取以下值之一：
feature（新功能）、fix（问题修复）、performance（性能优化）、refactor（代码重构）、style（样式调整）、config（配置变更）、docs（文档更新）、other（其他变更）

规则：
1. 摘要描述实际的功能变化，不要简单复述 commit message
2. 关注用户可感知的改进和修复的问题
3. 语义相近的多个提交可以合并为一条摘要，hash 取其中第一个提交
4. 不要引用提交列表以外的 hash`

// Batch is the request payload for one generation: the filtered commit
// set of the revision range plus the aggregate diff.
type Batch struct {
	FromRef  string
	ToRef    string
	Commits  []changelog.CommitRecord
	Diff     string
	DiffStat string
}

// BuildPrompt renders the system and user prompt pair for a batch. The
// diff is capped at maxDiffChars to bound payload size.
func BuildPrompt(batch Batch, maxDiffChars int) Prompt {
	var commitLines strings.Builder
	for _, c := range batch.Commits {
		fmt.Fprintf(&commitLines, "- [%s] %s (by %s, %s)\n", c.ShortHash(), c.Message, c.Author, c.Date)
	}

	diff := batch.Diff
	if maxDiffChars > 0 && len(diff) > maxDiffChars {
		diff = trimToRuneBoundary(diff[:maxDiffChars])
	}

	user := fmt.Sprintf(`请分析以下代码变更，生成版本更新摘要：

## 版本信息
从: %s
到: %s

## 提交记录 (%d个提交)
%s
## 文件变更统计
%s

## 代码差异 (Git Diff)
`+"```diff\n%s\n```"+`

请根据以上信息输出 JSON 数组形式的更新摘要。`,
		batch.FromRef, batch.ToRef, len(batch.Commits), commitLines.String(), batch.DiffStat, diff)

	return Prompt{System: systemPrompt, User: user}
}

// trimToRuneBoundary backs off a byte slice so it never ends mid-rune.
// Diffs carry Chinese text, and a split rune poisons the JSON payload.
func trimToRuneBoundary(s string) string {
	for len(s) > 0 && s[len(s)-1]&0xC0 == 0x80 {
		s = s[:len(s)-1]
	}
	return s
}
