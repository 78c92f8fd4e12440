package changelog

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// skipKeywords mark commits that never appear in the changelog
// (merge commits, version bumps, release tagging).
var skipKeywords = []string{"merge", "version", "版本", "release"}

// conventionalPrefixes maps conventional-commit prefixes to categories.
// Prefix matches take precedence over free-text keyword matching.
var conventionalPrefixes = []struct {
	Prefix   string
	Category Category
}{
	{"feat:", CategoryFeature},
	{"fix:", CategoryFix},
	{"perf:", CategoryPerformance},
	{"refactor:", CategoryRefactor},
	{"docs:", CategoryDocs},
	{"style:", CategoryStyle},
	{"chore:", CategoryOther},
	{"test:", CategoryOther},
}

// keywordRules are checked in order after prefixes; the first category
// with a matching keyword wins. Keyword matching is case-insensitive
// substring search, which also covers the Chinese vocabulary used in
// commit messages at the source repositories this tool grew up in.
var keywordRules = []struct {
	Category Category
	Keywords []string
}{
	{CategoryFeature, []string{"新增", "添加", "add", "feat", "feature", "功能", "new", "implement", "支持"}},
	{CategoryFix, []string{"修复", "修正", "fix", "bug", "问题", "issue", "错误", "resolve", "hotfix"}},
	{CategoryPerformance, []string{"优化", "性能", "perf", "performance", "提升", "改进", "improve", "optimize", "加速"}},
	{CategoryRefactor, []string{"重构", "refactor", "调整", "重写", "rewrite", "restructure", "改造"}},
	{CategoryDocs, []string{"文档", "doc", "documentation", "注释", "comment", "readme", "changelog"}},
	{CategoryStyle, []string{"样式", "style", "css", "ui", "界面", "美化", "format", "布局"}},
	{CategoryConfig, []string{"配置", "config", "configuration", "设置", "setting", "build", "ci", "chore", "deps"}},
}

// Classify maps a commit message to a category. It is a pure function:
// same message, same category, every invocation. The second return is
// false when the commit should be skipped entirely (merge/release
// housekeeping).
func Classify(message string) (Category, bool) {
	lower := strings.ToLower(message)

	for _, skip := range skipKeywords {
		if strings.Contains(lower, skip) {
			return CategoryOther, false
		}
	}

	for _, rule := range conventionalPrefixes {
		if strings.HasPrefix(lower, rule.Prefix) {
			return rule.Category, true
		}
	}

	for _, rule := range keywordRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Category, true
			}
		}
	}

	return CategoryOther, true
}

// ClassifyCommits runs the keyword classifier over a commit list,
// producing one ClassifiedChange per retained commit in input order.
// Skipped commits (merge/release) yield no change.
func ClassifyCommits(commits []CommitRecord) []ClassifiedChange {
	changes := make([]ClassifiedChange, 0, len(commits))
	for _, c := range commits {
		category, keep := Classify(c.Message)
		if !keep {
			continue
		}
		changes = append(changes, ClassifiedChange{
			Hash:     c.Hash,
			Category: category,
			Summary:  FormatMessage(c.Message),
		})
	}
	return changes
}

// FormatMessage strips a leading conventional-commit prefix and
// upper-cases the first rune of the remaining message. A message that
// is nothing but a prefix keeps its raw text rather than becoming an
// empty bullet.
func FormatMessage(message string) string {
	formatted := message
	lower := strings.ToLower(message)
	for _, rule := range conventionalPrefixes {
		if strings.HasPrefix(lower, rule.Prefix) {
			formatted = strings.TrimSpace(message[len(rule.Prefix):])
			break
		}
	}
	if formatted == "" {
		formatted = strings.TrimSpace(message)
	}

	if formatted == "" {
		return formatted
	}
	r, size := utf8.DecodeRuneInString(formatted)
	return string(unicode.ToUpper(r)) + formatted[size:]
}
