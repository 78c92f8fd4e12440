package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryLabel(t *testing.T) {
	tests := map[string]struct {
		category Category
		want     string
	}{
		"feature":     {category: CategoryFeature, want: "✨ 新功能"},
		"fix":         {category: CategoryFix, want: "🐛 问题修复"},
		"performance": {category: CategoryPerformance, want: "⚡ 性能优化"},
		"refactor":    {category: CategoryRefactor, want: "🔨 代码重构"},
		"style":       {category: CategoryStyle, want: "🎨 样式调整"},
		"config":      {category: CategoryConfig, want: "🔧 配置变更"},
		"docs":        {category: CategoryDocs, want: "📝 文档更新"},
		"other":       {category: CategoryOther, want: "📦 其他变更"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.category.Label())
			assert.True(t, tc.category.Valid())
		})
	}
}

func TestCategoryOrderCoversAllCategories(t *testing.T) {
	assert.Len(t, CategoryOrder, 8)
	seen := map[Category]bool{}
	for _, c := range CategoryOrder {
		assert.True(t, c.Valid())
		assert.False(t, seen[c], "duplicate category in order")
		seen[c] = true
	}
	assert.Equal(t, CategoryFeature, CategoryOrder[0])
	assert.Equal(t, CategoryOther, CategoryOrder[len(CategoryOrder)-1])
}

func TestParseCategory(t *testing.T) {
	cat, ok := ParseCategory("feature")
	assert.True(t, ok)
	assert.Equal(t, CategoryFeature, cat)

	cat, ok = ParseCategory("banana")
	assert.False(t, ok)
	assert.Equal(t, CategoryOther, cat)
}

func TestShortHash(t *testing.T) {
	c := CommitRecord{Hash: "0123456789abcdef"}
	assert.Equal(t, "0123456", c.ShortHash())

	short := CommitRecord{Hash: "abc"}
	assert.Equal(t, "abc", short.ShortHash())
}
