package changelog

// Category identifies the changelog section a change belongs to.
type Category string

const (
	CategoryFeature     Category = "feature"
	CategoryFix         Category = "fix"
	CategoryPerformance Category = "performance"
	CategoryRefactor    Category = "refactor"
	CategoryStyle       Category = "style"
	CategoryConfig      Category = "config"
	CategoryDocs        Category = "docs"
	CategoryOther       Category = "other"
)

// CategoryOrder is the fixed priority order in which sections are
// emitted. Empty categories are omitted when rendering.
var CategoryOrder = []Category{
	CategoryFeature,
	CategoryFix,
	CategoryPerformance,
	CategoryRefactor,
	CategoryStyle,
	CategoryConfig,
	CategoryDocs,
	CategoryOther,
}

// categoryLabels maps each category to its rendered section heading.
var categoryLabels = map[Category]string{
	CategoryFeature:     "✨ 新功能",
	CategoryFix:         "🐛 问题修复",
	CategoryPerformance: "⚡ 性能优化",
	CategoryRefactor:    "🔨 代码重构",
	CategoryStyle:       "🎨 样式调整",
	CategoryConfig:      "🔧 配置变更",
	CategoryDocs:        "📝 文档更新",
	CategoryOther:       "📦 其他变更",
}

// Label returns the display heading for the category (emoji + text).
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return categoryLabels[CategoryOther]
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ParseCategory converts a string (e.g. from an AI response) to a
// Category. Unknown values map to CategoryOther with ok=false.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	if c.Valid() {
		return c, true
	}
	return CategoryOther, false
}

// CommitRecord is a single commit read from git history. It is created
// by the collector and never mutated afterward.
type CommitRecord struct {
	Hash    string
	Author  string
	Email   string
	Date    string // YYYY-MM-DD
	Message string
	Files   []string // changed paths, ignored files already excluded
	Diff    string   // unified diff restricted to non-ignored files
}

// ShortHash returns the abbreviated commit hash used in rendered output.
func (c CommitRecord) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// ClassifiedChange is a commit annotated with its category and summary
// line. Produced by the keyword classifier or the AI client; exactly
// zero (filtered) or one per retained commit in keyword mode. In AI
// mode a single change may summarize several related commits, in which
// case Hash refers to the first of them.
type ClassifiedChange struct {
	Hash     string
	Category Category
	Summary  string
}

// Entry is a single rendered line within a section.
type Entry struct {
	Text string
	Hash string // abbreviated on render; empty when unknown
}

// Section groups entries sharing a category.
type Section struct {
	Category Category
	Entries  []Entry
}

// IsEmpty returns true if the section has no entries.
func (s Section) IsEmpty() bool {
	return len(s.Entries) == 0
}

// Document is the terminal changelog artifact, serialized by the
// formatter. Sections appear in CategoryOrder with empty categories
// omitted.
type Document struct {
	FromRef     string
	ToRef       string
	FirstDate   string // date of the oldest commit in range
	LastDate    string // date of the newest commit in range
	Sections    []Section
	CommitCount int
	FileCount   int
	DiffStat    string // git --stat style summary, may be empty
}

// EntryCount returns the total number of entries across all sections.
func (d Document) EntryCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Entries)
	}
	return n
}
