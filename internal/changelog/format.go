package changelog

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// FormatOptions controls rendering details.
type FormatOptions struct {
	// Verbose appends the abbreviated commit hash to each entry.
	Verbose bool
}

// RenderMarkdown writes the Markdown rendition of a Document. The
// output is byte-deterministic: the same document always produces
// identical text, with no locale or clock dependence.
func RenderMarkdown(doc *Document, w io.Writer, opts FormatOptions) error {
	if err := renderHeader(doc, w); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	if doc.CommitCount == 0 {
		_, err := io.WriteString(w, "⚠️ 未发现任何变更\n")
		return err
	}

	for i, s := range doc.Sections {
		if err := renderSection(&s, w, i == 0, opts); err != nil {
			return fmt.Errorf("rendering section %s: %w", s.Category, err)
		}
	}

	return renderTrailer(doc, w)
}

// RenderMarkdownString is a convenience wrapper rendering to a string.
func RenderMarkdownString(doc *Document, opts FormatOptions) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(doc, &b, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderHeader writes the title, version range, and date line.
func renderHeader(doc *Document, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# 更新日志\n\n**%s → %s**\n\n", doc.FromRef, doc.ToRef); err != nil {
		return err
	}
	if doc.CommitCount == 0 {
		return nil
	}

	var dateLine string
	if doc.FirstDate == doc.LastDate {
		dateLine = fmt.Sprintf("📅 发布日期: %s", doc.LastDate)
	} else {
		dateLine = fmt.Sprintf("📅 变更周期: %s ~ %s", doc.FirstDate, doc.LastDate)
	}
	_, err := fmt.Fprintf(w, "%s\n\n", dateLine)
	return err
}

// renderSection writes a single category heading plus its bulleted entries.
func renderSection(s *Section, w io.Writer, isFirst bool, opts FormatOptions) error {
	if !isFirst {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "## %s\n\n", s.Category.Label()); err != nil {
		return err
	}

	for _, e := range s.Entries {
		line := "- " + e.Text
		if opts.Verbose && e.Hash != "" {
			line += fmt.Sprintf(" (%s)", abbrev(e.Hash))
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// renderTrailer writes the statistics line and the collapsible diff
// stat block. The statistics line is the round-trip anchor: ParseStats
// recovers the commit and file counts from it exactly.
func renderTrailer(doc *Document, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "\n---\n\n**变更统计**: %d 项变更，涉及 %d 个文件\n",
		doc.CommitCount, doc.FileCount); err != nil {
		return err
	}

	if doc.DiffStat == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, "\n<details>\n<summary>📈 文件变更详情</summary>\n\n```\n%s\n```\n</details>\n",
		strings.TrimRight(doc.DiffStat, "\n"))
	return err
}

var statsLineRe = regexp.MustCompile(`\*\*变更统计\*\*: (\d+) 项变更，涉及 (\d+) 个文件`)

// ParseStats recovers the commit and file counts from the trailing
// statistics line of a rendered changelog.
func ParseStats(markdown string) (commits, files int, err error) {
	m := statsLineRe.FindStringSubmatch(markdown)
	if m == nil {
		return 0, 0, fmt.Errorf("no statistics line found")
	}
	commits, err = strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, err
	}
	files, err = strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, err
	}
	return commits, files, nil
}

func abbrev(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
