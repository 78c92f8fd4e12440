package changelog

import "fmt"

// BuildInput carries everything the aggregator needs to assemble a
// Document: the classified changes, the set of commits they are allowed
// to reference, and repository-level statistics for the trailer.
type BuildInput struct {
	FromRef   string
	ToRef     string
	Commits   []CommitRecord // filtered commit set, oldest first
	Changes   []ClassifiedChange
	FileCount int
	DiffStat  string
}

// BuildDocument groups classified changes into sections in the fixed
// category priority order, preserving the input order of changes within
// each section. Changes referencing a commit outside the filtered input
// set are dropped and reported as warnings rather than failing the run;
// entries without a hash (AI-merged summaries) are always kept.
func BuildDocument(in BuildInput) (*Document, []string) {
	known := make(map[string]bool, len(in.Commits))
	for _, c := range in.Commits {
		known[c.Hash] = true
		known[c.ShortHash()] = true
	}

	var warnings []string
	grouped := make(map[Category][]Entry)
	for _, ch := range in.Changes {
		if ch.Hash != "" && !known[ch.Hash] {
			warnings = append(warnings, fmt.Sprintf("dropping entry for unknown commit %s: %s", ch.Hash, ch.Summary))
			continue
		}
		category := ch.Category
		if !category.Valid() {
			category = CategoryOther
		}
		grouped[category] = append(grouped[category], Entry{Text: ch.Summary, Hash: ch.Hash})
	}

	doc := &Document{
		FromRef:     in.FromRef,
		ToRef:       in.ToRef,
		CommitCount: len(in.Commits),
		FileCount:   in.FileCount,
		DiffStat:    in.DiffStat,
	}
	if len(in.Commits) > 0 {
		doc.FirstDate = in.Commits[0].Date
		doc.LastDate = in.Commits[len(in.Commits)-1].Date
	}

	for _, category := range CategoryOrder {
		entries := grouped[category]
		if len(entries) == 0 {
			continue
		}
		doc.Sections = append(doc.Sections, Section{Category: category, Entries: entries})
	}

	return doc, warnings
}
