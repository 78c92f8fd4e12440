// Package changelog contains the core changelog domain: the commit
// record and classified-change data model, the keyword classifier, the
// section aggregator, and the deterministic Markdown formatter.
//
// The pipeline is Collector → Classifier (keyword or AI) → Aggregator →
// Formatter. This package holds every stage except collection (see
// internal/git) and AI classification (see internal/ai); both feed
// their results through the same ClassifiedChange contract, so the
// aggregator never knows which strategy produced its input.
package changelog
