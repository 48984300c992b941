package scan

import (
	"time"
)

// SourceType describes the kind of feed a signal was harvested from.
// The matcher uses it to gate which categories are considered.
type SourceType string

const (
	SourceTypeJobBoard SourceType = "job_board" // structured job board APIs (Greenhouse, Indeed)
	SourceTypeCareers  SourceType = "careers"   // company careers pages
	SourceTypeNews     SourceType = "news"      // press and personnel-change feeds
	SourceTypeSearch   SourceType = "search"    // web search results
	SourceTypeDocument SourceType = "document"  // filings, annual reports
)

// Category is the closed set of signal classifications. Declaration order is
// ascending priority: when one snippet matches several categories, the highest
// value wins the canonical slot.
type Category int

const (
	CategoryUncategorized Category = iota
	CategoryTechnologyMention
	CategoryFundingOrExpansion
	CategoryUnifiedDataConcept
	CategoryVendorMention
	CategoryExecutiveMove
	CategoryHiringTargetPersona
)

var categoryLabels = map[Category]string{
	CategoryUncategorized:       "uncategorized",
	CategoryTechnologyMention:   "technology-mention",
	CategoryFundingOrExpansion:  "funding-or-expansion",
	CategoryUnifiedDataConcept:  "unified-data-concept",
	CategoryVendorMention:       "vendor-mention",
	CategoryExecutiveMove:       "executive-move",
	CategoryHiringTargetPersona: "hiring-target-persona",
}

func (c Category) String() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return "uncategorized"
}

// ParseCategory maps a stored label back to its Category. Unknown labels map
// to CategoryUncategorized.
func ParseCategory(label string) Category {
	for c, l := range categoryLabels {
		if l == label {
			return c
		}
	}
	return CategoryUncategorized
}

// RawSignal is one harvested snippet as produced by a source adapter.
// Immutable once captured.
type RawSignal struct {
	Company     string
	Source      string // source identifier, e.g. "greenhouse"
	SourceType  SourceType
	URL         string
	Title       string
	Snippet     string
	HarvestedAt time.Time
}

// ClassifiedSignal is a RawSignal after classification and scoring. Keywords
// holds every matched phrase in discovery order.
type ClassifiedSignal struct {
	Company     string
	Category    Category
	Keywords    []string
	Score       int
	Source      string
	SourceType  SourceType
	URL         string
	Title       string
	Snippet     string
	HarvestedAt time.Time
}

// ScanResult is the per-company output of one scan: the best signal per
// category, sorted by descending score with category priority as tie-break.
type ScanResult struct {
	Company    string
	Signals    []ClassifiedSignal
	TotalScore int
}
