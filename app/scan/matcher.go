package scan

import (
	"strings"
)

// Match is one (category, keyword) pair produced by the matcher.
type Match struct {
	Category Category
	Keyword  string
}

// categoryGates restricts which source types a category is even considered
// for. A category absent from the table is considered for every source.
// Executive moves are only credible from press and personnel-change feeds;
// the same persona name in a job posting means hiring, not a move.
var categoryGates = map[Category][]SourceType{
	CategoryExecutiveMove: {SourceTypeNews, SourceTypeSearch},
}

// Context words that trigger a category in combination with a keyword list.
// These are deliberately plain substrings, same tradeoff as the keyword
// phrases themselves.
var (
	hiringContext    = []string{"hiring", "job", "career", "position", "vacancy"}
	executiveContext = []string{"join", "hired", "appointed", "named", "promoted"}
	fundingContext   = []string{"series", "funding", "raised", "investment", "launch", "expand"}
)

type Matcher struct {
	registry *Registry
}

func NewMatcher(registry *Registry) *Matcher {
	return &Matcher{registry: registry}
}

// Run determines every category applicable to a normalized snippet, with the
// keyword that triggered each match. Matching is whole-phrase substring
// containment, case-insensitive by virtue of normalization on both sides.
// Short ambiguous keywords ("cdp") match inside unrelated text; that
// precision/recall tradeoff is accepted. Categories are evaluated in
// descending priority order so the returned slice is deterministic. An empty
// result is the expected no-match case, never an error.
func (m *Matcher) Run(text string, sourceType SourceType) []Match {
	if text == "" {
		return nil
	}

	var matches []Match

	// hiring-target-persona: a persona title plus hiring context. Job board
	// and careers sources are hiring context by themselves.
	if m.allows(CategoryHiringTargetPersona, sourceType) {
		if sourceType == SourceTypeJobBoard || sourceType == SourceTypeCareers || containsAny(text, hiringContext) {
			for _, persona := range m.registry.Phrases(ListPersonas) {
				if strings.Contains(text, persona) {
					matches = append(matches, Match{CategoryHiringTargetPersona, persona})
				}
			}
		}
	}

	// executive-move: a persona title plus an appointment verb, gated to
	// personnel-change capable sources.
	if m.allows(CategoryExecutiveMove, sourceType) && containsAny(text, executiveContext) {
		for _, persona := range m.registry.Phrases(ListPersonas) {
			if strings.Contains(text, persona) {
				matches = append(matches, Match{CategoryExecutiveMove, persona})
			}
		}
	}

	if m.allows(CategoryVendorMention, sourceType) {
		for _, vendor := range m.registry.Phrases(ListVendors) {
			if strings.Contains(text, vendor) {
				matches = append(matches, Match{CategoryVendorMention, vendor})
			}
		}
	}

	if m.allows(CategoryUnifiedDataConcept, sourceType) {
		for _, concept := range m.registry.Phrases(ListRelated) {
			if strings.Contains(text, concept) {
				matches = append(matches, Match{CategoryUnifiedDataConcept, concept})
			}
		}
	}

	if m.allows(CategoryFundingOrExpansion, sourceType) {
		for _, word := range fundingContext {
			if strings.Contains(text, word) {
				matches = append(matches, Match{CategoryFundingOrExpansion, word})
			}
		}
	}

	if m.allows(CategoryTechnologyMention, sourceType) {
		for _, tech := range m.registry.Phrases(ListDataTech) {
			if strings.Contains(text, tech) {
				matches = append(matches, Match{CategoryTechnologyMention, tech})
			}
		}
	}

	return matches
}

func (m *Matcher) allows(category Category, sourceType SourceType) bool {
	gate, ok := categoryGates[category]
	if !ok {
		return true
	}
	for _, allowed := range gate {
		if allowed == sourceType {
			return true
		}
	}
	return false
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
