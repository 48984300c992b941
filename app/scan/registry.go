package scan

import (
	"log/slog"
)

// Keyword list names recognized by the registry. The schema is fixed and
// versionless: these four lists drive every matcher category.
const (
	ListVendors  = "cdp_vendors"
	ListPersonas = "target_personas"
	ListRelated  = "cdp_related"
	ListDataTech = "data_tech"
)

var requiredLists = []string{ListVendors, ListPersonas, ListRelated, ListDataTech}

// scoringRules maps configuration rule names to the category each weight
// applies to. Every matcher-producible category has exactly one rule.
var scoringRules = map[string]Category{
	"hiring_target_persona_with_cdp_keywords": CategoryHiringTargetPersona,
	"executive_move_target_persona":           CategoryExecutiveMove,
	"explicit_cdp_vendor_mention":             CategoryVendorMention,
	"unified_data_concepts":                   CategoryUnifiedDataConcept,
	"funding_or_expansion":                    CategoryFundingOrExpansion,
	"technology_mention":                      CategoryTechnologyMention,
}

// Registry holds the normalized keyword lists and the scoring weight table
// for one scan run. Immutable after construction, safe for concurrent reads.
type Registry struct {
	lists   map[string][]string
	weights map[Category]int
}

// NewRegistry builds a registry from the configured keyword lists and scoring
// rules. All four keyword lists and all six scoring rules are required;
// weights must be positive. Phrases are normalized the same way snippets are,
// so punctuation in either side never breaks a match. A duplicate phrase
// within one list is logged and the first occurrence kept.
func NewRegistry(keywords map[string][]string, scoring map[string]int) (*Registry, error) {
	lists := make(map[string][]string, len(requiredLists))

	for _, name := range requiredLists {
		phrases, ok := keywords[name]
		if !ok || len(phrases) == 0 {
			return nil, &ConfigError{Field: "keywords." + name, Reason: "required keyword list is missing or empty"}
		}

		seen := make(map[string]bool, len(phrases))
		normalized := make([]string, 0, len(phrases))
		for _, phrase := range phrases {
			p := Normalize(phrase)
			if p == "" {
				return nil, &ConfigError{Field: "keywords." + name, Reason: "empty phrase"}
			}
			if seen[p] {
				slog.Warn("Duplicate keyword phrase ignored", "list", name, "phrase", p)
				continue
			}
			seen[p] = true
			normalized = append(normalized, p)
		}
		lists[name] = normalized
	}

	for name := range keywords {
		if _, ok := lists[name]; !ok {
			return nil, &ConfigError{Field: "keywords." + name, Reason: "unknown keyword list"}
		}
	}

	weights := make(map[Category]int, len(scoringRules))
	for rule, category := range scoringRules {
		weight, ok := scoring[rule]
		if !ok {
			return nil, &ConfigError{Field: "scoring." + rule, Reason: "required scoring weight is missing"}
		}
		if weight <= 0 {
			return nil, &ConfigError{Field: "scoring." + rule, Reason: "weight must be a positive integer"}
		}
		weights[category] = weight
	}

	for rule := range scoring {
		if _, ok := scoringRules[rule]; !ok {
			return nil, &ConfigError{Field: "scoring." + rule, Reason: "unknown scoring rule"}
		}
	}

	return &Registry{lists: lists, weights: weights}, nil
}

// Phrases returns the normalized phrases of one keyword list. Unknown list
// names yield an empty slice, never an error.
func (r *Registry) Phrases(list string) []string {
	return r.lists[list]
}

// Weight returns the configured weight for a category.
func (r *Registry) Weight(category Category) (int, bool) {
	weight, ok := r.weights[category]
	return weight, ok
}
