package scan

// Scorer maps a match set to the single canonical category and its configured
// weight. Pure function of its inputs plus the immutable registry.
type Scorer struct {
	registry *Registry
}

func NewScorer(registry *Registry) *Scorer {
	return &Scorer{registry: registry}
}

// Run selects the highest-priority matched category and looks up its weight.
// Weights are never summed across categories: one snippet yields exactly one
// canonical category and one score, so the same text can't be counted twice.
// An empty match set yields (uncategorized, 0). A winning category without a
// configured weight is a ScoringConfigError; registry validation makes that
// unreachable in a correctly loaded run.
func (s *Scorer) Run(matches []Match) (Category, int, error) {
	if len(matches) == 0 {
		return CategoryUncategorized, 0, nil
	}

	winner := CategoryUncategorized
	for _, match := range matches {
		if match.Category > winner {
			winner = match.Category
		}
	}

	weight, ok := s.registry.Weight(winner)
	if !ok {
		return winner, 0, &ScoringConfigError{Category: winner}
	}

	return winner, weight, nil
}
