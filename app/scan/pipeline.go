package scan

// Pipeline runs one raw signal through normalization, matching and scoring.
// It holds only the immutable registry, so a single pipeline is safe to use
// from any number of concurrent harvest workers.
type Pipeline struct {
	matcher *Matcher
	scorer  *Scorer
}

func NewPipeline(registry *Registry) *Pipeline {
	return &Pipeline{
		matcher: NewMatcher(registry),
		scorer:  NewScorer(registry),
	}
}

// Run classifies and scores a raw signal. Malformed or empty text is not an
// error: it degrades to (uncategorized, 0) and gets dropped at aggregation.
// The only error surface is ScoringConfigError, which callers log and drop
// the signal for.
func (p *Pipeline) Run(raw RawSignal) (ClassifiedSignal, error) {
	text := Normalize(raw.Title + " " + raw.Snippet)
	matches := p.matcher.Run(text, raw.SourceType)

	category, score, err := p.scorer.Run(matches)
	if err != nil {
		return ClassifiedSignal{}, err
	}

	return ClassifiedSignal{
		Company:     raw.Company,
		Category:    category,
		Keywords:    matchedKeywords(matches),
		Score:       score,
		Source:      raw.Source,
		SourceType:  raw.SourceType,
		URL:         raw.URL,
		Title:       raw.Title,
		Snippet:     raw.Snippet,
		HarvestedAt: raw.HarvestedAt,
	}, nil
}

// matchedKeywords flattens a match set into unique keywords, insertion order
// preserved as discovery order.
func matchedKeywords(matches []Match) []string {
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	keywords := make([]string, 0, len(matches))
	for _, match := range matches {
		if seen[match.Keyword] {
			continue
		}
		seen[match.Keyword] = true
		keywords = append(keywords, match.Keyword)
	}
	return keywords
}
