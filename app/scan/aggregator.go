package scan

import (
	"sort"
)

// Aggregator merges the classified signals of one company into the final
// ranked result. Stateless; one instance serves the whole run.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Run keeps the single best signal per canonical category, so the same
// keyword match recurring across sources can't inflate a company's apparent
// signal count. Zero-score (uncategorized) signals are dropped. Winner
// selection and final ordering are deterministic under any input permutation:
// higher score wins, then earliest harvested timestamp, then source
// identifier alphabetically.
func (a *Aggregator) Run(company string, signals []ClassifiedSignal) ScanResult {
	best := make(map[Category]ClassifiedSignal)

	for _, signal := range signals {
		if signal.Score == 0 || signal.Category == CategoryUncategorized {
			continue
		}

		current, ok := best[signal.Category]
		if !ok || beats(signal, current) {
			best[signal.Category] = signal
		}
	}

	result := ScanResult{Company: company}
	for _, signal := range best {
		result.Signals = append(result.Signals, signal)
		result.TotalScore += signal.Score
	}

	sort.Slice(result.Signals, func(i, j int) bool {
		if result.Signals[i].Score != result.Signals[j].Score {
			return result.Signals[i].Score > result.Signals[j].Score
		}
		return result.Signals[i].Category > result.Signals[j].Category
	})

	return result
}

// beats reports whether candidate replaces current as a category's winner.
func beats(candidate, current ClassifiedSignal) bool {
	if candidate.Score != current.Score {
		return candidate.Score > current.Score
	}
	if !candidate.HarvestedAt.Equal(current.HarvestedAt) {
		return candidate.HarvestedAt.Before(current.HarvestedAt)
	}
	return candidate.Source < current.Source
}
