package harvest

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cdpscan/cdpscan/app/scan"
	"github.com/cdpscan/cdpscan/app/sources"
)

var _ RunnerInterface = (*Runner)(nil)

// Runner scans one company: it fans out to every enabled source
// concurrently, waits for all of them, then classifies and aggregates the
// collected signals. Classification never starts on a partial harvest.
type Runner struct {
	sources    []sources.Source
	pipeline   *scan.Pipeline
	aggregator *scan.Aggregator
}

func NewRunner(srcs []sources.Source, pipeline *scan.Pipeline, aggregator *scan.Aggregator) *Runner {
	return &Runner{
		sources:    srcs,
		pipeline:   pipeline,
		aggregator: aggregator,
	}
}

func (r *Runner) Run(ctx context.Context, company string) (scan.ScanResult, error) {
	raw := r.collect(ctx, company)

	classified := make([]scan.ClassifiedSignal, 0, len(raw))
	for _, signal := range raw {
		result, err := r.pipeline.Run(signal)
		if err != nil {
			// A scoring hole is a config defect, not a signal defect.
			// Drop the signal and keep the scan alive.
			slog.Warn("Signal dropped", "company", company, "source", signal.Source, "error", err)
			continue
		}
		classified = append(classified, result)
	}

	result := r.aggregator.Run(company, classified)

	slog.Info("Company scan completed", "company", company,
		"raw_signals", len(raw), "ranked_signals", len(result.Signals), "total_score", result.TotalScore)

	return result, nil
}

// collect runs every source in its own goroutine and merges the results in
// source registration order so output is deterministic regardless of which
// fetch finishes first.
func (r *Runner) collect(ctx context.Context, company string) []scan.RawSignal {
	perSource := make([][]scan.RawSignal, len(r.sources))

	var wg sync.WaitGroup
	for i, src := range r.sources {
		wg.Add(1)
		go func(i int, src sources.Source) {
			defer wg.Done()

			signals, err := src.Fetch(ctx, company)
			if err != nil {
				slog.Warn("Source fetch failed", "company", company, "source", src.Name(), "error", err)
				return
			}

			slog.Debug("Source fetched", "company", company, "source", src.Name(), "signals", len(signals))
			perSource[i] = signals
		}(i, src)
	}
	wg.Wait()

	var raw []scan.RawSignal
	for _, signals := range perSource {
		raw = append(raw, signals...)
	}
	return raw
}
