package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cdpscan/cdpscan/app/database"
	"github.com/cdpscan/cdpscan/app/harvest"
	"github.com/cdpscan/cdpscan/app/scan"
)

type ScanCompanyTask struct {
	Task
	runner     harvest.RunnerInterface
	scanRepo   database.ScanRepository
	signalRepo database.SignalRepository
}

func NewScanCompanyTask(company string, runner harvest.RunnerInterface,
	scanRepo database.ScanRepository, signalRepo database.SignalRepository) *ScanCompanyTask {
	return &ScanCompanyTask{
		Task:       NewTask(TaskTypeScanCompany, company),
		runner:     runner,
		scanRepo:   scanRepo,
		signalRepo: signalRepo,
	}
}

func (t *ScanCompanyTask) Execute(ctx context.Context) error {
	_, err := t.ExecuteWithResult(ctx)
	return err
}

// ExecuteWithResult runs the scan and returns the result alongside
// persisting it. The one-shot CLI path uses the result directly for CSV
// export and the console summary.
func (t *ScanCompanyTask) ExecuteWithResult(ctx context.Context) (scan.ScanResult, error) {

	select {
	case <-ctx.Done():
		return scan.ScanResult{}, ctx.Err()
	default:
	}

	runID, err := t.scanRepo.CreateRun(t.Company)
	if err != nil {
		return scan.ScanResult{}, fmt.Errorf("failed to create scan run: %w", err)
	}

	result, err := t.runner.Run(ctx, t.Company)
	if err != nil {
		return scan.ScanResult{}, fmt.Errorf("failed to scan company: %w", err)
	}

	for _, signal := range result.Signals {
		record := database.Signal{
			Category:    signal.Category.String(),
			Score:       signal.Score,
			Keywords:    signal.Keywords,
			Title:       signal.Title,
			Snippet:     signal.Snippet,
			Source:      signal.Source,
			SourceType:  string(signal.SourceType),
			URL:         signal.URL,
			HarvestedAt: signal.HarvestedAt,
		}
		if err := t.signalRepo.InsertSignal(runID, record); err != nil {
			return scan.ScanResult{}, fmt.Errorf("failed to store signal: %w", err)
		}
	}

	if err := t.scanRepo.CompleteRun(runID, result.TotalScore, len(result.Signals)); err != nil {
		return scan.ScanResult{}, fmt.Errorf("failed to complete scan run: %w", err)
	}

	slog.Info("Scan task completed", "company", t.Company, "run_id", runID,
		"signals", len(result.Signals), "total_score", result.TotalScore,
		"duration", t.GetDuration().String())

	return result, nil
}
