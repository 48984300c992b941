package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cdpscan/cdpscan/app/database"
	"github.com/cdpscan/cdpscan/app/scan"
)

type fakeRunner struct {
	result scan.ScanResult
	err    error
}

func (f *fakeRunner) Run(_ context.Context, company string) (scan.ScanResult, error) {
	if f.err != nil {
		return scan.ScanResult{}, f.err
	}
	result := f.result
	result.Company = company
	return result, nil
}

type fakeScanRepo struct {
	created   []string
	completed map[int64][2]int
	createErr error
}

func (f *fakeScanRepo) CreateRun(company string) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.created = append(f.created, company)
	return int64(len(f.created)), nil
}

func (f *fakeScanRepo) CompleteRun(runID int64, totalScore, signalCount int) error {
	if f.completed == nil {
		f.completed = make(map[int64][2]int)
	}
	f.completed[runID] = [2]int{totalScore, signalCount}
	return nil
}

func (f *fakeScanRepo) GetRun(int64) (*database.ScanRun, error)           { return nil, nil }
func (f *fakeScanRepo) GetRecentRuns(int) ([]database.ScanRun, error)     { return nil, nil }
func (f *fakeScanRepo) GetLatestRunForCompany(string) (*database.ScanRun, error) { return nil, nil }
func (f *fakeScanRepo) GetRunCount() (int, error)                         { return len(f.created), nil }

type fakeSignalRepo struct {
	inserted []database.Signal
}

func (f *fakeSignalRepo) InsertSignal(_ int64, signal database.Signal) error {
	f.inserted = append(f.inserted, signal)
	return nil
}

func (f *fakeSignalRepo) GetSignalsForRun(int64) ([]database.Signal, error) { return nil, nil }

func TestScanCompanyTaskExecute(t *testing.T) {
	runner := &fakeRunner{
		result: scan.ScanResult{
			Signals: []scan.ClassifiedSignal{
				{
					Category: scan.CategoryHiringTargetPersona,
					Keywords: []string{"vp marketing"},
					Score:    5,
					Source:   "greenhouse", SourceType: scan.SourceTypeJobBoard,
					Title: "VP Marketing", HarvestedAt: time.Now().UTC(),
				},
			},
			TotalScore: 5,
		},
	}
	scanRepo := &fakeScanRepo{}
	signalRepo := &fakeSignalRepo{}

	task := NewScanCompanyTask("Initech", runner, scanRepo, signalRepo)
	task.Start()

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(scanRepo.created) != 1 || scanRepo.created[0] != "Initech" {
		t.Errorf("expected one run created for Initech, got %v", scanRepo.created)
	}
	if len(signalRepo.inserted) != 1 {
		t.Fatalf("expected 1 signal stored, got %d", len(signalRepo.inserted))
	}

	stored := signalRepo.inserted[0]
	if stored.Category != "hiring-target-persona" || stored.Score != 5 {
		t.Errorf("unexpected stored signal: %+v", stored)
	}
	if stored.SourceType != "job_board" {
		t.Errorf("unexpected source type: %q", stored.SourceType)
	}

	totals, ok := scanRepo.completed[1]
	if !ok {
		t.Fatal("expected run completed")
	}
	if totals != [2]int{5, 1} {
		t.Errorf("unexpected run totals: %v", totals)
	}
}

func TestScanCompanyTaskExecuteRunnerError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("all sources unreachable")}
	scanRepo := &fakeScanRepo{}

	task := NewScanCompanyTask("Initech", runner, scanRepo, &fakeSignalRepo{})

	if err := task.Execute(context.Background()); err == nil {
		t.Fatal("expected error from failed scan")
	}
	if _, ok := scanRepo.completed[1]; ok {
		t.Error("expected run left incomplete after failure")
	}
}

func TestScanCompanyTaskRetryBookkeeping(t *testing.T) {
	task := NewScanCompanyTask("Initech", &fakeRunner{}, &fakeScanRepo{}, &fakeSignalRepo{})

	if task.GetType() != TaskTypeScanCompany {
		t.Errorf("unexpected task type: %q", task.GetType())
	}
	if task.GetCompany() != "Initech" {
		t.Errorf("unexpected company: %q", task.GetCompany())
	}

	for i := 0; i < DefaultMaxRetries; i++ {
		if !task.CanRetry() {
			t.Fatalf("expected retry %d allowed", i+1)
		}
		task.IncrementRetryCount()
	}
	if task.CanRetry() {
		t.Error("expected retries exhausted")
	}
}
