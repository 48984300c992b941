package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cdpscan/cdpscan/app/config"
	"github.com/cdpscan/cdpscan/app/database"
	"github.com/cdpscan/cdpscan/app/tasks"
)

type stubScanRepo struct {
	runs    map[int64]database.ScanRun
	byName  map[string]database.ScanRun
	recents []database.ScanRun
}

func (s *stubScanRepo) CreateRun(string) (int64, error)          { return 0, nil }
func (s *stubScanRepo) CompleteRun(int64, int, int) error        { return nil }
func (s *stubScanRepo) GetRunCount() (int, error)                { return len(s.runs), nil }
func (s *stubScanRepo) GetRecentRuns(limit int) ([]database.ScanRun, error) {
	if limit < len(s.recents) {
		return s.recents[:limit], nil
	}
	return s.recents, nil
}

func (s *stubScanRepo) GetRun(runID int64) (*database.ScanRun, error) {
	if run, ok := s.runs[runID]; ok {
		return &run, nil
	}
	return nil, nil
}

func (s *stubScanRepo) GetLatestRunForCompany(company string) (*database.ScanRun, error) {
	if run, ok := s.byName[strings.ToLower(company)]; ok {
		return &run, nil
	}
	return nil, nil
}

type stubSignalRepo struct {
	signals map[int64][]database.Signal
}

func (s *stubSignalRepo) InsertSignal(int64, database.Signal) error { return nil }
func (s *stubSignalRepo) GetSignalsForRun(runID int64) ([]database.Signal, error) {
	return s.signals[runID], nil
}

type stubScheduler struct {
	queued []string
	err    error
}

func (s *stubScheduler) Start()                              {}
func (s *stubScheduler) Stop()                               {}
func (s *stubScheduler) EnqueueTask(tasks.TaskInterface) error { return s.err }
func (s *stubScheduler) EnqueueScan(company string) error {
	if s.err != nil {
		return s.err
	}
	s.queued = append(s.queued, company)
	return nil
}

func testServer(scheduler tasks.TaskSchedulerInterface, apiKey string) (*httptest.Server, *stubScanRepo, *stubSignalRepo) {
	completed := time.Date(2025, 6, 2, 10, 5, 0, 0, time.UTC)
	run := database.ScanRun{
		ID: 1, Company: "Initech",
		StartedAt:   completed.Add(-5 * time.Minute),
		CompletedAt: &completed,
		TotalScore:  7, SignalCount: 2,
	}

	scanRepo := &stubScanRepo{
		runs:    map[int64]database.ScanRun{1: run},
		byName:  map[string]database.ScanRun{"initech": run},
		recents: []database.ScanRun{run},
	}
	signalRepo := &stubSignalRepo{
		signals: map[int64][]database.Signal{
			1: {
				{RunID: 1, Category: "hiring-target-persona", Score: 5,
					Keywords: []string{"vp marketing"}, Title: "VP Marketing",
					Source: "greenhouse", SourceType: "job_board", HarvestedAt: completed},
				{RunID: 1, Category: "funding-or-expansion", Score: 2,
					Keywords: []string{"series"}, Title: "Initech raises Series B",
					Source: "newsfeed", SourceType: "news", HarvestedAt: completed},
			},
		},
	}

	handler := NewHandler(config.Default(), scanRepo, signalRepo, scheduler)
	server := httptest.NewServer(NewServer(handler, apiKey))

	return server, scanRepo, signalRepo
}

func getJSON(t *testing.T, url string) (int, map[string]interface{}) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return resp.StatusCode, body
}

func TestGetHealth(t *testing.T) {
	server, _, _ := testServer(&stubScheduler{}, "")
	defer server.Close()

	status, body := getJSON(t, server.URL+"/health")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	if _, ok := body["scan_runs"]; !ok {
		t.Error("expected scan_runs in health payload")
	}

	lists, ok := body["keyword_lists"].(map[string]interface{})
	if !ok {
		t.Fatal("expected keyword_lists in health payload")
	}
	if _, ok := lists["cdp_vendors"]; !ok {
		t.Errorf("expected cdp_vendors list stats, got %v", lists)
	}
}

func TestGetScans(t *testing.T) {
	server, _, _ := testServer(&stubScheduler{}, "")
	defer server.Close()

	status, body := getJSON(t, server.URL+"/scans")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	scans, ok := body["scans"].([]interface{})
	if !ok || len(scans) != 1 {
		t.Fatalf("expected 1 scan, got %v", body["scans"])
	}

	first := scans[0].(map[string]interface{})
	if first["company"] != "Initech" || first["total_score"] != float64(7) {
		t.Errorf("unexpected scan payload: %v", first)
	}
}

func TestGetScansInvalidLimit(t *testing.T) {
	server, _, _ := testServer(&stubScheduler{}, "")
	defer server.Close()

	status, _ := getJSON(t, server.URL+"/scans?limit=zero")
	if status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
}

func TestGetScanWithSignals(t *testing.T) {
	server, _, _ := testServer(&stubScheduler{}, "")
	defer server.Close()

	status, body := getJSON(t, server.URL+"/scans/1")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	signals, ok := body["signals"].([]interface{})
	if !ok || len(signals) != 2 {
		t.Fatalf("expected 2 signals, got %v", body["signals"])
	}

	first := signals[0].(map[string]interface{})
	if first["category"] != "hiring-target-persona" {
		t.Errorf("unexpected first signal: %v", first)
	}
}

func TestGetScanNotFound(t *testing.T) {
	server, _, _ := testServer(&stubScheduler{}, "")
	defer server.Close()

	status, _ := getJSON(t, server.URL+"/scans/99")
	if status != http.StatusNotFound {
		t.Errorf("expected 404, got %d", status)
	}
}

func TestGetCompanyCaseInsensitive(t *testing.T) {
	server, _, _ := testServer(&stubScheduler{}, "")
	defer server.Close()

	status, body := getJSON(t, server.URL+"/companies/INITECH")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	scan, ok := body["scan"].(map[string]interface{})
	if !ok || scan["company"] != "Initech" {
		t.Errorf("unexpected company payload: %v", body)
	}
}

func TestAPIEnqueueScansRequiresKey(t *testing.T) {
	server, _, _ := testServer(&stubScheduler{}, "secret")
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/scans", "application/json",
		strings.NewReader(`{"companies": ["Initech"]}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without key, got %d", resp.StatusCode)
	}
}

func TestAPIEnqueueScans(t *testing.T) {
	scheduler := &stubScheduler{}
	server, _, _ := testServer(scheduler, "secret")
	defer server.Close()

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/scans",
		strings.NewReader(`{"companies": ["Initech", "Globex"]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "secret")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.StatusCode)
	}
	if len(scheduler.queued) != 2 || scheduler.queued[0] != "Initech" {
		t.Errorf("expected both companies queued, got %v", scheduler.queued)
	}
}

func TestAPIEnqueueScansQueueFull(t *testing.T) {
	scheduler := &stubScheduler{err: errors.New("task queue is full")}
	server, _, _ := testServer(scheduler, "secret")
	defer server.Close()

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/scans",
		strings.NewReader(`{"companies": ["Initech"]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "secret")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", resp.StatusCode)
	}
}
