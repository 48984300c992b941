package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ ScanRepository = (*ScanRepo)(nil)

// ScanRepo handles database operations for scan runs
type ScanRepo struct {
	db *DB
}

func NewScanRepository(db *DB) *ScanRepo {
	return &ScanRepo{db: db}
}

func (r *ScanRepo) CreateRun(company string) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO scan_runs (company, started_at)
		VALUES (?, ?)
	`, company, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to create scan run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get scan run id: %w", err)
	}

	return runID, nil
}

func (r *ScanRepo) CompleteRun(runID int64, totalScore, signalCount int) error {
	_, err := r.db.Exec(`
		UPDATE scan_runs
		SET completed_at = ?, total_score = ?, signal_count = ?
		WHERE id = ?
	`, time.Now().UTC(), totalScore, signalCount, runID)
	if err != nil {
		return fmt.Errorf("failed to complete scan run: %w", err)
	}

	return nil
}

func (r *ScanRepo) GetRun(runID int64) (*ScanRun, error) {
	var run ScanRun
	err := r.db.QueryRow(`
		SELECT id, company, started_at, completed_at, total_score, signal_count
		FROM scan_runs
		WHERE id = ?
	`, runID).Scan(
		&run.ID, &run.Company, &run.StartedAt, &run.CompletedAt,
		&run.TotalScore, &run.SignalCount,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan run: %w", err)
	}

	return &run, nil
}

// GetRecentRuns returns completed runs ranked by total score, most promising
// first, ties broken by recency.
func (r *ScanRepo) GetRecentRuns(limit int) ([]ScanRun, error) {
	rows, err := r.db.Query(`
		SELECT id, company, started_at, completed_at, total_score, signal_count
		FROM scan_runs
		WHERE completed_at IS NOT NULL
		ORDER BY total_score DESC, started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent scan runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

func (r *ScanRepo) GetLatestRunForCompany(company string) (*ScanRun, error) {
	var run ScanRun
	err := r.db.QueryRow(`
		SELECT id, company, started_at, completed_at, total_score, signal_count
		FROM scan_runs
		WHERE company = ? COLLATE NOCASE AND completed_at IS NOT NULL
		ORDER BY started_at DESC
		LIMIT 1
	`, company).Scan(
		&run.ID, &run.Company, &run.StartedAt, &run.CompletedAt,
		&run.TotalScore, &run.SignalCount,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest scan run: %w", err)
	}

	return &run, nil
}

func (r *ScanRepo) GetRunCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM scan_runs").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get scan run count: %w", err)
	}
	return count, nil
}

func scanRuns(rows *sql.Rows) ([]ScanRun, error) {
	var runs []ScanRun
	for rows.Next() {
		var run ScanRun
		err := rows.Scan(
			&run.ID, &run.Company, &run.StartedAt, &run.CompletedAt,
			&run.TotalScore, &run.SignalCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run rows: %w", err)
	}

	return runs, nil
}
