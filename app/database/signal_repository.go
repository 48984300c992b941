package database

import (
	"fmt"
	"strings"
)

var _ SignalRepository = (*SignalRepo)(nil)

// SignalRepo handles database operations for scan signals
type SignalRepo struct {
	db *DB
}

func NewSignalRepository(db *DB) *SignalRepo {
	return &SignalRepo{db: db}
}

func (r *SignalRepo) InsertSignal(runID int64, signal Signal) error {
	_, err := r.db.Exec(`
		INSERT INTO signals (run_id, category, score, matched_keywords, title, snippet, source, source_type, url, harvested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, signal.Category, signal.Score, strings.Join(signal.Keywords, ","),
		signal.Title, signal.Snippet, signal.Source, signal.SourceType, signal.URL, signal.HarvestedAt)
	if err != nil {
		return fmt.Errorf("failed to insert signal: %w", err)
	}

	return nil
}

func (r *SignalRepo) GetSignalsForRun(runID int64) ([]Signal, error) {
	rows, err := r.db.Query(`
		SELECT id, run_id, category, score, matched_keywords, title, snippet, source, source_type, url, harvested_at
		FROM signals
		WHERE run_id = ?
		ORDER BY score DESC, id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get signals: %w", err)
	}
	defer rows.Close()

	var signals []Signal
	for rows.Next() {
		var signal Signal
		var keywords string
		err := rows.Scan(
			&signal.ID, &signal.RunID, &signal.Category, &signal.Score, &keywords,
			&signal.Title, &signal.Snippet, &signal.Source, &signal.SourceType,
			&signal.URL, &signal.HarvestedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan signal row: %w", err)
		}
		if keywords != "" {
			signal.Keywords = strings.Split(keywords, ",")
		}
		signals = append(signals, signal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating signal rows: %w", err)
	}

	return signals, nil
}
