package database

import (
	"time"
)

// ScanRun represents one completed or in-flight scan of a company.
type ScanRun struct {
	ID          int64
	Company     string
	StartedAt   time.Time
	CompletedAt *time.Time
	TotalScore  int
	SignalCount int
}

// Signal represents one ranked signal attached to a scan run.
type Signal struct {
	ID          int64
	RunID       int64
	Category    string
	Score       int
	Keywords    []string
	Title       string
	Snippet     string
	Source      string
	SourceType  string
	URL         string
	HarvestedAt time.Time
}
