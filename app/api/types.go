package api

import (
	"github.com/cdpscan/cdpscan/app/config"
	"github.com/cdpscan/cdpscan/app/database"
	"github.com/cdpscan/cdpscan/app/tasks"
)

type Handler struct {
	scanRepo   database.ScanRepository
	signalRepo database.SignalRepository
	scanConfig *config.Config
	scheduler  tasks.TaskSchedulerInterface
}

// runResponse is the JSON shape of one scan run.
type runResponse struct {
	ID          int64  `json:"id"`
	Company     string `json:"company"`
	StartedAt   string `json:"started_at"`
	CompletedAt string `json:"completed_at,omitempty"`
	TotalScore  int    `json:"total_score"`
	SignalCount int    `json:"signal_count"`
}

// signalResponse is the JSON shape of one ranked signal.
type signalResponse struct {
	Category    string   `json:"category"`
	Score       int      `json:"score"`
	Keywords    []string `json:"matched_keywords"`
	Title       string   `json:"title"`
	Snippet     string   `json:"snippet,omitempty"`
	Source      string   `json:"source"`
	SourceType  string   `json:"source_type"`
	URL         string   `json:"url,omitempty"`
	HarvestedAt string   `json:"harvested_at"`
}

type enqueueRequest struct {
	Companies []string `json:"companies" binding:"required"`
}
