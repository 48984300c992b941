package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cdpscan/cdpscan/app/config"
	"github.com/cdpscan/cdpscan/app/database"
	"github.com/cdpscan/cdpscan/app/tasks"
)

const defaultRunLimit = 50

func NewHandler(scanConfig *config.Config, scanRepo database.ScanRepository,
	signalRepo database.SignalRepository, scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		scanRepo:   scanRepo,
		signalRepo: signalRepo,
		scanConfig: scanConfig,
		scheduler:  scheduler,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if runCount, err := h.scanRepo.GetRunCount(); err == nil {
		health["scan_runs"] = runCount
	}

	lists := h.scanConfig.Keywords.Lists()
	keywords := make(map[string]int, len(lists))
	for name, phrases := range lists {
		keywords[name] = len(phrases)
	}
	health["keyword_lists"] = keywords

	c.JSON(http.StatusOK, health)
}

// GetScans lists completed runs ranked by total score.
func (h *Handler) GetScans(c *gin.Context) {
	limit := defaultRunLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	runs, err := h.scanRepo.GetRecentRuns(limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_recent_runs", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	out := make([]runResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, toRunResponse(run))
	}

	c.JSON(http.StatusOK, gin.H{"scans": out})
}

func (h *Handler) GetScan(c *gin.Context) {
	runID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scan id"})
		return
	}

	run, err := h.scanRepo.GetRun(runID)
	if err != nil {
		slog.Error("Database error", "operation", "get_run", "run_id", runID, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "scan not found"})
		return
	}

	h.renderRun(c, *run)
}

// GetCompany returns the latest completed scan for a company.
func (h *Handler) GetCompany(c *gin.Context) {
	company := c.Param("name")

	run, err := h.scanRepo.GetLatestRunForCompany(company)
	if err != nil {
		slog.Error("Database error", "operation", "get_latest_run", "company", company, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no completed scans for company"})
		return
	}

	h.renderRun(c, *run)
}

// APIEnqueueScans queues a background scan for each given company.
func (h *Handler) APIEnqueueScans(c *gin.Context) {
	var req enqueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "companies list required"})
		return
	}

	queued := make([]string, 0, len(req.Companies))
	for _, company := range req.Companies {
		if company == "" {
			continue
		}
		if err := h.scheduler.EnqueueScan(company); err != nil {
			slog.Warn("Failed to enqueue scan", "company", company, "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scan queue is full", "queued": queued})
			return
		}
		queued = append(queued, company)
	}

	if len(queued) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "companies list required"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"queued": queued})
}

func (h *Handler) renderRun(c *gin.Context, run database.ScanRun) {
	signals, err := h.signalRepo.GetSignalsForRun(run.ID)
	if err != nil {
		slog.Error("Database error", "operation", "get_signals", "run_id", run.ID, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	out := make([]signalResponse, 0, len(signals))
	for _, signal := range signals {
		out = append(out, signalResponse{
			Category:    signal.Category,
			Score:       signal.Score,
			Keywords:    signal.Keywords,
			Title:       signal.Title,
			Snippet:     signal.Snippet,
			Source:      signal.Source,
			SourceType:  signal.SourceType,
			URL:         signal.URL,
			HarvestedAt: signal.HarvestedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"scan":    toRunResponse(run),
		"signals": out,
	})
}

func toRunResponse(run database.ScanRun) runResponse {
	resp := runResponse{
		ID:          run.ID,
		Company:     run.Company,
		StartedAt:   run.StartedAt.Format(time.RFC3339),
		TotalScore:  run.TotalScore,
		SignalCount: run.SignalCount,
	}
	if run.CompletedAt != nil {
		resp.CompletedAt = run.CompletedAt.Format(time.RFC3339)
	}
	return resp
}
