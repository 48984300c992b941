package database

// ScanRepository defines database operations for scan runs. Used by the
// background scan tasks to record runs and by the API handlers to read them.
type ScanRepository interface {
	CreateRun(company string) (int64, error)
	CompleteRun(runID int64, totalScore, signalCount int) error

	GetRun(runID int64) (*ScanRun, error)
	GetRecentRuns(limit int) ([]ScanRun, error)
	GetLatestRunForCompany(company string) (*ScanRun, error)
	GetRunCount() (int, error)
}

// SignalRepository defines database operations for the signals belonging to
// a scan run.
type SignalRepository interface {
	InsertSignal(runID int64, signal Signal) error
	GetSignalsForRun(runID int64) ([]Signal, error)
}
