package harvest

import (
	"context"

	"github.com/cdpscan/cdpscan/app/scan"
)

// RunnerInterface defines the interface for running a complete scan of one
// company. Used by the CLI one-shot path and by background scan tasks.
type RunnerInterface interface {
	Run(ctx context.Context, company string) (scan.ScanResult, error)
}
