package sources

import (
	"context"

	"github.com/cdpscan/cdpscan/app/scan"
)

// Source produces raw signals for a company from one external feed. Adapters
// are independent and interchangeable; the pipeline only ever sees the
// RawSignals they emit. A Fetch error means the source contributes nothing
// for that company; the caller logs it and moves on.
type Source interface {
	Name() string
	Type() scan.SourceType
	Fetch(ctx context.Context, company string) ([]scan.RawSignal, error)
}
