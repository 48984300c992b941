package scan

import (
	"fmt"
)

// ConfigError reports missing or malformed scan configuration. It is fatal:
// the registry is shared by the whole run, so a scan never starts with a
// broken one.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid scan configuration: %s: %s", e.Field, e.Reason)
}

// ScoringConfigError reports a winning category without a configured weight.
// Registry validation makes this unreachable in a correctly loaded run, so it
// is treated as an invariant violation: the offending signal is logged and
// dropped, never scored as zero silently.
type ScoringConfigError struct {
	Category Category
}

func (e *ScoringConfigError) Error() string {
	return fmt.Sprintf("no scoring weight configured for category %q", e.Category)
}
