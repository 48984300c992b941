package config

import (
	"time"
)

// GetTimeout returns the per-request source timeout as time.Duration.
func (s *Sources) GetTimeout() time.Duration {
	if s.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(s.Timeout) * time.Second
}
