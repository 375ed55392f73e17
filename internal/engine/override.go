package engine

import "time"

// timeoutOverride wraps an analyzer with a different timeout. Descriptors
// are immutable after registration, so overrides wrap instead of mutate.
type timeoutOverride struct {
	Analyzer
	timeout time.Duration
}

func (o timeoutOverride) Timeout() time.Duration { return o.timeout }

// WithTimeout returns a view of a with its timeout replaced.
func WithTimeout(a Analyzer, d time.Duration) Analyzer {
	if d <= 0 {
		return a
	}
	return timeoutOverride{Analyzer: a, timeout: d}
}

// disabledOverride wraps an analyzer as disabled.
type disabledOverride struct {
	Analyzer
}

func (disabledOverride) Enabled() bool { return false }

// Disable returns a view of a that the orchestrator will skip.
func Disable(a Analyzer) Analyzer {
	return disabledOverride{Analyzer: a}
}
