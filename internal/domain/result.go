package domain

import "time"

// Result is the outcome of one analyzer run. Every scheduled analyzer yields
// exactly one Result, failed, timed out and skipped runs included, so the
// caller can always audit what happened.
type Result struct {
	// Analyzer is the unique name of the unit that produced this result.
	Analyzer string `json:"analyzer"`

	// Success is false when the unit failed, timed out or panicked.
	Success bool `json:"success"`

	// Skipped marks units that never ran: disabled, not applicable to the
	// current context, or cancelled before their band was scheduled.
	Skipped bool `json:"skipped"`

	// Severity is the unit's verdict. Skipped and failed units report
	// SeverityNone unless the unit set one before failing.
	Severity Severity `json:"severity"`

	// Fragment is the unit's contribution to the merged report. May be empty.
	Fragment *Fragment `json:"-"`

	// Warnings carries free-text warning/error messages, including the
	// timeout or panic message for failed units.
	Warnings []string `json:"warnings,omitempty"`

	// Recommendations carries catalog advice strings. The aggregator
	// collapses duplicates across all results.
	Recommendations []string `json:"recommendations,omitempty"`

	// Metadata holds diagnostic key/value pairs (skip reason, match counts).
	Metadata map[string]string `json:"metadata,omitempty"`

	// Elapsed is the measured run duration. Zero for skipped units.
	Elapsed time.Duration `json:"elapsed"`
}

// NewResult returns a successful, severity-none result for the named unit.
func NewResult(analyzer string) *Result {
	return &Result{
		Analyzer: analyzer,
		Success:  true,
		Fragment: Empty(),
	}
}

// WithSeverity sets the result severity and returns the result for chaining.
func (r *Result) WithSeverity(s Severity) *Result {
	r.Severity = s
	return r
}

// WithFragment sets the report fragment and returns the result for chaining.
func (r *Result) WithFragment(f *Fragment) *Result {
	r.Fragment = f
	return r
}

// AddWarning appends a free-text warning message.
func (r *Result) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// AddRecommendation appends a catalog advice string.
func (r *Result) AddRecommendation(text string) {
	r.Recommendations = append(r.Recommendations, text)
}

// SetMeta records a diagnostic key/value pair.
func (r *Result) SetMeta(key, value string) {
	if r.Metadata == nil {
		r.Metadata = make(map[string]string)
	}
	r.Metadata[key] = value
}
