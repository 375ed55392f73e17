package engine

import (
	"context"
	"time"

	"github.com/crashlens/crashlens/internal/domain"
)

// Analyzer is one independently schedulable piece of crash-report analysis.
// Implementations read facts from the shared Context, may write new facts
// for later bands, and return a Result describing what they found.
//
// Execute must honor ctx: the wrapper cancels it when the unit's timeout or
// the run's external cancellation fires. Returning an error marks the unit
// failed; the orchestration run itself continues.
type Analyzer interface {
	// Name is the unique, stable identifier of the unit.
	Name() string
	// DisplayName is the human-readable title used in reports.
	DisplayName() string
	// Priority orders execution; lower values run earlier. Units sharing a
	// priority form a band and may run concurrently.
	Priority() int
	// Timeout bounds one execution of this unit.
	Timeout() time.Duration
	// Enabled reports whether the unit should be scheduled at all.
	Enabled() bool
	// CanRun checks, against the current context state, whether the unit is
	// applicable. Returning false skips the unit without error.
	CanRun(sc *Context) bool
	// Execute performs the analysis.
	Execute(ctx context.Context, sc *Context) (*domain.Result, error)
}

// Meta carries an analyzer's descriptor fields. Concrete analyzers embed it
// to satisfy the descriptor half of the Analyzer interface; the fields are
// set at construction and must not change after registration.
type Meta struct {
	ID       string
	Title    string
	Order    int
	Deadline time.Duration
	Disabled bool
}

// Name implements Analyzer.
func (m Meta) Name() string { return m.ID }

// DisplayName implements Analyzer.
func (m Meta) DisplayName() string {
	if m.Title == "" {
		return m.ID
	}
	return m.Title
}

// Priority implements Analyzer.
func (m Meta) Priority() int { return m.Order }

// Timeout implements Analyzer. A zero deadline falls back to DefaultTimeout.
func (m Meta) Timeout() time.Duration {
	if m.Deadline <= 0 {
		return DefaultTimeout
	}
	return m.Deadline
}

// Enabled implements Analyzer.
func (m Meta) Enabled() bool { return !m.Disabled }

// DefaultTimeout bounds analyzers that do not declare their own deadline.
const DefaultTimeout = 30 * time.Second
