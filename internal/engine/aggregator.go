package engine

import (
	"github.com/crashlens/crashlens/internal/domain"
)

// Aggregator folds per-analyzer results into one overall verdict. The
// running severity is the maximum observed so far, so folds are associative,
// commutative, and monotonic non-decreasing: once an error-level result is
// seen, no later fold can lower the verdict.
type Aggregator struct {
	severity domain.Severity
	notes    []string

	recommendations []string
	seen            map[string]struct{}
}

// NewAggregator creates an aggregator with a pre-existing severity floor.
// Hosts that already know something about the report (e.g. "a crash
// happened, so at least info") seed the floor; SeverityNone starts neutral.
func NewAggregator(floor domain.Severity) *Aggregator {
	return &Aggregator{
		severity: floor,
		seen:     make(map[string]struct{}),
	}
}

// Fold merges one result into the running verdict. Warnings are collected
// verbatim; recommendations are collapsed so two catalog entries carrying
// the identical advice string yield one entry in the final set.
func (g *Aggregator) Fold(res *domain.Result) {
	if res == nil {
		return
	}
	g.severity = g.severity.Max(res.Severity)
	g.notes = append(g.notes, res.Warnings...)
	for _, rec := range res.Recommendations {
		if _, dup := g.seen[rec]; dup {
			continue
		}
		g.seen[rec] = struct{}{}
		g.recommendations = append(g.recommendations, rec)
	}
}

// Severity returns the current overall verdict.
func (g *Aggregator) Severity() domain.Severity {
	return g.severity
}

// Notes returns every collected warning message, in fold order.
func (g *Aggregator) Notes() []string {
	return g.notes
}

// Recommendations returns the deduplicated advice strings, in first-seen
// order.
func (g *Aggregator) Recommendations() []string {
	return g.recommendations
}
