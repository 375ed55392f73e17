package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/crashlens/crashlens/internal/domain"
)

// Policy selects how units that share a priority are scheduled.
type Policy int

const (
	// PolicyBanded groups units by priority into ordered bands; a band's
	// members run concurrently, and a band never starts before the previous
	// band has fully completed. This is the default.
	PolicyBanded Policy = iota
	// PolicySequential runs every unit one at a time in priority order.
	PolicySequential
	// PolicyParallel launches every runnable unit at once. Units that depend
	// on facts populated by earlier priorities will typically skip
	// themselves, so this policy suits independent unit sets only.
	PolicyParallel
)

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicySequential:
		return "sequential"
	case PolicyParallel:
		return "parallel"
	default:
		return "banded"
	}
}

// ParsePolicy converts a configuration name to a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "banded", "":
		return PolicyBanded, nil
	case "sequential":
		return PolicySequential, nil
	case "parallel":
		return PolicyParallel, nil
	default:
		return PolicyBanded, fmt.Errorf("unknown concurrency policy %q", name)
	}
}

// Options configures one orchestration run. The zero value uses the banded
// policy, the real clock, no logging, and a SeverityNone floor.
type Options struct {
	Policy Policy
	// Clock drives timeout and duration measurement; tests inject a mock.
	Clock clock.Clock
	// Logger receives structured run diagnostics. Nil means no logging.
	Logger *zap.Logger
	// Floor seeds the aggregator with a pre-existing severity.
	Floor domain.Severity
}

// Outcome is everything one orchestration run produced.
type Outcome struct {
	// Severity is the aggregated overall verdict.
	Severity domain.Severity
	// Report is the merged fragment tree: fragments sorted by order key,
	// content-free fragments dropped.
	Report *domain.Fragment
	// Results holds exactly one entry per scheduled unit, in (priority,
	// registration) order, failed and skipped units included.
	Results []*domain.Result
	// Recommendations is the deduplicated advice collected across results.
	Recommendations []string
	// Notes is every warning message collected across results.
	Notes []string
}

// Run executes the analyzer suite against the shared context and aggregates
// the per-unit results into one verdict and one merged report.
//
// Units are sorted by ascending priority with registration order as the
// tie-break, partitioned into priority bands, and scheduled band by band
// under the configured policy. CanRun is evaluated against the context state
// current at the unit's launch, which is why band ordering matters: later
// bands read facts earlier bands populate.
//
// Individual unit failures never abort the run. Cancelling ctx stops
// scheduling further bands; in-flight units finish naturally or hit their
// own timeouts, and every unscheduled unit still yields a skipped Result.
func Run(ctx context.Context, units []Analyzer, sc *Context, opts Options) *Outcome {
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ordered := make([]Analyzer, len(units))
	copy(ordered, units)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() < ordered[j].Priority()
	})

	bands := partition(ordered, opts.Policy)

	var results []*domain.Result
	cancelled := false
	for i, band := range bands {
		if ctx.Err() != nil {
			cancelled = true
		}
		if cancelled {
			// Stop issuing bands; every unscheduled unit still gets a Result.
			for _, a := range band {
				results = append(results, skippedResult(a, skipCancelled))
			}
			continue
		}

		log.Debug("starting band",
			zap.Int("band", i),
			zap.Int("priority", band[0].Priority()),
			zap.Int("units", len(band)))
		results = append(results, runBand(ctx, clk, log, band, sc, opts.Policy)...)
	}

	agg := NewAggregator(opts.Floor)
	report := domain.Empty()
	for _, res := range results {
		agg.Fold(res)
		if res.Success && !res.Skipped {
			report = domain.Merge(report, res.Fragment)
		}
	}

	outcome := &Outcome{
		Severity:        agg.Severity(),
		Report:          report.Sorted(),
		Results:         results,
		Recommendations: agg.Recommendations(),
		Notes:           agg.Notes(),
	}
	log.Info("orchestration complete",
		zap.String("source", sc.Source()),
		zap.Stringer("severity", outcome.Severity),
		zap.Int("units", len(results)))
	return outcome
}

// partition groups the priority-sorted units into ordered bands. The
// parallel policy collapses everything into a single band.
func partition(ordered []Analyzer, policy Policy) [][]Analyzer {
	if len(ordered) == 0 {
		return nil
	}
	if policy == PolicyParallel {
		return [][]Analyzer{ordered}
	}
	var bands [][]Analyzer
	start := 0
	for i := 1; i <= len(ordered); i++ {
		if i == len(ordered) || ordered[i].Priority() != ordered[start].Priority() {
			bands = append(bands, ordered[start:i])
			start = i
		}
	}
	return bands
}

// runBand executes one band's members and returns their results in
// registration order, so report ordering stays reproducible no matter which
// unit completed first.
func runBand(ctx context.Context, clk clock.Clock, log *zap.Logger, band []Analyzer, sc *Context, policy Policy) []*domain.Result {
	results := make([]*domain.Result, len(band))

	if policy == PolicySequential || len(band) == 1 {
		for i, a := range band {
			results[i] = RunAnalyzer(ctx, clk, log, a, sc)
		}
		return results
	}

	// The wrapper never returns an error and sibling units must not cancel
	// each other, so the group exists purely for the join.
	var g errgroup.Group
	for i, a := range band {
		g.Go(func() error {
			results[i] = RunAnalyzer(ctx, clk, log, a, sc)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
