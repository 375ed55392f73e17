package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/crashlens/crashlens/internal/domain"
)

// Skip reasons recorded under the "skip_reason" metadata key.
const (
	skipDisabled      = "disabled"
	skipNotApplicable = "not_applicable"
	skipCancelled     = "cancelled"
)

type execOutcome struct {
	res *domain.Result
	err error
}

// RunAnalyzer executes one analyzer under the engine's failure policy. It is
// the only place that policy lives: whether the unit returns, fails,
// exceeds its timeout, or panics, the caller receives exactly one Result and
// no panic ever crosses this boundary.
//
// The unit runs under a child context cancelled when its own timeout or the
// caller's ctx fires, whichever comes first. The wrapper never touches the
// shared context's contents; it only measures time and enforces cancellation.
func RunAnalyzer(ctx context.Context, clk clock.Clock, log *zap.Logger, a Analyzer, sc *Context) *domain.Result {
	if clk == nil {
		clk = clock.New()
	}
	if log == nil {
		log = zap.NewNop()
	}

	if !a.Enabled() {
		return skippedResult(a, skipDisabled)
	}
	if ctx.Err() != nil {
		return skippedResult(a, skipCancelled)
	}
	if !a.CanRun(sc) {
		log.Debug("analyzer not applicable",
			zap.String("analyzer", a.Name()),
			zap.String("source", sc.Source()))
		return skippedResult(a, skipNotApplicable)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	timeout := a.Timeout()
	timer := clk.Timer(timeout)
	defer timer.Stop()

	start := clk.Now()
	out := make(chan execOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				out <- execOutcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		res, err := a.Execute(runCtx, sc)
		out <- execOutcome{res: res, err: err}
	}()

	// Once the unit has started it is allowed to finish naturally or hit its
	// own timeout; external cancellation reaches it through runCtx and a
	// cooperative unit returns promptly with the context error.
	var res *domain.Result
	select {
	case o := <-out:
		res = finishResult(ctx, a, o)
	case <-timer.C:
		cancel()
		res = &domain.Result{
			Analyzer: a.Name(),
			Fragment: domain.Empty(),
			Warnings: []string{fmt.Sprintf("analyzer %q exceeded its %s timeout", a.Name(), timeout)},
		}
		log.Warn("analyzer timed out",
			zap.String("analyzer", a.Name()),
			zap.Duration("timeout", timeout))
	}

	res.Elapsed = clk.Since(start)
	log.Debug("analyzer finished",
		zap.String("analyzer", a.Name()),
		zap.Bool("success", res.Success),
		zap.Bool("skipped", res.Skipped),
		zap.Stringer("severity", res.Severity),
		zap.Duration("elapsed", res.Elapsed))
	return res
}

// finishResult normalizes a unit's own return into the Result contract.
func finishResult(ctx context.Context, a Analyzer, o execOutcome) *domain.Result {
	if o.err != nil {
		// A unit that bailed out because the run was cancelled was not at
		// fault; it is skipped, not failed.
		if ctx.Err() != nil && errors.Is(o.err, context.Canceled) {
			return skippedResult(a, skipCancelled)
		}
		res := o.res
		if res == nil {
			res = &domain.Result{Analyzer: a.Name(), Fragment: domain.Empty()}
		}
		res.Analyzer = a.Name()
		res.Success = false
		res.AddWarning(o.err.Error())
		return res
	}
	res := o.res
	if res == nil {
		// A nil result with no error counts as an empty success.
		res = domain.NewResult(a.Name())
	}
	res.Analyzer = a.Name()
	if res.Fragment == nil {
		res.Fragment = domain.Empty()
	}
	return res
}

func skippedResult(a Analyzer, reason string) *domain.Result {
	res := &domain.Result{
		Analyzer: a.Name(),
		Success:  true,
		Skipped:  true,
		Fragment: domain.Empty(),
	}
	res.SetMeta("skip_reason", reason)
	return res
}
