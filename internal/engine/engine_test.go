package engine

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/crashlens/crashlens/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeUnit is a scriptable analyzer for engine tests.
type fakeUnit struct {
	Meta
	canRun  func(*Context) bool
	execute func(ctx context.Context, sc *Context) (*domain.Result, error)
}

func (f *fakeUnit) CanRun(sc *Context) bool {
	if f.canRun == nil {
		return true
	}
	return f.canRun(sc)
}

func (f *fakeUnit) Execute(ctx context.Context, sc *Context) (*domain.Result, error) {
	if f.execute == nil {
		return domain.NewResult(f.ID), nil
	}
	return f.execute(ctx, sc)
}

func unit(name string, priority int, timeout time.Duration) *fakeUnit {
	return &fakeUnit{Meta: Meta{ID: name, Order: priority, Deadline: timeout}}
}

// sleeper returns an execute func that blocks for d unless cancelled first.
func sleeper(d time.Duration, sev domain.Severity) func(context.Context, *Context) (*domain.Result, error) {
	return func(ctx context.Context, sc *Context) (*domain.Result, error) {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return &domain.Result{Success: true, Severity: sev, Fragment: domain.Empty()}, nil
	}
}
