package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crashlens/crashlens/internal/domain"
)

func TestRunOrdersResultsByPriority(t *testing.T) {
	units := []Analyzer{
		unit("third", 30, time.Second),
		unit("first", 10, time.Second),
		unit("second", 20, time.Second),
	}

	outcome := Run(context.Background(), units, NewContext("t"), Options{})

	require.Len(t, outcome.Results, 3)
	assert.Equal(t, "first", outcome.Results[0].Analyzer)
	assert.Equal(t, "second", outcome.Results[1].Analyzer)
	assert.Equal(t, "third", outcome.Results[2].Analyzer)
}

func TestRunRegistrationOrderBreaksPriorityTies(t *testing.T) {
	units := []Analyzer{
		unit("a", 10, time.Second),
		unit("b", 10, time.Second),
		unit("c", 10, time.Second),
	}

	for trial := 0; trial < 5; trial++ {
		outcome := Run(context.Background(), units, NewContext("t"), Options{})
		require.Len(t, outcome.Results, 3)
		assert.Equal(t, "a", outcome.Results[0].Analyzer)
		assert.Equal(t, "b", outcome.Results[1].Analyzer)
		assert.Equal(t, "c", outcome.Results[2].Analyzer)
	}
}

func TestRunBandsObserveHappensBefore(t *testing.T) {
	var mu sync.Mutex
	var order []string
	record := func(name string) {
		mu.Lock()
		order = append(order, name)
		mu.Unlock()
	}

	early := unit("early", 10, time.Second)
	early.execute = func(ctx context.Context, sc *Context) (*domain.Result, error) {
		record("early")
		sc.Set("fact", "ready")
		return nil, nil
	}

	late := unit("late", 20, time.Second)
	late.canRun = func(sc *Context) bool { return sc.Has("fact") }
	late.execute = func(ctx context.Context, sc *Context) (*domain.Result, error) {
		record("late")
		fact, err := Get[string](sc, "fact")
		require.NoError(t, err)
		assert.Equal(t, "ready", fact)
		return nil, nil
	}

	outcome := Run(context.Background(), []Analyzer{late, early}, NewContext("t"), Options{})

	assert.Equal(t, []string{"early", "late"}, order)
	for _, res := range outcome.Results {
		assert.False(t, res.Skipped, "unit %s should have run", res.Analyzer)
	}
}

func TestRunBandMembersRunConcurrently(t *testing.T) {
	var inFlight, peak int32

	track := func(ctx context.Context, sc *Context) (*domain.Result, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil, nil
	}

	a := unit("a", 10, time.Second)
	a.execute = track
	b := unit("b", 10, time.Second)
	b.execute = track

	Run(context.Background(), []Analyzer{a, b}, NewContext("t"), Options{Policy: PolicyBanded})

	assert.Equal(t, int32(2), atomic.LoadInt32(&peak), "same-priority units should overlap")
}

func TestRunSequentialPolicyNeverOverlaps(t *testing.T) {
	var inFlight, peak int32

	track := func(ctx context.Context, sc *Context) (*domain.Result, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil, nil
	}

	a := unit("a", 10, time.Second)
	a.execute = track
	b := unit("b", 10, time.Second)
	b.execute = track

	Run(context.Background(), []Analyzer{a, b}, NewContext("t"), Options{Policy: PolicySequential})

	assert.Equal(t, int32(1), atomic.LoadInt32(&peak))
}

func TestRunTimeoutDoesNotCascade(t *testing.T) {
	// Scenario: a 50ms-timeout unit sleeping 200ms fails alone; its band
	// sibling and the next band still complete normally.
	slow := unit("slow", 10, 50*time.Millisecond)
	slow.execute = sleeper(200*time.Millisecond, domain.SeverityInfo)

	sibling := unit("sibling", 10, time.Second)
	sibling.execute = sleeper(10*time.Millisecond, domain.SeverityInfo)

	next := unit("next", 20, time.Second)

	outcome := Run(context.Background(), []Analyzer{slow, sibling, next}, NewContext("t"), Options{})

	require.Len(t, outcome.Results, 3)
	byName := make(map[string]*domain.Result)
	for _, res := range outcome.Results {
		byName[res.Analyzer] = res
	}

	assert.False(t, byName["slow"].Success)
	assert.Contains(t, byName["slow"].Warnings[0], "timeout")
	assert.True(t, byName["sibling"].Success)
	assert.False(t, byName["sibling"].Skipped)
	assert.True(t, byName["next"].Success)
	assert.False(t, byName["next"].Skipped)
}

func TestRunFailureDoesNotAbortRun(t *testing.T) {
	broken := unit("broken", 10, time.Second)
	broken.execute = func(ctx context.Context, sc *Context) (*domain.Result, error) {
		panic("boom")
	}
	healthy := unit("healthy", 20, time.Second)

	outcome := Run(context.Background(), []Analyzer{broken, healthy}, NewContext("t"), Options{})

	require.Len(t, outcome.Results, 2)
	assert.False(t, outcome.Results[0].Success)
	assert.True(t, outcome.Results[1].Success)
}

func TestRunCancellationStopsLaterBands(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	first := unit("first", 10, time.Second)
	first.execute = func(ctx context.Context, sc *Context) (*domain.Result, error) {
		cancel() // fires mid-run, after this band started
		return nil, nil
	}

	second := unit("second", 20, time.Second)
	second.execute = func(ctx context.Context, sc *Context) (*domain.Result, error) {
		t.Fatal("band after cancellation must not be scheduled")
		return nil, nil
	}

	outcome := Run(ctx, []Analyzer{first, second}, NewContext("t"), Options{})

	require.Len(t, outcome.Results, 2, "cancelled units still yield results")
	assert.True(t, outcome.Results[0].Success)
	assert.True(t, outcome.Results[1].Skipped)
	assert.Equal(t, "cancelled", outcome.Results[1].Metadata["skip_reason"])
}

func TestRunAggregatesSeverityAndReport(t *testing.T) {
	info := unit("info", 10, time.Second)
	info.execute = func(ctx context.Context, sc *Context) (*domain.Result, error) {
		res := domain.NewResult("info").WithSeverity(domain.SeverityInfo)
		return res.WithFragment(domain.NewFragment("Overview", 10, "scanned")), nil
	}

	warn := unit("warn", 20, time.Second)
	warn.execute = func(ctx context.Context, sc *Context) (*domain.Result, error) {
		res := domain.NewResult("warn").WithSeverity(domain.SeverityWarning)
		res.AddRecommendation("remove the broken mod")
		return res.WithFragment(domain.NewFragment("Findings", 20, "FOUND: broken mod")), nil
	}

	empty := unit("empty", 30, time.Second)

	outcome := Run(context.Background(), []Analyzer{info, warn, empty}, NewContext("t"), Options{})

	assert.Equal(t, domain.SeverityWarning, outcome.Severity)
	assert.Equal(t, []string{"remove the broken mod"}, outcome.Recommendations)

	// The merged report keeps order keys and drops the empty fragment.
	children := outcome.Report.Children()
	require.Len(t, children, 2)
	assert.Equal(t, "Overview", children[0].Title())
	assert.Equal(t, "Findings", children[1].Title())
}

func TestRunSeverityFloorSurvivesEmptyResults(t *testing.T) {
	quiet := unit("quiet", 10, time.Second)

	outcome := Run(context.Background(), []Analyzer{quiet}, NewContext("t"), Options{
		Floor: domain.SeverityInfo,
	})

	assert.Equal(t, domain.SeverityInfo, outcome.Severity)
}

func TestRunParallelPolicyChecksCanRunAtLaunch(t *testing.T) {
	producer := unit("producer", 10, time.Second)
	producer.execute = func(ctx context.Context, sc *Context) (*domain.Result, error) {
		time.Sleep(30 * time.Millisecond)
		sc.Set("fact", true)
		return nil, nil
	}

	consumer := unit("consumer", 20, time.Second)
	consumer.canRun = func(sc *Context) bool { return sc.Has("fact") }

	outcome := Run(context.Background(), []Analyzer{producer, consumer}, NewContext("t"), Options{
		Policy: PolicyParallel,
	})

	// Under the parallel policy the consumer launches before the producer's
	// fact exists and skips itself; banded scheduling is what guarantees the
	// dependency.
	byName := make(map[string]*domain.Result)
	for _, res := range outcome.Results {
		byName[res.Analyzer] = res
	}
	assert.True(t, byName["consumer"].Skipped)
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"banded", PolicyBanded, false},
		{"", PolicyBanded, false},
		{"sequential", PolicySequential, false},
		{"parallel", PolicyParallel, false},
		{"eager", PolicyBanded, true},
	}

	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
