package analyzers

import (
	"context"
	"strings"
	"time"

	"github.com/crashlens/crashlens/internal/catalog"
	"github.com/crashlens/crashlens/internal/domain"
	"github.com/crashlens/crashlens/internal/engine"
)

// Suspects scans the main error line and the probable call stack for
// catalogued crash signals (exception names, implicated native modules).
type Suspects struct {
	engine.Meta
	store catalog.Store
}

// NewSuspects creates the suspect-pattern unit.
func NewSuspects(store catalog.Store) *Suspects {
	return &Suspects{
		Meta: engine.Meta{
			ID:       "suspects",
			Title:    "Crash Suspects",
			Order:    prioritySuspect,
			Deadline: 10 * time.Second,
		},
		store: store,
	}
}

// CanRun implements engine.Analyzer.
func (s *Suspects) CanRun(sc *engine.Context) bool {
	return sc.Has(engine.KeyMainError) || sc.Has(engine.KeyCallStack)
}

// Execute implements engine.Analyzer.
func (s *Suspects) Execute(ctx context.Context, sc *engine.Context) (*domain.Result, error) {
	mainError, err := engine.GetOr(sc, engine.KeyMainError, "")
	if err != nil {
		return nil, err
	}
	callStack, err := engine.GetOr[[]string](sc, engine.KeyCallStack, nil)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.Category(catalog.CategorySuspects)
	if err != nil {
		return nil, err
	}

	haystacks := make([]string, 0, len(callStack)+1)
	if mainError != "" {
		haystacks = append(haystacks, strings.ToLower(mainError))
	}
	for _, line := range callStack {
		haystacks = append(haystacks, strings.ToLower(line))
	}

	res := domain.NewResult(s.Name())
	var lines []string
	for _, entry := range entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		signal := strings.ToLower(entry.ID)
		for _, h := range haystacks {
			if strings.Contains(h, signal) {
				lines = append(lines, "SUSPECT: "+entry.Candidate().DisplayName)
				res.AddRecommendation(entry.Warning)
				res.Severity = res.Severity.Max(entry.Severity)
				break
			}
		}
	}
	res.SetMeta("suspects", itoa(len(lines)))
	return res.WithFragment(domain.NewFragment("Crash Suspects", prioritySuspect, lines...)), nil
}
