package analyzers

import (
	"context"
	"strings"
	"time"

	"github.com/crashlens/crashlens/internal/catalog"
	"github.com/crashlens/crashlens/internal/domain"
	"github.com/crashlens/crashlens/internal/engine"
)

// GPU matches the extracted GPU description against vendor-specific advice.
type GPU struct {
	engine.Meta
	store catalog.Store
}

// NewGPU creates the GPU-advice unit.
func NewGPU(store catalog.Store) *GPU {
	return &GPU{
		Meta: engine.Meta{
			ID:       "gpu-advice",
			Title:    "GPU Notes",
			Order:    priorityMods,
			Deadline: 5 * time.Second,
		},
		store: store,
	}
}

// CanRun implements engine.Analyzer.
func (g *GPU) CanRun(sc *engine.Context) bool {
	return sc.Has(engine.KeyGPU)
}

// Execute implements engine.Analyzer.
func (g *GPU) Execute(_ context.Context, sc *engine.Context) (*domain.Result, error) {
	gpu, err := engine.Get[string](sc, engine.KeyGPU)
	if err != nil {
		return nil, err
	}
	entries, err := g.store.Category(catalog.CategoryGPU)
	if err != nil {
		return nil, err
	}

	res := domain.NewResult(g.Name())
	desc := strings.ToLower(gpu)
	var lines []string
	for _, entry := range entries {
		if strings.Contains(desc, strings.ToLower(entry.ID)) {
			lines = append(lines, "GPU: "+gpu)
			res.AddRecommendation(entry.Warning)
			res.Severity = res.Severity.Max(entry.Severity)
			break
		}
	}
	return res.WithFragment(domain.NewFragment("GPU Notes", orderGPU, lines...)), nil
}
