package analyzers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/crashlens/crashlens/internal/catalog"
	"github.com/crashlens/crashlens/internal/domain"
	"github.com/crashlens/crashlens/internal/engine"
	"github.com/crashlens/crashlens/internal/match"
)

// Fragment order keys within the mod-detection band.
const (
	orderProblematic = priorityMods
	orderConflicts   = priorityMods + 1
	orderImportant   = priorityMods + 2
	orderGPU         = priorityMods + 3
)

// Problematic detects installed plugins that match the catalog of mods with
// known crash-causing issues.
type Problematic struct {
	engine.Meta
	store catalog.Store
}

// NewProblematic creates the problematic-mod unit.
func NewProblematic(store catalog.Store) *Problematic {
	return &Problematic{
		Meta: engine.Meta{
			ID:       "problematic-mods",
			Title:    "Mods With Known Issues",
			Order:    priorityMods,
			Deadline: 15 * time.Second,
		},
		store: store,
	}
}

// CanRun implements engine.Analyzer.
func (p *Problematic) CanRun(sc *engine.Context) bool {
	return sc.Has(engine.KeyPlugins)
}

// Execute implements engine.Analyzer.
func (p *Problematic) Execute(_ context.Context, sc *engine.Context) (*domain.Result, error) {
	names, err := pluginNames(sc)
	if err != nil {
		return nil, err
	}
	entries, err := p.store.Category(catalog.CategoryProblematic)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]catalog.Entry, len(entries))
	candidates := make([]match.Candidate, 0, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
		candidates = append(candidates, e.Candidate())
	}

	res := domain.NewResult(p.Name())
	var lines []string
	for _, out := range match.ScanCatalog(names, candidates) {
		entry := byID[out.Candidate.ID]
		lines = append(lines, fmt.Sprintf("FOUND: %s (matched plugin %q)", out.Candidate.DisplayName, out.Plugin))
		res.AddRecommendation(entry.Warning)
		res.Severity = res.Severity.Max(entry.Severity)
	}
	res.SetMeta("matches", itoa(len(lines)))
	return res.WithFragment(domain.NewFragment("Mods With Known Issues", orderProblematic, lines...)), nil
}

// Conflicts detects catalogued mod pairs that are both installed. Conflict
// entries carry two identifiers separated by " | "; the conflict fires only
// when each side matches some installed plugin.
type Conflicts struct {
	engine.Meta
	store catalog.Store
}

// NewConflicts creates the mod-conflict unit.
func NewConflicts(store catalog.Store) *Conflicts {
	return &Conflicts{
		Meta: engine.Meta{
			ID:       "mod-conflicts",
			Title:    "Conflicting Mod Pairs",
			Order:    priorityMods,
			Deadline: 15 * time.Second,
		},
		store: store,
	}
}

// CanRun implements engine.Analyzer.
func (c *Conflicts) CanRun(sc *engine.Context) bool {
	return sc.Has(engine.KeyPlugins)
}

// Execute implements engine.Analyzer.
func (c *Conflicts) Execute(_ context.Context, sc *engine.Context) (*domain.Result, error) {
	names, err := pluginNames(sc)
	if err != nil {
		return nil, err
	}
	entries, err := c.store.Category(catalog.CategoryConflicts)
	if err != nil {
		return nil, err
	}

	res := domain.NewResult(c.Name())
	var lines []string
	for _, entry := range entries {
		sides := strings.Split(entry.ID, "|")
		if len(sides) != 2 {
			return nil, fmt.Errorf("%w: conflict entry %q is not an \"a | b\" pair", catalog.ErrBadCatalog, entry.ID)
		}
		if anyPluginMatches(names, sides[0]) && anyPluginMatches(names, sides[1]) {
			lines = append(lines, "CAUTION: "+entry.Candidate().DisplayName)
			res.AddRecommendation(entry.Warning)
			res.Severity = res.Severity.Max(entry.Severity)
		}
	}
	res.SetMeta("conflicts", itoa(len(lines)))
	return res.WithFragment(domain.NewFragment("Conflicting Mod Pairs", orderConflicts, lines...)), nil
}

func anyPluginMatches(plugins []string, ident string) bool {
	ident = strings.TrimSpace(ident)
	for _, p := range plugins {
		if match.Matches(p, ident) {
			return true
		}
	}
	return false
}

// Important checks whether the catalogued core patches and stability mods
// are present in the load order; missing ones are reported with the
// catalog's recommendation.
type Important struct {
	engine.Meta
	store catalog.Store
}

// NewImportant creates the important-mod presence unit.
func NewImportant(store catalog.Store) *Important {
	return &Important{
		Meta: engine.Meta{
			ID:       "important-mods",
			Title:    "Core Patches",
			Order:    priorityMods,
			Deadline: 15 * time.Second,
		},
		store: store,
	}
}

// CanRun implements engine.Analyzer.
func (i *Important) CanRun(sc *engine.Context) bool {
	return sc.Has(engine.KeyPlugins)
}

// Execute implements engine.Analyzer.
func (i *Important) Execute(_ context.Context, sc *engine.Context) (*domain.Result, error) {
	names, err := pluginNames(sc)
	if err != nil {
		return nil, err
	}
	entries, err := i.store.Category(catalog.CategoryImportant)
	if err != nil {
		return nil, err
	}

	res := domain.NewResult(i.Name())
	var lines []string
	for _, entry := range entries {
		if anyPluginMatches(names, entry.ID) {
			lines = append(lines, fmt.Sprintf("OK: %s is installed", entry.Candidate().DisplayName))
			res.Severity = res.Severity.Max(domain.SeverityInfo)
			continue
		}
		lines = append(lines, fmt.Sprintf("MISSING: %s is not installed", entry.Candidate().DisplayName))
		res.AddRecommendation(entry.Warning)
		res.Severity = res.Severity.Max(entry.Severity)
	}
	return res.WithFragment(domain.NewFragment("Core Patches", orderImportant, lines...)), nil
}
