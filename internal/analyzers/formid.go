package analyzers

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/crashlens/crashlens/internal/domain"
	"github.com/crashlens/crashlens/internal/engine"
	"github.com/crashlens/crashlens/internal/lookup"
)

// formIDRe matches 8-hex-digit record ids; longer hex runs are raw code
// addresses, not records.
var formIDRe = regexp.MustCompile(`\b0x([0-9A-Fa-f]{8})\b`)

// FormID resolves record ids found in the probable call stack to display
// strings through the host's lookup service. Batches fan out through the
// capped pool so a large stack cannot flood the backing database.
type FormID struct {
	engine.Meta
	resolver lookup.Resolver
	pool     *lookup.Pool
}

// NewFormID creates the record-id resolution unit. Both the resolver and the
// pool come from the host; without a resolver the unit skips itself.
func NewFormID(resolver lookup.Resolver, pool *lookup.Pool) *FormID {
	if pool == nil {
		pool = lookup.NewPool(1)
	}
	return &FormID{
		Meta: engine.Meta{
			ID:       "formid-lookup",
			Title:    "Record IDs",
			Order:    priorityLookup,
			Deadline: 30 * time.Second,
		},
		resolver: resolver,
		pool:     pool,
	}
}

// CanRun implements engine.Analyzer.
func (f *FormID) CanRun(sc *engine.Context) bool {
	return f.resolver != nil && sc.Has(engine.KeyCallStack)
}

// Execute implements engine.Analyzer.
func (f *FormID) Execute(ctx context.Context, sc *engine.Context) (*domain.Result, error) {
	callStack, err := engine.Get[[]string](sc, engine.KeyCallStack)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var ids []string
	for _, line := range callStack {
		for _, m := range formIDRe.FindAllStringSubmatch(line, -1) {
			id := "0x" + m[1]
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	res := domain.NewResult(f.Name())
	res.SetMeta("ids_found", itoa(len(ids)))
	if len(ids) == 0 {
		return res.WithFragment(domain.Empty()), nil
	}

	resolved, err := f.pool.ResolveAll(ctx, f.resolver, ids, lookup.DefaultBatchSize)
	if err != nil {
		return res, fmt.Errorf("resolving %d record ids: %w", len(ids), err)
	}

	var lines []string
	for _, id := range ids {
		if name, ok := resolved[id]; ok {
			lines = append(lines, fmt.Sprintf("%s -> %s", id, name))
		}
	}
	res.SetMeta("ids_resolved", itoa(len(lines)))
	if len(lines) > 0 {
		res.Severity = domain.SeverityInfo
	}
	return res.WithFragment(domain.NewFragment("Record IDs", priorityLookup, lines...)), nil
}
