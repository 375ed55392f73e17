package lookup

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchSize is the batch size ResolveAll uses when the caller passes
// a non-positive one.
const DefaultBatchSize = 32

// Pool caps how many lookup batches run concurrently. Construct one per host
// process and pass it explicitly to the analyzers that need it: the cap is a
// property of the backing database, never ambient process state.
type Pool struct {
	limit int
}

// NewPool creates a pool allowing up to limit concurrent batches. A
// non-positive limit means one batch at a time.
func NewPool(limit int) *Pool {
	if limit < 1 {
		limit = 1
	}
	return &Pool{limit: limit}
}

// Limit returns the pool's concurrency cap.
func (p *Pool) Limit() int {
	return p.limit
}

// ResolveAll splits ids into batches, resolves them through r with at most
// the pool's cap in flight, and merges the results. A failing batch does not
// fail the whole call: its ids are simply left unresolved. The returned
// error is non-nil only when ctx was cancelled or every batch failed.
func (p *Pool) ResolveAll(ctx context.Context, r Resolver, ids []string, batchSize int) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}

	var (
		mu       sync.Mutex
		merged   = make(map[string]string, len(ids))
		batches  int
		failures int
		lastErr  error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)
	for start := 0; start < len(ids); start += batchSize {
		end := min(start+batchSize, len(ids))
		batch := ids[start:end]
		batches++
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			resolved, err := r.Resolve(gctx, batch)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures++
				lastErr = err
				return nil // tolerate the partial failure
			}
			for k, v := range resolved {
				merged[k] = v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return merged, err
	}
	if failures == batches {
		return merged, lastErr
	}
	return merged, nil
}
