// Package lookup defines the batched id-resolution service the analyzers
// use to turn record ids (FormIDs, file hashes) into display strings, plus
// the capped worker pool that fans batches out without unbounded
// concurrency.
package lookup

import "context"

// Resolver resolves record ids to display strings. Implementations are
// expected to tolerate partial and empty results: ids the backend does not
// know are simply absent from the returned map, never an error.
type Resolver interface {
	Resolve(ctx context.Context, ids []string) (map[string]string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, ids []string) (map[string]string, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ctx context.Context, ids []string) (map[string]string, error) {
	return f(ctx, ids)
}

// StaticResolver resolves from a fixed in-memory table. Useful for tests and
// for hosts that preload their database.
type StaticResolver map[string]string

// Resolve implements Resolver.
func (s StaticResolver) Resolve(_ context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if v, ok := s[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}
