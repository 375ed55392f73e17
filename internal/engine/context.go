package engine

import (
	"errors"
	"fmt"
	"sync"
)

// ErrMissingKey is returned by Get when no value exists for a key.
var ErrMissingKey = errors.New("context: missing key")

// ErrTypeMismatch is returned by Get when a stored value has a different
// type than the caller expects. The key/type contract lives in keys.go.
var ErrTypeMismatch = errors.New("context: type mismatch")

// Context is the run-scoped typed key/value store through which analyzers
// communicate. It is safe for concurrent use: analyzers in the same priority
// band read and write it without any external locking. Once a key is
// written, every later read observes the latest value.
//
// A Context lives for exactly one orchestration run and is discarded after.
type Context struct {
	source string

	mu     sync.RWMutex
	values map[string]any
}

// NewContext creates an empty context for one analysis run. The source
// identifies the input (e.g. a file path) and is used only for diagnostics.
func NewContext(source string) *Context {
	return &Context{
		source: source,
		values: make(map[string]any),
	}
}

// Source returns the input identifier this run was created for.
func (c *Context) Source() string {
	return c.source
}

// Set stores value under key, replacing any previous value.
func (c *Context) Set(key string, value any) {
	c.mu.Lock()
	c.values[key] = value
	c.mu.Unlock()
}

// Has reports whether key currently holds a value.
func (c *Context) Has(key string) bool {
	c.mu.RLock()
	_, ok := c.values[key]
	c.mu.RUnlock()
	return ok
}

// Keys returns a snapshot of the currently populated keys. Iteration order
// is unspecified; callers must not rely on it.
func (c *Context) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	return keys
}

// value returns the raw stored value for key.
func (c *Context) value(key string) (any, bool) {
	c.mu.RLock()
	v, ok := c.values[key]
	c.mu.RUnlock()
	return v, ok
}

// Get retrieves the value stored under key as type T. It returns
// ErrMissingKey when the key is absent and ErrTypeMismatch when the stored
// value is not a T: a mismatch always means two analyzers disagree about
// the key contract, which must surface immediately rather than corrupt a
// unit's logic downstream.
func Get[T any](c *Context, key string) (T, error) {
	var zero T
	v, ok := c.value(key)
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrMissingKey, key)
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %T, not %T", ErrTypeMismatch, key, v, zero)
	}
	return typed, nil
}

// GetOr retrieves the value stored under key, falling back to def when the
// key is absent. A type mismatch still fails loudly.
func GetOr[T any](c *Context, key string, def T) (T, error) {
	v, err := Get[T](c, key)
	if errors.Is(err, ErrMissingKey) {
		return def, nil
	}
	return v, err
}
