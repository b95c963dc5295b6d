package query

import (
	"context"
)

// MutationFunc performs a write.
type MutationFunc[V, R any] func(ctx context.Context, vars V) (R, error)

// MutationOptions are the callbacks of a mutation. All are optional.
type MutationOptions[V, R any] struct {
	// Invalidates returns the key prefixes to mark stale after success.
	Invalidates func(vars V, result R) []Key
	OnSuccess   func(ctx context.Context, vars V, result R)
	OnError     func(ctx context.Context, vars V, err error)
	// OnSettled runs last, after either outcome.
	OnSettled func(ctx context.Context, vars V, result R, err error)
}

// Mutation runs a write and refreshes the reads it affects. It stores nothing
// in the cache itself.
type Mutation[V, R any] struct {
	c    *Cache
	fn   MutationFunc[V, R]
	opts MutationOptions[V, R]
}

// NewMutation binds fn to c.
func NewMutation[V, R any](c *Cache, fn MutationFunc[V, R], opts MutationOptions[V, R]) *Mutation[V, R] {
	return &Mutation[V, R]{c: c, fn: fn, opts: opts}
}

// Execute runs the mutation. On success the invalidation happens before
// OnSuccess, so callbacks observe stale entries. It returns the prefixes
// that were invalidated.
func (m *Mutation[V, R]) Execute(ctx context.Context, vars V) (R, []Key, error) {
	result, err := m.fn(ctx, vars)
	m.c.metrics.Mutation(err == nil)

	var invalidated []Key
	if err != nil {
		if m.opts.OnError != nil {
			m.opts.OnError(ctx, vars, err)
		}
	} else {
		if m.opts.Invalidates != nil {
			invalidated = m.opts.Invalidates(vars, result)
			m.c.Invalidate(invalidated...)
		}
		if m.opts.OnSuccess != nil {
			m.opts.OnSuccess(ctx, vars, result)
		}
	}

	if m.opts.OnSettled != nil {
		m.opts.OnSettled(ctx, vars, result, err)
	}
	return result, invalidated, err
}
