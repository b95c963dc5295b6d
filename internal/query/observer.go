package query

import (
	"context"
	"time"

	"github.com/felixgeelhaar/cleanaid/internal/errors"
)

// Result is what an observer sees of its entry.
type Result[T any] struct {
	Data      T
	HasData   bool
	Err       error
	Status    Status
	FetchedAt time.Time
	Stale     bool
	Fetching  bool
}

// Observer is a live subscription to one key. While enabled it fetches when
// the entry is stale, refetches on invalidation and, with a refetch
// interval, polls. Close releases it.
type Observer[T any] struct {
	c     *Cache
	e     *entry
	key   Key
	fetch fetchFunc
	opts  queryOptions

	// Guarded by c.mu.
	on        bool
	closed    bool
	stopAfter func() bool

	updates chan Result[T]
	stop    chan struct{}
}

// Observe subscribes to key. The observer closes itself when ctx is done.
func Observe[T any](ctx context.Context, c *Cache, key Key, fetch Fetcher[T], opts ...QueryOption) *Observer[T] {
	o := &Observer[T]{
		c:       c,
		key:     key,
		fetch:   erase(fetch),
		opts:    c.resolve(opts),
		updates: make(chan Result[T], 1),
		stop:    make(chan struct{}),
	}

	c.mu.Lock()
	o.e = c.acquireLocked(key)
	o.e.observers[o] = struct{}{}
	o.on = o.opts.enabled
	if o.on {
		o.fetchIfStaleLocked(ctx)
	}
	o.notifyLocked()
	c.mu.Unlock()

	if o.opts.refetchInterval > 0 {
		go o.poll(ctx, o.opts.refetchInterval)
	}

	stop := context.AfterFunc(ctx, o.Close)
	c.mu.Lock()
	o.stopAfter = stop
	c.mu.Unlock()

	return o
}

func (o *Observer[T]) enabled() bool      { return o.on && !o.closed }
func (o *Observer[T]) fetcher() fetchFunc { return o.fetch }

func (o *Observer[T]) fetchIfStaleLocked(ctx context.Context) {
	if o.e.inflight != nil || o.e.fresh(o.c.now(), o.opts.staleTime) {
		return
	}
	o.c.startLocked(ctx, o.e, o.fetch)
}

func (o *Observer[T]) resultLocked() Result[T] {
	e := o.e
	r := Result[T]{
		HasData:   e.hasData,
		Err:       e.err,
		Status:    e.status,
		FetchedAt: e.fetchedAt,
		Stale:     !e.fresh(o.c.now(), o.opts.staleTime),
		Fetching:  e.inflight != nil,
	}
	if e.hasData {
		v, err := cast[T](e.data)
		if err != nil {
			r.Err = err
		} else {
			r.Data = v
		}
	}
	return r
}

// notifyLocked replaces any unread update with the current result.
func (o *Observer[T]) notifyLocked() {
	if o.closed {
		return
	}
	r := o.resultLocked()
	select {
	case <-o.updates:
	default:
	}
	o.updates <- r
}

func (o *Observer[T]) poll(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-o.stop:
			return
		case <-ticker.C:
			o.c.mu.Lock()
			if o.enabled() && o.e.inflight == nil {
				o.c.startLocked(ctx, o.e, o.fetch)
			}
			o.c.mu.Unlock()
		}
	}
}

// Key returns the observed key.
func (o *Observer[T]) Key() Key {
	return o.key
}

// Result returns the current state of the entry.
func (o *Observer[T]) Result() Result[T] {
	o.c.mu.Lock()
	defer o.c.mu.Unlock()
	return o.resultLocked()
}

// Updates delivers the latest result after every change. Only the most recent
// unread result is kept. The channel is closed by Close.
func (o *Observer[T]) Updates() <-chan Result[T] {
	return o.updates
}

// Enabled reports whether the observer may fetch.
func (o *Observer[T]) Enabled() bool {
	o.c.mu.Lock()
	defer o.c.mu.Unlock()
	return o.enabled()
}

// SetEnabled turns fetching on or off. Enabling fetches once unless the
// entry is fresh. Disabling may cancel a fetch nobody else waits on.
func (o *Observer[T]) SetEnabled(on bool) {
	o.c.mu.Lock()
	defer o.c.mu.Unlock()

	if o.closed || o.on == on {
		return
	}
	o.on = on
	if on {
		o.fetchIfStaleLocked(context.Background())
	} else {
		o.c.maybeCancelLocked(o.e, o.e.inflight)
	}
	o.notifyLocked()
}

// Refetch starts a new fetch even when the entry is fresh and waits for it.
func (o *Observer[T]) Refetch(ctx context.Context) (T, error) {
	var zero T

	o.c.mu.Lock()
	if o.closed {
		o.c.mu.Unlock()
		return zero, errors.New(errors.ErrCodeFetchFailed, "observer is closed")
	}
	call := o.c.startLocked(ctx, o.e, o.fetch)
	call.waiters++
	o.e.waiters++
	o.c.mu.Unlock()

	data, err := o.c.wait(ctx, o.e, call)
	if err != nil {
		return zero, err
	}
	return cast[T](data)
}

// Close unsubscribes. A fetch left without consumers is cancelled.
func (o *Observer[T]) Close() {
	o.c.mu.Lock()
	if o.closed {
		o.c.mu.Unlock()
		return
	}
	o.closed = true
	delete(o.e.observers, o)
	close(o.stop)
	close(o.updates)
	o.c.maybeCancelLocked(o.e, o.e.inflight)
	o.c.releaseLocked(o.e)
	stop := o.stopAfter
	o.c.mu.Unlock()

	if stop != nil {
		stop()
	}
}
