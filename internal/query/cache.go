// Package query is a read-through cache over the admin API.
//
// Entries are addressed by Key and shared by every consumer of that key.
// Concurrent reads of one key share a single fetch, fresh entries are
// served without fetching, and mutations invalidate by key prefix. Each
// fetch runs on a context the cache owns; it is cancelled once the last
// consumer waiting on it leaves.
package query

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/felixgeelhaar/cleanaid/internal/errors"
	"github.com/felixgeelhaar/cleanaid/internal/log"
	"github.com/felixgeelhaar/cleanaid/internal/metrics"
)

// DefaultGCTime is how long an entry without consumers is kept.
const DefaultGCTime = 5 * time.Minute

// Status is the lifecycle state of an entry.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Options configures a Cache.
type Options struct {
	// StaleTime is how long fetched data counts as fresh. Zero means data
	// is stale as soon as it arrives.
	StaleTime time.Duration
	// GCTime is how long an entry with no consumer survives. Zero uses
	// DefaultGCTime; a negative value drops such entries at once.
	GCTime time.Duration
	// MaxInactive caps the number of entries without consumers. Zero is unbounded.
	MaxInactive int

	Logger  *log.Logger
	Metrics *metrics.Metrics
}

// Fetcher loads the value of one key.
type Fetcher[T any] func(ctx context.Context) (T, error)

type fetchFunc func(ctx context.Context) (any, error)

// fetchCall is one run of a fetcher.
type fetchCall struct {
	seq        uint64
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
	waiters    int
	prevStatus Status
	// cleared is set when Clear ran while the call was in flight. Its data
	// is not cached; its error still is.
	cleared bool

	data any
	err  error
}

// subscriber is the type-erased side of an Observer.
type subscriber interface {
	enabled() bool
	fetcher() fetchFunc
	notifyLocked()
}

type entry struct {
	key Key

	data      any
	hasData   bool
	err       error
	status    Status
	fetchedAt time.Time
	// invalidated forces staleness regardless of fetchedAt.
	invalidated bool

	inflight  *fetchCall
	seq       uint64
	waiters   int
	observers map[subscriber]struct{}

	// parked is true while the entry sits in the inactive LRU.
	parked atomic.Bool
}

func (e *entry) fresh(now time.Time, staleTime time.Duration) bool {
	if e.status != StatusSuccess || e.invalidated || !e.hasData {
		return false
	}
	return now.Sub(e.fetchedAt) < staleTime
}

func (e *entry) enabledObservers() int {
	n := 0
	for s := range e.observers {
		if s.enabled() {
			n++
		}
	}
	return n
}

// Cache holds query entries. It is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	active   map[string]*entry
	inactive *expirable.LRU[string, *entry]
	count    atomic.Int64

	staleTime time.Duration
	gcTime    time.Duration
	logger    *log.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// New creates an empty cache.
func New(opts Options) *Cache {
	gc := opts.GCTime
	if gc == 0 {
		gc = DefaultGCTime
	}

	c := &Cache{
		active:    make(map[string]*entry),
		staleTime: opts.StaleTime,
		gcTime:    gc,
		logger:    log.OrDefault(opts.Logger).WithComponent("query"),
		metrics:   opts.Metrics,
		now:       time.Now,
	}

	ttl := gc
	if ttl < 0 {
		ttl = 0
	}
	c.inactive = expirable.NewLRU[string, *entry](opts.MaxInactive, c.onEvict, ttl)
	return c
}

// onEvict runs under the LRU's own lock, so it must not take c.mu.
func (c *Cache) onEvict(key string, e *entry) {
	if !e.parked.CompareAndSwap(true, false) {
		return
	}
	c.metrics.CacheEvicted()
	c.metrics.SetCacheEntries(int(c.count.Add(-1)))
	c.logger.Debug("cache entry evicted", "key", key)
}

// Len returns the number of entries held, active or not.
func (c *Cache) Len() int {
	return int(c.count.Load())
}

// acquireLocked returns the active entry for key, reviving a parked one or
// creating it.
func (c *Cache) acquireLocked(key Key) *entry {
	h := key.String()
	if e, ok := c.active[h]; ok {
		return e
	}
	if e, ok := c.inactive.Peek(h); ok && e.parked.CompareAndSwap(true, false) {
		c.inactive.Remove(h)
		c.active[h] = e
		return e
	}

	e := &entry{key: key, observers: make(map[subscriber]struct{})}
	c.active[h] = e
	c.metrics.SetCacheEntries(int(c.count.Add(1)))
	return e
}

// releaseLocked parks e once nothing uses it.
func (c *Cache) releaseLocked(e *entry) {
	h := e.key.String()
	if c.active[h] != e {
		return
	}
	if len(e.observers) > 0 || e.waiters > 0 || e.inflight != nil {
		return
	}

	delete(c.active, h)
	if c.gcTime < 0 {
		c.metrics.CacheEvicted()
		c.metrics.SetCacheEntries(int(c.count.Add(-1)))
		return
	}
	e.parked.Store(true)
	c.inactive.Add(h, e)
}

// lookupLocked finds an entry without reviving it.
func (c *Cache) lookupLocked(key Key) (*entry, bool) {
	h := key.String()
	if e, ok := c.active[h]; ok {
		return e, true
	}
	return c.inactive.Peek(h)
}

// startLocked begins a new fetch for e, superseding any fetch in flight.
func (c *Cache) startLocked(origin context.Context, e *entry, fn fetchFunc) *fetchCall {
	prev := e.status
	if old := e.inflight; old != nil {
		prev = old.prevStatus
		if old.waiters == 0 {
			old.cancel()
		}
	}

	e.seq++
	ctx, cancel := context.WithCancel(context.WithoutCancel(origin))
	call := &fetchCall{
		seq:        e.seq,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
		prevStatus: prev,
	}
	e.inflight = call
	e.status = StatusLoading

	c.logger.Debug("fetch started", "key", e.key.String(), "seq", call.seq)
	c.notifyLocked(e)

	go c.run(e, call, fn)
	return call
}

func (c *Cache) run(e *entry, call *fetchCall, fn fetchFunc) {
	data, err := safeFetch(call.ctx, fn)

	c.mu.Lock()
	defer c.mu.Unlock()

	call.data, call.err = data, err
	ns := e.key.Namespace()
	latest := call.seq == e.seq
	if e.inflight == call {
		e.inflight = nil
	}

	switch {
	case err != nil && call.ctx.Err() != nil:
		if latest && e.status == StatusLoading {
			e.status = call.prevStatus
		}
		c.metrics.CacheFetch(ns, "cancelled")
		c.logger.Debug("fetch cancelled", "key", e.key.String(), "seq", call.seq)
	case !latest:
		c.metrics.CacheFetch(ns, "superseded")
		c.logger.Debug("fetch superseded", "key", e.key.String(), "seq", call.seq, "latest", e.seq)
	case err != nil:
		e.err = err
		e.status = StatusError
		c.metrics.CacheFetch(ns, "error")
		c.metrics.Error(string(errors.CodeOf(err)), "query")
		c.logger.WithError(err).Debug("fetch failed", "key", e.key.String())
	case call.cleared:
		e.status = StatusIdle
		c.metrics.CacheFetch(ns, "discarded")
		c.logger.Debug("fetch discarded after clear", "key", e.key.String(), "seq", call.seq)
	default:
		e.data, e.hasData = data, true
		e.err = nil
		e.status = StatusSuccess
		e.fetchedAt = c.now()
		e.invalidated = false
		c.metrics.CacheFetch(ns, "success")
		c.logger.Debug("fetch succeeded", "key", e.key.String(), "seq", call.seq)
	}

	call.cancel()
	close(call.done)
	if latest {
		c.notifyLocked(e)
	}
	c.releaseLocked(e)
}

func safeFetch(ctx context.Context, fn fetchFunc) (data any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ErrCodeFetchFailed, fmt.Sprintf("fetcher panicked: %v", r))
		}
	}()
	return fn(ctx)
}

// wait blocks until call finishes or ctx is done. It is entered with the
// caller registered as a waiter and c.mu released.
func (c *Cache) wait(ctx context.Context, e *entry, call *fetchCall) (any, error) {
	select {
	case <-call.done:
	case <-ctx.Done():
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	call.waiters--
	e.waiters--

	select {
	case <-call.done:
		c.releaseLocked(e)
		return call.data, call.err
	default:
	}

	c.maybeCancelLocked(e, call)
	c.releaseLocked(e)
	return nil, ctx.Err()
}

// maybeCancelLocked cancels call when no consumer is left for it.
func (c *Cache) maybeCancelLocked(e *entry, call *fetchCall) {
	if call == nil || call.waiters > 0 {
		return
	}
	if call == e.inflight && e.enabledObservers() > 0 {
		return
	}
	call.cancel()
}

func (c *Cache) notifyLocked(e *entry) {
	for s := range e.observers {
		s.notifyLocked()
	}
}

// Fetch returns the value for key, calling fetch only when the entry is
// not fresh. Concurrent calls for one key share a single fetch.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fetch Fetcher[T], opts ...QueryOption) (T, error) {
	o := c.resolve(opts)

	c.mu.Lock()
	e := c.acquireLocked(key)

	if e.fresh(c.now(), o.staleTime) {
		data := e.data
		c.releaseLocked(e)
		c.mu.Unlock()
		c.metrics.CacheHit(key.Namespace())
		return cast[T](data)
	}

	c.metrics.CacheMiss(key.Namespace())
	call := e.inflight
	if call == nil || call.cleared {
		call = c.startLocked(ctx, e, erase(fetch))
	}
	call.waiters++
	e.waiters++
	c.mu.Unlock()

	data, err := c.wait(ctx, e, call)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](data)
}

// Invalidate marks every entry under the given prefixes stale. Entries
// with an enabled observer refetch at once. It returns the keys touched.
func (c *Cache) Invalidate(prefixes ...Key) []Key {
	c.mu.Lock()
	defer c.mu.Unlock()

	var touched []Key
	visit := func(e *entry, parked bool) {
		if !matchesAny(e.key, prefixes) {
			return
		}
		e.invalidated = true
		touched = append(touched, e.key)
		c.metrics.CacheInvalidated(e.key.Namespace(), 1)

		if !parked && e.enabledObservers() > 0 {
			c.refetchLocked(e)
			return
		}
		c.notifyLocked(e)
	}

	for _, e := range c.active {
		visit(e, false)
	}
	for _, h := range c.inactive.Keys() {
		if e, ok := c.inactive.Peek(h); ok {
			visit(e, true)
		}
	}

	sort.Slice(touched, func(i, j int) bool { return touched[i].String() < touched[j].String() })
	if len(touched) > 0 {
		c.logger.Debug("cache invalidated", "prefixes", len(prefixes), "entries", len(touched))
	}
	return touched
}

// refetchLocked restarts e with the fetcher of one of its observers.
func (c *Cache) refetchLocked(e *entry) {
	for s := range e.observers {
		if s.enabled() {
			c.startLocked(context.Background(), e, s.fetcher())
			return
		}
	}
}

// State is a snapshot of one entry.
type State struct {
	Status    Status
	HasData   bool
	Err       error
	FetchedAt time.Time
	Stale     bool
	Fetching  bool
	Observers int
}

// Peek returns the state of key without fetching or reviving it.
func (c *Cache) Peek(key Key) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.lookupLocked(key)
	if !ok {
		return State{}, false
	}
	return State{
		Status:    e.status,
		HasData:   e.hasData,
		Err:       e.err,
		FetchedAt: e.fetchedAt,
		Stale:     !e.fresh(c.now(), c.staleTime),
		Fetching:  e.inflight != nil,
		Observers: len(e.observers),
	}, true
}

// Clear drops all cached data. Observers stay subscribed and see an idle
// entry. Fetches in flight keep running: their data is discarded but a
// failure is still recorded, so the error that caused a sign-out reaches
// the observers of the read that hit it. Used on sign-in and sign-out.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.active {
		e.data, e.hasData, e.err = nil, false, nil
		e.status = StatusIdle
		e.invalidated = false
		if call := e.inflight; call != nil {
			call.cleared = true
			call.prevStatus = StatusIdle
			e.status = StatusLoading
		}
		c.notifyLocked(e)
	}
	c.inactive.Purge()
	c.logger.Debug("cache cleared")
}

func (c *Cache) resolve(opts []QueryOption) queryOptions {
	o := queryOptions{staleTime: c.staleTime, enabled: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func matchesAny(k Key, prefixes []Key) bool {
	for _, p := range prefixes {
		if k.HasPrefix(p) {
			return true
		}
	}
	return false
}

func erase[T any](fetch Fetcher[T]) fetchFunc {
	return func(ctx context.Context) (any, error) {
		return fetch(ctx)
	}
}

func cast[T any](data any) (T, error) {
	var zero T
	if data == nil {
		return zero, nil
	}
	v, ok := data.(T)
	if !ok {
		return zero, errors.New(errors.ErrCodeTypeMismatch,
			fmt.Sprintf("cached value is %T, not %T", data, zero))
	}
	return v, nil
}

// QueryOption adjusts one read or observer.
type QueryOption func(*queryOptions)

type queryOptions struct {
	staleTime       time.Duration
	enabled         bool
	refetchInterval time.Duration
}

// WithStaleTime overrides the cache's stale time for this consumer.
func WithStaleTime(d time.Duration) QueryOption {
	return func(o *queryOptions) { o.staleTime = d }
}

// WithEnabled starts an observer disabled when false.
func WithEnabled(enabled bool) QueryOption {
	return func(o *queryOptions) { o.enabled = enabled }
}

// WithRefetchInterval makes an observer poll on a fixed cadence.
func WithRefetchInterval(d time.Duration) QueryOption {
	return func(o *queryOptions) { o.refetchInterval = d }
}
