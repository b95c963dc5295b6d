package query

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve_FetchesWhenStale(t *testing.T) {
	c := newCache(t, Options{StaleTime: time.Minute})
	fetch, calls := counter([]string{"u1"})

	obs := Observe(context.Background(), c, Keys("users").List(nil), fetch)
	defer obs.Close()

	require.Eventually(t, func() bool { return obs.Result().Status == StatusSuccess }, waitFor, tick)
	r := obs.Result()
	assert.Equal(t, []string{"u1"}, r.Data)
	assert.True(t, r.HasData)
	assert.False(t, r.Stale)
	assert.Equal(t, int32(1), calls.Load())

	again := Observe(context.Background(), c, Keys("users").List(nil), fetch)
	defer again.Close()
	assert.Equal(t, int32(1), calls.Load(), "a fresh entry is shared without fetching")
	assert.Equal(t, []string{"u1"}, again.Result().Data)
}

func TestObserve_UpdatesChannel(t *testing.T) {
	c := newCache(t, Options{})
	release := make(chan struct{})
	obs := Observe(context.Background(), c, Keys("orders").Stats(), func(ctx context.Context) (int, error) {
		<-release
		return 7, nil
	})

	first := <-obs.Updates()
	assert.Equal(t, StatusLoading, first.Status)
	assert.True(t, first.Fetching)

	close(release)
	var last Result[int]
	require.Eventually(t, func() bool {
		select {
		case last = <-obs.Updates():
		default:
		}
		return last.Status == StatusSuccess
	}, waitFor, tick)
	assert.Equal(t, 7, last.Data)

	obs.Close()
	for range obs.Updates() {
	}
}

func TestObserve_DisabledNeverFetches(t *testing.T) {
	c := newCache(t, Options{StaleTime: time.Minute})
	fetch, calls := counter("me")
	key := Keys("admins").Op("me")

	obs := Observe(context.Background(), c, key, fetch, WithEnabled(false))
	defer obs.Close()

	c.Invalidate(Keys("admins").All())
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, int32(0), calls.Load())
	assert.False(t, obs.Enabled())
	assert.Equal(t, StatusIdle, obs.Result().Status)

	obs.SetEnabled(true)
	require.Eventually(t, func() bool { return obs.Result().Status == StatusSuccess }, waitFor, tick)
	assert.Equal(t, int32(1), calls.Load())

	obs.SetEnabled(false)
	obs.SetEnabled(true)
	assert.Equal(t, int32(1), calls.Load(), "re-enabling a fresh entry does not fetch")
}

func TestObserve_DisableCancelsLoneFetch(t *testing.T) {
	c := newCache(t, Options{})
	cancelled := make(chan struct{})
	obs := Observe(context.Background(), c, Keys("payments").Stats(), func(ctx context.Context) (int, error) {
		<-ctx.Done()
		close(cancelled)
		return 0, ctx.Err()
	})
	defer obs.Close()

	obs.SetEnabled(false)
	select {
	case <-cancelled:
	case <-time.After(waitFor):
		t.Fatal("fetch was not cancelled")
	}
	require.Eventually(t, func() bool { return !obs.Result().Fetching }, waitFor, tick)
	assert.Equal(t, StatusIdle, obs.Result().Status)
}

func TestObserve_CloseCancelsLoneFetch(t *testing.T) {
	c := newCache(t, Options{})
	cancelled := make(chan struct{})
	obs := Observe(context.Background(), c, Keys("payouts").List(nil), func(ctx context.Context) (int, error) {
		<-ctx.Done()
		close(cancelled)
		return 0, ctx.Err()
	})

	obs.Close()
	obs.Close()
	select {
	case <-cancelled:
	case <-time.After(waitFor):
		t.Fatal("fetch was not cancelled")
	}
}

func TestObserve_ContextClosesObserver(t *testing.T) {
	c := newCache(t, Options{StaleTime: time.Minute})
	fetch, _ := counter(1)
	key := Keys("users").Stats()

	ctx, cancel := context.WithCancel(context.Background())
	obs := Observe(ctx, c, key, fetch)
	require.Eventually(t, func() bool { return obs.Result().Status == StatusSuccess }, waitFor, tick)

	cancel()
	require.Eventually(t, func() bool {
		s, ok := c.Peek(key)
		return ok && s.Observers == 0
	}, waitFor, tick)
	assert.False(t, obs.Enabled())
}

func TestObserve_RefetchInterval(t *testing.T) {
	c := newCache(t, Options{StaleTime: time.Hour})
	fetch, calls := counter("dash")

	obs := Observe(context.Background(), c, Keys("analytics").Op("dashboard"), fetch,
		WithRefetchInterval(15*time.Millisecond))

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, waitFor, tick,
		"polling ignores stale time")

	obs.Close()
	time.Sleep(30 * time.Millisecond)
	settled := calls.Load()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, settled, calls.Load(), "polling stops on close")
}

func TestObserve_InvalidateRefetches(t *testing.T) {
	c := newCache(t, Options{StaleTime: time.Minute})
	var version atomic.Int32
	fetch := func(ctx context.Context) (int32, error) {
		return version.Add(1), nil
	}

	list := Observe(context.Background(), c, Keys("businesses").List(nil), fetch)
	defer list.Close()
	require.Eventually(t, func() bool { return list.Result().Data == 1 }, waitFor, tick)

	touched := c.Invalidate(Keys("businesses").All())
	require.Len(t, touched, 1)

	require.Eventually(t, func() bool {
		r := list.Result()
		return r.Status == StatusSuccess && r.Data == 2
	}, waitFor, tick)
	assert.False(t, list.Result().Stale)
}

func TestObserve_Refetch(t *testing.T) {
	c := newCache(t, Options{StaleTime: time.Hour})
	fetch, calls := counter("v")

	obs := Observe(context.Background(), c, Keys("users").Stats(), fetch)
	require.Eventually(t, func() bool { return obs.Result().Status == StatusSuccess }, waitFor, tick)

	v, err := obs.Refetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v", v)
	assert.Equal(t, int32(2), calls.Load())

	obs.Close()
	_, err = obs.Refetch(context.Background())
	assert.Error(t, err)
}

func TestObserve_TypeMismatchSurfacesAsError(t *testing.T) {
	c := newCache(t, Options{StaleTime: time.Minute})
	key := Keys("users").Stats()
	_, err := Fetch(context.Background(), c, key, func(ctx context.Context) (string, error) { return "s", nil })
	require.NoError(t, err)

	obs := Observe(context.Background(), c, key, func(ctx context.Context) (int, error) { return 1, nil })
	defer obs.Close()
	r := obs.Result()
	assert.Error(t, r.Err)
	assert.Zero(t, r.Data)
}
