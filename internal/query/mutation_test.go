package query

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/cleanaid/internal/errors"
	"github.com/felixgeelhaar/cleanaid/internal/metrics"
)

type statusChange struct {
	ID     string
	Status string
}

func TestMutation_InvalidatesBeforeOnSuccess(t *testing.T) {
	_, m := metrics.NewRegistry()
	c := newCache(t, Options{StaleTime: time.Minute, Metrics: m})
	fetch, _ := counter("b")
	businesses := Keys("businesses")

	for _, k := range []Key{businesses.List(nil), businesses.Detail("b1"), Keys("orders").Stats()} {
		_, err := Fetch(context.Background(), c, k, fetch)
		require.NoError(t, err)
	}

	var order []string
	mut := NewMutation(c,
		func(ctx context.Context, v statusChange) (string, error) {
			order = append(order, "mutate")
			return v.Status, nil
		},
		MutationOptions[statusChange, string]{
			Invalidates: func(v statusChange, _ string) []Key {
				return []Key{businesses.All(), businesses.Detail(v.ID)}
			},
			OnSuccess: func(ctx context.Context, v statusChange, r string) {
				order = append(order, "success")
				s, _ := c.Peek(businesses.Detail(v.ID))
				assert.True(t, s.Stale, "entries are stale by the time OnSuccess runs")
			},
			OnError: func(context.Context, statusChange, error) {
				order = append(order, "error")
			},
			OnSettled: func(ctx context.Context, v statusChange, r string, err error) {
				order = append(order, "settled")
			},
		})

	res, keys, err := mut.Execute(context.Background(), statusChange{ID: "b1", Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", res)
	assert.Equal(t, []string{"mutate", "success", "settled"}, order)
	require.Len(t, keys, 2)
	assert.True(t, keys[0].Equal(businesses.All()))

	s, _ := c.Peek(Keys("orders").Stats())
	assert.False(t, s.Stale, "other namespaces are untouched")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Mutations.WithLabelValues("true")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CacheInvalidations.WithLabelValues("businesses")))
}

func TestMutation_ErrorSkipsInvalidation(t *testing.T) {
	c := newCache(t, Options{StaleTime: time.Minute})
	fetch, _ := counter("b")
	key := Keys("businesses").Detail("b1")
	_, err := Fetch(context.Background(), c, key, fetch)
	require.NoError(t, err)

	boom := errors.New(errors.ErrCodeBadRequest, "invalid status")
	var order []string
	var settledErr error
	mut := NewMutation(c,
		func(ctx context.Context, id string) (string, error) { return "", boom },
		MutationOptions[string, string]{
			Invalidates: func(id string, _ string) []Key {
				t.Error("Invalidates must not run on failure")
				return nil
			},
			OnSuccess: func(context.Context, string, string) { order = append(order, "success") },
			OnError: func(ctx context.Context, id string, err error) {
				order = append(order, "error")
				assert.ErrorIs(t, err, boom)
			},
			OnSettled: func(ctx context.Context, id string, r string, err error) {
				order = append(order, "settled")
				settledErr = err
			},
		})

	_, keys, err := mut.Execute(context.Background(), "b1")
	require.ErrorIs(t, err, boom)
	assert.Empty(t, keys)
	assert.Equal(t, []string{"error", "settled"}, order)
	assert.ErrorIs(t, settledErr, boom)

	s, _ := c.Peek(key)
	assert.False(t, s.Stale)
}

func TestMutation_NoOptions(t *testing.T) {
	c := newCache(t, Options{})
	mut := NewMutation(c, func(ctx context.Context, n int) (int, error) { return n * 2, nil }, MutationOptions[int, int]{})
	res, keys, err := mut.Execute(context.Background(), 21)
	require.NoError(t, err)
	assert.Equal(t, 42, res)
	assert.Nil(t, keys)
}
