package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics(t *testing.T) {
	_, m := NewRegistry()

	tests := []struct {
		name   string
		metric interface{}
	}{
		{"Requests", m.Requests},
		{"RequestDuration", m.RequestDuration},
		{"RequestFailures", m.RequestFailures},
		{"AuthRedirects", m.AuthRedirects},
		{"CacheHits", m.CacheHits},
		{"CacheMisses", m.CacheMisses},
		{"CacheFetches", m.CacheFetches},
		{"CacheInvalidations", m.CacheInvalidations},
		{"CacheEvictions", m.CacheEvictions},
		{"CacheEntries", m.CacheEntries},
		{"Mutations", m.Mutations},
		{"Errors", m.Errors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestTransportMetrics(t *testing.T) {
	_, m := NewRegistry()

	m.ObserveRequest("GET", 200, 20*time.Millisecond)
	m.ObserveRequest("GET", 200, 30*time.Millisecond)
	m.ObserveRequest("PATCH", 401, 10*time.Millisecond)
	m.ObserveFailure("GET", "TRANSPORT-001", time.Second)
	m.AuthRedirect()

	if got := testutil.ToFloat64(m.Requests.WithLabelValues("GET", "200")); got != 2 {
		t.Errorf("GET 200 = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Requests.WithLabelValues("PATCH", "401")); got != 1 {
		t.Errorf("PATCH 401 = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RequestFailures.WithLabelValues("GET", "TRANSPORT-001")); got != 1 {
		t.Errorf("failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.AuthRedirects); got != 1 {
		t.Errorf("redirects = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.RequestDuration); got != 2 {
		t.Errorf("duration series = %d, want 2", got)
	}
}

func TestCacheMetrics(t *testing.T) {
	_, m := NewRegistry()

	m.CacheHit("users")
	m.CacheMiss("users")
	m.CacheMiss("users")
	m.CacheFetch("users", "success")
	m.CacheFetch("users", "error")
	m.CacheInvalidated("users", 3)
	m.CacheInvalidated("orders", 0)
	m.CacheEvicted()
	m.SetCacheEntries(7)

	if got := testutil.ToFloat64(m.CacheHits.WithLabelValues("users")); got != 1 {
		t.Errorf("hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.CacheMisses.WithLabelValues("users")); got != 2 {
		t.Errorf("misses = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.CacheFetches.WithLabelValues("users", "error")); got != 1 {
		t.Errorf("error fetches = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.CacheInvalidations.WithLabelValues("users")); got != 3 {
		t.Errorf("invalidations = %v, want 3", got)
	}
	if got := testutil.CollectAndCount(m.CacheInvalidations); got != 1 {
		t.Errorf("zero invalidations should not create a series, got %d", got)
	}
	if got := testutil.ToFloat64(m.CacheEvictions); got != 1 {
		t.Errorf("evictions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.CacheEntries); got != 7 {
		t.Errorf("entries = %v, want 7", got)
	}
}

func TestMutationAndErrorMetrics(t *testing.T) {
	_, m := NewRegistry()

	m.Mutation(true)
	m.Mutation(false)
	m.Error("TRANSPORT-003", "transport")
	m.Error("", "transport")

	if got := testutil.ToFloat64(m.Mutations.WithLabelValues("true")); got != 1 {
		t.Errorf("successful mutations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Errors.WithLabelValues("TRANSPORT-003", "transport")); got != 1 {
		t.Errorf("errors = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.Errors); got != 1 {
		t.Errorf("empty code should be ignored, got %d series", got)
	}
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics

	// None of these may panic.
	m.ObserveRequest("GET", 200, time.Millisecond)
	m.ObserveFailure("GET", "TRANSPORT-001", time.Millisecond)
	m.AuthRedirect()
	m.CacheHit("users")
	m.CacheMiss("users")
	m.CacheFetch("users", "success")
	m.CacheInvalidated("users", 1)
	m.CacheEvicted()
	m.SetCacheEntries(1)
	m.Mutation(true)
	m.Error("X", "y")
}

func BenchmarkObserveRequest(b *testing.B) {
	_, m := NewRegistry()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		m.ObserveRequest("GET", 200, time.Millisecond)
	}
}
