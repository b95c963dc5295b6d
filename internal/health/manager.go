package health

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds each check.
const DefaultTimeout = 5 * time.Second

// Report is one named result.
type Report struct {
	Name    string         `json:"name" yaml:"name"`
	Status  Status         `json:"status" yaml:"status"`
	Message string         `json:"message" yaml:"message"`
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	Latency time.Duration  `json:"latency" yaml:"latency"`
}

// Manager runs checks concurrently and collects their results.
type Manager struct {
	checkers []Checker
	timeout  time.Duration
}

// NewManager creates a manager. A non-positive timeout uses DefaultTimeout.
func NewManager(timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Manager{timeout: timeout}
}

// Add registers checkers. Reports keep this order.
func (m *Manager) Add(checkers ...Checker) *Manager {
	m.checkers = append(m.checkers, checkers...)
	return m
}

// Check runs every checker and returns one report per checker. A checker
// that overruns its timeout, or returns nil, reports unhealthy.
func (m *Manager) Check(ctx context.Context) []Report {
	reports := make([]Report, len(m.checkers))

	var g errgroup.Group
	for i, c := range m.checkers {
		g.Go(func() error {
			r := m.run(ctx, c)
			reports[i] = Report{Name: c.Name(), Status: r.Status, Message: r.Message, Details: r.Details, Latency: r.Latency}
			return nil
		})
	}
	_ = g.Wait()
	return reports
}

func (m *Manager) run(ctx context.Context, c Checker) *Result {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan *Result, 1)
	go func() { done <- c.Check(ctx) }()

	var r *Result
	select {
	case r = <-done:
		if r == nil {
			r = Unhealthy("check returned no result")
		}
	case <-ctx.Done():
		r = Unhealthy("check timed out").WithDetail("timeout", m.timeout.String())
	}
	if r.Latency == 0 {
		r.Latency = time.Since(start)
	}
	return r
}

// Overall is unhealthy if any report is, else degraded if any report is,
// else healthy.
func Overall(reports []Report) Status {
	status := StatusHealthy
	for _, r := range reports {
		switch r.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			status = StatusDegraded
		}
	}
	return status
}
