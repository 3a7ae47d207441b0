// Package upstream watches the fitness API root and tracks whether it is reachable.
package upstream

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/octofit/dashboard/internal/observability"
)

// ErrNotProbed is reported before the first probe has finished
var ErrNotProbed = errors.New("upstream not probed yet")

// Prober checks the API root once
type Prober interface {
	Health(ctx context.Context) error
}

// Monitor periodically probes the API root
type Monitor struct {
	prober   Prober
	interval time.Duration

	mu        sync.RWMutex
	lastErr   error
	lastCheck time.Time
}

// NewMonitor creates a new upstream monitor
func NewMonitor(prober Prober, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	return &Monitor{
		prober:   prober,
		interval: interval,
		lastErr:  ErrNotProbed,
	}
}

// Start begins the monitor in a goroutine
func (m *Monitor) Start(ctx context.Context) {
	go m.run(ctx)
}

func (m *Monitor) run(ctx context.Context) {
	slog.Info("upstream monitor started", "interval", m.interval)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// Probe immediately on start
	m.Probe(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("upstream monitor stopped")
			return
		case <-ticker.C:
			m.Probe(ctx)
		}
	}
}

// Probe runs one check and records its result
func (m *Monitor) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.interval)
	defer cancel()

	err := m.prober.Health(ctx)

	m.mu.Lock()
	wasUp := m.lastErr == nil
	m.lastErr = err
	m.lastCheck = time.Now()
	m.mu.Unlock()

	observability.RecordUpstream(err == nil)

	switch {
	case err != nil && wasUp:
		slog.Warn("fitness API unreachable", "error", err)
	case err != nil:
		slog.Debug("fitness API still unreachable", "error", err)
	case !wasUp:
		slog.Info("fitness API reachable")
	}

	return err
}

// HealthCheck reports the result of the latest probe
func (m *Monitor) HealthCheck(context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// LastCheck returns when the latest probe finished
func (m *Monitor) LastCheck() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastCheck
}
