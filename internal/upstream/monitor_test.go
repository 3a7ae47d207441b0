package upstream

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	calls atomic.Int32
	err   atomic.Value
}

func (f *fakeProber) Health(context.Context) error {
	f.calls.Add(1)
	if v := f.err.Load(); v != nil {
		return v.(error)
	}
	return nil
}

func TestMonitorNotProbedYet(t *testing.T) {
	m := NewMonitor(&fakeProber{}, time.Minute)
	require.ErrorIs(t, m.HealthCheck(context.Background()), ErrNotProbed)
	require.True(t, m.LastCheck().IsZero())
}

func TestMonitorProbe(t *testing.T) {
	p := &fakeProber{}
	m := NewMonitor(p, time.Minute)
	ctx := context.Background()

	require.NoError(t, m.Probe(ctx))
	require.NoError(t, m.HealthCheck(ctx))
	require.False(t, m.LastCheck().IsZero())

	down := errors.New("connection refused")
	p.err.Store(down)
	require.ErrorIs(t, m.Probe(ctx), down)
	require.ErrorIs(t, m.HealthCheck(ctx), down)
}

func TestMonitorStartProbesImmediately(t *testing.T) {
	p := &fakeProber{}
	m := NewMonitor(p, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	require.Eventually(t, func() bool {
		return m.HealthCheck(ctx) == nil
	}, time.Second, 10*time.Millisecond)
	require.Equal(t, int32(1), p.calls.Load())
}
