package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryReport(t *testing.T) {
	r := NewRegistry()
	r.Register("upstream", CheckerFunc(func(context.Context) error { return nil }))
	r.Register("diagnostics", CheckerFunc(func(context.Context) error { return nil }))

	require.Equal(t, []string{"diagnostics", "upstream"}, r.List())

	statuses, ready := r.Report(context.Background())
	require.True(t, ready)
	require.Equal(t, map[string]string{"diagnostics": "ok", "upstream": "ok"}, statuses)

	r.Register("upstream", CheckerFunc(func(context.Context) error { return errors.New("connection refused") }))
	statuses, ready = r.Report(context.Background())
	require.False(t, ready)
	require.Equal(t, "connection refused", statuses["upstream"])
	require.Equal(t, "ok", statuses["diagnostics"])
}

func TestEmptyRegistryIsReady(t *testing.T) {
	statuses, ready := NewRegistry().Report(context.Background())
	require.True(t, ready)
	require.Empty(t, statuses)
}
