package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusHooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewPrometheusHooks(reg)
	ctx := context.Background()

	h.OnEncode(ctx, 10, 15, 110, 460)
	h.OnSolveStart(ctx, 10)
	h.OnSolveComplete(ctx, "OPTIMAL", 20*time.Millisecond)
	h.OnSolveComplete(ctx, "OPTIMAL", 30*time.Millisecond)
	h.OnSolveComplete(ctx, "INFEASIBLE", time.Millisecond)
	h.OnDecode(ctx, 3, nil)
	h.OnDecode(ctx, 0, errors.New("ambiguous"))
	h.OnCacheHit(ctx, "solution")
	h.OnCacheMiss(ctx, "solution")
	h.OnCacheSet(ctx, "solution", 128)
	h.OnRequest(ctx, "POST", "/v1/color", 200, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(h.solves.WithLabelValues("OPTIMAL")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.solves.WithLabelValues("INFEASIBLE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.decodeErrors))
	assert.Equal(t, 460.0, testutil.ToFloat64(h.modelSize.WithLabelValues("constraints")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.cacheEvents.WithLabelValues("hit", "solution")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.requests.WithLabelValues("POST", "/v1/color", "200")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"chromatic_solves_total",
		"chromatic_solve_duration_seconds",
		"chromatic_colors_used",
		"chromatic_cache_events_total",
	} {
		assert.True(t, names[want], "missing metric %s", want)
	}
}

func TestPrometheusHooksDoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusHooks(reg)
	assert.Panics(t, func() { NewPrometheusHooks(reg) })
}
