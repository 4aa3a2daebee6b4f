package observability

import (
	"context"
	"io"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"

	"github.com/benz9527/xtree/lib/tree"
)

func TestConsoleMetricsExporter(t *testing.T) {
	shutdown, err := NewConsoleMetricsExporter(time.Second, time.Second, stdoutmetric.WithWriter(io.Discard))
	require.NoError(t, err)

	rb, err := tree.NewRBTree(
		tree.WithMeterProvider[int](otel.GetMeterProvider()),
		tree.WithValues(lo.Range(32)...),
	)
	require.NoError(t, err)
	require.Equal(t, int64(32), rb.Len())
	require.NoError(t, shutdown(context.Background()))
}

func TestPrometheusMetricsExporter(t *testing.T) {
	registry := promclient.NewRegistry()
	shutdown, err := NewPrometheusMetricsExporter(otelprom.WithRegisterer(registry))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, shutdown(context.Background()))
	}()

	avl, err := tree.NewAVLTree(
		tree.WithMeterProvider[int](otel.GetMeterProvider()),
		tree.WithValues(lo.Range(8)...),
	)
	require.NoError(t, err)
	require.True(t, avl.Remove(3))

	families, err := registry.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] += m.GetGauge().GetValue()
			default:
			}
		}
	}
	require.Equal(t, float64(8), values["xtree_inserts_total"])
	require.Equal(t, float64(1), values["xtree_removes_total"])
	require.Equal(t, float64(7), values["xtree_nodes"])
	require.Positive(t, values["xtree_rotations_total"])
}
