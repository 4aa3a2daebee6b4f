package tree

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/benz9527/xtree/lib/tree"

// treeStats records tree mutations as OpenTelemetry instruments.
// A nil *treeStats records nothing.
type treeStats struct {
	ctx       context.Context
	attrs     metric.MeasurementOption
	rotations metric.Int64Counter
	inserts   metric.Int64Counter
	removes   metric.Int64Counter
	nodes     metric.Int64UpDownCounter
}

func newTreeStats(meter metric.Meter, variant Variant) (*treeStats, error) {
	if meter == nil {
		return nil, nil
	}
	rotations, err := meter.Int64Counter(
		"xtree.rotations",
		metric.WithDescription("The number of rotations."),
	)
	if err != nil {
		return nil, err
	}
	inserts, err := meter.Int64Counter(
		"xtree.inserts",
		metric.WithDescription("The number of inserted keys."),
	)
	if err != nil {
		return nil, err
	}
	removes, err := meter.Int64Counter(
		"xtree.removes",
		metric.WithDescription("The number of removed keys."),
	)
	if err != nil {
		return nil, err
	}
	nodes, err := meter.Int64UpDownCounter(
		"xtree.nodes",
		metric.WithDescription("The number of live nodes."),
	)
	if err != nil {
		return nil, err
	}
	return &treeStats{
		ctx:       context.Background(),
		attrs:     metric.WithAttributes(attribute.String("variant", variant.String())),
		rotations: rotations,
		inserts:   inserts,
		removes:   removes,
		nodes:     nodes,
	}, nil
}

func (stats *treeStats) rotated() {
	if stats == nil {
		return
	}
	stats.rotations.Add(stats.ctx, 1, stats.attrs)
}

func (stats *treeStats) inserted() {
	if stats == nil {
		return
	}
	stats.inserts.Add(stats.ctx, 1, stats.attrs)
	stats.nodes.Add(stats.ctx, 1, stats.attrs)
}

func (stats *treeStats) removed() {
	if stats == nil {
		return
	}
	stats.removes.Add(stats.ctx, 1, stats.attrs)
	stats.nodes.Add(stats.ctx, -1, stats.attrs)
}

func (stats *treeStats) released(n int64) {
	if stats == nil || n <= 0 {
		return
	}
	stats.nodes.Add(stats.ctx, -n, stats.attrs)
}
