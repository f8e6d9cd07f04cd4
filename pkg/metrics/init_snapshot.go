package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSnapshotMetrics() {
	r.SnapshotsLoadedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphlens_snapshots_loaded_total",
			Help: "Total number of graph snapshots loaded",
		},
		[]string{"source"}, // file, postgres, feed, demo
	)

	r.SnapshotNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphlens_snapshot_nodes_total",
			Help: "Number of nodes in the current snapshot",
		},
	)

	r.SnapshotEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphlens_snapshot_edges_total",
			Help: "Number of edges in the current snapshot",
		},
	)

	r.SnapshotDroppedEdgesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphlens_snapshot_dropped_edges_total",
			Help: "Total edges dropped for referencing unknown nodes",
		},
	)
}
