// Package metrics exposes Prometheus metrics for the simulation,
// snapshot pipeline, interaction layer, and HTTP API.
package metrics

import (
	"time"
)

// RecordTick records one simulation tick with its duration
func (r *Registry) RecordTick(duration time.Duration, alpha float64) {
	r.SimulationTicksTotal.Inc()
	r.SimulationTickDuration.Observe(duration.Seconds())
	r.SimulationAlpha.Set(alpha)
}

// RecordSettle records the number of ticks a layout took to settle
func (r *Registry) RecordSettle(ticks int) {
	r.SimulationSettleTicks.Observe(float64(ticks))
	r.SimulationAlpha.Set(0)
}

// RecordReheat records a simulation restart by reason
func (r *Registry) RecordReheat(reason string) {
	r.SimulationReheatsTotal.WithLabelValues(reason).Inc()
}

// RecordSnapshot records a loaded snapshot and updates size gauges
func (r *Registry) RecordSnapshot(source string, nodes, edges, droppedEdges int) {
	r.SnapshotsLoadedTotal.WithLabelValues(source).Inc()
	r.SnapshotNodesTotal.Set(float64(nodes))
	r.SnapshotEdgesTotal.Set(float64(edges))
	r.SnapshotDroppedEdgesTotal.Add(float64(droppedEdges))
	r.SimulationActiveBodies.Set(float64(nodes))
}

// RecordInteraction records a pointer interaction event by kind
func (r *Registry) RecordInteraction(kind string) {
	r.InteractionEventsTotal.WithLabelValues(kind).Inc()
}

// RecordFrame records one full frame draw with its duration
func (r *Registry) RecordFrame(duration time.Duration) {
	r.RenderFramesTotal.Inc()
	r.RenderFrameDuration.Observe(duration.Seconds())
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
