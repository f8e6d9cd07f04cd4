package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the viewer
type Registry struct {
	// Simulation Metrics
	SimulationTicksTotal    prometheus.Counter
	SimulationTickDuration  prometheus.Histogram
	SimulationSettleTicks   prometheus.Histogram
	SimulationAlpha         prometheus.Gauge
	SimulationActiveBodies  prometheus.Gauge
	SimulationReheatsTotal  *prometheus.CounterVec
	SimulationPinnedBodies  prometheus.Gauge

	// Snapshot Metrics
	SnapshotsLoadedTotal      *prometheus.CounterVec
	SnapshotNodesTotal        prometheus.Gauge
	SnapshotEdgesTotal        prometheus.Gauge
	SnapshotDroppedEdgesTotal prometheus.Counter

	// Interaction Metrics
	InteractionEventsTotal *prometheus.CounterVec
	RenderFramesTotal      prometheus.Counter
	RenderFrameDuration    prometheus.Histogram

	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	// Initialize all metrics
	r.initSimulationMetrics()
	r.initSnapshotMetrics()
	r.initInteractionMetrics()
	r.initHTTPMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
