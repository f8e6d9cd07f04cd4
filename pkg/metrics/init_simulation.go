package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSimulationMetrics() {
	r.SimulationTicksTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphlens_simulation_ticks_total",
			Help: "Total number of simulation ticks executed",
		},
	)

	r.SimulationTickDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphlens_simulation_tick_duration_seconds",
			Help:    "Duration of a single simulation tick in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	r.SimulationSettleTicks = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphlens_simulation_settle_ticks",
			Help:    "Ticks from layout start (or reheat) to settle",
			Buckets: []float64{50, 100, 200, 300, 500, 1000, 2000},
		},
	)

	r.SimulationAlpha = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphlens_simulation_alpha",
			Help: "Current simulation cooling temperature",
		},
	)

	r.SimulationActiveBodies = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphlens_simulation_active_bodies",
			Help: "Number of bodies in the running simulation",
		},
	)

	r.SimulationReheatsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphlens_simulation_reheats_total",
			Help: "Total number of simulation reheats",
		},
		[]string{"reason"}, // drag, snapshot, resize
	)

	r.SimulationPinnedBodies = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphlens_simulation_pinned_bodies",
			Help: "Number of currently pinned bodies",
		},
	)
}
