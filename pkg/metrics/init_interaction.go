package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initInteractionMetrics() {
	r.InteractionEventsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphlens_interaction_events_total",
			Help: "Total number of pointer interaction events",
		},
		[]string{"kind"}, // drag, click, hover, zoom
	)

	r.RenderFramesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphlens_render_frames_total",
			Help: "Total number of frames drawn",
		},
	)

	r.RenderFrameDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphlens_render_frame_duration_seconds",
			Help:    "Duration of a full frame draw in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.033, 0.1},
		},
	)
}
