package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Verify all metrics are initialized
	if r.SimulationTicksTotal == nil {
		t.Error("SimulationTicksTotal not initialized")
	}
	if r.SimulationAlpha == nil {
		t.Error("SimulationAlpha not initialized")
	}
	if r.SnapshotsLoadedTotal == nil {
		t.Error("SnapshotsLoadedTotal not initialized")
	}
	if r.InteractionEventsTotal == nil {
		t.Error("InteractionEventsTotal not initialized")
	}
	if r.HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	// Should return the same instance
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordTick(t *testing.T) {
	r := NewRegistry()

	r.RecordTick(2*time.Millisecond, 0.8)
	r.RecordTick(1*time.Millisecond, 0.6)

	var metric dto.Metric
	if err := r.SimulationTicksTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to read counter: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 2 {
		t.Errorf("SimulationTicksTotal = %f, want 2", got)
	}

	if err := r.SimulationAlpha.Write(&metric); err != nil {
		t.Fatalf("Failed to read gauge: %v", err)
	}
	if got := metric.GetGauge().GetValue(); got != 0.6 {
		t.Errorf("SimulationAlpha = %f, want 0.6", got)
	}
}

func TestRecordSnapshot(t *testing.T) {
	r := NewRegistry()

	r.RecordSnapshot("file", 12, 18, 3)
	r.RecordSnapshot("feed", 20, 25, 0)

	counter, err := r.SnapshotsLoadedTotal.GetMetricWithLabelValues("file")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to read counter: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 1 {
		t.Errorf("SnapshotsLoadedTotal{file} = %f, want 1", got)
	}

	if err := r.SnapshotNodesTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to read gauge: %v", err)
	}
	if got := metric.GetGauge().GetValue(); got != 20 {
		t.Errorf("SnapshotNodesTotal = %f, want 20 (latest snapshot)", got)
	}

	if err := r.SnapshotDroppedEdgesTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to read counter: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 3 {
		t.Errorf("SnapshotDroppedEdgesTotal = %f, want 3", got)
	}
}

func TestRecordInteraction(t *testing.T) {
	r := NewRegistry()

	r.RecordInteraction("drag")
	r.RecordInteraction("drag")
	r.RecordInteraction("zoom")

	counter, err := r.InteractionEventsTotal.GetMetricWithLabelValues("drag")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to read counter: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 2 {
		t.Errorf("InteractionEventsTotal{drag} = %f, want 2", got)
	}
}
