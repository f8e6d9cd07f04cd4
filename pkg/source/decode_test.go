package source

import (
	"testing"

	"github.com/dd0wney/graphlens/pkg/graph"
)

func TestDecode(t *testing.T) {
	data := []byte(`{
		"nodes": [
			{"id": "a", "label": "Alice", "type": "person", "properties": {"born": "1990"}},
			{"id": "b", "label": "Berlin", "type": "PLACE"}
		],
		"edges": [
			{"source": "a", "target": "b", "type": "VISITED"},
			{"source": "a", "target": "ghost", "type": "KNOWS"}
		],
		"centerNodeId": "a"
	}`)

	snap, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if snap.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", snap.NodeCount())
	}
	if snap.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1 (dangling edge dropped)", snap.EdgeCount())
	}
	if snap.DroppedEdges() != 1 {
		t.Errorf("DroppedEdges = %d, want 1", snap.DroppedEdges())
	}
	if snap.CenterID() != "a" {
		t.Errorf("CenterID = %q, want a", snap.CenterID())
	}

	n, ok := snap.Node("a")
	if !ok {
		t.Fatal("Node a missing")
	}
	if n.Type != graph.TypePerson {
		t.Errorf("Type = %q, want normalized %q", n.Type, graph.TypePerson)
	}
	if n.Properties["born"] != "1990" {
		t.Errorf("Properties not preserved: %v", n.Properties)
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	if _, err := Decode([]byte(`{"nodes": [`)); err == nil {
		t.Error("Malformed JSON must fail")
	}
	if _, err := Decode([]byte(`{"nodes": [{"id": "a"}, {"id": "a"}]}`)); err == nil {
		t.Error("Duplicate node IDs must fail")
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	snap, err := NewDemoSource().Load(t.Context())
	if err != nil {
		t.Fatalf("Demo load failed: %v", err)
	}

	doc := DocumentFrom(snap)
	back, err := doc.Snapshot()
	if err != nil {
		t.Fatalf("Document.Snapshot failed: %v", err)
	}

	if back.NodeCount() != snap.NodeCount() || back.EdgeCount() != snap.EdgeCount() {
		t.Errorf("Round trip changed sizes: %d/%d nodes, %d/%d edges",
			back.NodeCount(), snap.NodeCount(), back.EdgeCount(), snap.EdgeCount())
	}
	if back.CenterID() != snap.CenterID() {
		t.Errorf("Round trip changed center: %q != %q", back.CenterID(), snap.CenterID())
	}
}
