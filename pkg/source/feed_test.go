package source

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"go.nanomsg.org/mangos/v3/protocol/pub"

	"github.com/dd0wney/graphlens/pkg/graph"
	"github.com/dd0wney/graphlens/pkg/logging"
)

// startPublisher listens on an inproc address and republishes payload
// until the test ends. Republishing papers over the pub/sub connect
// race; the subscriber just takes the first copy it sees.
func startPublisher(t *testing.T, url string, payload []byte) {
	t.Helper()
	sock, err := pub.NewSocket()
	if err != nil {
		t.Fatalf("Failed to create pub socket: %v", err)
	}
	if err := sock.Listen(url); err != nil {
		t.Fatalf("Failed to listen on %s: %v", url, err)
	}

	var stopped atomic.Bool
	t.Cleanup(func() {
		stopped.Store(true)
		sock.Close()
	})

	go func() {
		for !stopped.Load() {
			if err := sock.Send(payload); err != nil {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
	}()
}

func feedPayload(t *testing.T) []byte {
	t.Helper()
	doc := Document{
		Nodes: []NodeDoc{{ID: "a", Label: "Alice", Type: "person"}, {ID: "b"}},
		Edges: []EdgeDoc{{Source: "a", Target: "b", Type: "KNOWS"}},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document: %v", err)
	}
	return data
}

func TestFeedSourceLoad(t *testing.T) {
	url := fmt.Sprintf("inproc://feed-load-%d", time.Now().UnixNano())
	startPublisher(t, url, feedPayload(t))

	src, err := NewFeedSource(url, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("NewFeedSource failed: %v", err)
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	snap, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if snap.NodeCount() != 2 || snap.EdgeCount() != 1 {
		t.Errorf("Loaded %d nodes / %d edges, want 2/1", snap.NodeCount(), snap.EdgeCount())
	}
}

func TestFeedSourceWatchStopsOnCancel(t *testing.T) {
	url := fmt.Sprintf("inproc://feed-watch-%d", time.Now().UnixNano())
	startPublisher(t, url, feedPayload(t))

	src, err := NewFeedSource(url, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("NewFeedSource failed: %v", err)
	}
	defer src.Close()

	ctx, cancel := context.WithCancel(t.Context())
	received := make(chan int, 64)
	done := make(chan error, 1)
	go func() {
		done <- src.Watch(ctx, func(snap *graph.Snapshot) {
			received <- snap.NodeCount()
		})
	}()

	select {
	case n := <-received:
		if n != 2 {
			t.Errorf("Received snapshot with %d nodes, want 2", n)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("No snapshot received")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Watch returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop on cancel")
	}
}
