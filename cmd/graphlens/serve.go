package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dd0wney/graphlens/pkg/api"
	"github.com/dd0wney/graphlens/pkg/graph"
	"github.com/dd0wney/graphlens/pkg/metrics"
	"github.com/dd0wney/graphlens/pkg/source"
	"github.com/dd0wney/graphlens/pkg/view"
)

// servedState holds the settled layout the API serves. The feed
// goroutine swaps in whole captures; resolvers only ever see one
// consistent layout.
type servedState struct {
	layout atomic.Pointer[view.Layout]
}

func (s *servedState) Layout() *view.Layout { return s.layout.Load() }

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the laid-out graph over GraphQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := openSource("")
			if err != nil {
				return err
			}
			defer src.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			snap, err := src.Load(ctx)
			cancel()
			if err != nil {
				return err
			}

			state := &servedState{}
			eng, _ := settle(snap)
			state.layout.Store(view.CaptureLayout(snap, eng))

			if addr == "" {
				addr = cfg.Server.Addr
			}
			met := metrics.DefaultRegistry()
			met.RecordSnapshot(cfg.Source.Kind, snap.NodeCount(), snap.EdgeCount(), snap.DroppedEdges())

			server, err := api.NewServer(state, addr, logger, met)
			if err != nil {
				return err
			}

			// A feed keeps replacing the served layout.
			if feed, ok := src.(*source.FeedSource); ok {
				go func() {
					_ = feed.Watch(context.Background(), func(next *graph.Snapshot) {
						eng, _ := settle(next)
						state.layout.Store(view.CaptureLayout(next, eng))
						met.RecordSnapshot("feed", next.NodeCount(), next.EdgeCount(), next.DroppedEdges())
					})
				}()
			}

			brand.Printf("graphlens serve\n")
			fmt.Printf("  graphql:  http://%s/graphql\n", addr)
			fmt.Printf("  health:   http://%s/health\n", addr)
			fmt.Printf("  metrics:  http://%s/metrics\n", addr)

			go func() {
				sig := make(chan os.Signal, 1)
				signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
				<-sig
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = server.Shutdown(shutdownCtx)
			}()

			return server.Start()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
