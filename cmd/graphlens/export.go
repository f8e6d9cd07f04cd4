package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dd0wney/graphlens/pkg/export"
	"github.com/dd0wney/graphlens/pkg/graph"
	"github.com/dd0wney/graphlens/pkg/simulation"
)

// settleCap bounds the headless layout run. The standard cooling
// schedule settles in roughly 300 ticks; this leaves generous headroom.
const settleCap = 10000

func exportCmd() *cobra.Command {
	var (
		format     string
		output     string
		sourceKind string
		title      string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Lay out a graph headlessly and export the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := openSource(sourceKind)
			if err != nil {
				return err
			}
			defer src.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()
			snap, err := src.Load(ctx)
			if err != nil {
				return err
			}

			brand.Printf("graphlens export\n")
			fmt.Printf("  %d nodes, %d edges", snap.NodeCount(), snap.EdgeCount())
			if snap.DroppedEdges() > 0 {
				subtle.Printf("  (%d dangling edges dropped)", snap.DroppedEdges())
			}
			fmt.Println()

			eng, ticks := settle(snap)
			fmt.Printf("  settled in %d ticks\n", ticks)

			if output == "" {
				output = "graph." + extensionFor(format)
			}
			positions := eng.Positions()

			switch format {
			case "json":
				err = export.WriteJSON(output, snap, positions)
			case "layout":
				err = export.SaveLayout(output, snap, positions)
			case "html":
				if title == "" {
					title = filepath.Base(output)
				}
				err = export.WriteHTML(output, title, snap, positions)
			default:
				return fmt.Errorf("unknown format %q (want json, layout, or html)", format)
			}
			if err != nil {
				return err
			}

			good.Printf("  wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "html", "output format: json, layout, or html")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default graph.<ext>)")
	cmd.Flags().StringVar(&sourceKind, "source", "", "override configured source kind")
	cmd.Flags().StringVar(&title, "title", "", "page title for html exports")
	return cmd
}

func extensionFor(format string) string {
	if format == "layout" {
		return "layout"
	}
	return format
}

// settle runs the layout to completion without a host or renderer.
func settle(snap *graph.Snapshot) (*simulation.Engine, int) {
	eng := simulation.NewEngine(snap,
		float64(cfg.Viewport.Width), float64(cfg.Viewport.Height), cfg.EngineConfig())
	ticks := 0
	for ; ticks < settleCap && !eng.Settled(); ticks++ {
		eng.Step()
	}
	return eng, ticks
}
