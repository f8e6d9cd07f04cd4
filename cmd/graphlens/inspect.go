package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dd0wney/graphlens/pkg/export"
	"github.com/dd0wney/graphlens/pkg/graph"
)

func inspectCmd() *cobra.Command {
	var sourceKind string

	cmd := &cobra.Command{
		Use:   "inspect [layout-file]",
		Short: "Print a summary of a graph source or saved layout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				snap *graph.Snapshot
				err  error
			)

			if len(args) == 1 && strings.HasSuffix(args[0], ".layout") {
				snap, _, err = export.LoadLayout(args[0])
				if err != nil {
					return err
				}
				brand.Printf("graphlens inspect\n")
				subtle.Printf("  layout file %s\n", args[0])
			} else {
				src, srcErr := openSource(sourceKind)
				if srcErr != nil {
					return srcErr
				}
				defer src.Close()

				ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
				defer cancel()
				snap, err = src.Load(ctx)
				if err != nil {
					return err
				}
				brand.Printf("graphlens inspect\n")
			}

			fmt.Printf("  nodes:  %d\n", snap.NodeCount())
			fmt.Printf("  edges:  %d\n", snap.EdgeCount())
			if snap.DroppedEdges() > 0 {
				bad.Printf("  dropped dangling edges: %d\n", snap.DroppedEdges())
			}
			if center := snap.CenterID(); center != "" {
				if node, ok := snap.Node(center); ok {
					good.Printf("  center: %s (%s)\n", node.Label, center)
				} else {
					good.Printf("  center: %s\n", center)
				}
			}

			printTypeCounts("node types", nodeTypeCounts(snap))
			printTypeCounts("edge types", edgeTypeCounts(snap))
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceKind, "source", "", "override configured source kind")
	return cmd
}

func nodeTypeCounts(snap *graph.Snapshot) map[string]int {
	counts := make(map[string]int)
	for _, n := range snap.Nodes() {
		counts[string(n.Type)]++
	}
	return counts
}

func edgeTypeCounts(snap *graph.Snapshot) map[string]int {
	counts := make(map[string]int)
	for _, e := range snap.Edges() {
		counts[e.Type]++
	}
	return counts
}

func printTypeCounts(heading string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("  %s:\n", heading)
	for _, name := range names {
		fmt.Printf("    %-20s %d\n", name, counts[name])
	}
}
