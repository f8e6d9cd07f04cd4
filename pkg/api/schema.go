// Package api serves the current graph and its layout over HTTP as a
// GraphQL endpoint, alongside health and Prometheus metrics endpoints.
package api

import (
	"encoding/json"
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/graphlens/pkg/graph"
	"github.com/dd0wney/graphlens/pkg/simulation"
	"github.com/dd0wney/graphlens/pkg/view"
)

// ViewState supplies resolvers with the latest published frame capture.
// Layout may return nil before the first snapshot loads, and must be
// safe to call from any goroutine: resolvers run on HTTP handler
// goroutines and never touch live engine state.
type ViewState interface {
	Layout() *view.Layout
}

// nodeView is the resolver source for one node with its layout.
type nodeView struct {
	node   graph.Node
	pos    simulation.Position
	pinned bool
}

// GenerateSchema builds the GraphQL schema over the live view state.
func GenerateSchema(state ViewState) (graphql.Schema, error) {
	nodeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Node",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if nv, ok := p.Source.(nodeView); ok {
						return nv.node.ID, nil
					}
					return nil, nil
				},
			},
			"label": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if nv, ok := p.Source.(nodeView); ok {
						return nv.node.Label, nil
					}
					return nil, nil
				},
			},
			"type": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if nv, ok := p.Source.(nodeView); ok {
						return string(nv.node.Type), nil
					}
					return nil, nil
				},
			},
			"properties": &graphql.Field{
				Type: graphql.String, // JSON object as a string
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					nv, ok := p.Source.(nodeView)
					if !ok || len(nv.node.Properties) == 0 {
						return "{}", nil
					}
					data, err := json.Marshal(nv.node.Properties)
					if err != nil {
						return nil, err
					}
					return string(data), nil
				},
			},
			"x": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if nv, ok := p.Source.(nodeView); ok {
						return nv.pos.X, nil
					}
					return nil, nil
				},
			},
			"y": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if nv, ok := p.Source.(nodeView); ok {
						return nv.pos.Y, nil
					}
					return nil, nil
				},
			},
			"pinned": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if nv, ok := p.Source.(nodeView); ok {
						return nv.pinned, nil
					}
					return nil, nil
				},
			},
		},
	})

	edgeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Edge",
		Fields: graphql.Fields{
			"source": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if e, ok := p.Source.(graph.Edge); ok {
						return e.Source, nil
					}
					return nil, nil
				},
			},
			"target": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if e, ok := p.Source.(graph.Edge); ok {
						return e.Target, nil
					}
					return nil, nil
				},
			},
			"type": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if e, ok := p.Source.(graph.Edge); ok {
						return e.Type, nil
					}
					return nil, nil
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"health": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return "ok", nil
				},
			},
			"node": &graphql.Field{
				Type: nodeType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					l := state.Layout()
					if l == nil {
						return nil, nil
					}
					id, _ := p.Args["id"].(string)
					node, ok := l.Snap.Node(id)
					if !ok {
						return nil, nil
					}
					return makeNodeView(node, l), nil
				},
			},
			"nodes": &graphql.Field{
				Type: graphql.NewList(nodeType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					l := state.Layout()
					if l == nil {
						return []nodeView{}, nil
					}
					views := make([]nodeView, 0, l.Snap.NodeCount())
					for _, n := range l.Snap.Nodes() {
						views = append(views, makeNodeView(n, l))
					}
					return views, nil
				},
			},
			"edges": &graphql.Field{
				Type: graphql.NewList(edgeType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					l := state.Layout()
					if l == nil {
						return []graph.Edge{}, nil
					}
					return l.Snap.Edges(), nil
				},
			},
			"centerNodeId": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if l := state.Layout(); l != nil {
						return l.Snap.CenterID(), nil
					}
					return "", nil
				},
			},
			"settled": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if l := state.Layout(); l != nil {
						return l.Settled, nil
					}
					return true, nil
				},
			},
			"alpha": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if l := state.Layout(); l != nil {
						return l.Alpha, nil
					}
					return 0.0, nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}
	return schema, nil
}

func makeNodeView(n graph.Node, l *view.Layout) nodeView {
	return nodeView{node: n, pos: l.Positions[n.ID], pinned: l.Pinned[n.ID]}
}
