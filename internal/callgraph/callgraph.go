// Package callgraph projects the corpus symbol table onto the node/edge
// graph handed to the renderer.
package callgraph

import (
	"sort"
	"strings"

	"github.com/dominikbraun/graph"

	"github.com/jlmoran/juliamap/internal/model"
)

// Edge is one deduplicated caller -> callee relationship.
type Edge struct {
	Caller string
	Callee string
}

// Graph is the projected call graph. Nodes and Edges are sorted so identical
// input always yields identical output.
type Graph struct {
	Nodes []string
	Edges []Edge
}

// Project converts the symbol table into a call graph. Every (caller, callee)
// pair yields exactly one edge no matter how many textual call sites exist.
// Calls were filtered against the index at scan time, so every edge endpoint
// is a node.
func Project(idx model.Index) *Graph {
	g := graph.New(graph.StringHash, graph.Directed())

	nodes := idx.Names()
	for _, name := range nodes {
		_ = g.AddVertex(name)
	}
	for _, name := range nodes {
		for _, callee := range idx[name].Calls {
			// Duplicate call sites collapse into one edge.
			_ = g.AddEdge(name, callee)
		}
	}

	edges, err := g.Edges()
	if err != nil {
		return &Graph{Nodes: nodes}
	}

	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		out = append(out, Edge{Caller: e.Source, Callee: e.Target})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Caller != out[j].Caller {
			return out[i].Caller < out[j].Caller
		}
		return out[i].Callee < out[j].Callee
	})

	return &Graph{Nodes: nodes, Edges: out}
}

// Label formats a routine's record as the multi-line display label for its
// diagram node.
func Label(r *model.Routine) string {
	lines := []string{
		r.Name,
		"File: " + r.Origin,
		"Imports: " + orNone(r.Imports),
		"Inputs: " + orNone(r.Inputs),
		"Outputs: " + orNone(r.Outputs),
		"Globals: " + orNone(r.Globals),
		"Variables: " + orNone(r.Variables),
	}
	return strings.Join(lines, "\n")
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
