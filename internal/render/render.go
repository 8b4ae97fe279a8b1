// Package render draws the projected call graph as a diagram.
package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/emicklei/dot"
)

// Renderer is the narrow surface the core hands its graph to.
// Implementations own layout, styling, and emission; the core's contract
// ends at nodes, edges, and labels.
type Renderer interface {
	AddNode(id, label string)
	AddEdge(from, to string)
	Render(path, format string) error
}

const renderTimeout = 60 * time.Second

// Graphviz renders through the dot layout engine. The zero value is not
// usable; use NewGraphviz.
type Graphviz struct {
	g     *dot.Graph
	nodes int
	edges int
}

// NewGraphviz returns a Renderer with diagram-wide styling applied.
func NewGraphviz() *Graphviz {
	g := dot.NewGraph(dot.Directed)
	g.Attr("size", "15,15")
	g.Attr("ratio", "auto")
	g.Attr("dpi", "300")
	g.Attr("fontname", "Arial")
	g.Attr("fontsize", "10")
	g.Attr("nodesep", "1")
	g.Attr("ranksep", "1")
	return &Graphviz{g: g}
}

// AddNode registers a labeled box node. Adding the same id twice restyles the
// existing node rather than duplicating it.
func (r *Graphviz) AddNode(id, label string) {
	n := r.g.Node(id)
	n.Attr("label", label)
	n.Attr("shape", "rect")
	n.Attr("style", "filled")
	n.Attr("fillcolor", "lightblue")
	n.Attr("fontsize", "10")
	n.Attr("width", "2.5")
	n.Attr("labelloc", "t")
	n.Attr("margin", "0.2,0.2")
	r.nodes++
}

// AddEdge registers a directed edge between two node ids.
func (r *Graphviz) AddEdge(from, to string) {
	r.g.Edge(r.g.Node(from), r.g.Node(to))
	r.edges++
}

// Render writes the diagram to path. Format "dot" writes the Graphviz source
// directly; any other format is produced by the dot binary, which must be on
// PATH. Failures carry node and edge counts so oversized graphs can be
// diagnosed.
func (r *Graphviz) Render(path, format string) error {
	source := r.g.String()

	if format == "dot" {
		if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
			return r.wrap(err, "")
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), renderTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "dot", "-T"+format, "-o", path)
	cmd.Stdin = strings.NewReader(source)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return r.wrap(err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func (r *Graphviz) wrap(err error, detail string) error {
	if detail != "" {
		return fmt.Errorf("rendering %d nodes, %d edges: %s: %w", r.nodes, r.edges, detail, err)
	}
	return fmt.Errorf("rendering %d nodes, %d edges: %w", r.nodes, r.edges, err)
}
