package graph

import (
	"fmt"
	"strings"
)

// highlightColor is the fill used to mark cycle members in subgraph output.
var highlightColor = "red"

// DOT serializes the whole graph as Graphviz dot: one label statement per
// node, one statement per edge. Traversal is depth first from each not yet
// visited component in insertion order, so connected components stay
// together in the output; already visited targets still get their edge
// statement, just no further descent, which terminates cleanly on cycles.
func (g *Graph) DOT() string {
	return g.dot(g.IDs, nil)
}

// SubgraphDOT serializes only what is reachable from seed. Ids in highlight
// get a fill color, which is how a cycle is shown in context: seed it at the
// cycle's first member and highlight all of them.
func (g *Graph) SubgraphDOT(seed string, highlight map[string]bool) string {
	return g.dot([]string{seed}, highlight)
}

func (g *Graph) dot(roots []string, highlight map[string]bool) string {
	var sb strings.Builder
	sb.WriteString("digraph Dependencies {\n")
	visited := make(map[string]bool, len(g.IDs))
	var draw func(id string)
	draw = func(id string) {
		visited[id] = true
		attrs := []string{fmt.Sprintf("label=%q", g.Name(id))}
		if highlight[id] {
			attrs = append(attrs, "style=filled", fmt.Sprintf("fillcolor=%q", highlightColor))
		}
		fmt.Fprintf(&sb, "%q [%s]\n", id, strings.Join(attrs, ", "))
		for _, dep := range g.Adj[id] {
			fmt.Fprintf(&sb, "%q -> %q\n", id, dep)
			if !visited[dep] {
				draw(dep)
			}
		}
	}
	for _, id := range roots {
		if !visited[id] {
			draw(id)
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}
