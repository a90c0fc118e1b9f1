package graph

import "sort"

// Strongly connected components via Kosaraju's two passes: a postorder
// finish stack over the original graph, then depth-first collection over the
// reverse graph in reverse finish order. Each fresh start in pass 2 yields
// exactly one SCC.

// visitState is the explicit three-color marking of the first pass; a node
// that is in progress must not be revisited or its postorder would be wrong
// in the presence of cycles.
type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	finished
)

// Reverse returns the transposed adjacency: every edge dependent -> dep
// becomes dep -> dependent. Parallel edges stay duplicated, the traversals
// don't care.
func (g *Graph) Reverse() map[string][]string {
	rev := make(map[string][]string, len(g.IDs))
	for _, id := range g.IDs {
		for _, dep := range g.Adj[id] {
			rev[dep] = append(rev[dep], id)
		}
	}
	return rev
}

// SCCs partitions the graph into strongly connected components: every
// component id lands in exactly one SCC. Traversals use explicit stacks so
// pathological SBOMs can't blow the call stack; visitation order is the same
// as the recursive formulation.
func (g *Graph) SCCs() [][]string {
	state := make(map[string]visitState, len(g.IDs))
	finish := make([]string, 0, len(g.IDs))

	// Pass 1: push each node onto the finish stack once all its
	// dependencies are done (postorder), starting from every unvisited node
	// in insertion order.
	type frame struct {
		id   string
		next int // index of the next adjacency entry to look at
	}
	for _, start := range g.IDs {
		if state[start] != unvisited {
			continue
		}
		stack := []frame{{id: start}}
		state[start] = inProgress
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if adj := g.Adj[top.id]; top.next < len(adj) {
				dep := adj[top.next]
				top.next++
				if state[dep] == unvisited {
					state[dep] = inProgress
					stack = append(stack, frame{id: dep})
				}
				continue
			}
			state[top.id] = finished
			finish = append(finish, top.id)
			stack = stack[:len(stack)-1]
		}
	}

	// Pass 2: pop the finish stack; every pop that hits a fresh node
	// collects one SCC from the reverse graph.
	rev := g.Reverse()
	seen := make(map[string]bool, len(g.IDs))
	var sccs [][]string
	for i := len(finish) - 1; i >= 0; i-- {
		if seen[finish[i]] {
			continue
		}
		var scc []string
		stack := []string{finish[i]}
		seen[finish[i]] = true
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			scc = append(scc, id)
			for _, dependent := range rev[id] {
				if !seen[dependent] {
					seen[dependent] = true
					stack = append(stack, dependent)
				}
			}
		}
		sccs = append(sccs, scc)
	}
	return sccs
}

// Cycles returns the SCCs that are actual dependency cycles: two or more
// members, or a single member that depends on itself. Members are sorted by
// id; the order between cycles is the pass-2 discovery order.
func (g *Graph) Cycles() [][]string {
	var cycles [][]string
	for _, scc := range g.SCCs() {
		if len(scc) == 1 && !g.HasSelfEdge(scc[0]) {
			continue
		}
		sorted := append([]string{}, scc...)
		sort.Strings(sorted)
		cycles = append(cycles, sorted)
	}
	return cycles
}
