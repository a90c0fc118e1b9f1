package graph

import "sort"

// Level is one layer of the leaves-first topological ordering: level 0 holds
// components with no dependencies at all, higher levels components whose
// dependencies all sit in lower levels. Cycle members can't be leveled; they
// come back as a single layer with Cycle set, placed between what they
// depend on and what depends on them.
type Level struct {
	IDs   []string // sorted by id
	Cycle bool
}

// Levels orders the graph with Kahn's algorithm over the reverse graph.
// Processing runs in three stages: the levels reachable without touching a
// cycle, then one layer holding every cycle member, then the levels that
// only resolve once the cycles are treated as settled.
func (g *Graph) Levels() []Level {
	inCycle := make(map[string]bool)
	for _, cycle := range g.Cycles() {
		for _, id := range cycle {
			inCycle[id] = true
		}
	}
	rev := g.Reverse()
	remaining := make(map[string]int, len(g.IDs)) // unresolved dependency edges per id
	for _, id := range g.IDs {
		remaining[id] = len(g.Adj[id])
	}
	processed := make(map[string]bool, len(g.IDs))

	var levels []Level
	var queue []string
	for _, id := range g.IDs {
		if remaining[id] == 0 && !inCycle[id] {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	advance := func() {
		for len(queue) > 0 {
			levels = append(levels, Level{IDs: queue})
			var next []string
			for _, id := range queue {
				processed[id] = true
				for _, dependent := range rev[id] {
					if processed[dependent] || inCycle[dependent] {
						continue
					}
					remaining[dependent]--
					if remaining[dependent] == 0 {
						next = append(next, dependent)
					}
				}
			}
			sort.Strings(next)
			queue = next
		}
	}
	advance()

	if len(inCycle) > 0 {
		cycleIDs := make([]string, 0, len(inCycle))
		for id := range inCycle {
			cycleIDs = append(cycleIDs, id)
		}
		sort.Strings(cycleIDs)
		levels = append(levels, Level{IDs: cycleIDs, Cycle: true})
		for _, id := range cycleIDs {
			processed[id] = true
		}
		// Settling the cycles may free the components depending on them.
		for _, id := range cycleIDs {
			for _, dependent := range rev[id] {
				if processed[dependent] || inCycle[dependent] {
					continue
				}
				remaining[dependent]--
				if remaining[dependent] == 0 {
					queue = append(queue, dependent)
				}
			}
		}
		sort.Strings(queue)
		advance()
	}
	return levels
}
