package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"fortio.org/log"

	"github.com/ldemailly/sbomdeps/graph"
)

// --- Report Sections ---
// One function per section, every listing deterministic: components iterate
// in insertion order, anything unordered is sorted before display.

func printDependencies(w io.Writer, g *graph.Graph) {
	fmt.Fprintln(w, "\nDependencies (component: dependencies):")
	for _, id := range g.IDs {
		deps := append([]string{}, g.Adj[id]...)
		sort.Strings(deps)
		names := make([]string, len(deps))
		for i, dep := range deps {
			names[i] = g.Name(dep)
		}
		fmt.Fprintf(w, "%s: %s\n", g.Name(id), strings.Join(names, ", "))
	}
}

func printDuplicates(w io.Writer, g *graph.Graph) {
	fmt.Fprintln(w, "\nDuplicate Component Names:")
	names, groups := g.Duplicates()
	for _, name := range names {
		fmt.Fprintf(w, "%s: %s\n", name, strings.Join(groups[name], ", "))
	}
}

func printFrequencies(w io.Writer, g *graph.Graph) {
	fmt.Fprintln(w, "\nDependency Frequencies (dependants - arrows inward, dependencies - arrows outward):")
	degrees := g.Degrees()
	for _, id := range g.RankByDegree() {
		d := degrees[id]
		fmt.Fprintf(w, "%s: %d, %d\n", g.Name(id), d.Dependents, d.Dependencies)
	}
}

func printCycles(w io.Writer, g *graph.Graph, cycles [][]string) {
	fmt.Fprintln(w, "\nCircular Dependencies:")
	for i, cycle := range cycles {
		names := make([]string, len(cycle))
		for j, id := range cycle {
			names[j] = g.Name(id)
		}
		fmt.Fprintf(w, "Cycle %d: %s\n", i+1, strings.Join(names, ", "))
	}
}

func printLevels(w io.Writer, g *graph.Graph) {
	fmt.Fprintln(w, "\nDependency Levels (leaves first):")
	for i, level := range g.Levels() {
		names := make([]string, len(level.IDs))
		for j, id := range level.IDs {
			names[j] = g.Name(id)
		}
		suffix := ""
		if level.Cycle {
			suffix = " (cycles)"
		}
		fmt.Fprintf(w, "Level %d%s: %s\n", i, suffix, strings.Join(names, ", "))
	}
}

// --- End Report Sections ---

// --- Dot Artifacts ---

// dotStem derives the artifact base path from the input path: gzip and json
// suffixes drop, everything else sticks, so "x/sbom.spdx.json" writes
// "x/sbom.spdx.dot" next to the input.
func dotStem(path string) string {
	stem := strings.TrimSuffix(path, ".gz")
	stem = strings.TrimSuffix(stem, ".json")
	if stem == "" {
		stem = "dependencies"
	}
	return stem
}

// sanitizeName makes a component display name safe to embed in a filename.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			return r
		}
		return '_'
	}, name)
}

// writeArtifacts writes the full graph dot file, then one highlighted
// subgraph per cycle, named by cycle number and the display name of its
// first (sorted) member, which also seeds the subgraph traversal.
func writeArtifacts(w io.Writer, g *graph.Graph, cycles [][]string, stem string) {
	fmt.Fprintln(w)
	saveDot(w, stem+".dot", g.DOT())
	for i, cycle := range cycles {
		highlight := make(map[string]bool, len(cycle))
		for _, id := range cycle {
			highlight[id] = true
		}
		path := fmt.Sprintf("%s.cycle%d.%s.dot", stem, i+1, sanitizeName(g.Name(cycle[0])))
		saveDot(w, path, g.SubgraphDOT(cycle[0], highlight))
	}
}

func saveDot(w io.Writer, path, dot string) {
	if err := os.WriteFile(path, []byte(dot), 0644); err != nil {
		log.Fatalf("Unable to write %s: %v", path, err)
	}
	fmt.Fprintf(w, ".dot file saved to %s\n", path)
}

// --- End Dot Artifacts ---
