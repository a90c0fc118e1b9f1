// Package graph builds the directed dependency graph of an SPDX SBOM and
// runs the analyses on it: duplicate component names, dependency degrees,
// strongly connected components (cycles) and dot serialization.
package graph

import (
	"sort"
	"strings"

	"fortio.org/log"

	"github.com/ldemailly/sbomdeps/sbom"
)

// Graph is the dependency graph keyed by component id. Adjacency lists hold
// out-edges: Adj[dependent] lists what dependent depends on, in the order
// the relationships appeared, parallel edges preserved.
type Graph struct {
	IDs          []string            // component ids, insertion order (drives all iteration)
	Names        map[string]string   // id -> display name (falls back to the id)
	Adj          map[string][]string // id -> dependency ids, entry guaranteed for every id
	Placeholders []string            // ids referenced by relationships but never defined
}

// Build constructs the dependency graph from an SPDX document.
//
// Packages whose SPDXID is empty or marks a synthetic document root are
// skipped, and relationships with such an id on either side are ignored:
// the root never becomes a node. Only DEPENDENCY_OF relationships become
// edges: the subject (spdxElementId) is the dependency, the object
// (relatedSpdxElement) the dependent. Every component ends up with an
// adjacency entry, empty if nothing was recorded against it.
//
// Ids referenced by relationships but absent from the package list get a
// placeholder component named after the raw id (and a warning), so the
// graph is total: every id appearing anywhere resolves to a node.
func Build(doc *sbom.Document) *Graph {
	g := &Graph{
		Names: make(map[string]string, len(doc.Packages)),
		Adj:   make(map[string][]string, len(doc.Packages)),
	}
	for _, pkg := range doc.Packages {
		id := pkg.SPDXID
		if id == "" || isDocumentRoot(id) {
			continue
		}
		name := pkg.Name
		if name == "" {
			name = id
		}
		if _, seen := g.Names[id]; !seen {
			g.IDs = append(g.IDs, id)
		}
		g.Names[id] = name
	}

	// Dependents that only show up in relationships, in first-edge order.
	var pending []string
	pendingSet := make(map[string]bool)
	for _, rel := range doc.Relationships {
		if rel.RelationshipType != sbom.RelationshipDependencyOf {
			continue
		}
		dep, dependent := rel.SPDXElementID, rel.RelatedSPDXElement
		if dep == "" || dependent == "" {
			log.Warnf("Ignoring %s relationship with missing element id (%q -> %q)",
				sbom.RelationshipDependencyOf, dep, dependent)
			continue
		}
		// GitHub exports relate every top-level package to the synthetic
		// document root; those edges would resurrect the root as a
		// placeholder node.
		if isDocumentRoot(dep) || isDocumentRoot(dependent) {
			log.LogVf("Ignoring %s relationship involving the document root (%q -> %q)",
				sbom.RelationshipDependencyOf, dep, dependent)
			continue
		}
		g.Adj[dependent] = append(g.Adj[dependent], dep)
		if _, known := g.Names[dependent]; !known && !pendingSet[dependent] {
			pending = append(pending, dependent)
			pendingSet[dependent] = true
		}
	}

	// Every known component gets an entry, even without any relationship.
	for _, id := range g.IDs {
		if _, ok := g.Adj[id]; !ok {
			g.Adj[id] = []string{}
		}
	}

	// Dependencies never defined as packages, in adjacency scan order.
	scan := append(append([]string{}, g.IDs...), pending...)
	for _, id := range scan {
		for _, dep := range g.Adj[id] {
			if _, known := g.Names[dep]; !known && !pendingSet[dep] {
				pending = append(pending, dep)
				pendingSet[dep] = true
			}
		}
	}
	for _, id := range pending {
		log.Warnf("Component %s referenced by relationships but not defined, using placeholder", id)
		g.Names[id] = id
		g.IDs = append(g.IDs, id)
		if _, ok := g.Adj[id]; !ok {
			g.Adj[id] = []string{}
		}
		g.Placeholders = append(g.Placeholders, id)
	}
	log.LogVf("Built graph: %d components (%d placeholders), %d adjacency entries",
		len(g.IDs), len(g.Placeholders), len(g.Adj))
	return g
}

func isDocumentRoot(id string) bool {
	return strings.HasPrefix(id, sbom.DocumentRootPrefix)
}

// Duplicates returns the display names claimed by two or more component ids.
// Names come back in first-encounter order, each group sorted by id for
// stable display.
func (g *Graph) Duplicates() ([]string, map[string][]string) {
	byName := make(map[string][]string, len(g.IDs))
	for _, id := range g.IDs {
		name := g.Names[id]
		byName[name] = append(byName[name], id)
	}
	var names []string
	groups := make(map[string][]string)
	for _, id := range g.IDs {
		name := g.Names[id]
		ids := byName[name]
		if len(ids) < 2 {
			continue
		}
		if _, done := groups[name]; done {
			continue
		}
		sorted := append([]string{}, ids...)
		sort.Strings(sorted)
		names = append(names, name)
		groups[name] = sorted
	}
	return names, groups
}

// Degree counts, for one component, how many components depend on it and
// how many dependency edges it has itself.
type Degree struct {
	Dependents   int // adjacency lists that contain this id
	Dependencies int // length of this id's own adjacency list
}

// Degrees computes the degree of every component, including ones that only
// appear as dependencies and ones nothing depends on.
func (g *Graph) Degrees() map[string]Degree {
	degrees := make(map[string]Degree, len(g.IDs))
	for _, id := range g.IDs {
		degrees[id] = Degree{Dependencies: len(g.Adj[id])}
	}
	for _, id := range g.IDs {
		counted := make(map[string]bool, len(g.Adj[id]))
		for _, dep := range g.Adj[id] {
			if counted[dep] {
				continue // parallel edge, same dependent
			}
			counted[dep] = true
			d := degrees[dep]
			d.Dependents++
			degrees[dep] = d
		}
	}
	return degrees
}

// RankByDegree returns the component ids sorted by (dependents,
// dependencies) descending; ties keep insertion order.
func (g *Graph) RankByDegree() []string {
	degrees := g.Degrees()
	ids := append([]string{}, g.IDs...)
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := degrees[ids[i]], degrees[ids[j]]
		if a.Dependents != b.Dependents {
			return a.Dependents > b.Dependents
		}
		return a.Dependencies > b.Dependencies
	})
	return ids
}

// HasSelfEdge reports whether id depends on itself.
func (g *Graph) HasSelfEdge(id string) bool {
	for _, dep := range g.Adj[id] {
		if dep == id {
			return true
		}
	}
	return false
}

// Name returns the display name for id (the id itself if unknown, which
// matches the placeholder convention).
func (g *Graph) Name(id string) string {
	if name, ok := g.Names[id]; ok {
		return name
	}
	return id
}
