package graph

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSCCsLinearChain(t *testing.T) {
	t.Parallel()

	g := testGraph(map[string][]string{
		"A": {"B"}, "B": {"C"}, "C": {"D"},
	}, "A", "B", "C", "D")

	sccs := g.SCCs()
	require.Len(t, sccs, 4, "an acyclic chain is all singleton SCCs")
	for _, scc := range sccs {
		require.Len(t, scc, 1)
	}
	require.Empty(t, g.Cycles())
}

func TestCyclesSimpleCycle(t *testing.T) {
	t.Parallel()

	g := testGraph(map[string][]string{
		"A": {"B"}, "B": {"C"}, "C": {"A"},
	}, "A", "B", "C")

	sccs := g.SCCs()
	require.Len(t, sccs, 1)
	require.Equal(t, [][]string{{"A", "B", "C"}}, g.Cycles())
}

func TestCyclesSelfLoop(t *testing.T) {
	t.Parallel()
	g := testGraph(map[string][]string{"A": {"A"}}, "A")
	require.Equal(t, [][]string{{"A"}}, g.Cycles())
}

func TestCyclesSingletonWithoutSelfLoop(t *testing.T) {
	t.Parallel()
	g := testGraph(map[string][]string{"A": {"B"}}, "A", "B")
	require.Empty(t, g.Cycles(), "singleton SCCs without a self edge are not cycles")
}

func TestSCCsPartition(t *testing.T) {
	t.Parallel()

	// Two disjoint cycles, one isolated node and one plain dependent: the
	// SCCs must cover every component exactly once.
	g := testGraph(map[string][]string{
		"A": {"B"}, "B": {"A"},
		"C": {"D"}, "D": {"C"},
		"F": {"E"},
	}, "A", "B", "C", "D", "E", "F")

	sccs := g.SCCs()
	var all []string
	for _, scc := range sccs {
		all = append(all, scc...)
	}
	sort.Strings(all)
	require.Equal(t, []string{"A", "B", "C", "D", "E", "F"}, all)

	require.Equal(t, [][]string{{"C", "D"}, {"A", "B"}}, g.Cycles(),
		"cycles come out in pass-2 discovery order, members sorted")
}

func TestCyclesParallelEdges(t *testing.T) {
	t.Parallel()
	g := testGraph(map[string][]string{"A": {"B", "B"}, "B": {"A"}}, "A", "B")
	require.Equal(t, [][]string{{"A", "B"}}, g.Cycles())
}

func TestCyclesSelfLoopInsideLargerSCC(t *testing.T) {
	t.Parallel()

	// The self edge on A doesn't split it out of the {A,B} component.
	g := testGraph(map[string][]string{"A": {"A", "B"}, "B": {"A"}}, "A", "B")
	require.Equal(t, [][]string{{"A", "B"}}, g.Cycles())
}

func TestSCCsDisconnected(t *testing.T) {
	t.Parallel()

	g := testGraph(map[string][]string{}, "A", "B", "C")
	sccs := g.SCCs()
	require.Len(t, sccs, 3)
	require.Empty(t, g.Cycles())
}

func TestReverse(t *testing.T) {
	t.Parallel()

	g := testGraph(map[string][]string{"A": {"B"}, "C": {"B"}}, "A", "B", "C")
	rev := g.Reverse()
	require.Equal(t, []string{"A", "C"}, rev["B"])
	require.Empty(t, rev["A"])
}
