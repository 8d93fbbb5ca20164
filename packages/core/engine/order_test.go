package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOf(t *testing.T, order []string, name string) int {
	t.Helper()
	for i, n := range order {
		if n == name {
			return i
		}
	}
	t.Fatalf("%q not found in execution order %v", name, order)
	return -1
}

func TestExecutionOrder_DependenciesPrecedeDependents(t *testing.T) {
	e := New()
	e.Register("setup", Meta{Priority: PriorityLow})
	e.Register("login", Meta{Priority: PriorityHighest, DependsOn: []string{"setup"}})
	e.Register("search", Meta{Priority: PriorityMedium, DependsOn: []string{"login"}})
	e.Register("checkout", Meta{Priority: PriorityHigh, DependsOn: []string{"search", "login"}})

	graph, err := e.BuildGraph()
	require.NoError(t, err)

	order := graph.ExecutionOrder
	require.Len(t, order, 4)
	for name, node := range graph.Nodes {
		for _, dep := range node.DependsOn {
			assert.Less(t, indexOf(t, order, dep), indexOf(t, order, name),
				"dependency %q must precede %q", dep, name)
		}
	}
}

func TestExecutionOrder_PriorityGroupsWithoutCrossEdges(t *testing.T) {
	e := New()
	e.Register("low1", Meta{Priority: PriorityLow})
	e.Register("med1", Meta{Priority: PriorityMedium})
	e.Register("high1", Meta{Priority: PriorityHigh})
	e.Register("top1", Meta{Priority: PriorityHighest})
	e.Register("top2", Meta{Priority: PriorityHighest})

	graph, err := e.BuildGraph()
	require.NoError(t, err)

	order := graph.ExecutionOrder
	assert.Less(t, indexOf(t, order, "top1"), indexOf(t, order, "high1"))
	assert.Less(t, indexOf(t, order, "top2"), indexOf(t, order, "high1"))
	assert.Less(t, indexOf(t, order, "high1"), indexOf(t, order, "med1"))
	assert.Less(t, indexOf(t, order, "med1"), indexOf(t, order, "low1"))
}

func TestExecutionOrder_FewerDependenciesFirstWithinBucket(t *testing.T) {
	e := New()
	e.Register("base", Meta{Priority: PriorityHighest})
	e.Register("busy", Meta{Priority: PriorityHigh, DependsOn: []string{"base"}})
	e.Register("free", Meta{Priority: PriorityHigh})

	graph, err := e.BuildGraph()
	require.NoError(t, err)

	order := graph.ExecutionOrder
	assert.Less(t, indexOf(t, order, "free"), indexOf(t, order, "busy"))
}

func TestExecutionOrder_TiesKeepRegistrationOrder(t *testing.T) {
	e := New()
	e.Register("beta", Meta{Priority: PriorityMedium})
	e.Register("alpha", Meta{Priority: PriorityMedium})
	e.Register("gamma", Meta{Priority: PriorityMedium})

	graph, err := e.BuildGraph()
	require.NoError(t, err)

	assert.Equal(t, []string{"beta", "alpha", "gamma"}, graph.ExecutionOrder)
}

func TestExecutionOrder_LowerPriorityDependencyPulledForward(t *testing.T) {
	e := New()
	e.Register("report", Meta{Priority: PriorityHighest, DependsOn: []string{"seed"}})
	e.Register("seed", Meta{Priority: PriorityLow})

	graph, err := e.BuildGraph()
	require.NoError(t, err)

	// Topological correctness beats the priority walk: the low-priority
	// dependency is emitted before its highest-priority dependent.
	assert.Equal(t, []string{"seed", "report"}, graph.ExecutionOrder)
}

func TestExecutionOrder_EachNameExactlyOnce(t *testing.T) {
	e := New()
	e.Register("a", Meta{Priority: PriorityHighest})
	e.Register("b", Meta{DependsOn: []string{"a"}})
	e.Register("c", Meta{DependsOn: []string{"a", "b"}})
	e.Register("d", Meta{Priority: PriorityLow, DependsOn: []string{"a"}})

	graph, err := e.BuildGraph()
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, name := range graph.ExecutionOrder {
		seen[name]++
	}
	assert.Len(t, seen, 4)
	for name, count := range seen {
		assert.Equal(t, 1, count, "step %q emitted %d times", name, count)
	}
}
