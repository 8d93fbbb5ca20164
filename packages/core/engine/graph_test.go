package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGraph_InvertsDependencyEdges(t *testing.T) {
	e := New()
	e.Register("login", Meta{Priority: PriorityHighest})
	e.Register("navigate", Meta{Priority: PriorityHigh, DependsOn: []string{"login"}})
	e.Register("verify", Meta{Priority: PriorityHigh, DependsOn: []string{"navigate"}})

	graph, err := e.BuildGraph()
	require.NoError(t, err)

	assert.Equal(t, []string{"navigate"}, graph.Nodes["login"].Dependents)
	assert.Equal(t, []string{"verify"}, graph.Nodes["navigate"].Dependents)
	assert.Empty(t, graph.Nodes["verify"].Dependents)
	for _, node := range graph.Nodes {
		assert.Equal(t, StatusPending, node.Status)
	}
}

func TestBuildGraph_DuplicateRegistrationKeepsLatestMetadata(t *testing.T) {
	var warnings []string
	e := New(WithWarnFunc(func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}))

	e.Register("checkout", Meta{Priority: PriorityLow})
	e.Register("checkout", Meta{Priority: PriorityHighest, Tags: []string{"smoke"}})

	graph, err := e.BuildGraph()
	require.NoError(t, err)

	assert.Len(t, graph.Nodes, 1)
	assert.Equal(t, PriorityHighest, graph.Nodes["checkout"].Priority)
	meta, ok := e.Metadata("checkout")
	require.True(t, ok)
	assert.Equal(t, []string{"smoke"}, meta.Tags)
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "registered more than once")
}

func TestBuildGraph_DanglingDependencyWarnsAndProceeds(t *testing.T) {
	var warnings []string
	e := New(WithWarnFunc(func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}))

	e.Register("orphan", Meta{DependsOn: []string{"ghost"}})

	graph, err := e.BuildGraph()
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `"ghost"`)

	// The dangling name stays visible on the node but creates no edge,
	// and the dependent still appears in the execution order.
	assert.Equal(t, []string{"ghost"}, graph.Nodes["orphan"].DependsOn)
	assert.NotContains(t, graph.Nodes, "ghost")
	assert.Equal(t, []string{"orphan"}, graph.ExecutionOrder)
}

func TestBuildGraph_CycleIsFatal(t *testing.T) {
	e := New()
	e.Register("a", Meta{DependsOn: []string{"b"}})
	e.Register("b", Meta{DependsOn: []string{"c"}})
	e.Register("c", Meta{DependsOn: []string{"a"}})

	graph, err := e.BuildGraph()
	require.Error(t, err)
	assert.Nil(t, graph)

	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	require.Len(t, cycleErr.Cycles, 1)
	assert.Equal(t, []string{"a", "b", "c", "a"}, cycleErr.Cycles[0])
	assert.Contains(t, err.Error(), "a -> b -> c -> a")

	// No partial graph is installed.
	assert.Nil(t, e.Graph())
}

func TestBuildGraph_ReportsDisjointCycles(t *testing.T) {
	e := New()
	e.Register("a", Meta{DependsOn: []string{"b"}})
	e.Register("b", Meta{DependsOn: []string{"a"}})
	e.Register("x", Meta{DependsOn: []string{"y"}})
	e.Register("y", Meta{DependsOn: []string{"x"}})

	_, err := e.BuildGraph()
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Len(t, cycleErr.Cycles, 2)
}

func TestBuildGraph_SelfDependency(t *testing.T) {
	e := New()
	e.Register("loop", Meta{DependsOn: []string{"loop"}})

	_, err := e.BuildGraph()
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	require.Len(t, cycleErr.Cycles, 1)
	assert.Equal(t, []string{"loop", "loop"}, cycleErr.Cycles[0])
}

func TestBuildGraph_AcyclicGraphHasNoCycles(t *testing.T) {
	e := New()
	e.Register("a", Meta{})
	e.Register("b", Meta{DependsOn: []string{"a"}})
	e.Register("c", Meta{DependsOn: []string{"a", "b"}})

	graph, err := e.BuildGraph()
	require.NoError(t, err)
	assert.Len(t, graph.ExecutionOrder, 3)
}

func TestBuildGraph_RebuildReplacesPriorGraph(t *testing.T) {
	e := New()
	e.Register("first", Meta{})
	_, err := e.BuildGraph()
	require.NoError(t, err)

	e.Register("second", Meta{DependsOn: []string{"first"}})
	graph, err := e.BuildGraph()
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, graph.ExecutionOrder)
	assert.Equal(t, []string{"second"}, graph.Nodes["first"].Dependents)
}

func TestBuildGraph_IsDeterministic(t *testing.T) {
	build := func() []string {
		e := New(WithWarnFunc(func(string, ...any) {}))
		e.Register("d", Meta{Priority: PriorityLow})
		e.Register("c", Meta{Priority: PriorityHigh, DependsOn: []string{"d"}})
		e.Register("b", Meta{Priority: PriorityHigh})
		e.Register("a", Meta{Priority: PriorityHighest, DependsOn: []string{"b", "c"}})
		graph, err := e.BuildGraph()
		require.NoError(t, err)
		return graph.ExecutionOrder
	}

	first := build()
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, build())
	}
}
