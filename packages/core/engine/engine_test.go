package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldSkip_NoGraphOrUnknownName(t *testing.T) {
	e := New()
	assert.False(t, e.ShouldSkip("anything").Skip)

	e.Register("known", Meta{})
	_, err := e.BuildGraph()
	require.NoError(t, err)

	assert.False(t, e.ShouldSkip("unknown").Skip)
	assert.False(t, e.ShouldSkip("known").Skip)
}

func TestShouldSkip_DirectDependencyFailed(t *testing.T) {
	e := New()
	e.Register("login", Meta{Priority: PriorityHighest})
	e.Register("navigate", Meta{Priority: PriorityHigh, DependsOn: []string{"login"}})
	_, err := e.BuildGraph()
	require.NoError(t, err)

	e.RecordResult(Result{TestName: "login", Status: StatusFailed, Error: "selector not found", Priority: PriorityHighest})

	dec := e.ShouldSkip("navigate")
	assert.True(t, dec.Skip)
	assert.Equal(t, "login", dec.FailedDependency)
	assert.NotEmpty(t, dec.Reason)
}

func TestShouldSkip_PassedDependencyDoesNotSkip(t *testing.T) {
	e := New()
	e.Register("login", Meta{})
	e.Register("navigate", Meta{DependsOn: []string{"login"}})
	_, err := e.BuildGraph()
	require.NoError(t, err)

	e.RecordResult(Result{TestName: "login", Status: StatusPassed})
	assert.False(t, e.ShouldSkip("navigate").Skip)
}

func TestRecordResult_PropagatesSkipsTransitively(t *testing.T) {
	e := New()
	e.Register("a", Meta{Priority: PriorityHighest})
	e.Register("b", Meta{Priority: PriorityHigh, DependsOn: []string{"a"}})
	e.Register("c", Meta{Priority: PriorityMedium, DependsOn: []string{"b"}})
	_, err := e.BuildGraph()
	require.NoError(t, err)

	e.RecordResult(Result{TestName: "a", Status: StatusFailed, Priority: PriorityHighest})

	results := e.Results()
	require.Contains(t, results, "b")
	require.Contains(t, results, "c")
	assert.Equal(t, StatusSkipped, results["b"].Status)
	assert.Equal(t, StatusSkipped, results["c"].Status)
	assert.Equal(t, CauseDependencyFailure, results["b"].CausedBy)
	assert.Equal(t, CauseDependencyFailure, results["c"].CausedBy)

	// Root-cause attribution: even the transitive dependent points at the
	// originally failed step, not at its own skipped parent.
	assert.Equal(t, "a", results["b"].FailedDependency)
	assert.Equal(t, "a", results["c"].FailedDependency)

	// Synthetic results carry the node's own declared metadata.
	assert.Equal(t, PriorityHigh, results["b"].Priority)
	assert.Equal(t, []string{"b"}, results["c"].DependsOn)

	// Statuses are visible through the graph snapshot too.
	graph := e.Graph()
	assert.Equal(t, StatusFailed, graph.Nodes["a"].Status)
	assert.Equal(t, StatusSkipped, graph.Nodes["b"].Status)
	assert.Equal(t, StatusSkipped, graph.Nodes["c"].Status)
}

func TestRecordResult_DiamondPropagationVisitsOnce(t *testing.T) {
	e := New()
	e.Register("root", Meta{})
	e.Register("left", Meta{DependsOn: []string{"root"}})
	e.Register("right", Meta{DependsOn: []string{"root"}})
	e.Register("join", Meta{DependsOn: []string{"left", "right"}})
	_, err := e.BuildGraph()
	require.NoError(t, err)

	e.RecordResult(Result{TestName: "root", Status: StatusFailed})

	results := e.Results()
	for _, name := range []string{"left", "right", "join"} {
		assert.Equal(t, StatusSkipped, results[name].Status, name)
		assert.Equal(t, "root", results[name].FailedDependency, name)
	}
}

func TestRecordResult_DoesNotOverwriteTerminalResults(t *testing.T) {
	e := New()
	e.Register("a", Meta{})
	e.Register("b", Meta{DependsOn: []string{"a"}})
	_, err := e.BuildGraph()
	require.NoError(t, err)

	// b already ran and passed before a's failure was recorded. The driver
	// runs in topological order so this should not happen, but propagation
	// must not rewrite history if it does.
	e.RecordResult(Result{TestName: "b", Status: StatusPassed, Duration: 120 * time.Millisecond})
	e.RecordResult(Result{TestName: "a", Status: StatusFailed})

	assert.Equal(t, StatusPassed, e.Results()["b"].Status)
}

func TestRecordResult_BackfillsDependenciesFromRegistry(t *testing.T) {
	e := New()
	e.Register("login", Meta{})
	e.Register("navigate", Meta{DependsOn: []string{"login"}})
	_, err := e.BuildGraph()
	require.NoError(t, err)

	e.RecordResult(Result{TestName: "navigate", Status: StatusPassed})
	assert.Equal(t, []string{"login"}, e.Results()["navigate"].DependsOn)
}

func TestClear_ResetsAllState(t *testing.T) {
	e := New()
	e.Register("a", Meta{})
	_, err := e.BuildGraph()
	require.NoError(t, err)
	e.RecordResult(Result{TestName: "a", Status: StatusPassed})

	e.Clear()

	assert.Empty(t, e.Tests())
	assert.Nil(t, e.Graph())
	assert.Empty(t, e.Results())
	assert.False(t, e.ShouldSkip("a").Skip)
}

func TestAccessorsReturnDefensiveCopies(t *testing.T) {
	e := New()
	e.Register("a", Meta{Tags: []string{"smoke"}})
	e.Register("b", Meta{DependsOn: []string{"a"}})
	_, err := e.BuildGraph()
	require.NoError(t, err)

	graph := e.Graph()
	graph.Nodes["a"].Dependents[0] = "mutated"
	graph.ExecutionOrder[0] = "mutated"

	meta, _ := e.Metadata("a")
	meta.Tags[0] = "mutated"

	fresh := e.Graph()
	assert.Equal(t, []string{"b"}, fresh.Nodes["a"].Dependents)
	assert.Equal(t, "a", fresh.ExecutionOrder[0])
	freshMeta, _ := e.Metadata("a")
	assert.Equal(t, []string{"smoke"}, freshMeta.Tags)
}

// The worked example from the suite documentation: login/navigate/verify.
func TestLoginNavigateVerifyScenario(t *testing.T) {
	e := New()
	e.Register("login", Meta{Priority: PriorityHighest})
	e.Register("navigate", Meta{Priority: PriorityHigh, DependsOn: []string{"login"}})
	e.Register("verify", Meta{Priority: PriorityHigh, DependsOn: []string{"navigate"}})

	graph, err := e.BuildGraph()
	require.NoError(t, err)
	assert.Equal(t, []string{"login", "navigate", "verify"}, graph.ExecutionOrder)

	e.RecordResult(Result{TestName: "login", Status: StatusFailed, Error: "bad credentials", Priority: PriorityHighest})

	dec := e.ShouldSkip("navigate")
	assert.True(t, dec.Skip)
	assert.Equal(t, "login", dec.FailedDependency)

	results := e.Results()
	assert.Equal(t, StatusSkipped, results["navigate"].Status)
	assert.Equal(t, StatusSkipped, results["verify"].Status)
	assert.Equal(t, "login", results["verify"].FailedDependency)
}
