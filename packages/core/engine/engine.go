package engine

import (
	"fmt"
	"os"
)

// WarnFunc receives non-fatal configuration warnings.
type WarnFunc func(format string, args ...any)

// Engine holds the step registry, the installed dependency graph, and the
// results store for one run. The zero value is not usable; construct with
// New.
type Engine struct {
	records  map[string]Meta
	regOrder []string
	graph    *Graph
	results  map[string]Result
	warnf    WarnFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithWarnFunc overrides the destination for non-fatal warnings (dangling
// dependency references, duplicate registrations). The default writes to
// stderr.
func WithWarnFunc(fn WarnFunc) Option {
	return func(e *Engine) {
		e.warnf = fn
	}
}

// New creates an empty engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		records: make(map[string]Meta),
		results: make(map[string]Result),
		warnf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register inserts or overwrites the step record for name. Missing priority
// defaults to medium. Registering the same name twice replaces the earlier
// metadata; the original registration position is kept so ordering stays
// deterministic.
func (e *Engine) Register(name string, meta Meta) {
	if name == "" {
		return
	}
	if _, exists := e.records[name]; exists {
		e.warnf("step %q registered more than once; metadata overwritten", name)
	} else {
		e.regOrder = append(e.regOrder, name)
	}
	meta.Priority = meta.Priority.Normalize()
	e.records[name] = meta
}

// Metadata returns the registered metadata for name.
func (e *Engine) Metadata(name string) (Meta, bool) {
	meta, ok := e.records[name]
	if !ok {
		return Meta{}, false
	}
	return copyMeta(meta), true
}

// Tests returns all registered records in registration order.
func (e *Engine) Tests() []Record {
	out := make([]Record, 0, len(e.regOrder))
	for _, name := range e.regOrder {
		out = append(out, Record{Name: name, Meta: copyMeta(e.records[name])})
	}
	return out
}

// BuildGraph derives the dependency graph from the current registry,
// detects cycles, computes the execution order, and installs the graph as
// the engine's current graph. On cycles it returns a *CycleError listing
// every cycle path and installs nothing. The returned graph is a snapshot;
// callers may not mutate engine state through it.
func (e *Engine) BuildGraph() (*Graph, error) {
	graph, err := buildGraph(e.records, e.regOrder, e.warnf)
	if err != nil {
		return nil, err
	}
	e.graph = graph
	return e.snapshotGraph(), nil
}

// ShouldSkip reports whether the named step must be skipped before the
// driver invokes it. Only direct dependencies are inspected; transitive
// propagation has already recorded skipped results for deeper dependents by
// the time they are queried. Unknown names, or no installed graph, answer
// "run it".
func (e *Engine) ShouldSkip(name string) SkipDecision {
	if e.graph == nil {
		return SkipDecision{}
	}
	node, ok := e.graph.Nodes[name]
	if !ok {
		return SkipDecision{}
	}

	// Propagation may already have recorded this step as skipped.
	if res, ok := e.results[name]; ok && res.Status == StatusSkipped {
		return SkipDecision{Skip: true, Reason: res.Reason, FailedDependency: res.FailedDependency}
	}

	for _, dep := range node.DependsOn {
		if res, ok := e.results[dep]; ok && res.Status == StatusFailed {
			return SkipDecision{
				Skip:             true,
				Reason:           fmt.Sprintf("dependency %q failed", dep),
				FailedDependency: dep,
			}
		}
	}
	return SkipDecision{}
}

// RecordResult stores the outcome of one step. A failed result triggers
// synchronous transitive skip propagation: when RecordResult returns, every
// dependent reachable from the failed step carries a skipped result.
func (e *Engine) RecordResult(res Result) {
	if res.TestName == "" {
		return
	}
	res.Priority = res.Priority.Normalize()
	if meta, ok := e.records[res.TestName]; ok && res.DependsOn == nil {
		res.DependsOn = append([]string(nil), meta.DependsOn...)
	}
	e.results[res.TestName] = res

	if res.Status == StatusFailed {
		e.propagateFailure(res.TestName)
	}
}

// propagateFailure breadth-first walks the dependents of the failed step
// and records a synthetic skipped result for every node reached. Nodes with
// a terminal result already recorded are left alone, which bounds the walk
// on diamond-shaped graphs. FailedDependency always names the root cause,
// even many hops away.
func (e *Engine) propagateFailure(failed string) {
	if e.graph == nil {
		return
	}
	root, ok := e.graph.Nodes[failed]
	if !ok {
		return
	}

	queue := append([]string(nil), root.Dependents...)
	seen := make(map[string]bool)

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen[name] {
			continue
		}
		seen[name] = true

		node, ok := e.graph.Nodes[name]
		if !ok {
			continue
		}
		if res, ok := e.results[name]; ok && res.Status.Terminal() {
			continue
		}

		e.results[name] = Result{
			TestName:         name,
			Status:           StatusSkipped,
			Reason:           fmt.Sprintf("dependency %q failed", failed),
			CausedBy:         CauseDependencyFailure,
			FailedDependency: failed,
			Priority:         node.Priority,
			DependsOn:        append([]string(nil), node.DependsOn...),
		}
		queue = append(queue, node.Dependents...)
	}
}

// Results returns a copy of all recorded results keyed by step name.
func (e *Engine) Results() map[string]Result {
	out := make(map[string]Result, len(e.results))
	for name, res := range e.results {
		res.DependsOn = append([]string(nil), res.DependsOn...)
		out[name] = res
	}
	return out
}

// Graph returns a snapshot of the installed dependency graph with each
// node's status derived from the results store, or nil if no graph has been
// built.
func (e *Engine) Graph() *Graph {
	return e.snapshotGraph()
}

// Clear wipes the registry, the installed graph, and all recorded results.
// Intended for teardown between independent runs sharing one engine.
func (e *Engine) Clear() {
	e.records = make(map[string]Meta)
	e.regOrder = nil
	e.graph = nil
	e.results = make(map[string]Result)
}

func (e *Engine) snapshotGraph() *Graph {
	if e.graph == nil {
		return nil
	}
	snap := &Graph{
		Nodes:          make(map[string]*Node, len(e.graph.Nodes)),
		ExecutionOrder: append([]string(nil), e.graph.ExecutionOrder...),
	}
	for name, node := range e.graph.Nodes {
		status := StatusPending
		if res, ok := e.results[name]; ok {
			status = res.Status
		}
		snap.Nodes[name] = &Node{
			Name:       node.Name,
			Priority:   node.Priority,
			DependsOn:  append([]string(nil), node.DependsOn...),
			Dependents: append([]string(nil), node.Dependents...),
			Status:     status,
		}
	}
	return snap
}

func copyMeta(meta Meta) Meta {
	return Meta{
		Priority:  meta.Priority,
		DependsOn: append([]string(nil), meta.DependsOn...),
		Tags:      append([]string(nil), meta.Tags...),
	}
}
