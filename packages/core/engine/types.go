package engine

import (
	"strings"
	"time"
)

// Priority is the scheduling priority of a step. It is a soft preference:
// it never overrides topological correctness.
type Priority string

const (
	PriorityHighest Priority = "highest"
	PriorityHigh    Priority = "high"
	PriorityMedium  Priority = "medium"
	PriorityLow     Priority = "low"
)

// priorityRanks lists all priority bands from most to least urgent.
var priorityRanks = []Priority{PriorityHighest, PriorityHigh, PriorityMedium, PriorityLow}

// Normalize maps the empty string and unknown values to PriorityMedium.
func (p Priority) Normalize() Priority {
	switch p {
	case PriorityHighest, PriorityHigh, PriorityMedium, PriorityLow:
		return p
	default:
		return PriorityMedium
	}
}

// ParsePriority parses a priority name, case-insensitively. Unknown names
// fall back to PriorityMedium.
func ParsePriority(s string) Priority {
	return Priority(strings.ToLower(strings.TrimSpace(s))).Normalize()
}

// Status is the lifecycle state of a step within one run. Transitions go
// from pending to exactly one of the terminal states.
type Status string

const (
	StatusPending Status = "pending"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Terminal reports whether the status is a final state.
func (s Status) Terminal() bool {
	return s == StatusPassed || s == StatusFailed || s == StatusSkipped
}

// SkipCause classifies why a step was skipped, decoupled from the
// human-readable reason text.
type SkipCause string

const (
	// CauseDependencyFailure marks skips propagated from a failed dependency.
	CauseDependencyFailure SkipCause = "dependency-failure"
	// CauseExplicit marks steps declared skipped by their author.
	CauseExplicit SkipCause = "explicit"
	// CauseFiltered marks steps excluded by name or tag filters.
	CauseFiltered SkipCause = "filtered"
)

// Meta is the declared metadata for a registered step.
type Meta struct {
	Priority  Priority
	DependsOn []string
	Tags      []string
}

// Record is a registered step: its name plus declared metadata.
type Record struct {
	Name string
	Meta Meta
}

// Node is a dependency graph vertex derived from one Record. Dependents is
// the computed inverse of all DependsOn edges. Status is filled in on graph
// snapshots from the results store; the installed graph itself is never
// mutated after construction.
type Node struct {
	Name       string
	Priority   Priority
	DependsOn  []string
	Dependents []string
	Status     Status
}

// Graph is the full dependency graph plus its derived execution order.
type Graph struct {
	Nodes          map[string]*Node
	ExecutionOrder []string
}

// Result is the outcome of running (or skipping) one step.
type Result struct {
	TestName         string
	FullTitle        string
	Status           Status
	Duration         time.Duration
	Error            string
	Reason           string
	CausedBy         SkipCause
	FailedDependency string
	Priority         Priority
	DependsOn        []string
}

// SkipDecision is the engine's answer to "should this step run?".
type SkipDecision struct {
	Skip             bool
	Reason           string
	FailedDependency string
}

// Bucket holds result counts for one priority band.
type Bucket struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// Stats aggregates all recorded results by priority band.
type Stats struct {
	ByPriority map[Priority]*Bucket

	// DependencySkips counts skipped results caused by a failed dependency.
	DependencySkips int
	// DependencyChains counts graph nodes declaring at least one dependency.
	DependencyChains int
}

// CycleError is the fatal configuration error raised when the dependency
// graph contains one or more cycles. Each cycle is a path ending at its
// starting node.
type CycleError struct {
	Cycles [][]string
}

func (e *CycleError) Error() string {
	paths := make([]string, len(e.Cycles))
	for i, cycle := range e.Cycles {
		paths[i] = strings.Join(cycle, " -> ")
	}
	return "circular dependency detected: " + strings.Join(paths, "; ")
}
