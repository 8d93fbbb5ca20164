package engine

// buildGraph derives one node per registered record, inverts the dependency
// edges, and rejects cyclic graphs. Dependencies naming unregistered steps
// are warned about and dropped: no inverse edge is created, but the node's
// own DependsOn list keeps the dangling name for reporting.
func buildGraph(records map[string]Meta, regOrder []string, warnf WarnFunc) (*Graph, error) {
	graph := &Graph{Nodes: make(map[string]*Node, len(records))}

	for _, name := range regOrder {
		meta := records[name]
		graph.Nodes[name] = &Node{
			Name:      name,
			Priority:  meta.Priority.Normalize(),
			DependsOn: append([]string(nil), meta.DependsOn...),
			Status:    StatusPending,
		}
	}

	for _, name := range regOrder {
		for _, dep := range graph.Nodes[name].DependsOn {
			target, ok := graph.Nodes[dep]
			if !ok {
				warnf("step %q depends on %q which is not registered", name, dep)
				continue
			}
			target.Dependents = append(target.Dependents, name)
		}
	}

	if cycles := detectCycles(graph, regOrder); len(cycles) > 0 {
		return nil, &CycleError{Cycles: cycles}
	}

	graph.ExecutionOrder = computeOrder(graph, regOrder)
	return graph, nil
}

// detectCycles runs a depth-first search over the dependency edges with an
// explicit recursion stack. An edge back into the current stack is a cycle;
// the path slice from the repeated node to itself is recorded as one cycle
// instance. The search restarts from every unvisited root, so disjoint
// cycles are each reported.
func detectCycles(graph *Graph, regOrder []string) [][]string {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var path []string
	var cycles [][]string

	var dfs func(name string)
	dfs = func(name string) {
		visited[name] = true
		onStack[name] = true
		path = append(path, name)

		for _, dep := range graph.Nodes[name].DependsOn {
			if _, ok := graph.Nodes[dep]; !ok {
				continue // dangling edge, already warned
			}
			if !visited[dep] {
				dfs(dep)
			} else if onStack[dep] {
				cycles = append(cycles, cyclePath(path, dep))
			}
		}

		onStack[name] = false
		path = path[:len(path)-1]
	}

	for _, name := range regOrder {
		if !visited[name] {
			dfs(name)
		}
	}
	return cycles
}

// cyclePath slices the current DFS path from the first occurrence of start
// and closes the loop by repeating start at the end.
func cyclePath(path []string, start string) []string {
	idx := 0
	for i, name := range path {
		if name == start {
			idx = i
			break
		}
	}
	cycle := append([]string(nil), path[idx:]...)
	return append(cycle, start)
}
