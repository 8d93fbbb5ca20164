package engine

import "sort"

// computeOrder produces the total execution order: a topological order over
// the dependency edges, with priority as a soft grouping preference.
//
// Names are partitioned into priority buckets walked highest-first. Within
// a bucket, names with fewer declared dependencies sort first (stable, so
// ties keep registration order). Emission recursively places a node's
// dependencies before the node itself, which may pull a lower-priority
// dependency forward out of bucket order; that is required for topological
// correctness, not a defect of the bucket walk.
//
// The graph is known to be acyclic by the time this runs.
func computeOrder(graph *Graph, regOrder []string) []string {
	buckets := make(map[Priority][]string, len(priorityRanks))
	for _, name := range regOrder {
		p := graph.Nodes[name].Priority
		buckets[p] = append(buckets[p], name)
	}

	for _, p := range priorityRanks {
		bucket := buckets[p]
		sort.SliceStable(bucket, func(i, j int) bool {
			return len(graph.Nodes[bucket[i]].DependsOn) < len(graph.Nodes[bucket[j]].DependsOn)
		})
	}

	placed := make(map[string]bool, len(regOrder))
	order := make([]string, 0, len(regOrder))

	var visit func(name string)
	visit = func(name string) {
		node, ok := graph.Nodes[name]
		if !ok || placed[name] {
			return // dangling dependency or already emitted
		}
		placed[name] = true
		for _, dep := range node.DependsOn {
			visit(dep)
		}
		order = append(order, name)
	}

	for _, p := range priorityRanks {
		for _, name := range buckets[p] {
			visit(name)
		}
	}
	return order
}
