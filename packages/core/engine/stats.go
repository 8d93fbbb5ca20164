package engine

// Stats aggregates all recorded results into per-priority buckets in a
// single pass. Results without a priority count as medium. DependencySkips
// counts by the structured skip cause, never by reason text.
// DependencyChains is derived from the installed graph, independent of
// execution results, and is zero when no graph has been built.
func (e *Engine) Stats() *Stats {
	stats := &Stats{ByPriority: make(map[Priority]*Bucket, len(priorityRanks))}
	for _, p := range priorityRanks {
		stats.ByPriority[p] = &Bucket{}
	}

	for _, res := range e.results {
		bucket := stats.ByPriority[res.Priority.Normalize()]
		bucket.Total++
		switch res.Status {
		case StatusPassed:
			bucket.Passed++
		case StatusFailed:
			bucket.Failed++
		case StatusSkipped:
			bucket.Skipped++
			if res.CausedBy == CauseDependencyFailure {
				stats.DependencySkips++
			}
		}
	}

	if e.graph != nil {
		for _, node := range e.graph.Nodes {
			if len(node.DependsOn) > 0 {
				stats.DependencyChains++
			}
		}
	}
	return stats
}
