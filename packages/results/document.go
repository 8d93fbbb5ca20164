package results

import (
	"time"

	"github.com/google/uuid"

	"github.com/stepline/stepline/packages/core/engine"
	"github.com/stepline/stepline/packages/timings"
)

// Summary holds the run-level result counts.
type Summary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// PriorityStats holds result counts for one priority band.
type PriorityStats struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// Timing holds latency percentiles for one band, in milliseconds.
type Timing struct {
	Count  int64   `json:"count"`
	P50Ms  float64 `json:"p50"`
	P95Ms  float64 `json:"p95"`
	P99Ms  float64 `json:"p99"`
	MeanMs float64 `json:"mean"`
	MaxMs  float64 `json:"max"`
}

// TestResult is one step outcome as persisted.
type TestResult struct {
	Name             string   `json:"name"`
	FullTitle        string   `json:"fullTitle,omitempty"`
	Status           string   `json:"status"`
	Priority         string   `json:"priority"`
	Duration         float64  `json:"duration"` // milliseconds
	Error            string   `json:"error,omitempty"`
	Reason           string   `json:"reason,omitempty"`
	CausedBy         string   `json:"causedBy,omitempty"`
	FailedDependency string   `json:"failedDependency,omitempty"`
	DependsOn        []string `json:"dependsOn,omitempty"`
}

// Document is the complete persisted run.
type Document struct {
	RunID            string                   `json:"runId"`
	Suite            string                   `json:"suite,omitempty"`
	Environment      string                   `json:"environment,omitempty"`
	Time             string                   `json:"time"`
	Duration         float64                  `json:"duration"` // milliseconds
	Summary          Summary                  `json:"summary"`
	Priorities       map[string]PriorityStats `json:"priorities,omitempty"`
	DependencySkips  int                      `json:"dependencySkips"`
	DependencyChains int                      `json:"dependencyChains"`
	Timings          map[string]Timing        `json:"timings,omitempty"`
	Tests            []TestResult             `json:"tests"`
}

// New creates an empty document with a fresh run id.
func New(suite, environment string) *Document {
	return &Document{
		RunID:       uuid.NewString(),
		Suite:       suite,
		Environment: environment,
		Time:        time.Now().Format(time.RFC3339),
		Tests:       make([]TestResult, 0),
	}
}

// Append converts an engine result, appends it, and bumps the summary.
func (d *Document) Append(res engine.Result) {
	d.Tests = append(d.Tests, TestResult{
		Name:             res.TestName,
		FullTitle:        res.FullTitle,
		Status:           string(res.Status),
		Priority:         string(res.Priority.Normalize()),
		Duration:         float64(res.Duration.Milliseconds()),
		Error:            res.Error,
		Reason:           res.Reason,
		CausedBy:         string(res.CausedBy),
		FailedDependency: res.FailedDependency,
		DependsOn:        res.DependsOn,
	})

	d.Summary.Total++
	switch res.Status {
	case engine.StatusPassed:
		d.Summary.Passed++
	case engine.StatusFailed:
		d.Summary.Failed++
	case engine.StatusSkipped:
		d.Summary.Skipped++
	}
}

// SetStats copies the engine's per-priority statistics into the document.
func (d *Document) SetStats(stats *engine.Stats) {
	d.Priorities = make(map[string]PriorityStats, len(stats.ByPriority))
	for p, bucket := range stats.ByPriority {
		d.Priorities[string(p)] = PriorityStats{
			Total:   bucket.Total,
			Passed:  bucket.Passed,
			Failed:  bucket.Failed,
			Skipped: bucket.Skipped,
		}
	}
	d.DependencySkips = stats.DependencySkips
	d.DependencyChains = stats.DependencyChains
}

// SetTimings copies latency summaries into the document under per-priority
// keys plus "all".
func (d *Document) SetTimings(tracker *timings.Tracker) {
	d.Timings = make(map[string]Timing)
	overall := tracker.Overall()
	if overall.Count > 0 {
		d.Timings["all"] = toTiming(overall)
	}
	for p, summary := range tracker.ByPriority() {
		d.Timings[string(p)] = toTiming(summary)
	}
}

// SetDuration records the wall-clock run duration.
func (d *Document) SetDuration(duration time.Duration) {
	d.Duration = float64(duration.Milliseconds())
}

func toTiming(s timings.Summary) Timing {
	return Timing{
		Count:  s.Count,
		P50Ms:  float64(s.P50.Microseconds()) / 1000,
		P95Ms:  float64(s.P95.Microseconds()) / 1000,
		P99Ms:  float64(s.P99.Microseconds()) / 1000,
		MeanMs: float64(s.Mean.Microseconds()) / 1000,
		MaxMs:  float64(s.Max.Microseconds()) / 1000,
	}
}
