// Package timings aggregates step durations into latency histograms, per
// priority band and overall.
package timings

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/stepline/stepline/packages/core/engine"
)

const (
	minLatencyUs = 1
	maxLatencyUs = 60_000_000 // 60s ceiling; UI steps slower than this are broken anyway
)

// Tracker records step durations in microseconds.
type Tracker struct {
	overall    *hdrhistogram.Histogram
	byPriority map[engine.Priority]*hdrhistogram.Histogram
}

// NewTracker creates an empty tracker. Histograms cover 1µs to 60s with
// three significant digits.
func NewTracker() *Tracker {
	return &Tracker{
		overall:    hdrhistogram.New(minLatencyUs, maxLatencyUs, 3),
		byPriority: make(map[engine.Priority]*hdrhistogram.Histogram),
	}
}

// Record adds one step duration under its priority band.
func (t *Tracker) Record(priority engine.Priority, d time.Duration) {
	us := d.Microseconds()
	if us < minLatencyUs {
		us = minLatencyUs
	}
	if us > maxLatencyUs {
		us = maxLatencyUs
	}

	_ = t.overall.RecordValue(us)

	p := priority.Normalize()
	hist, ok := t.byPriority[p]
	if !ok {
		hist = hdrhistogram.New(minLatencyUs, maxLatencyUs, 3)
		t.byPriority[p] = hist
	}
	_ = hist.RecordValue(us)
}

// Summary holds latency percentiles for one band.
type Summary struct {
	Count int64
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
	Mean  time.Duration
	Max   time.Duration
}

func summarize(hist *hdrhistogram.Histogram) Summary {
	return Summary{
		Count: hist.TotalCount(),
		P50:   time.Duration(hist.ValueAtQuantile(50)) * time.Microsecond,
		P95:   time.Duration(hist.ValueAtQuantile(95)) * time.Microsecond,
		P99:   time.Duration(hist.ValueAtQuantile(99)) * time.Microsecond,
		Mean:  time.Duration(hist.Mean()) * time.Microsecond,
		Max:   time.Duration(hist.Max()) * time.Microsecond,
	}
}

// Overall returns the summary across all priorities.
func (t *Tracker) Overall() Summary {
	return summarize(t.overall)
}

// ByPriority returns per-band summaries for every band that recorded at
// least one duration.
func (t *Tracker) ByPriority() map[engine.Priority]Summary {
	out := make(map[engine.Priority]Summary, len(t.byPriority))
	for p, hist := range t.byPriority {
		out[p] = summarize(hist)
	}
	return out
}
