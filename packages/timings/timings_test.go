package timings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stepline/stepline/packages/core/engine"
)

func TestTracker_RecordsOverallAndPerPriority(t *testing.T) {
	tr := NewTracker()
	tr.Record(engine.PriorityHighest, 100*time.Millisecond)
	tr.Record(engine.PriorityHighest, 200*time.Millisecond)
	tr.Record(engine.PriorityLow, 50*time.Millisecond)

	overall := tr.Overall()
	assert.Equal(t, int64(3), overall.Count)
	assert.Greater(t, overall.Max, 150*time.Millisecond)

	byPriority := tr.ByPriority()
	assert.Len(t, byPriority, 2)
	assert.Equal(t, int64(2), byPriority[engine.PriorityHighest].Count)
	assert.Equal(t, int64(1), byPriority[engine.PriorityLow].Count)
}

func TestTracker_NormalizesUnknownPriority(t *testing.T) {
	tr := NewTracker()
	tr.Record("", 10*time.Millisecond)
	tr.Record("urgent", 20*time.Millisecond)

	byPriority := tr.ByPriority()
	assert.Len(t, byPriority, 1)
	assert.Equal(t, int64(2), byPriority[engine.PriorityMedium].Count)
}

func TestTracker_ClampsOutOfRangeDurations(t *testing.T) {
	tr := NewTracker()
	tr.Record(engine.PriorityMedium, 0)
	tr.Record(engine.PriorityMedium, 2*time.Hour)

	overall := tr.Overall()
	assert.Equal(t, int64(2), overall.Count)
	assert.LessOrEqual(t, overall.Max, 61*time.Second)
}

func TestTracker_PercentilesOrdered(t *testing.T) {
	tr := NewTracker()
	for i := 1; i <= 100; i++ {
		tr.Record(engine.PriorityHigh, time.Duration(i)*time.Millisecond)
	}

	s := tr.Overall()
	assert.LessOrEqual(t, s.P50, s.P95)
	assert.LessOrEqual(t, s.P95, s.P99)
	assert.LessOrEqual(t, s.P99, s.Max)
}
