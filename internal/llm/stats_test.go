package llm

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatsSnapshotPercentiles(t *testing.T) {
	stats := NewStats(time.Hour)
	for _, ms := range []int{100, 200, 300, 400, 500} {
		stats.Record(time.Duration(ms)*time.Millisecond, nil)
	}

	snap := stats.Snapshot()
	assert.Equal(t, 5, snap.Count)
	assert.Equal(t, 0, snap.Errors)
	assert.Equal(t, int64(100), snap.MinMs)
	assert.Equal(t, int64(500), snap.MaxMs)
	assert.Equal(t, 300.0, snap.AvgMs)
	assert.Equal(t, 300.0, snap.P50Ms)
	assert.InDelta(t, 480.0, snap.P95Ms, 1e-9)
	assert.InDelta(t, 496.0, snap.P99Ms, 1e-9)
}

func TestStatsPrunesExpiredSamples(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	stats := NewStats(time.Minute)
	stats.now = func() time.Time { return now }

	stats.Record(100*time.Millisecond, nil)
	now = now.Add(2 * time.Minute)
	assert.Equal(t, 0, stats.Snapshot().Count)

	stats.Record(200*time.Millisecond, errors.New("boom"))
	snap := stats.Snapshot()
	assert.Equal(t, 1, snap.Count)
	assert.Equal(t, 1, snap.Errors)
	assert.Equal(t, int64(200), snap.MinMs)
}

func TestStatsClampsNegativeDuration(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.Record(-time.Second, nil)
	snap := stats.Snapshot()
	assert.Equal(t, 1, snap.Count)
	assert.Equal(t, int64(0), snap.MaxMs)
}

func TestStatsEmpty(t *testing.T) {
	assert.Equal(t, StatsSnapshot{}, NewStats(0).Snapshot())
}
