package interaction

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsAggregate(t *testing.T) {
	a := NewStatsAggregate()

	a.Record(LogEntry{Confidence: 0.8, ResponseTimeMs: 100})
	a.Record(LogEntry{Confidence: 0.4, ResponseTimeMs: 300, ShouldEscalate: true, EscalationType: "low_confidence", Clarifying: true})
	a.Record(LogEntry{Confidence: 0, ResponseTimeMs: 20, Blocked: true, ShouldEscalate: true})

	stats := a.Snapshot()
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Answered)
	assert.Equal(t, int64(1), stats.Escalated)
	assert.Equal(t, int64(1), stats.Blocked, "blocked takes precedence over escalated")
	assert.Equal(t, int64(1), stats.Clarifying)
	assert.InDelta(t, 0.4, stats.AvgConfidence, 1e-9)
	assert.InDelta(t, 140.0, stats.AvgResponseTimeMs, 1e-9)
}

func TestStatsAggregateEmpty(t *testing.T) {
	stats := NewStatsAggregate().Snapshot()
	assert.Equal(t, int64(0), stats.Total)
	assert.Zero(t, stats.AvgConfidence)
	assert.Zero(t, stats.AvgResponseTimeMs)
}

func TestStatsAggregateConcurrent(t *testing.T) {
	a := NewStatsAggregate()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Record(LogEntry{Confidence: 0.5, ResponseTimeMs: 10})
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(100), a.Snapshot().Total)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "blocked", LogEntry{Blocked: true, ShouldEscalate: true}.Outcome())
	assert.Equal(t, "escalated", LogEntry{ShouldEscalate: true}.Outcome())
	assert.Equal(t, "answered", LogEntry{}.Outcome())
}
