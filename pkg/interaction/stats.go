package interaction

import "sync"

// Stats is the aggregated view served to the monitor endpoint
type Stats struct {
	Total             int64   `json:"total"`
	Answered          int64   `json:"answered"`
	Escalated         int64   `json:"escalated"`
	Blocked           int64   `json:"blocked"`
	Clarifying        int64   `json:"clarifying"`
	AvgConfidence     float64 `json:"avg_confidence"`
	AvgResponseTimeMs float64 `json:"avg_response_time_ms"`
}

// StatsAggregate accumulates interaction entries in memory. Mutex-guarded;
// each record is a single atomic step.
type StatsAggregate struct {
	mu sync.Mutex

	total, answered, escalated, blocked, clarifying int64
	confidenceSum                                   float64
	responseTimeSum                                 int64
}

// NewStatsAggregate creates an empty aggregate
func NewStatsAggregate() *StatsAggregate {
	return &StatsAggregate{}
}

// Record folds one entry into the aggregate
func (a *StatsAggregate) Record(entry LogEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.total++
	switch entry.Outcome() {
	case "blocked":
		a.blocked++
	case "escalated":
		a.escalated++
	default:
		a.answered++
	}
	if entry.Clarifying {
		a.clarifying++
	}
	a.confidenceSum += entry.Confidence
	a.responseTimeSum += entry.ResponseTimeMs
}

// Snapshot returns the current totals
func (a *StatsAggregate) Snapshot() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()

	stats := Stats{
		Total:      a.total,
		Answered:   a.answered,
		Escalated:  a.escalated,
		Blocked:    a.blocked,
		Clarifying: a.clarifying,
	}
	if a.total > 0 {
		stats.AvgConfidence = a.confidenceSum / float64(a.total)
		stats.AvgResponseTimeMs = float64(a.responseTimeSum) / float64(a.total)
	}
	return stats
}
