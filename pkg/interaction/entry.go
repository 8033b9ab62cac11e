package interaction

import "time"

// Topic is the in-process event bus topic interaction entries flow over
const Topic = "CHATBOT_INTERACTION"

// LogEntry is a write-once record of a single exchange, emitted by the
// orchestrator after every completed request (answered, blocked, escalated
// or fallback). Message and answer are already sanitized by the caller.
type LogEntry struct {
	Timestamp      time.Time `json:"timestamp"`
	InteractionID  string    `json:"interaction_id"`
	Identity       string    `json:"identity"`
	Message        string    `json:"message"`
	Answer         string    `json:"answer"`
	Confidence     float64   `json:"confidence"`
	SourceCount    int       `json:"source_count"`
	Blocked        bool      `json:"blocked"`
	Clarifying     bool      `json:"clarifying"`
	ShouldEscalate bool      `json:"should_escalate"`
	EscalationType string    `json:"escalation_type,omitempty"`
	ResponseTimeMs int64     `json:"response_time_ms"`
}

// Outcome buckets an entry for stats aggregation
func (e LogEntry) Outcome() string {
	switch {
	case e.Blocked:
		return "blocked"
	case e.ShouldEscalate:
		return "escalated"
	default:
		return "answered"
	}
}
