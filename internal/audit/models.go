// Package audit captures an append-only trail of the service's significant
// actions. Events flow through an in-process channel to a background worker
// that appends them to a sink: the in-memory store by default, Kafka when
// brokers are configured.
package audit

import "time"

// Action names are stable identifiers; downstream consumers key on them.
const (
	ActionChartComputed     = "chart.computed"
	ActionReadingRequested  = "reading.requested"
	ActionFeedbackSubmitted = "feedback.submitted"
)

// Event is emitted from domain logic to capture one action. Transport
// agnostic so sinks can fan out.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	Action    string    `json:"action"`
	// Subject identifies what was acted on, e.g. a chart cache key.
	Subject string `json:"subject"`
	Detail  string `json:"detail,omitempty"`
}
