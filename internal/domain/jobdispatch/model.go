package jobdispatch

import "time"

type Status string

const (
	StatusSent      Status = "sent"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Event is one scheduler hand-off: an attempt to enqueue or run a
// distribution/rotation job. Kept for operational debugging of missed runs.
type Event struct {
	DispatchID   string
	JobName      string
	JobPath      string
	HouseholdID  string
	Status       Status
	Payload      map[string]any
	ErrorMessage string
	OccurredAt   time.Time
	TraceID      string
	SpanID       string
}
