package auditlog

import "time"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// AuditEntry represents a persisted audit event.
type AuditEntry struct {
	ID           int64     `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Command      string    `json:"command"`
	Args         string    `json:"args,omitempty"`
	Provider     string    `json:"provider,omitempty"`
	ResourceType string    `json:"resource_type,omitempty"`
	ResourceID   string    `json:"resource_id,omitempty"`
	ResourceName string    `json:"resource_name,omitempty"`
	Outcome      string    `json:"outcome"`
	Detail       string    `json:"detail,omitempty"`
	DurationMs   int64     `json:"duration_ms"`
}

// Finish sets the outcome, detail and duration of an operation that began
// at start and ended with err.
func (e *AuditEntry) Finish(start time.Time, err error) {
	if e.Timestamp.IsZero() {
		e.Timestamp = start.UTC()
	}
	e.DurationMs = time.Since(start).Milliseconds()
	if err != nil {
		e.Outcome = OutcomeError
		e.Detail = err.Error()
		return
	}
	e.Outcome = OutcomeSuccess
	e.Detail = ""
}
