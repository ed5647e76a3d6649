package domain

// BootstrapTypeCleanup marks the bootstrap event emitted once a provider
// cleanup finished.
const BootstrapTypeCleanup = "cleanup"

// BootstrapEvent is the latest cloud bootstrap progress report. Response is
// nil until the backend answered.
type BootstrapEvent struct {
	Type     string `json:"type"`
	Response any    `json:"response,omitempty"`
}

// CleanupDone reports whether the event signals a finished cleanup.
func (e *BootstrapEvent) CleanupDone() bool {
	return e != nil && e.Type == BootstrapTypeCleanup && e.Response != nil
}
