package domain

import "time"

// EventKind classifies a pipeline event.
type EventKind uint8

const (
	// EventInfo is a progress or informational message.
	EventInfo EventKind = iota
	// EventWarning is a diagnostic that does not fail the update.
	EventWarning
	// EventError is a diagnostic for a failed label or target.
	EventError
)

// String returns the lowercase kind name.
func (k EventKind) String() string {
	switch k {
	case EventInfo:
		return "info"
	case EventWarning:
		return "warning"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a diagnostic or progress message reported during an update.
type Event struct {
	Kind    EventKind
	Label   string
	Message string
	Time    time.Time
}
