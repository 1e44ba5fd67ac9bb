package virtualcube

import "time"

// EventKind identifies a session event.
type EventKind int

const (
	EventRotationStarted EventKind = iota + 1
	EventRotationCommitted
	EventRotationRejected
	EventWatchdog
	EventSequenceStarted
	EventSequenceDone
	EventSequenceAborted
	EventSolveFailed
	EventReset
	EventHelpToggled
)

func (k EventKind) String() string {
	switch k {
	case EventRotationStarted:
		return "rotation-started"
	case EventRotationCommitted:
		return "rotation-committed"
	case EventRotationRejected:
		return "rotation-rejected"
	case EventWatchdog:
		return "watchdog"
	case EventSequenceStarted:
		return "sequence-started"
	case EventSequenceDone:
		return "sequence-done"
	case EventSequenceAborted:
		return "sequence-aborted"
	case EventSolveFailed:
		return "solve-failed"
	case EventReset:
		return "reset"
	case EventHelpToggled:
		return "help-toggled"
	default:
		return "unknown"
	}
}

// Event reports something that happened in a session.
type Event struct {
	Kind     EventKind
	Move     Move      // rotation events
	Sequence *Sequence // sequence events; a copy
	Err      error     // EventSolveFailed
	At       time.Duration
}
