package reorder

import (
	"time"

	"bookmark-reorder-be/pkg/events"
)

// Telemetry event codes emitted by the engine. Every terminal session state
// is reported exactly once.
const (
	EventSessionStarted = "DRAG_SESSION_STARTED"
	EventStateChanged   = "DRAG_STATE_CHANGED"
	EventMoveAttempted  = "MOVE_ATTEMPTED"
	EventMoveCompleted  = "MOVE_COMPLETED"
	EventMoveSkipped    = "MOVE_SKIPPED"
	EventMoveFailed     = "MOVE_FAILED"
	EventSessionEnded   = "DRAG_SESSION_ENDED"
)

func newEvent(eventType string, at time.Time, data map[string]interface{}) events.Event {
	if data == nil {
		data = make(map[string]interface{})
	}
	return events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: at,
	}
}
