// Package event defines the synchronous broadcast bus shared by grid
// components. Concrete grid events live in the grid package; this package
// only knows about event types and handlers.
package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "cell.focused", "range.changed")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Base provides the common fields of an event. Embed it in concrete event
// types to satisfy the Event interface.
type Base struct {
	eventType string
	timestamp time.Time
}

// EventType returns the event type.
func (e Base) EventType() string { return e.eventType }

// Timestamp returns when the event was created.
func (e Base) Timestamp() time.Time { return e.timestamp }

// NewBase creates a Base stamped with the current time.
func NewBase(eventType string) Base {
	return Base{
		eventType: eventType,
		timestamp: time.Now(),
	}
}
