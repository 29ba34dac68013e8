package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventOpen     EventType = "open"
	EventSubmit   EventType = "submit"
	EventApplied  EventType = "applied"
	EventRejected EventType = "rejected"
	EventFailed   EventType = "failed"
	EventClose    EventType = "close"
)

// EditorEvent describes a transition of the port configuration editor.
type EditorEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Type      EventType     `json:"type"`
	PortID    string        `json:"port_id"`
	PortType  ComponentType `json:"port_type,omitempty"`
	Revision  Revision      `json:"revision"`

	// Duration is set on outcome events and measures the round trip of the update.
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// EditorHooks defines callbacks for editor observability.
type EditorHooks struct {
	OnOpen     func(context.Context, *EditorEvent)
	OnSubmit   func(context.Context, *EditorEvent)
	OnApplied  func(context.Context, *EditorEvent)
	OnRejected func(context.Context, *EditorEvent)
	OnFailed   func(context.Context, *EditorEvent)
	OnClose    func(context.Context, *EditorEvent)
}
