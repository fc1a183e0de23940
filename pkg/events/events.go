package events

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// Topic carries tool lifecycle events for operational observability. Nothing
// on this topic ever feeds back into control flow.
const Topic = "clara.tools"

type EventType string

const (
	EventTypeToolStart EventType = "tool_start"
	EventTypeToolEnd   EventType = "tool_end"
)

// Event is the envelope for everything published on Topic.
type Event struct {
	Type EventType `json:"type"`
	Tool string    `json:"tool"`
	Room string    `json:"room,omitempty"`

	// tool_end only
	Success  bool          `json:"success,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// NewToolStart builds the event emitted before a tool handler runs.
func NewToolStart(tool, room string) Event {
	return Event{Type: EventTypeToolStart, Tool: tool, Room: room}
}

// NewToolEnd builds the event emitted after a tool handler returns. Success
// follows the tool's caller-facing contract, not the underlying operation.
func NewToolEnd(tool, room string, success bool, duration time.Duration) Event {
	return Event{
		Type:     EventTypeToolEnd,
		Tool:     tool,
		Room:     room,
		Success:  success,
		Duration: duration,
	}
}

// ParseEvent decodes an event payload published on Topic.
func ParseEvent(payload []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(payload, &e); err != nil {
		return Event{}, errors.Wrap(err, "failed to parse event")
	}
	if e.Type == "" {
		return Event{}, errors.New("event has no type")
	}
	return e, nil
}
