// Package telemetry records agent behaviour: decision transitions, clip
// plays, trigger overrides, windowed statistics and step timing.
package telemetry

import "github.com/pthm-cable/perrito/agent"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventTransition EventType = iota
	EventClip
	EventOverride
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventTransition:
		return "transition"
	case EventClip:
		return "clip"
	case EventOverride:
		return "override"
	default:
		return "unknown"
	}
}

// Event represents a single telemetry event.
type Event struct {
	Type    EventType
	Frame   int32
	AgentID uint32

	// Optional fields depending on event type
	From, To agent.State // transition
	Clip     string      // clip
	TargetID uint32      // transition target, or override target
	Enter    bool        // override: true on trigger enter
}

// NewTransitionEvent creates a state change event.
func NewTransitionEvent(frame int32, agentID uint32, from, to agent.State, targetID uint32) Event {
	return Event{
		Type:     EventTransition,
		Frame:    frame,
		AgentID:  agentID,
		From:     from,
		To:       to,
		TargetID: targetID,
	}
}

// NewClipEvent creates a clip play event.
func NewClipEvent(frame int32, agentID uint32, clip string) Event {
	return Event{
		Type:    EventClip,
		Frame:   frame,
		AgentID: agentID,
		Clip:    clip,
	}
}

// NewOverrideEvent creates a trigger override event.
func NewOverrideEvent(frame int32, agentID, targetID uint32, enter bool) Event {
	return Event{
		Type:     EventOverride,
		Frame:    frame,
		AgentID:  agentID,
		TargetID: targetID,
		Enter:    enter,
	}
}

// EventCSV is the flat form of an Event written to events.csv.
type EventCSV struct {
	RunID    string `csv:"run_id"`
	Frame    int32  `csv:"frame"`
	Type     string `csv:"type"`
	AgentID  uint32 `csv:"agent"`
	From     string `csv:"from"`
	To       string `csv:"to"`
	Clip     string `csv:"clip"`
	TargetID uint32 `csv:"target"`
	Enter    bool   `csv:"enter"`
}

// ToCSV flattens the event.
func (e Event) ToCSV() EventCSV {
	rec := EventCSV{
		Frame:    e.Frame,
		Type:     e.Type.String(),
		AgentID:  e.AgentID,
		Clip:     e.Clip,
		TargetID: e.TargetID,
		Enter:    e.Enter,
	}
	if e.Type == EventTransition {
		rec.From = e.From.String()
		rec.To = e.To.String()
	}
	return rec
}
