package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlaySensors   OverlayID = "sensors"
	OverlayTargets   OverlayID = "targets"
	OverlayWaypoints OverlayID = "waypoints"
	OverlayTriggers  OverlayID = "triggers"
	OverlayVelocity  OverlayID = "velocity"
	OverlayGrid      OverlayID = "grid"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32  // Keyboard key to toggle (0 = no key)
	KeyLabel string // Key label for display
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the default overlays.
// Sensors and triggers start enabled.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{enabled: make(map[OverlayID]bool)}
	r.Register(OverlayDescriptor{ID: OverlaySensors, Name: "Eyes / Ears", Key: rl.KeyV, KeyLabel: "V"}, true)
	r.Register(OverlayDescriptor{ID: OverlayTargets, Name: "Target Lines", Key: rl.KeyT, KeyLabel: "T"}, true)
	r.Register(OverlayDescriptor{ID: OverlayWaypoints, Name: "Wander Waypoints", Key: rl.KeyY, KeyLabel: "Y"}, false)
	r.Register(OverlayDescriptor{ID: OverlayTriggers, Name: "Trigger Volumes", Key: rl.KeyG, KeyLabel: "G"}, true)
	r.Register(OverlayDescriptor{ID: OverlayVelocity, Name: "Velocity", Key: rl.KeyX, KeyLabel: "X"}, false)
	r.Register(OverlayDescriptor{ID: OverlayGrid, Name: "Spatial Grid", Key: rl.KeyB, KeyLabel: "B"}, false)
	return r
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor, enabled bool) {
	r.descriptors = append(r.descriptors, desc)
	r.enabled[desc.ID] = enabled
}

// Toggle switches an overlay on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	r.enabled[id] = enabled
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeys toggles every overlay whose key was pressed this frame.
func (r *OverlayRegistry) HandleKeys() {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			r.Toggle(desc.ID)
		}
	}
}
