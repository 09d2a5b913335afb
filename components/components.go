// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/perrito/agent"

// Kind classifies world entities.
type Kind uint8

const (
	KindAgent Kind = iota
	KindCritter
	KindPlayer
	KindAnchor
	KindTrigger
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAgent:
		return "agent"
	case KindCritter:
		return "critter"
	case KindPlayer:
		return "player"
	case KindAnchor:
		return "anchor"
	case KindTrigger:
		return "trigger"
	default:
		return "unknown"
	}
}

// ParseKind maps a config string to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "agent":
		return KindAgent, true
	case "critter":
		return KindCritter, true
	case "player":
		return KindPlayer, true
	case "anchor":
		return KindAnchor, true
	case "trigger":
		return KindTrigger, true
	}
	return 0, false
}

// Identity names an entity for logs and telemetry.
type Identity struct {
	ID   uint32
	Name string
	Kind Kind
}

// Targetable marks entities agents may perceive as targets.
type Targetable struct{}

// Animation holds the clip last issued by an agent.
type Animation struct {
	Clip  string
	Plays int
}

// Brain attaches an agent controller to an entity.
type Brain struct {
	Controller *agent.Controller
}

// Trigger is an encounter volume bound to one agent.
type Trigger struct {
	Name   string
	Radius float64
	Agent  uint32 // Identity.ID of the controlled agent
	Anchor uint32 // Identity.ID of the exit override target
	Inside map[uint32]bool
}
