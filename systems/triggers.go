package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/perrito/components"
)

// OverrideEvent records a trigger pushing a target into an agent's
// perception slot.
type OverrideEvent struct {
	Trigger string
	Agent   uint32
	Target  uint32
	Player  uint32
	Enter   bool
}

// TriggerSystem detects players entering and leaving encounter volumes.
// On enter the bound agent is pointed at the player; on exit at the
// trigger's anchor.
type TriggerSystem struct {
	w       *World
	filter  ecs.Filter2[components.Trigger, components.Position]
	scratch []Neighbor
	events  []OverrideEvent
	seen    map[uint32]bool
}

// NewTriggerSystem creates a new trigger system.
func NewTriggerSystem(w *World) *TriggerSystem {
	return &TriggerSystem{
		w:       w,
		filter:  *ecs.NewFilter2[components.Trigger, components.Position](w.ECS),
		scratch: make([]Neighbor, 0, 16),
		seen:    make(map[uint32]bool),
	}
}

// Update checks every trigger against the current grid and applies
// overrides for edges since the previous call. Returns the overrides
// applied; the slice is reused by the next call.
// Runs after the perception sweep so that an override survives until the
// next sweep.
func (s *TriggerSystem) Update() []OverrideEvent {
	s.events = s.events[:0]

	query := s.filter.Query()
	for query.Next() {
		trig, pos := query.Get()
		if trig.Inside == nil {
			trig.Inside = make(map[uint32]bool)
		}

		clear(s.seen)
		s.scratch = s.w.Grid.QueryRadiusInto(s.scratch[:0], pos.Vec(), trig.Radius, s.w.Positions)
		for _, n := range s.scratch {
			if !s.w.Identities.Has(n.E) {
				continue
			}
			ident := s.w.Identities.Get(n.E)
			if ident.Kind != components.KindPlayer {
				continue
			}
			s.seen[ident.ID] = true
			if !trig.Inside[ident.ID] {
				trig.Inside[ident.ID] = true
				s.override(trig, ident.ID, ident.ID, true)
			}
		}

		for id := range trig.Inside {
			if s.seen[id] {
				continue
			}
			delete(trig.Inside, id)
			s.override(trig, trig.Anchor, id, false)
		}
	}

	return s.events
}

func (s *TriggerSystem) override(trig *components.Trigger, target, player uint32, enter bool) {
	ctrl, ok := s.w.Controller(trig.Agent)
	if !ok {
		return
	}
	h, ok := s.w.TargetByID(target)
	if !ok {
		return
	}
	ctrl.Override(h)
	s.events = append(s.events, OverrideEvent{
		Trigger: trig.Name,
		Agent:   trig.Agent,
		Target:  target,
		Player:  player,
		Enter:   enter,
	})
}
