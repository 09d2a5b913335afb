package systems

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/perrito/agent"
	"github.com/pthm-cable/perrito/components"
)

// AgentTick pairs a controller's transition with the entity that made it.
type AgentTick struct {
	ID   uint32
	Name string
	agent.Transition
}

// AgentSystem drives every entity carrying a Brain.
type AgentSystem struct {
	filter ecs.Filter2[components.Brain, components.Identity]
	ticks  []AgentTick
}

// NewAgentSystem creates a new agent system.
func NewAgentSystem(w *World) *AgentSystem {
	return &AgentSystem{
		filter: *ecs.NewFilter2[components.Brain, components.Identity](w.ECS),
	}
}

// FixedUpdate runs one perception sweep per agent.
// The spatial grid must already reflect this step's positions.
func (s *AgentSystem) FixedUpdate(dt float64) {
	query := s.filter.Query()
	for query.Next() {
		brain, _ := query.Get()
		brain.Controller.FixedTick(dt)
	}
}

// Update runs one decision and motion step per agent and returns what each
// one did. The returned slice is reused by the next call.
// An error means a perceived target broke the Targetable contract; the
// remaining agents are not ticked.
func (s *AgentSystem) Update(dt float64) ([]AgentTick, error) {
	s.ticks = s.ticks[:0]
	query := s.filter.Query()
	for query.Next() {
		brain, id := query.Get()
		tr, err := brain.Controller.Tick(dt)
		if err != nil {
			query.Close()
			return s.ticks, fmt.Errorf("agent %q: %w", id.Name, err)
		}
		s.ticks = append(s.ticks, AgentTick{ID: id.ID, Name: id.Name, Transition: tr})
	}
	return s.ticks, nil
}

// Controller returns the controller of the agent with the given ID.
func (w *World) Controller(id uint32) (*agent.Controller, bool) {
	e, ok := w.Entity(id)
	if !ok || !w.Brains.Has(e) {
		return nil, false
	}
	return w.Brains.Get(e).Controller, true
}
