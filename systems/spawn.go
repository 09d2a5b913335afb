package systems

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/perrito/agent"
	"github.com/pthm-cable/perrito/components"
)

// SpawnTarget creates a perceivable entity with a body. A zero patrol
// leaves it stationary.
func (w *World) SpawnTarget(name string, kind components.Kind, pos r3.Vec, mass, radius float64, patrol r3.Vec) uint32 {
	e, id := w.Spawn(name, kind, pos)
	w.Bodies.Add(e, &components.Body{Mass: mass, Radius: radius})
	w.Targets.Add(e, &components.Targetable{})
	if patrol != (r3.Vec{}) {
		w.Patrols.Add(e, &components.Patrol{X: patrol.X, Y: patrol.Y, Z: patrol.Z})
	}
	return id
}

// SpawnAnchor creates a non-perceivable point with a mass, used as the exit
// target of a trigger.
func (w *World) SpawnAnchor(name string, pos r3.Vec, mass float64) uint32 {
	e, id := w.Spawn(name, components.KindAnchor, pos)
	w.Bodies.Add(e, &components.Body{Mass: mass})
	return id
}

// SpawnAgent creates an agent entity and its controller.
// Agents are not Targetable; other agents do not perceive them.
func (w *World) SpawnAgent(name string, pos r3.Vec, radius float64, p agent.Params, q *Query, anim agent.Animator, rng *rand.Rand) *agent.Controller {
	e, id := w.Spawn(name, components.KindAgent, pos)
	w.Bodies.Add(e, &components.Body{Mass: p.Mass, Radius: radius})
	w.Animations.Add(e, &components.Animation{})

	ctrl := agent.NewController(agent.New(id, pos, p), q, NewBodyHandle(w, e), anim, rng)
	w.Brains.Add(e, &components.Brain{Controller: ctrl})
	return ctrl
}

// SpawnTrigger creates an encounter volume bound to agentID.
func (w *World) SpawnTrigger(name string, center r3.Vec, radius float64, agentID, anchorID uint32) uint32 {
	e, id := w.Spawn(name, components.KindTrigger, center)
	w.Triggers.Add(e, &components.Trigger{
		Name:   name,
		Radius: radius,
		Agent:  agentID,
		Anchor: anchorID,
		Inside: make(map[uint32]bool),
	})
	return id
}
