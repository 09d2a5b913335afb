package agent

import (
	"math/rand"

	"github.com/pthm-cable/perrito/perception"
)

// Transition describes what a decision tick did.
type Transition struct {
	From, To  State
	Changed   bool
	ClipPlays int
	TargetID  uint32 // 0 when no target
}

// Controller wires perception, decision and motion for one agent.
//
// FixedTick runs at the physics rate and only refreshes the perception
// cache. Tick runs at the frame rate and consumes whatever the cache holds.
// Both must be called from the same goroutine.
type Controller struct {
	Agent *Agent

	perceiver *perception.Perceiver
	motion    *Motion
	body      Body
}

// NewController creates a controller for a, reading the world through q and
// writing to body and anim.
func NewController(a *Agent, q perception.SpatialQuery, body Body, anim Animator, rng *rand.Rand) *Controller {
	return &Controller{
		Agent:     a,
		perceiver: perception.NewPerceiver(q, a.ID),
		motion:    NewMotion(anim, rng),
		body:      body,
	}
}

// FixedTick runs one perception sweep.
func (c *Controller) FixedTick(dt float64) {
	c.syncPose()
	c.perceiver.Tick(dt, c.Agent.EyesSphere(), c.Agent.EarsSphere())
}

// Override forces the cached target; see perception.Perceiver.Override.
func (c *Controller) Override(t perception.Targetable) {
	c.perceiver.Override(t)
}

// Perceiver exposes the perception cache.
func (c *Controller) Perceiver() *perception.Perceiver {
	return c.perceiver
}

// Tick runs one decision and motion step.
// It fails only when the perceived target violates the Targetable contract
// (see perception.ErrMissingMass); callers should treat that as fatal.
func (c *Controller) Tick(dt float64) (Transition, error) {
	a := c.Agent
	c.syncPose()

	candidate, _ := c.perceiver.Current()
	target, hasTarget, err := perception.Resolve(candidate)
	if err != nil {
		return Transition{From: a.State, To: a.State}, err
	}

	in := Inputs{
		HasTarget:     hasTarget,
		SelfMass:      a.Mass,
		StopThreshold: a.StopThreshold,
	}
	if hasTarget {
		in.TargetMass = target.Mass
		in.Distance = a.DistanceTo(target.Position)
	}

	from := a.State
	changed := a.SetState(Decide(in))
	if !changed {
		a.StateTime += dt
	}

	plays := c.motion.Drive(a, c.body, target, hasTarget)

	return Transition{
		From:      from,
		To:        a.State,
		Changed:   changed,
		ClipPlays: plays,
		TargetID:  target.ID,
	}, nil
}

func (c *Controller) syncPose() {
	if c.body != nil {
		c.Agent.Position = c.body.Position()
	}
}
