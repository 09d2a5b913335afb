package agent

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/perrito/perception"
	"github.com/pthm-cable/perrito/steering"
)

// Body is the external rigid body an agent drives.
// Position is read once at the start of a tick; SetVelocity overwrites the
// body's velocity.
type Body interface {
	Position() r3.Vec
	SetVelocity(v r3.Vec)
}

// PursuitSpeedFactor scales MaxSpeed while pursuing.
const PursuitSpeedFactor = 2

// Motion turns the agent's state into a velocity and an animation clip.
type Motion struct {
	anim Animator
	rng  *rand.Rand
}

// NewMotion creates a motion driver. rng is used for wander sampling.
func NewMotion(anim Animator, rng *rand.Rand) *Motion {
	return &Motion{anim: anim, rng: rng}
}

// Drive applies one motion step for a's current state and returns how many
// clips were issued to the animator. target is only read in Pursuit and
// Escape, where the decision step guarantees one exists.
func (m *Motion) Drive(a *Agent, body Body, target perception.Target, hasTarget bool) int {
	plays := 0
	play := func(name string) {
		if a.Clip.Request(m.anim, a.ID, name) {
			plays++
		}
	}

	switch a.State {
	case Idle:
		m.apply(a, body, r3.Vec{}, 0)
		play(ClipIdle)

	case Wander:
		play(ClipWander)
		m.apply(a, body, steering.Wander(a.Kinematics(), &a.Waypoint, a.Wander, m.rng), a.MaxSpeed)

	case Pursuit:
		if !hasTarget {
			break
		}
		if !a.Clip.Is(ClipRun, ClipWalk) {
			play(ClipRun)
		}
		// Pursuit runs at a boosted speed; the agent's own MaxSpeed is left intact.
		k := a.Kinematics()
		k.MaxSpeed *= PursuitSpeedFactor
		m.apply(a, body, steering.Arrival(k, target.Position, a.SlowingRadius, a.StopThreshold), k.MaxSpeed)
		if a.DistanceTo(target.Position) <= a.SlowingRadius {
			play(ClipWalk)
		}

	case Attack:
		// Hold: velocity is left as it is.
		play(ClipAttack)

	case Escape:
		if !hasTarget {
			break
		}
		play(ClipRun)
		m.apply(a, body, steering.Flee(a.Kinematics(), target.Position), a.MaxSpeed)
	}

	return plays
}

// apply writes v, clamped to limit, as the agent's velocity.
func (m *Motion) apply(a *Agent, body Body, v r3.Vec, limit float64) {
	v = steering.Truncate(v, limit)
	a.Velocity = v
	if yaw, ok := steering.Heading(v); ok {
		a.Facing = yaw
	}
	if body != nil {
		body.SetVelocity(v)
	}
}
