package agent

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/perrito/perception"
	"github.com/pthm-cable/perrito/steering"
)

// fakeBody is a rigid body whose position the test moves by hand.
type fakeBody struct {
	pos    r3.Vec
	vel    r3.Vec
	writes int
}

func (b *fakeBody) Position() r3.Vec     { return b.pos }
func (b *fakeBody) SetVelocity(v r3.Vec) { b.vel = v; b.writes++ }

// recorder is an Animator that logs every Play call.
type recorder struct {
	plays []string
}

func (r *recorder) Play(_ uint32, clip string) { r.plays = append(r.plays, clip) }

func (r *recorder) last() string {
	if len(r.plays) == 0 {
		return ""
	}
	return r.plays[len(r.plays)-1]
}

// actor is a perceivable entity.
type actor struct {
	id   uint32
	pos  r3.Vec
	mass float64
}

func (a *actor) EntityID() uint32 { return a.id }
func (a *actor) Position() r3.Vec { return a.pos }
func (a *actor) Mass() float64    { return a.mass }

// fixedQuery reports the same entities for every sphere.
type fixedQuery struct {
	entities []perception.Entity
}

func (q *fixedQuery) OverlapSphere(r3.Vec, float64) []perception.Entity {
	return q.entities
}

func testParams() Params {
	return Params{
		Mass:          10,
		MaxSpeed:      3,
		Eyes:          Sensor{Offset: r3.Vec{Z: 0.5}, Radius: 30},
		Ears:          Sensor{Radius: 10},
		SlowingRadius: 8,
		StopThreshold: 2,
		Wander:        steering.WanderParams{Distance: 4, Radius: 2, Jitter: 0.4},
	}
}
