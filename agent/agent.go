// Package agent implements the decision state machine and motion driver for
// an autonomous agent. An Agent is the only mutable state in the pipeline;
// the decision step writes its State and the motion step writes its
// velocity, wander waypoint and clip.
package agent

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/perrito/perception"
	"github.com/pthm-cable/perrito/steering"
)

// Sensor is a perception sphere attached to the agent.
// Offset is in the agent's local frame (+Z forward).
type Sensor struct {
	Offset r3.Vec
	Radius float64
}

// Params holds the designer-tunable values an Agent is built from.
type Params struct {
	Mass          float64
	MaxSpeed      float64
	Eyes          Sensor
	Ears          Sensor
	SlowingRadius float64
	StopThreshold float64
	Wander        steering.WanderParams
}

// Agent is a single autonomous entity.
type Agent struct {
	ID       uint32
	Position r3.Vec
	Velocity r3.Vec
	Facing   float64 // yaw from +Z toward +X

	Params

	State     State
	StateTime float64 // seconds since the last transition
	Waypoint  steering.Waypoint
	Clip      ClipPlayer
}

// New creates an agent in the Idle state.
func New(id uint32, pos r3.Vec, p Params) *Agent {
	return &Agent{
		ID:       id,
		Position: pos,
		Params:   p,
		State:    Idle,
	}
}

// Kinematics returns the steering snapshot of the agent.
func (a *Agent) Kinematics() steering.Kinematics {
	return steering.Kinematics{
		Position: a.Position,
		Velocity: a.Velocity,
		MaxSpeed: a.MaxSpeed,
	}
}

// EyesSphere returns the visual sensor volume in world space.
func (a *Agent) EyesSphere() perception.Sphere {
	return a.sensorSphere(a.Eyes)
}

// EarsSphere returns the auditory sensor volume in world space.
func (a *Agent) EarsSphere() perception.Sphere {
	return a.sensorSphere(a.Ears)
}

func (a *Agent) sensorSphere(s Sensor) perception.Sphere {
	sin, cos := math.Sincos(a.Facing)
	local := s.Offset
	world := r3.Vec{
		X: local.X*cos + local.Z*sin,
		Y: local.Y,
		Z: -local.X*sin + local.Z*cos,
	}
	return perception.Sphere{Center: r3.Add(a.Position, world), Radius: s.Radius}
}

// DistanceTo returns the distance from the agent to p.
func (a *Agent) DistanceTo(p r3.Vec) float64 {
	return r3.Norm(r3.Sub(p, a.Position))
}
