package steering

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultWanderTolerance is how close the agent must get to its waypoint
// before a new one is sampled.
const DefaultWanderTolerance = 0.5

// WanderParams configures waypoint sampling.
type WanderParams struct {
	Distance  float64 // how far ahead the circle is projected
	Radius    float64 // circle radius
	Jitter    float64 // max angular offset in radians, either side of heading
	Tolerance float64 // resample distance; 0 means DefaultWanderTolerance
}

// Waypoint is the transient wander target owned by an agent.
type Waypoint struct {
	Point r3.Vec
	Valid bool
}

// Clear discards the waypoint.
func (w *Waypoint) Clear() {
	*w = Waypoint{}
}

// Wander steers toward wp, sampling a new waypoint first if wp is unset or
// the agent has come within tolerance of it. An existing waypoint is reused
// otherwise.
func Wander(k Kinematics, wp *Waypoint, p WanderParams, rng *rand.Rand) r3.Vec {
	tol := p.Tolerance
	if tol <= 0 {
		tol = DefaultWanderTolerance
	}
	if !wp.Valid || r3.Norm(r3.Sub(wp.Point, k.Position)) < tol {
		wp.Point = NextWaypoint(k, p, rng)
		wp.Valid = true
	}
	return Seek(k, wp.Point)
}

// NextWaypoint samples a point on a circle of radius p.Radius centred
// p.Distance ahead of the agent, offset by a bounded random angle.
// The heading comes from the horizontal velocity, or +Z if the agent is still.
func NextWaypoint(k Kinematics, p WanderParams, rng *rand.Rand) r3.Vec {
	yaw, _ := Heading(k.Velocity)
	ahead := r3.Vec{X: math.Sin(yaw), Z: math.Cos(yaw)}
	center := r3.Add(k.Position, r3.Scale(p.Distance, ahead))

	offset := yaw
	if p.Jitter > 0 {
		offset += (rng.Float64()*2 - 1) * p.Jitter
	}
	rim := r3.Vec{X: math.Sin(offset), Z: math.Cos(offset)}
	return r3.Add(center, r3.Scale(p.Radius, rim))
}
