// Package steering provides pure kinematic steering behaviors.
// Every function returns a desired velocity; none of them retain state
// except Wander, which updates the caller-owned Waypoint.
package steering

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Epsilon is the length below which a direction is treated as zero.
const Epsilon = 1e-9

// Kinematics is the snapshot of an agent that steering operates on.
type Kinematics struct {
	Position r3.Vec
	Velocity r3.Vec
	MaxSpeed float64
}

// Seek returns a velocity pointing from the agent toward target at MaxSpeed.
// Returns the zero vector when the agent is already at target.
func Seek(k Kinematics, target r3.Vec) r3.Vec {
	desired := r3.Sub(target, k.Position)
	dist := r3.Norm(desired)
	if dist < Epsilon {
		return r3.Vec{}
	}
	return r3.Scale(k.MaxSpeed/dist, desired)
}

// Flee returns a velocity pointing directly away from target at MaxSpeed.
func Flee(k Kinematics, target r3.Vec) r3.Vec {
	return r3.Scale(-1, Seek(k, target))
}

// Arrival returns a velocity toward target whose magnitude decays linearly
// from MaxSpeed at slowingRadius to zero at stopThreshold.
//
// When slowingRadius <= stopThreshold there is no ramp: full speed outside
// stopThreshold, zero inside it.
func Arrival(k Kinematics, target r3.Vec, slowingRadius, stopThreshold float64) r3.Vec {
	desired := r3.Sub(target, k.Position)
	dist := r3.Norm(desired)
	if dist <= stopThreshold || dist < Epsilon {
		return r3.Vec{}
	}

	speed := k.MaxSpeed
	if slowingRadius > stopThreshold && dist < slowingRadius {
		speed = k.MaxSpeed * (dist - stopThreshold) / (slowingRadius - stopThreshold)
	}
	speed = clamp(speed, 0, k.MaxSpeed)

	return r3.Scale(speed/dist, desired)
}

// Truncate limits the magnitude of v to max.
func Truncate(v r3.Vec, max float64) r3.Vec {
	n := r3.Norm(v)
	if n <= max || n < Epsilon {
		return v
	}
	return r3.Scale(max/n, v)
}

// Heading returns the yaw of v in the XZ plane, measured from +Z toward +X,
// in (-pi, pi]. ok is false when v has no horizontal component.
func Heading(v r3.Vec) (yaw float64, ok bool) {
	if v.X*v.X+v.Z*v.Z < Epsilon*Epsilon {
		return 0, false
	}
	yaw = math.Atan2(v.X, v.Z)
	if yaw <= -math.Pi {
		yaw = math.Pi
	}
	return yaw, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
