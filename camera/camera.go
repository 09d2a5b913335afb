// Package camera provides an orbit camera over a bounded ground plane.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera orbits a focus point on the ground plane.
// Yaw is measured from +Z toward +X; pitch is the elevation above the plane.
type Camera struct {
	// Focus is the point the camera looks at (Y is kept at 0)
	Focus r3.Vec

	Yaw, Pitch float64
	Distance   float64

	// World half-extents the focus is clamped to
	HalfW, HalfD float64

	// Constraints
	MinDistance, MaxDistance float64
	MinPitch, MaxPitch       float64
}

// New creates a camera looking at the origin from above and behind.
func New(halfW, halfD float64) *Camera {
	c := &Camera{
		HalfW:       halfW,
		HalfD:       halfD,
		MinDistance: 5,
		MaxDistance: 4 * math.Max(halfW, halfD),
		MinPitch:    0.1,
		MaxPitch:    math.Pi/2 - 0.01,
	}
	c.Reset()
	return c
}

// Reset returns the camera to the default view.
func (c *Camera) Reset() {
	c.Focus = r3.Vec{}
	c.Yaw = math.Pi
	c.Pitch = 0.9
	c.Distance = clamp(1.5*math.Max(c.HalfW, c.HalfD), c.MinDistance, c.MaxDistance)
}

// Position returns the eye position in world coordinates.
func (c *Camera) Position() r3.Vec {
	horiz := c.Distance * math.Cos(c.Pitch)
	return r3.Vec{
		X: c.Focus.X + horiz*math.Sin(c.Yaw),
		Y: c.Focus.Y + c.Distance*math.Sin(c.Pitch),
		Z: c.Focus.Z + horiz*math.Cos(c.Yaw),
	}
}

// Pan moves the focus in the camera's ground frame: forward is away from
// the eye, right is perpendicular to it. The focus stays inside the world.
func (c *Camera) Pan(right, forward float64) {
	// Forward on the ground points from eye to focus.
	fwd := r3.Vec{X: -math.Sin(c.Yaw), Z: -math.Cos(c.Yaw)}
	rgt := r3.Vec{X: -fwd.Z, Z: fwd.X}
	c.Focus = r3.Add(c.Focus, r3.Add(r3.Scale(forward, fwd), r3.Scale(right, rgt)))
	c.Focus.X = clamp(c.Focus.X, -c.HalfW, c.HalfW)
	c.Focus.Z = clamp(c.Focus.Z, -c.HalfD, c.HalfD)
}

// Orbit rotates the eye around the focus.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw = math.Mod(c.Yaw+dYaw, 2*math.Pi)
	c.Pitch = clamp(c.Pitch+dPitch, c.MinPitch, c.MaxPitch)
}

// ZoomBy scales the eye distance; factors above 1 move closer.
func (c *Camera) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	c.Distance = clamp(c.Distance/factor, c.MinDistance, c.MaxDistance)
}

// Follow moves the focus to p, clamped to the world.
func (c *Camera) Follow(p r3.Vec) {
	c.Focus = r3.Vec{
		X: clamp(p.X, -c.HalfW, c.HalfW),
		Z: clamp(p.Z, -c.HalfD, c.HalfD),
	}
}

// PickGround intersects a ray with the y=0 plane.
// Returns false if the ray is parallel to or points away from the plane.
func PickGround(origin, dir r3.Vec) (r3.Vec, bool) {
	if math.Abs(dir.Y) < 1e-9 {
		return r3.Vec{}, false
	}
	t := -origin.Y / dir.Y
	if t < 0 {
		return r3.Vec{}, false
	}
	return r3.Add(origin, r3.Scale(t, dir)), true
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
