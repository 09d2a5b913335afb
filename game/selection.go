package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/perrito/camera"
)

// maxPickDistance is how far from an agent a ground click may land.
const maxPickDistance = 2.0

// agentAtMouse returns the agent closest to the ground point under the
// cursor, if any is within maxPickDistance.
func (g *Game) agentAtMouse() (uint32, bool) {
	ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), g.camera3D())
	origin := r3.Vec{X: float64(ray.Position.X), Y: float64(ray.Position.Y), Z: float64(ray.Position.Z)}
	dir := r3.Vec{X: float64(ray.Direction.X), Y: float64(ray.Direction.Y), Z: float64(ray.Direction.Z)}

	hit, ok := camera.PickGround(origin, dir)
	if !ok {
		return 0, false
	}
	return g.nearestAgent(hit, maxPickDistance)
}

// nearestAgent returns the agent closest to p on the ground plane within
// maxDist.
func (g *Game) nearestAgent(p r3.Vec, maxDist float64) (uint32, bool) {
	var best uint32
	bestDist := maxDist
	for _, c := range g.controllers {
		d := c.Agent.Position
		d.Y = p.Y
		if dist := r3.Norm(r3.Sub(d, p)); dist <= bestDist {
			best, bestDist = c.Agent.ID, dist
		}
	}
	return best, best != 0
}
