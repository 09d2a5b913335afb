// Package renderer draws the 3-D world: ground, bodies, agents and their
// perception volumes.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/perrito/agent"
	"github.com/pthm-cable/perrito/components"
)

// BodyView is a non-agent entity to draw.
type BodyView struct {
	Position r3.Vec
	Radius   float64
	Kind     components.Kind
	Selected bool
}

// AgentView is an agent to draw with its debug geometry.
type AgentView struct {
	Position  r3.Vec
	Velocity  r3.Vec
	Radius    float64
	Facing    float64
	State     agent.State
	Eyes      r3.Vec
	EyesR     float64
	Ears      r3.Vec
	EarsR     float64
	Waypoint  r3.Vec
	HasWaypt  bool
	Target    r3.Vec
	HasTarget bool
	Selected  bool
}

// TriggerView is an encounter volume.
type TriggerView struct {
	Center   r3.Vec
	Radius   float64
	Occupied bool
}

// Overlays selects which debug layers are drawn.
type Overlays struct {
	Sensors   bool
	Targets   bool
	Waypoints bool
	Triggers  bool
	Velocity  bool
	Grid      bool
}

// Scene is everything drawn in one frame.
type Scene struct {
	HalfW, HalfD float64
	CellSize     float64
	Bodies       []BodyView
	Agents       []AgentView
	Triggers     []TriggerView
}

// Reset empties the scene, keeping capacity.
func (s *Scene) Reset() {
	s.Bodies = s.Bodies[:0]
	s.Agents = s.Agents[:0]
	s.Triggers = s.Triggers[:0]
}

// SceneRenderer draws a Scene inside an active 3-D mode.
type SceneRenderer struct {
	ground rl.Color
}

// NewSceneRenderer creates a scene renderer.
func NewSceneRenderer() *SceneRenderer {
	return &SceneRenderer{ground: rl.Color{R: 58, G: 82, B: 52, A: 255}}
}

// Draw renders the scene. Must be called between BeginMode3D and EndMode3D.
func (r *SceneRenderer) Draw(s *Scene, ov Overlays) {
	size := rl.Vector2{X: float32(2 * s.HalfW), Y: float32(2 * s.HalfD)}
	rl.DrawPlane(rl.Vector3{}, size, r.ground)
	if ov.Grid && s.CellSize > 0 {
		r.drawGrid(s)
	}

	if ov.Triggers {
		for _, t := range s.Triggers {
			c := rl.Color{R: 90, G: 160, B: 230, A: 70}
			if t.Occupied {
				c = rl.Color{R: 230, G: 170, B: 60, A: 90}
			}
			rl.DrawCylinder(Vec(t.Center), float32(t.Radius), float32(t.Radius), 0.05, 32, c)
			rl.DrawCylinderWires(Vec(t.Center), float32(t.Radius), float32(t.Radius), 1.5, 32, rl.Fade(c, 0.9))
		}
	}

	for _, b := range s.Bodies {
		pos := Vec(b.Position)
		pos.Y += float32(b.Radius)
		rl.DrawSphere(pos, float32(b.Radius), KindColor(b.Kind))
		if b.Selected {
			rl.DrawSphereWires(pos, float32(b.Radius)*1.3, 8, 8, rl.White)
		}
	}

	for i := range s.Agents {
		r.drawAgent(&s.Agents[i], ov)
	}
}

func (r *SceneRenderer) drawAgent(a *AgentView, ov Overlays) {
	pos := Vec(a.Position)
	pos.Y += float32(a.Radius)
	col := StateColor(a.State)

	rl.DrawCube(pos, float32(a.Radius*1.6), float32(a.Radius*1.2), float32(a.Radius*2.2), col)
	if a.Selected {
		rl.DrawCubeWires(pos, float32(a.Radius*1.9), float32(a.Radius*1.5), float32(a.Radius*2.5), rl.White)
	}
	nose := rl.Vector3{
		X: pos.X + float32(math.Sin(a.Facing)*a.Radius*1.8),
		Y: pos.Y,
		Z: pos.Z + float32(math.Cos(a.Facing)*a.Radius*1.8),
	}
	rl.DrawLine3D(pos, nose, rl.Black)

	if ov.Sensors {
		rl.DrawSphereWires(Vec(a.Eyes), float32(a.EyesR), 10, 16, rl.Fade(rl.Red, 0.35))
		rl.DrawSphereWires(Vec(a.Ears), float32(a.EarsR), 8, 12, rl.Fade(rl.Blue, 0.45))
	}
	if ov.Targets && a.HasTarget {
		rl.DrawLine3D(pos, Vec(a.Target), col)
	}
	if ov.Waypoints && a.HasWaypt {
		rl.DrawSphere(Vec(a.Waypoint), 0.2, rl.Yellow)
		rl.DrawLine3D(pos, Vec(a.Waypoint), rl.Fade(rl.Yellow, 0.5))
	}
	if ov.Velocity {
		tip := Vec(r3.Add(a.Position, a.Velocity))
		tip.Y = pos.Y
		rl.DrawLine3D(pos, tip, rl.Magenta)
	}
}

func (r *SceneRenderer) drawGrid(s *Scene) {
	c := rl.Fade(rl.Black, 0.25)
	for x := -s.HalfW; x <= s.HalfW; x += s.CellSize {
		rl.DrawLine3D(
			rl.Vector3{X: float32(x), Y: 0.01, Z: float32(-s.HalfD)},
			rl.Vector3{X: float32(x), Y: 0.01, Z: float32(s.HalfD)}, c)
	}
	for z := -s.HalfD; z <= s.HalfD; z += s.CellSize {
		rl.DrawLine3D(
			rl.Vector3{X: float32(-s.HalfW), Y: 0.01, Z: float32(z)},
			rl.Vector3{X: float32(s.HalfW), Y: 0.01, Z: float32(z)}, c)
	}
}

// StateColor returns the body colour of an agent in state s.
func StateColor(s agent.State) rl.Color {
	switch s {
	case agent.Idle:
		return rl.Gray
	case agent.Wander:
		return rl.Beige
	case agent.Pursuit:
		return rl.Orange
	case agent.Attack:
		return rl.Red
	case agent.Escape:
		return rl.SkyBlue
	default:
		return rl.Magenta
	}
}

// KindColor returns the colour used for a non-agent entity.
func KindColor(k components.Kind) rl.Color {
	switch k {
	case components.KindCritter:
		return rl.Brown
	case components.KindPlayer:
		return rl.DarkBlue
	case components.KindAnchor:
		return rl.LightGray
	default:
		return rl.Purple
	}
}

// Vec converts a world vector for raylib.
func Vec(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
