package game

import (
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/perrito/camera"
	"github.com/pthm-cable/perrito/perception"
	"github.com/pthm-cable/perrito/renderer"
	"github.com/pthm-cable/perrito/ui"
)

// maxFrameDT caps wall-clock frame time fed to the simulation.
const maxFrameDT = 0.1

// initWindowed creates the camera and UI. The raylib window must already
// be open.
func (g *Game) initWindowed() {
	g.screenW = int32(g.cfg.Screen.Width)
	g.screenH = int32(g.cfg.Screen.Height)
	g.camera = camera.New(g.cfg.Derived.HalfWidth, g.cfg.Derived.HalfDepth)
	g.sceneR = renderer.NewSceneRenderer()
	g.overlays = ui.NewOverlayRegistry()
	g.hud = ui.NewHUD()
	g.controls = ui.NewControlsPanel(10, 100, 240)
	g.perfPanel = ui.NewPerfPanel(g.screenW-250, 10, g.registry)
	g.inspector = ui.NewInspector(g.screenW-290, 220, 280)
	if len(g.controllers) > 0 {
		g.selected = g.controllers[0].Agent.ID
	}
}

// Update handles input and advances the simulation by one rendered frame.
func (g *Game) Update() error {
	g.handleInput()
	g.perfCollector.RecordFrame()
	if g.paused {
		return nil
	}
	dt := math.Min(float64(rl.GetFrameTime()), maxFrameDT)
	for i := 0; i < g.speed; i++ {
		if err := g.Step(dt); err != nil {
			return err
		}
	}
	return nil
}

// Draw renders the world and UI.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 24, G: 28, B: 34, A: 255})

	g.buildScene()
	rl.BeginMode3D(g.camera3D())
	g.sceneR.Draw(&g.scene, renderer.Overlays{
		Sensors:   g.overlays.IsEnabled(ui.OverlaySensors),
		Targets:   g.overlays.IsEnabled(ui.OverlayTargets),
		Waypoints: g.overlays.IsEnabled(ui.OverlayWaypoints),
		Triggers:  g.overlays.IsEnabled(ui.OverlayTriggers),
		Velocity:  g.overlays.IsEnabled(ui.OverlayVelocity),
		Grid:      g.overlays.IsEnabled(ui.OverlayGrid),
	})
	rl.EndMode3D()

	g.drawUI()
	rl.EndDrawing()
}

// camera3D converts the orbit camera for raylib.
func (g *Game) camera3D() rl.Camera3D {
	return rl.Camera3D{
		Position:   renderer.Vec(g.camera.Position()),
		Target:     renderer.Vec(g.camera.Focus),
		Up:         rl.Vector3{Y: 1},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

// buildScene snapshots the world into g.scene.
func (g *Game) buildScene() {
	s := &g.scene
	s.Reset()
	s.HalfW = g.cfg.Derived.HalfWidth
	s.HalfD = g.cfg.Derived.HalfDepth
	s.CellSize = g.cfg.Physics.GridCellSize

	w := g.world
	for _, c := range g.controllers {
		a := c.Agent
		e, ok := w.Entity(a.ID)
		if !ok {
			continue
		}
		eyes, ears := a.EyesSphere(), a.EarsSphere()
		view := renderer.AgentView{
			Position: a.Position,
			Velocity: a.Velocity,
			Radius:   w.Bodies.Get(e).Radius,
			Facing:   a.Facing,
			State:    a.State,
			Eyes:     eyes.Center,
			EyesR:    eyes.Radius,
			Ears:     ears.Center,
			EarsR:    ears.Radius,
			Waypoint: a.Waypoint.Point,
			HasWaypt: a.Waypoint.Valid,
			Selected: a.ID == g.selected,
		}
		cur, _ := c.Perceiver().Current()
		if t, ok, _ := perception.Resolve(cur); ok {
			view.Target, view.HasTarget = t.Position, true
		}
		s.Agents = append(s.Agents, view)
	}

	for _, id := range g.targetIDs {
		e, ok := w.Entity(id)
		if !ok {
			continue
		}
		ident := w.Identities.Get(e)
		s.Bodies = append(s.Bodies, renderer.BodyView{
			Position: w.Positions.Get(e).Vec(),
			Radius:   w.Bodies.Get(e).Radius,
			Kind:     ident.Kind,
		})
	}

	for _, id := range g.triggerIDs {
		e, ok := w.Entity(id)
		if !ok {
			continue
		}
		trig := w.Triggers.Get(e)
		s.Triggers = append(s.Triggers, renderer.TriggerView{
			Center:   w.Positions.Get(e).Vec(),
			Radius:   trig.Radius,
			Occupied: len(trig.Inside) > 0,
		})
	}
}

// drawUI renders HUD, panels and the inspector, applying any tuning.
func (g *Game) drawUI() {
	hud := ui.HUDData{
		Title:   "perrito",
		Frame:   g.frame,
		SimTime: g.simTime,
		Speed:   g.speed,
		FPS:     rl.GetFPS(),
		Paused:  g.paused,
		Agents:  len(g.controllers),
		Targets: len(g.targetIDs),
	}
	for _, c := range g.controllers {
		if int(c.Agent.State) < len(hud.States) {
			hud.States[c.Agent.State]++
		}
	}
	g.hud.Draw(hud)
	g.hud.DrawControls(g.screenH, "[Space] pause  [,/.] speed  [WASD] pan  [RMB] orbit  [M] drive player  [F] follow  [Tab] panel")

	res := g.controls.Draw(g.overlays, g.paused, g.speed)
	if res.TogglePause {
		g.paused = !g.paused
	}
	if res.SpeedDelta != 0 {
		g.changeSpeed(res.SpeedDelta)
	}
	if res.ResetCamera {
		g.camera.Reset()
	}

	g.perfPanel.Draw(g.perfCollector.Stats())

	if c := g.controller(g.selected); c != nil {
		tuning := g.inspector.Draw(g.inspectorData(c.Agent.ID))
		if tuning.Changed {
			a := c.Agent
			a.MaxSpeed = tuning.MaxSpeed
			a.SlowingRadius = tuning.SlowingRadius
			a.StopThreshold = tuning.StopThreshold
			slog.Info("tuning", "agent", g.world.NameOf(a.ID),
				"max_speed", a.MaxSpeed, "slowing_radius", a.SlowingRadius, "stop_threshold", a.StopThreshold)
		}
	}
}

// inspectorData snapshots an agent for the inspector panel.
func (g *Game) inspectorData(id uint32) ui.InspectorData {
	c := g.controller(id)
	a := c.Agent
	data := ui.InspectorData{
		Name:          g.world.NameOf(id),
		ID:            id,
		State:         a.State.String(),
		StateTime:     a.StateTime,
		Clip:          a.Clip.Current(),
		X:             a.Position.X,
		Z:             a.Position.Z,
		Speed:         r3.Norm(a.Velocity),
		Sweeps:        c.Perceiver().Sweeps(),
		MaxSpeed:      a.MaxSpeed,
		SlowingRadius: a.SlowingRadius,
		StopThreshold: a.StopThreshold,
	}
	cur, _ := c.Perceiver().Current()
	if t, ok, _ := perception.Resolve(cur); ok {
		data.HasTarget = true
		data.TargetName = g.world.NameOf(t.ID)
		data.TargetMass = t.Mass
		data.TargetDist = a.DistanceTo(t.Position)
	}
	return data
}
