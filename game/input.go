package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"
)

// playerSpeed is the manual-control speed of the player entity.
const playerSpeed = 5.0

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyComma) {
		g.changeSpeed(-1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.changeSpeed(1)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyM) {
		g.manualPlayer = !g.manualPlayer
	}

	g.overlays.HandleKeys()
	g.handleCameraInput()
	g.handlePlayerInput()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if id, ok := g.agentAtMouse(); ok {
			g.selected = id
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		g.selected = 0
	}
}

func (g *Game) changeSpeed(delta int) {
	g.speed += delta
	if g.speed < 1 {
		g.speed = 1
	}
	if g.speed > 10 {
		g.speed = 10
	}
}

// handleResize tracks window size changes.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.screenW = int32(rl.GetScreenWidth())
	g.screenH = int32(rl.GetScreenHeight())
	g.perfPanel.SetPosition(g.screenW-250, 10)
	g.inspector.SetPosition(g.screenW-290, 220)
}

// handleCameraInput orbits with the right mouse button, pans with WASD and
// zooms with the wheel.
func (g *Game) handleCameraInput() {
	dt := float64(rl.GetFrameTime())

	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		g.camera.Orbit(-float64(d.X)*0.005, float64(d.Y)*0.005)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + 0.1*float64(wheel))
	}

	pan := 20 * dt
	var right, fwd float64
	if rl.IsKeyDown(rl.KeyW) {
		fwd += pan
	}
	if rl.IsKeyDown(rl.KeyS) {
		fwd -= pan
	}
	if rl.IsKeyDown(rl.KeyD) {
		right += pan
	}
	if rl.IsKeyDown(rl.KeyA) {
		right -= pan
	}
	if right != 0 || fwd != 0 {
		g.camera.Pan(right, fwd)
	}

	if rl.IsKeyPressed(rl.KeyF) && g.selected != 0 {
		if e, ok := g.world.Entity(g.selected); ok {
			g.camera.Follow(g.world.Positions.Get(e).Vec())
		}
	}
}

// handlePlayerInput steers the player with the arrow keys in manual mode.
func (g *Game) handlePlayerInput() {
	if !g.manualPlayer {
		return
	}
	var v r3.Vec
	if rl.IsKeyDown(rl.KeyUp) {
		v.Z += 1
	}
	if rl.IsKeyDown(rl.KeyDown) {
		v.Z -= 1
	}
	if rl.IsKeyDown(rl.KeyRight) {
		v.X -= 1
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		v.X += 1
	}
	if v != (r3.Vec{}) {
		v = r3.Scale(playerSpeed, r3.Unit(v))
	}
	g.setPlayerVelocity(v)
}
