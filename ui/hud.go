package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/perrito/systems"
	"github.com/pthm-cable/perrito/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title   string
	Frame   int32
	SimTime float64
	Speed   int
	FPS     int32
	Paused  bool
	Agents  int
	Targets int
	States  [5]int // agents per state, indexed by agent.State
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Frame: %d | t=%.1fs | Speed: %dx | FPS: %d", data.Frame, data.SimTime, data.Speed, data.FPS),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Agents: %d | Targets: %d | idle %d  wander %d  pursuit %d  attack %d  escape %d",
			data.Agents, data.Targets,
			data.States[0], data.States[1], data.States[2], data.States[3], data.States[4]),
		10, 55, 16, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase step timing.
type PerfPanel struct {
	renderer *Renderer
	registry *systems.SystemRegistry
	x, y     int32
}

// NewPerfPanel creates a perf panel labelled from registry.
func NewPerfPanel(x, y int32, registry *systems.SystemRegistry) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), registry: registry, x: x, y: y}
}

// SetPosition moves the panel.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x, p.y = x, y
}

// phaseSystems maps telemetry phases to registry IDs.
var phaseSystems = map[telemetry.Phase]string{
	telemetry.PhasePhysics:     "physics",
	telemetry.PhaseSpatialGrid: "spatialGrid",
	telemetry.PhasePerception:  "perception",
	telemetry.PhaseTriggers:    "triggers",
	telemetry.PhaseDecision:    "decision",
	telemetry.PhaseTelemetry:   "telemetry",
}

// Draw renders the panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	const width = 240
	rows := int32(len(stats.PhaseAvg))
	r.DrawPanel(p.x, p.y, width, r.Theme.Padding*2+r.Theme.LineHeight*(rows+2))

	x := p.x + r.Theme.Padding
	y := r.DrawSectionHeader(x, p.y+r.Theme.Padding, "Step timing")
	y = r.DrawLabelValue(x, y, "Frame", fmt.Sprintf("%dus", stats.AvgStep.Microseconds()))
	for ph, avg := range stats.PhaseAvg {
		name := p.registry.GetName(phaseSystems[telemetry.Phase(ph)])
		y = r.DrawLabelValue(x, y, name, fmt.Sprintf("%dus  %4.1f%%", avg.Microseconds(), stats.PhasePct[ph]))
	}
}
