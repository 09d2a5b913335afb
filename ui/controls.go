package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel renders overlay checkboxes and playback buttons.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// ControlsResult reports button presses from the last Draw.
type ControlsResult struct {
	TogglePause bool
	ResetCamera bool
	SpeedDelta  int
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and applies checkbox changes to overlays.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry, paused bool, speed int) ControlsResult {
	var res ControlsResult
	if !c.visible {
		return res
	}

	r := c.renderer
	pad := r.Theme.Padding
	lh := r.Theme.LineHeight
	items := int32(len(overlays.All()))
	height := pad*3 + lh*(items+1) + 30 + lh

	r.DrawPanel(c.x, c.y, c.width, height)
	y := r.DrawSectionHeader(c.x+pad, c.y+pad, "Overlays")

	for _, desc := range overlays.All() {
		bounds := rl.Rectangle{X: float32(c.x + pad), Y: float32(y), Width: 12, Height: 12}
		label := fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
		checked := gui.CheckBox(bounds, label, overlays.IsEnabled(desc.ID))
		overlays.SetEnabled(desc.ID, checked)
		y += lh
	}

	y += pad
	bw := float32(c.width-pad*4) / 3
	bx := float32(c.x + pad)
	pauseLabel := "Pause"
	if paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.Rectangle{X: bx, Y: float32(y), Width: bw, Height: 24}, pauseLabel) {
		res.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: bx + bw + float32(pad), Y: float32(y), Width: bw / 2, Height: 24}, "-") {
		res.SpeedDelta--
	}
	if gui.Button(rl.Rectangle{X: bx + bw*1.5 + float32(pad), Y: float32(y), Width: bw / 2, Height: 24}, "+") {
		res.SpeedDelta++
	}
	if gui.Button(rl.Rectangle{X: bx + 2*bw + float32(2*pad), Y: float32(y), Width: bw, Height: 24}, "Camera") {
		res.ResetCamera = true
	}
	y += 30
	r.DrawLabelValue(c.x+pad, y, "Speed", fmt.Sprintf("%dx", speed))

	return res
}
