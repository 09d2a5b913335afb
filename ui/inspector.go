package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// InspectorData is a snapshot of the selected agent.
type InspectorData struct {
	Name      string
	ID        uint32
	State     string
	StateTime float64
	Clip      string
	X, Z      float64
	Speed     float64
	Sweeps    int

	HasTarget  bool
	TargetName string
	TargetMass float64
	TargetDist float64

	MaxSpeed      float64
	SlowingRadius float64
	StopThreshold float64
}

// Tuning holds slider values after a Draw. Changed is false when the user
// did not move any slider.
type Tuning struct {
	MaxSpeed      float64
	SlowingRadius float64
	StopThreshold float64
	Changed       bool
}

// Inspector renders details of the selected agent with live tuning sliders.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition moves the panel.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x, ins.y = x, y
}

// Draw renders the panel and returns the slider values.
func (ins *Inspector) Draw(data InspectorData) Tuning {
	r := ins.renderer
	pad := r.Theme.Padding
	lh := r.Theme.LineHeight
	height := pad*2 + lh*14 + 3*28

	r.DrawPanel(ins.x, ins.y, ins.width, height)
	x := ins.x + pad
	y := r.DrawSectionHeader(x, ins.y+pad, fmt.Sprintf("%s #%d", data.Name, data.ID))

	y = r.DrawLabelValue(x, y, "State", fmt.Sprintf("%s (%.1fs)", data.State, data.StateTime))
	y = r.DrawLabelValue(x, y, "Clip", data.Clip)
	y = r.DrawLabelValue(x, y, "Position", fmt.Sprintf("%.1f, %.1f", data.X, data.Z))
	y = r.DrawBar(x, y, "Speed", data.Speed, 2*data.MaxSpeed, ins.width-2*pad)
	y = r.DrawLabelValue(x, y, "Sweeps", fmt.Sprintf("%d", data.Sweeps))

	y = r.DrawSectionHeader(x, y+4, "Target")
	if data.HasTarget {
		y = r.DrawLabelValue(x, y, "Name", data.TargetName)
		y = r.DrawLabelValue(x, y, "Mass", fmt.Sprintf("%.1f", data.TargetMass))
		y = r.DrawLabelValue(x, y, "Distance", fmt.Sprintf("%.2f", data.TargetDist))
	} else {
		y = r.DrawLabelValue(x, y, "Name", "none")
	}

	y = r.DrawSectionHeader(x, y+4, "Steering")
	out := Tuning{
		MaxSpeed:      data.MaxSpeed,
		SlowingRadius: data.SlowingRadius,
		StopThreshold: data.StopThreshold,
	}
	out.MaxSpeed, y = ins.slider(x, y, "Max speed", data.MaxSpeed, 0.5, 10)
	out.SlowingRadius, y = ins.slider(x, y, "Slowing", data.SlowingRadius, 0, 20)
	out.StopThreshold, _ = ins.slider(x, y, "Stop", data.StopThreshold, 0, 6)
	out.Changed = out != Tuning{
		MaxSpeed:      data.MaxSpeed,
		SlowingRadius: data.SlowingRadius,
		StopThreshold: data.StopThreshold,
	}
	return out
}

func (ins *Inspector) slider(x, y int32, label string, value, min, max float64) (float64, int32) {
	r := ins.renderer
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	bounds := rl.Rectangle{
		X:      float32(x + r.Theme.LabelWidth),
		Y:      float32(y),
		Width:  float32(ins.width - r.Theme.LabelWidth - 2*r.Theme.Padding - 40),
		Height: 16,
	}
	next := gui.SliderBar(bounds, "", fmt.Sprintf("%.2f", value), float32(value), float32(min), float32(max))
	if next == float32(value) {
		return value, y + 28
	}
	return float64(next), y + 28
}
