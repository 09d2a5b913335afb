package telemetry

import "github.com/pthm-cable/perrito/agent"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec    float64
	windowDurationFrames int32
	dt                   float64

	// Current window tracking
	windowStartFrame int32

	// Event counters for current window
	transitions    int
	clipPlays      int
	overrideEnters int
	overrideExits  int
	sweeps         int

	// Per-frame samples for current window
	occupancy  [agent.Escape + 1]float64 // seconds per state, summed over agents
	speeds     []float64
	targetDist []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per frame (used for frame-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	framesPerWindow := int32(windowDurationSec / dt)
	if framesPerWindow < 1 {
		framesPerWindow = 1
	}

	return &Collector{
		windowDurationSec:    windowDurationSec,
		windowDurationFrames: framesPerWindow,
		dt:                   dt,
	}
}

// Record counts an event.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventTransition:
		c.transitions++
	case EventClip:
		c.clipPlays++
	case EventOverride:
		if e.Enter {
			c.overrideEnters++
		} else {
			c.overrideExits++
		}
	}
}

// RecordSweeps adds perception sweeps run since the last call.
func (c *Collector) RecordSweeps(n int) {
	c.sweeps += n
}

// Sample records one agent's state for one frame.
// targetDist is ignored when hasTarget is false.
func (c *Collector) Sample(state agent.State, speed, targetDist float64, hasTarget bool) {
	if int(state) < len(c.occupancy) {
		c.occupancy[state] += c.dt
	}
	c.speeds = append(c.speeds, speed)
	if hasTarget {
		c.targetDist = append(c.targetDist, targetDist)
	}
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(currentFrame int32) bool {
	return currentFrame-c.windowStartFrame >= c.windowDurationFrames
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentFrame int32) WindowStats {
	speed := Summarize(c.speeds)
	dist := Summarize(c.targetDist)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   currentFrame,
		SimTimeSec:       float64(currentFrame) * c.dt,

		Transitions:    c.transitions,
		ClipPlays:      c.clipPlays,
		OverrideEnters: c.overrideEnters,
		OverrideExits:  c.overrideExits,
		Sweeps:         c.sweeps,

		IdleSec:    c.occupancy[agent.Idle],
		WanderSec:  c.occupancy[agent.Wander],
		PursuitSec: c.occupancy[agent.Pursuit],
		AttackSec:  c.occupancy[agent.Attack],
		EscapeSec:  c.occupancy[agent.Escape],

		SpeedMean: speed.Mean,
		SpeedStd:  speed.Std,
		SpeedP50:  speed.P50,
		SpeedP90:  speed.P90,

		TargetDistMean: dist.Mean,
		TargetDistP10:  dist.P10,
		TargetDistP50:  dist.P50,
	}

	// Reset for next window
	c.windowStartFrame = currentFrame
	c.transitions = 0
	c.clipPlays = 0
	c.overrideEnters = 0
	c.overrideExits = 0
	c.sweeps = 0
	c.occupancy = [agent.Escape + 1]float64{}
	c.speeds = c.speeds[:0]
	c.targetDist = c.targetDist[:0]

	return stats
}

// WindowDurationFrames returns the number of frames per window.
func (c *Collector) WindowDurationFrames() int32 {
	return c.windowDurationFrames
}
