package game

import "github.com/pthm-cable/perrito/telemetry"

// Options holds run-time settings that are not part of the YAML config.
type Options struct {
	Headless  bool
	Seed      int64
	MaxFrames int32  // 0 = run until the window closes
	OutputDir string // "" = no CSV output
	LogStats  bool   // log each telemetry window

	// StatsCallback, if set, receives every flushed telemetry window.
	StatsCallback func(telemetry.WindowStats)
}
