package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	RunID            string  `csv:"run_id"`
	WindowStartFrame int32   `csv:"-"`
	WindowEndFrame   int32   `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`

	// Events during window
	Transitions    int `csv:"transitions"`
	ClipPlays      int `csv:"clip_plays"`
	OverrideEnters int `csv:"override_enters"`
	OverrideExits  int `csv:"override_exits"`
	Sweeps         int `csv:"sweeps"`

	// State occupancy, agent-seconds
	IdleSec    float64 `csv:"idle_sec"`
	WanderSec  float64 `csv:"wander_sec"`
	PursuitSec float64 `csv:"pursuit_sec"`
	AttackSec  float64 `csv:"attack_sec"`
	EscapeSec  float64 `csv:"escape_sec"`

	// Speed distribution over agent-frames
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Distance to the perceived target, frames with a target only
	TargetDistMean float64 `csv:"target_dist_mean"`
	TargetDistP10  float64 `csv:"target_dist_p10"`
	TargetDistP50  float64 `csv:"target_dist_p50"`
}

// Summary is the mean, spread and a few quantiles of a sample.
type Summary struct {
	N             int
	Mean, Std     float64
	P10, P50, P90 float64
}

// Summarize computes a Summary. Empty input yields all zeros; a single
// value has zero spread.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Summary{N: n}
	if n == 1 {
		s.Mean = sorted[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	}
	s.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartFrame)),
		slog.Int("window_end", int(s.WindowEndFrame)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("transitions", s.Transitions),
		slog.Int("clip_plays", s.ClipPlays),
		slog.Int("override_enters", s.OverrideEnters),
		slog.Int("override_exits", s.OverrideExits),
		slog.Int("sweeps", s.Sweeps),
		slog.Float64("idle_sec", s.IdleSec),
		slog.Float64("wander_sec", s.WanderSec),
		slog.Float64("pursuit_sec", s.PursuitSec),
		slog.Float64("attack_sec", s.AttackSec),
		slog.Float64("escape_sec", s.EscapeSec),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("target_dist_mean", s.TargetDistMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
