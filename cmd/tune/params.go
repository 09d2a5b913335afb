package main

import (
	"github.com/pthm-cable/perrito/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Starting value
}

// ParamVector holds the set of tuned steering parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector builds the parameter set from the tuning bounds in cfg,
// starting from the agent defaults clamped into range.
func NewParamVector(cfg *config.Config) *ParamVector {
	pv := &ParamVector{
		Specs: []ParamSpec{
			{Name: "slowing_radius", Path: "agent.slowing_radius",
				Min: cfg.Tuning.SlowingRadius[0], Max: cfg.Tuning.SlowingRadius[1], Default: cfg.Agent.SlowingRadius},
			{Name: "stop_threshold", Path: "agent.stop_threshold",
				Min: cfg.Tuning.StopThreshold[0], Max: cfg.Tuning.StopThreshold[1], Default: cfg.Agent.StopThreshold},
			{Name: "max_speed", Path: "agent.max_speed",
				Min: cfg.Tuning.MaxSpeed[0], Max: cfg.Tuning.MaxSpeed[1], Default: cfg.Agent.MaxSpeed},
		},
	}
	for i := range pv.Specs {
		s := &pv.Specs[i]
		s.Default = clamp(s.Default, s.Min, s.Max)
	}
	return pv
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the starting parameter values.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw values to the [0,1] search space.
// A degenerate range maps to 0.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		if span := spec.Max - spec.Min; span > 0 {
			out[i] = (raw[i] - spec.Min) / span
		}
	}
	return out
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp limits every value to its bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = clamp(v[i], spec.Min, spec.Max)
	}
	return out
}

// ApplyToConfig writes clamped values into cfg. Order matches Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Agent.SlowingRadius = c[0]
	cfg.Agent.StopThreshold = c[1]
	cfg.Agent.MaxSpeed = c[2]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
