// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Agent     AgentConfig     `yaml:"agent"`
	Agents    []SpawnConfig   `yaml:"agents"`
	Targets   []SpawnConfig   `yaml:"targets"`
	Triggers  []TriggerConfig `yaml:"triggers"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Tuning    TuningConfig    `yaml:"tuning"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the extent of the ground plane, centred on the origin.
type WorldConfig struct {
	Width  float64 `yaml:"width"`  // X extent
	Depth  float64 `yaml:"depth"`  // Z extent
	Height float64 `yaml:"height"` // Y extent (0 = flat world at y=0)
}

// PhysicsConfig holds simulation timing and spatial index parameters.
type PhysicsConfig struct {
	FixedDT      float64 `yaml:"fixed_dt"`       // physics + perception step (seconds)
	FrameDT      float64 `yaml:"frame_dt"`       // headless frame step (seconds)
	MaxSubsteps  int     `yaml:"max_substeps"`   // cap on fixed steps per frame
	GridCellSize float64 `yaml:"grid_cell_size"` // spatial grid cell size
}

// SensorConfig describes a perception sphere relative to the agent.
type SensorConfig struct {
	Radius float64    `yaml:"radius"`
	Offset [3]float64 `yaml:"offset"` // local x, y, z (+z forward)
}

// WanderConfig holds wander waypoint sampling parameters.
type WanderConfig struct {
	Distance  float64 `yaml:"distance"`
	Radius    float64 `yaml:"radius"`
	Jitter    float64 `yaml:"jitter"` // radians
	Tolerance float64 `yaml:"tolerance"`
}

// AgentConfig holds the default tunables for autonomous agents.
type AgentConfig struct {
	Mass          float64      `yaml:"mass"`
	MaxSpeed      float64      `yaml:"max_speed"`
	BodyRadius    float64      `yaml:"body_radius"`
	Eyes          SensorConfig `yaml:"eyes"`
	Ears          SensorConfig `yaml:"ears"`
	SlowingRadius float64      `yaml:"slowing_radius"`
	StopThreshold float64      `yaml:"stop_threshold"`
	Wander        WanderConfig `yaml:"wander"`
}

// SpawnConfig places an entity in the world.
// For agents, a zero Mass means "use agent.mass".
type SpawnConfig struct {
	Name     string     `yaml:"name"`
	Kind     string     `yaml:"kind"` // "agent", "critter" or "player"
	Mass     float64    `yaml:"mass"`
	Radius   float64    `yaml:"radius"`
	Position [3]float64 `yaml:"position"`
	Patrol   [3]float64 `yaml:"patrol"` // constant velocity, bounced at world edges
}

// TriggerConfig describes an encounter volume that overrides an agent's target.
type TriggerConfig struct {
	Name     string     `yaml:"name"`
	Agent    string     `yaml:"agent"` // name of the agent spawn it controls
	Center   [3]float64 `yaml:"center"`
	Radius   float64    `yaml:"radius"`
	Anchor   [3]float64 `yaml:"anchor"`    // where the exit override points
	AnchorKg float64    `yaml:"anchor_kg"` // mass reported by the anchor
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds of simulated time per window
	TraceEvery  int     `yaml:"trace_every"`  // frames between trace rows (0 = off)
	PerfWindow  int     `yaml:"perf_window"`  // frames averaged by the perf collector
}

// TuningConfig holds bounds for the offline steering tuner.
type TuningConfig struct {
	SlowingRadius [2]float64 `yaml:"slowing_radius"`
	StopThreshold [2]float64 `yaml:"stop_threshold"`
	MaxSpeed      [2]float64 `yaml:"max_speed"`
	EpisodeSec    float64    `yaml:"episode_sec"`
}

// DerivedConfig holds values computed from the loaded configuration.
type DerivedConfig struct {
	HalfWidth  float64
	HalfDepth  float64
	FixedHz    float64
	AgentIndex map[string]int // spawn name -> index in Agents
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values that would make the simulation meaningless.
// Steering radii are deliberately not checked against each other.
func (c *Config) validate() error {
	if c.Physics.FixedDT <= 0 {
		return fmt.Errorf("physics.fixed_dt must be positive, got %v", c.Physics.FixedDT)
	}
	if c.Physics.FrameDT <= 0 {
		return fmt.Errorf("physics.frame_dt must be positive, got %v", c.Physics.FrameDT)
	}
	if c.Physics.GridCellSize <= 0 {
		return fmt.Errorf("physics.grid_cell_size must be positive, got %v", c.Physics.GridCellSize)
	}
	if c.Agent.Mass <= 0 {
		return fmt.Errorf("agent.mass must be positive, got %v", c.Agent.Mass)
	}
	for _, t := range c.Targets {
		if t.Mass <= 0 {
			return fmt.Errorf("target %q: mass must be positive, got %v", t.Name, t.Mass)
		}
	}
	for _, t := range c.Triggers {
		if t.AnchorKg <= 0 {
			return fmt.Errorf("trigger %q: anchor_kg must be positive, got %v", t.Name, t.AnchorKg)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.HalfWidth = c.World.Width / 2
	c.Derived.HalfDepth = c.World.Depth / 2
	c.Derived.FixedHz = 1 / c.Physics.FixedDT

	if c.Physics.MaxSubsteps <= 0 {
		c.Physics.MaxSubsteps = 5
	}
	if c.Agent.Wander.Tolerance <= 0 {
		c.Agent.Wander.Tolerance = 0.5
	}

	// At least one agent, using the defaults
	if len(c.Agents) == 0 {
		c.Agents = []SpawnConfig{{Name: "agent", Kind: "agent"}}
	}
	c.Derived.AgentIndex = make(map[string]int, len(c.Agents))
	for i := range c.Agents {
		a := &c.Agents[i]
		if a.Kind == "" {
			a.Kind = "agent"
		}
		if a.Mass == 0 {
			a.Mass = c.Agent.Mass
		}
		if a.Radius == 0 {
			a.Radius = c.Agent.BodyRadius
		}
		c.Derived.AgentIndex[a.Name] = i
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
