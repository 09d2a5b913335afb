// Package game runs the simulation: it owns the ECS world, steps the
// fixed-rate and frame-rate systems, and wires telemetry and rendering.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/perrito/agent"
	"github.com/pthm-cable/perrito/camera"
	"github.com/pthm-cable/perrito/config"
	"github.com/pthm-cable/perrito/renderer"
	"github.com/pthm-cable/perrito/systems"
	"github.com/pthm-cable/perrito/telemetry"
	"github.com/pthm-cable/perrito/ui"
)

// Game holds the complete simulation state.
type Game struct {
	cfg  *config.Config
	opts Options
	rng  *rand.Rand

	world    *systems.World
	query    *systems.Query
	anim     *systems.AnimatorSink
	physics  *systems.PhysicsSystem
	agents   *systems.AgentSystem
	triggers *systems.TriggerSystem
	registry *systems.SystemRegistry

	controllers []*agent.Controller
	targetIDs   []uint32
	triggerIDs  []uint32
	playerID    uint32

	// Timing
	frame       int32
	simTime     float64
	accumulator float64
	fixedSteps  int // fixed steps run during the current frame
	paused      bool
	speed       int

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	events        []telemetry.Event
	trace         []telemetry.TraceRow

	// Windowed mode only
	camera       *camera.Camera
	scene        renderer.Scene
	sceneR       *renderer.SceneRenderer
	overlays     *ui.OverlayRegistry
	hud          *ui.HUD
	controls     *ui.ControlsPanel
	inspector    *ui.Inspector
	perfPanel    *ui.PerfPanel
	selected     uint32
	manualPlayer bool
	screenW      int32
	screenH      int32
}

// NewGame builds the world described by cfg.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	g := &Game{
		cfg:      cfg,
		opts:     opts,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		registry: systems.NewSystemRegistry(),
		speed:    1,
	}

	g.world = systems.NewWorld(cfg.World.Width, cfg.World.Depth, cfg.Physics.GridCellSize)
	g.query = systems.NewQuery(g.world)
	g.anim = systems.NewAnimatorSink(g.world)
	g.anim.OnPlay = g.onClip
	g.physics = systems.NewPhysicsSystem(g.world, systems.Bounds{
		HalfWidth: cfg.Derived.HalfWidth,
		HalfDepth: cfg.Derived.HalfDepth,
	})
	g.agents = systems.NewAgentSystem(g.world)
	g.triggers = systems.NewTriggerSystem(g.world)

	if err := g.spawnScenario(); err != nil {
		return nil, err
	}

	g.collector = telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Physics.FrameDT)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	if !opts.Headless {
		g.initWindowed()
	}

	slog.Info("world ready",
		"agents", len(g.controllers),
		"entities", g.world.Len(),
		"seed", opts.Seed,
		"run_id", om.RunID(),
	)
	return g, nil
}

// Frame returns the number of completed frames.
func (g *Game) Frame() int32 {
	return g.frame
}

// SimTime returns the simulated seconds elapsed.
func (g *Game) SimTime() float64 {
	return g.simTime
}

// Done reports whether the frame limit has been reached.
func (g *Game) Done() bool {
	return g.opts.MaxFrames > 0 && g.frame >= g.opts.MaxFrames
}

// Controllers returns the agent controllers in spawn order.
func (g *Game) Controllers() []*agent.Controller {
	return g.controllers
}

// controller returns the controller of the agent with the given ID, or nil.
func (g *Game) controller(id uint32) *agent.Controller {
	for _, c := range g.controllers {
		if c.Agent.ID == id {
			return c
		}
	}
	return nil
}

// World exposes the ECS world bindings.
func (g *Game) World() *systems.World {
	return g.world
}

// Close flushes telemetry output.
func (g *Game) Close() error {
	g.writeBuffered()
	return g.outputManager.Close()
}
