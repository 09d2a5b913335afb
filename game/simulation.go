package game

import (
	"fmt"

	"github.com/pthm-cable/perrito/telemetry"
)

// Step advances the simulation by dt seconds of wall time: zero or more
// fixed steps followed by exactly one frame step.
// An error is fatal; the world is left as it was when the error occurred.
func (g *Game) Step(dt float64) error {
	g.perfCollector.StartFrame()

	fixed := g.cfg.Physics.FixedDT
	g.accumulator += dt
	g.fixedSteps = 0
	for g.accumulator >= fixed && g.fixedSteps < g.cfg.Physics.MaxSubsteps {
		g.fixedStep(fixed)
		g.accumulator -= fixed
		g.fixedSteps++
	}
	// Drop the backlog rather than spiral when a frame runs long.
	if g.accumulator >= fixed {
		g.accumulator = 0
	}

	if err := g.frameStep(dt); err != nil {
		g.perfCollector.EndFrame()
		return err
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.recordFrame(dt)
	g.frame++
	g.simTime += dt
	g.flushTelemetry()
	g.perfCollector.EndFrame()
	return nil
}

// UpdateHeadless advances one frame at the configured frame rate.
func (g *Game) UpdateHeadless() error {
	return g.Step(g.cfg.Physics.FrameDT)
}

// fixedStep moves bodies, rebuilds the grid, runs every perception sweep
// and then applies trigger overrides, in that order.
func (g *Game) fixedStep(dt float64) {
	g.perfCollector.StartPhase(telemetry.PhasePhysics)
	g.physics.Update(dt)

	g.perfCollector.StartPhase(telemetry.PhaseSpatialGrid)
	g.world.RebuildGrid()

	g.perfCollector.StartPhase(telemetry.PhasePerception)
	g.agents.FixedUpdate(dt)

	g.perfCollector.StartPhase(telemetry.PhaseTriggers)
	for _, ov := range g.triggers.Update() {
		g.recordOverride(ov)
	}
	g.perfCollector.EndPhase()
}

// frameStep runs decision and motion for every agent.
func (g *Game) frameStep(dt float64) error {
	g.perfCollector.StartPhase(telemetry.PhaseDecision)
	ticks, err := g.agents.Update(dt)
	g.perfCollector.EndPhase()
	if err != nil {
		return fmt.Errorf("frame %d: %w", g.frame, err)
	}
	for _, t := range ticks {
		if t.Changed {
			g.recordTransition(t)
		}
	}
	return nil
}
