package game

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/perrito/agent"
	"github.com/pthm-cable/perrito/components"
	"github.com/pthm-cable/perrito/config"
	"github.com/pthm-cable/perrito/steering"
)

// AgentParams converts the agent section of the config into controller
// parameters for an agent of the given mass.
func AgentParams(a config.AgentConfig, mass float64) agent.Params {
	return agent.Params{
		Mass:     mass,
		MaxSpeed: a.MaxSpeed,
		Eyes: agent.Sensor{
			Offset: components.FromVec(a.Eyes.Offset),
			Radius: a.Eyes.Radius,
		},
		Ears: agent.Sensor{
			Offset: components.FromVec(a.Ears.Offset),
			Radius: a.Ears.Radius,
		},
		SlowingRadius: a.SlowingRadius,
		StopThreshold: a.StopThreshold,
		Wander: steering.WanderParams{
			Distance:  a.Wander.Distance,
			Radius:    a.Wander.Radius,
			Jitter:    a.Wander.Jitter,
			Tolerance: a.Wander.Tolerance,
		},
	}
}

// spawnScenario creates targets, agents and triggers from the config.
func (g *Game) spawnScenario() error {
	cfg := g.cfg

	for _, t := range cfg.Targets {
		kind, ok := components.ParseKind(t.Kind)
		if !ok || kind == components.KindAgent || kind == components.KindTrigger {
			return fmt.Errorf("target %q: unsupported kind %q", t.Name, t.Kind)
		}
		id := g.world.SpawnTarget(t.Name, kind, components.FromVec(t.Position), t.Mass, t.Radius, components.FromVec(t.Patrol))
		g.targetIDs = append(g.targetIDs, id)
		if kind == components.KindPlayer && g.playerID == 0 {
			g.playerID = id
		}
	}

	agentIDs := make(map[string]uint32, len(cfg.Agents))
	for _, a := range cfg.Agents {
		// One RNG stream per agent, seeded from the game RNG.
		rng := rand.New(rand.NewSource(g.rng.Int63()))
		ctrl := g.world.SpawnAgent(a.Name, components.FromVec(a.Position), a.Radius,
			AgentParams(cfg.Agent, a.Mass), g.query, g.anim, rng)
		g.controllers = append(g.controllers, ctrl)
		agentIDs[a.Name] = ctrl.Agent.ID
	}

	for _, tr := range cfg.Triggers {
		agentID, ok := agentIDs[tr.Agent]
		if !ok {
			return fmt.Errorf("trigger %q: unknown agent %q", tr.Name, tr.Agent)
		}
		anchor := g.world.SpawnAnchor(tr.Name+"-anchor", components.FromVec(tr.Anchor), tr.AnchorKg)
		id := g.world.SpawnTrigger(tr.Name, components.FromVec(tr.Center), tr.Radius, agentID, anchor)
		g.triggerIDs = append(g.triggerIDs, id)
	}

	return nil
}

// setPlayerVelocity drives the first player entity, if any.
func (g *Game) setPlayerVelocity(v r3.Vec) {
	e, ok := g.world.Entity(g.playerID)
	if !ok || !g.world.Patrols.Has(e) {
		return
	}
	p := g.world.Patrols.Get(e)
	p.X, p.Y, p.Z = v.X, v.Y, v.Z
}
