package game

import (
	"log/slog"

	"github.com/pthm-cable/perrito/systems"
	"github.com/pthm-cable/perrito/telemetry"
)

// recordTransition logs and records a state change.
func (g *Game) recordTransition(t systems.AgentTick) {
	slog.Info("transition",
		"frame", g.frame,
		"agent", t.Name,
		"from", t.From.String(),
		"to", t.To.String(),
		"target", g.world.NameOf(t.TargetID),
	)
	ev := telemetry.NewTransitionEvent(g.frame, t.ID, t.From, t.To, t.TargetID)
	g.collector.Record(ev)
	g.events = append(g.events, ev)
}

// recordOverride logs and records a trigger override.
func (g *Game) recordOverride(ov systems.OverrideEvent) {
	slog.Info("override",
		"frame", g.frame,
		"trigger", ov.Trigger,
		"agent", g.world.NameOf(ov.Agent),
		"player", g.world.NameOf(ov.Player),
		"target", g.world.NameOf(ov.Target),
		"enter", ov.Enter,
	)
	ev := telemetry.NewOverrideEvent(g.frame, ov.Agent, ov.Target, ov.Enter)
	g.collector.Record(ev)
	g.events = append(g.events, ev)
}

// onClip receives every clip actually issued by an agent.
func (g *Game) onClip(id uint32, clip string) {
	slog.Debug("clip", "frame", g.frame, "agent", g.world.NameOf(id), "clip", clip)
	ev := telemetry.NewClipEvent(g.frame, id, clip)
	g.collector.Record(ev)
	g.events = append(g.events, ev)
}
