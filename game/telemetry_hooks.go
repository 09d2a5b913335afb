package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/perrito/perception"
	"github.com/pthm-cable/perrito/telemetry"
)

// recordFrame samples every agent into the collector and, every
// TraceEvery frames, into the trace buffer.
func (g *Game) recordFrame(dt float64) {
	g.collector.RecordSweeps(g.fixedSteps * len(g.controllers))

	traceEvery := g.cfg.Telemetry.TraceEvery
	doTrace := g.outputManager != nil && traceEvery > 0 && g.frame%int32(traceEvery) == 0

	for _, c := range g.controllers {
		a := c.Agent
		var targetID uint32
		var dist float64
		cur, _ := c.Perceiver().Current()
		target, ok, _ := perception.Resolve(cur)
		if ok {
			targetID = target.ID
			dist = a.DistanceTo(target.Position)
		}
		g.collector.Sample(a.State, r3.Norm(a.Velocity), dist, ok)

		if doTrace {
			g.trace = append(g.trace, telemetry.NewTraceRow(g.frame, g.simTime+dt, a, targetID))
		}
	}
}

// flushTelemetry writes a stats window when one is complete.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.frame) {
		return
	}

	stats := g.collector.Flush(g.frame)
	perfStats := g.perfCollector.Stats()

	if g.opts.StatsCallback != nil {
		g.opts.StatsCallback(stats)
	}

	if g.opts.LogStats {
		stats.LogStats()
		slog.Info("perf", "perf", perfStats)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Warn("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
			slog.Warn("failed to write perf", "error", err)
		}
	}
	g.writeBuffered()
}

// writeBuffered drains buffered events and trace rows to disk.
func (g *Game) writeBuffered() {
	if err := g.outputManager.WriteEvents(g.events); err != nil {
		slog.Warn("failed to write events", "error", err)
	}
	if err := g.outputManager.WriteTrace(g.trace); err != nil {
		slog.Warn("failed to write trace", "error", err)
	}
	g.events = g.events[:0]
	g.trace = g.trace[:0]
}
