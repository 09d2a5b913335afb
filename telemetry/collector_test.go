package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/perrito/agent"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1, 0.25)
	if c.WindowDurationFrames() != 4 {
		t.Fatalf("frames per window = %d, want 4", c.WindowDurationFrames())
	}

	c.Record(NewTransitionEvent(1, 1, agent.Idle, agent.Wander, 0))
	c.Record(NewClipEvent(1, 1, agent.ClipWander))
	c.Record(NewOverrideEvent(2, 1, 9, true))
	c.Record(NewOverrideEvent(3, 1, 8, false))
	c.RecordSweeps(12)

	c.Sample(agent.Wander, 2, 0, false)
	c.Sample(agent.Wander, 2, 0, false)
	c.Sample(agent.Pursuit, 4, 6, true)
	c.Sample(agent.Escape, 4, 3, true)

	if c.ShouldFlush(3) {
		t.Error("flushed before window end")
	}
	if !c.ShouldFlush(4) {
		t.Fatal("window not complete at frame 4")
	}

	s := c.Flush(4)
	if s.Transitions != 1 || s.ClipPlays != 1 || s.Sweeps != 12 {
		t.Errorf("counts = %+v", s)
	}
	if s.OverrideEnters != 1 || s.OverrideExits != 1 {
		t.Errorf("overrides = %d/%d, want 1/1", s.OverrideEnters, s.OverrideExits)
	}
	if s.WanderSec != 0.5 || s.PursuitSec != 0.25 || s.EscapeSec != 0.25 || s.IdleSec != 0 {
		t.Errorf("occupancy = %v/%v/%v/%v", s.IdleSec, s.WanderSec, s.PursuitSec, s.EscapeSec)
	}
	if s.SpeedMean != 3 {
		t.Errorf("speed mean = %v, want 3", s.SpeedMean)
	}
	if math.Abs(s.TargetDistMean-4.5) > 1e-9 {
		t.Errorf("target dist mean = %v, want 4.5", s.TargetDistMean)
	}
	if s.SimTimeSec != 1 {
		t.Errorf("sim time = %v, want 1", s.SimTimeSec)
	}

	next := c.Flush(8)
	if next.Transitions != 0 || next.WanderSec != 0 || next.SpeedMean != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStartFrame != 4 {
		t.Errorf("next window starts at %d, want 4", next.WindowStartFrame)
	}
}

func TestEventCSV(t *testing.T) {
	rec := NewTransitionEvent(5, 2, agent.Wander, agent.Pursuit, 7).ToCSV()
	if rec.Type != "transition" || rec.From != "wander" || rec.To != "pursuit" || rec.TargetID != 7 {
		t.Errorf("transition csv = %+v", rec)
	}

	rec = NewClipEvent(5, 2, agent.ClipRun).ToCSV()
	if rec.From != "" || rec.Clip != agent.ClipRun {
		t.Errorf("clip csv = %+v", rec)
	}
}
