package game

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/perrito/agent"
	"github.com/pthm-cable/perrito/config"
	"github.com/pthm-cable/perrito/telemetry"
)

func loadDefaults(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func newHeadless(t *testing.T, cfg *config.Config, opts Options) *Game {
	t.Helper()
	opts.Headless = true
	g, err := NewGame(cfg, opts)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(func() { g.Close() })
	return g
}

func runFrames(t *testing.T, g *Game, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := g.UpdateHeadless(); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
}

func TestHeadlessRunAdvances(t *testing.T) {
	cfg := loadDefaults(t)
	g := newHeadless(t, cfg, Options{Seed: 1})

	runFrames(t, g, 300)

	if g.Frame() != 300 {
		t.Errorf("Frame() = %d, want 300", g.Frame())
	}
	want := 300 * cfg.Physics.FrameDT
	if math.Abs(g.SimTime()-want) > 1e-9 {
		t.Errorf("SimTime() = %v, want %v", g.SimTime(), want)
	}
	if len(g.Controllers()) != 1 {
		t.Fatalf("expected 1 controller, got %d", len(g.Controllers()))
	}
	if s := g.Controllers()[0].Agent.State; s == agent.Idle {
		t.Errorf("agent still idle after 300 frames")
	}
}

func TestDoneHonoursMaxFrames(t *testing.T) {
	g := newHeadless(t, loadDefaults(t), Options{MaxFrames: 10})
	for !g.Done() {
		if err := g.UpdateHeadless(); err != nil {
			t.Fatal(err)
		}
	}
	if g.Frame() != 10 {
		t.Errorf("stopped at frame %d, want 10", g.Frame())
	}
}

func TestFixedStepsPerFrame(t *testing.T) {
	g := newHeadless(t, loadDefaults(t), Options{})
	p := g.Controllers()[0].Perceiver()

	// A long frame runs at most max_substeps sweeps and drops the backlog.
	if err := g.Step(0.5); err != nil {
		t.Fatal(err)
	}
	if p.Sweeps() != 5 {
		t.Fatalf("after long frame: %d sweeps, want 5", p.Sweeps())
	}

	// Short frames accumulate until a whole fixed step is available.
	if err := g.Step(0.015); err != nil {
		t.Fatal(err)
	}
	if p.Sweeps() != 5 {
		t.Errorf("after 15ms: %d sweeps, want 5", p.Sweeps())
	}
	if err := g.Step(0.015); err != nil {
		t.Fatal(err)
	}
	if p.Sweeps() != 6 {
		t.Errorf("after 30ms: %d sweeps, want 6", p.Sweeps())
	}
	if g.Frame() != 3 {
		t.Errorf("Frame() = %d, want 3 (one frame step per Step)", g.Frame())
	}
}

func TestStatsCallback(t *testing.T) {
	cfg := loadDefaults(t)
	cfg.Telemetry.StatsWindow = 1

	var windows []telemetry.WindowStats
	g := newHeadless(t, cfg, Options{
		StatsCallback: func(s telemetry.WindowStats) { windows = append(windows, s) },
	})
	runFrames(t, g, 240)

	if len(windows) < 3 {
		t.Fatalf("got %d windows, want at least 3", len(windows))
	}
	first := windows[0]
	if first.Sweeps == 0 {
		t.Error("first window recorded no sweeps")
	}
	if first.ClipPlays == 0 {
		t.Error("first window recorded no clip plays")
	}
	total := first.IdleSec + first.WanderSec + first.PursuitSec + first.AttackSec + first.EscapeSec
	if math.Abs(total-cfg.Telemetry.StatsWindow) > 0.1 {
		t.Errorf("state occupancy sums to %v s, want ~%v", total, cfg.Telemetry.StatsWindow)
	}
}

func TestSameSeedIsReproducible(t *testing.T) {
	run := func() (*Game, []agent.State) {
		g := newHeadless(t, loadDefaults(t), Options{Seed: 42})
		var states []agent.State
		for i := 0; i < 400; i++ {
			if err := g.UpdateHeadless(); err != nil {
				t.Fatal(err)
			}
			states = append(states, g.Controllers()[0].Agent.State)
		}
		return g, states
	}

	ga, a := run()
	gb, b := run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverge at frame %d: %v vs %v", i, a[i], b[i])
		}
	}
	pa, pb := ga.Controllers()[0].Agent.Position, gb.Controllers()[0].Agent.Position
	if pa != pb {
		t.Errorf("final positions differ: %v vs %v", pa, pb)
	}
}

func TestUnknownTriggerAgent(t *testing.T) {
	cfg := loadDefaults(t)
	cfg.Triggers[0].Agent = "nobody"

	_, err := NewGame(cfg, Options{Headless: true})
	if err == nil || !strings.Contains(err.Error(), "nobody") {
		t.Errorf("err = %v, want unknown agent error", err)
	}
}

func TestTargetKindRejected(t *testing.T) {
	cfg := loadDefaults(t)
	cfg.Targets[0].Kind = "agent"

	if _, err := NewGame(cfg, Options{Headless: true}); err == nil {
		t.Error("expected error for agent-kind target")
	}
}

func TestOutputFiles(t *testing.T) {
	cfg := loadDefaults(t)
	cfg.Telemetry.StatsWindow = 1
	dir := t.TempDir()

	g, err := NewGame(cfg, Options{Headless: true, OutputDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	runFrames(t, g, 130)
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"config.yaml", "telemetry.csv", "trace.csv", "events.csv", "perf.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "events.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "clip") {
		t.Errorf("events.csv has no clip events:\n%s", data)
	}
}
