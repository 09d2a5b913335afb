package systems

import (
	"errors"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/perrito/agent"
	"github.com/pthm-cable/perrito/components"
	"github.com/pthm-cable/perrito/perception"
	"github.com/pthm-cable/perrito/steering"
)

func testParams() agent.Params {
	return agent.Params{
		Mass:          10,
		MaxSpeed:      3,
		Eyes:          agent.Sensor{Radius: 12},
		Ears:          agent.Sensor{Radius: 5},
		SlowingRadius: 8,
		StopThreshold: 2,
		Wander:        steering.WanderParams{Distance: 4, Radius: 2, Jitter: 0.5, Tolerance: 0.5},
	}
}

type harness struct {
	w        *World
	query    *Query
	anim     *AnimatorSink
	physics  *PhysicsSystem
	agents   *AgentSystem
	triggers *TriggerSystem
}

func newHarness() *harness {
	w := NewWorld(40, 40, 8)
	return &harness{
		w:        w,
		query:    NewQuery(w),
		anim:     NewAnimatorSink(w),
		physics:  NewPhysicsSystem(w, Bounds{HalfWidth: 20, HalfDepth: 20}),
		agents:   NewAgentSystem(w),
		triggers: NewTriggerSystem(w),
	}
}

func (h *harness) spawnAgent(pos r3.Vec) *agent.Controller {
	return h.w.SpawnAgent("dog", pos, 0.5, testParams(), h.query, h.anim, rand.New(rand.NewSource(1)))
}

// step runs one fixed step followed by one frame step.
func (h *harness) step(t *testing.T, dt float64) []AgentTick {
	t.Helper()
	h.physics.Update(dt)
	h.w.RebuildGrid()
	h.agents.FixedUpdate(dt)
	h.triggers.Update()
	ticks, err := h.agents.Update(dt)
	if err != nil {
		t.Fatalf("agents.Update: %v", err)
	}
	return ticks
}

func TestSpatialGridQueryRadius(t *testing.T) {
	w := NewWorld(40, 40, 8)
	near, _ := w.Spawn("near", components.KindCritter, r3.Vec{X: 3})
	w.Spawn("far", components.KindCritter, r3.Vec{X: 15})
	high, _ := w.Spawn("high", components.KindCritter, r3.Vec{Y: 4})
	w.RebuildGrid()

	got := w.Grid.QueryRadiusInto(nil, r3.Vec{}, 5, w.Positions)
	if len(got) != 2 {
		t.Fatalf("got %d neighbors, want 2", len(got))
	}
	found := map[uint32]bool{}
	for _, n := range got {
		found[w.IDOf(n.E)] = true
	}
	if !found[w.IDOf(near)] || !found[w.IDOf(high)] {
		t.Errorf("missing expected neighbors: %v", found)
	}

	if got := w.Grid.QueryRadiusInto(nil, r3.Vec{}, 2, w.Positions); len(got) != 0 {
		t.Errorf("3-D distance not applied: %d neighbors inside r=2", len(got))
	}
}

func TestSpatialGridClampsOutOfBounds(t *testing.T) {
	w := NewWorld(40, 40, 8)
	w.Spawn("outside", components.KindCritter, r3.Vec{X: 100, Z: -100})
	w.RebuildGrid()

	if got := w.Grid.QueryRadiusInto(nil, r3.Vec{X: 100, Z: -100}, 1, w.Positions); len(got) != 1 {
		t.Errorf("out-of-bounds entity not found, got %d", len(got))
	}
}

func TestQueryHandles(t *testing.T) {
	w := NewWorld(40, 40, 8)
	q := NewQuery(w)
	mouse := w.SpawnTarget("mouse", components.KindCritter, r3.Vec{X: 1}, 5, 0.3, r3.Vec{})
	w.Spawn("rock", components.KindCritter, r3.Vec{X: -1})
	w.RebuildGrid()

	got := q.OverlapSphere(r3.Vec{}, 3)
	if len(got) != 2 {
		t.Fatalf("OverlapSphere returned %d entities, want 2", len(got))
	}
	targets := 0
	for _, e := range got {
		tg, ok := e.(perception.Targetable)
		if !ok {
			continue
		}
		targets++
		if tg.EntityID() != mouse || tg.Mass() != 5 {
			t.Errorf("target handle = id %d mass %v", tg.EntityID(), tg.Mass())
		}
	}
	if targets != 1 {
		t.Errorf("targetable handles = %d, want 1", targets)
	}
}

func TestTargetHandleFollowsEntity(t *testing.T) {
	w := NewWorld(40, 40, 8)
	id := w.SpawnTarget("mouse", components.KindCritter, r3.Vec{}, 5, 0.3, r3.Vec{})
	h, ok := w.TargetByID(id)
	if !ok {
		t.Fatal("TargetByID failed")
	}

	e, _ := w.Entity(id)
	w.Positions.Get(e).Set(r3.Vec{X: 7})
	if h.Position().X != 7 {
		t.Errorf("handle position = %+v, want live value", h.Position())
	}

	w.Despawn(id)
	if h.Alive() {
		t.Error("handle still alive after despawn")
	}
	if _, ok, err := perception.Resolve(h); ok || err != nil {
		t.Errorf("Resolve(despawned) = ok %v err %v, want no target", ok, err)
	}
}

func TestPhysicsIntegratesAndBounces(t *testing.T) {
	h := newHarness()
	id := h.w.SpawnTarget("mouse", components.KindCritter, r3.Vec{X: 19}, 5, 0.5, r3.Vec{X: 2})
	e, _ := h.w.Entity(id)

	h.physics.Update(1)

	pos := h.w.Positions.Get(e)
	if pos.X != 19.5 {
		t.Errorf("X = %v, want clamped to 19.5", pos.X)
	}
	if p := h.w.Patrols.Get(e); p.X != -2 {
		t.Errorf("patrol X = %v, want reflected -2", p.X)
	}

	h.physics.Update(1)
	if pos := h.w.Positions.Get(e); pos.X != 17.5 {
		t.Errorf("X after bounce = %v, want 17.5", pos.X)
	}
}

func TestAgentSystemPursuesSmallerTarget(t *testing.T) {
	h := newHarness()
	ctrl := h.spawnAgent(r3.Vec{})
	mouse := h.w.SpawnTarget("mouse", components.KindCritter, r3.Vec{Z: 6}, 5, 0.3, r3.Vec{})

	ticks := h.step(t, 0.02)

	if len(ticks) != 1 {
		t.Fatalf("ticks = %d, want 1", len(ticks))
	}
	if ticks[0].To != agent.Pursuit || ticks[0].TargetID != mouse {
		t.Errorf("tick = %+v, want pursuit of %d", ticks[0].Transition, mouse)
	}

	e, _ := h.w.Entity(ctrl.Agent.ID)
	if v := h.w.Velocities.Get(e).Vec(); v.Z <= 0 {
		t.Errorf("velocity %+v does not point at the target", v)
	}
	if a := h.w.Animations.Get(e); a.Clip != agent.ClipWalk || a.Plays != 2 {
		t.Errorf("animation = %+v, want walk after run", *a)
	}
}

func TestAgentSystemEscapesHeavierTarget(t *testing.T) {
	h := newHarness()
	h.spawnAgent(r3.Vec{})
	h.w.SpawnTarget("bear", components.KindCritter, r3.Vec{X: 3}, 15, 1, r3.Vec{})

	ticks := h.step(t, 0.02)
	if ticks[0].To != agent.Escape {
		t.Errorf("state = %v, want escape", ticks[0].To)
	}
}

func TestAgentSystemSeesTargetInCrowd(t *testing.T) {
	h := newHarness()
	h.spawnAgent(r3.Vec{})
	for i := 0; i < queryCapacity+2; i++ {
		h.w.SpawnAnchor("post", r3.Vec{X: 1, Z: 1}, 1)
	}
	mouse := h.w.SpawnTarget("mouse", components.KindCritter, r3.Vec{X: 1.5, Z: 1.5}, 5, 0.3, r3.Vec{})

	ticks := h.step(t, 0.02)
	if ticks[0].To != agent.Pursuit || ticks[0].TargetID != mouse {
		t.Errorf("tick = %+v, want pursuit of %d behind %d non-targets", ticks[0].Transition, mouse, queryCapacity+2)
	}

	got := h.w.Grid.QueryRadiusInto(nil, r3.Vec{}, 5, h.w.Positions)
	if want := queryCapacity + 4; len(got) != want {
		t.Errorf("grid returned %d neighbors, want all %d", len(got), want)
	}
}

func TestAgentSystemDespawnedTargetDropsToWander(t *testing.T) {
	h := newHarness()
	ctrl := h.spawnAgent(r3.Vec{})
	mouse := h.w.SpawnTarget("mouse", components.KindCritter, r3.Vec{Z: 6}, 5, 0.3, r3.Vec{})
	h.step(t, 0.02)

	h.w.Despawn(mouse)
	// Frame step only: the cache still holds the despawned handle.
	ticks, err := h.agents.Update(0.02)
	if err != nil {
		t.Fatal(err)
	}
	if ticks[0].To != agent.Wander || ctrl.Agent.State != agent.Wander {
		t.Errorf("state = %v, want wander", ticks[0].To)
	}
}

func TestAgentSystemMasslessTargetIsFatal(t *testing.T) {
	h := newHarness()
	h.spawnAgent(r3.Vec{})
	e, _ := h.w.Spawn("ghost", components.KindCritter, r3.Vec{X: 2})
	h.w.Targets.Add(e, &components.Targetable{})

	h.physics.Update(0.02)
	h.w.RebuildGrid()
	h.agents.FixedUpdate(0.02)
	_, err := h.agents.Update(0.02)
	if !errors.Is(err, perception.ErrMissingMass) {
		t.Errorf("err = %v, want ErrMissingMass", err)
	}
}

func TestTriggerOverridesOnEnterAndExit(t *testing.T) {
	h := newHarness()
	ctrl := h.spawnAgent(r3.Vec{X: -15, Z: -15})
	anchor := h.w.SpawnAnchor("yard-anchor", r3.Vec{X: 10}, 1)
	h.w.SpawnTrigger("yard", r3.Vec{X: 10}, 3, ctrl.Agent.ID, anchor)
	player := h.w.SpawnTarget("player", components.KindPlayer, r3.Vec{X: 10, Z: 2}, 70, 0.5, r3.Vec{})

	h.physics.Update(0.02)
	h.w.RebuildGrid()
	h.agents.FixedUpdate(0.02)
	events := h.triggers.Update()
	if len(events) != 1 || !events[0].Enter || events[0].Target != player {
		t.Fatalf("enter events = %+v", events)
	}
	if cur, _ := ctrl.Perceiver().Current(); cur == nil || cur.EntityID() != player {
		t.Errorf("override target = %v, want player", cur)
	}
	// The player is out of sensor range but the override drives the decision.
	ticks, err := h.agents.Update(0.02)
	if err != nil {
		t.Fatal(err)
	}
	if ticks[0].To != agent.Escape {
		t.Errorf("state = %v, want escape from the player", ticks[0].To)
	}

	// Staying inside does not re-fire.
	h.w.RebuildGrid()
	if events := h.triggers.Update(); len(events) != 0 {
		t.Errorf("repeat events = %+v", events)
	}

	pe, _ := h.w.Entity(player)
	h.w.Positions.Get(pe).Set(r3.Vec{X: -10, Z: 15})
	h.w.RebuildGrid()
	events = h.triggers.Update()
	if len(events) != 1 || events[0].Enter || events[0].Target != anchor {
		t.Fatalf("exit events = %+v", events)
	}
	ticks, err = h.agents.Update(0.02)
	if err != nil {
		t.Fatal(err)
	}
	if ticks[0].To != agent.Pursuit || ticks[0].TargetID != anchor {
		t.Errorf("after exit tick = %+v, want pursuit of anchor", ticks[0].Transition)
	}
}

func TestTriggerOverrideReplacedByNextSweep(t *testing.T) {
	h := newHarness()
	ctrl := h.spawnAgent(r3.Vec{X: -15, Z: -15})
	anchor := h.w.SpawnAnchor("anchor", r3.Vec{X: 10}, 1)
	h.w.SpawnTrigger("yard", r3.Vec{X: 10}, 3, ctrl.Agent.ID, anchor)
	h.w.SpawnTarget("player", components.KindPlayer, r3.Vec{X: 10}, 70, 0.5, r3.Vec{})

	h.step(t, 0.02)
	if ctrl.Agent.State != agent.Escape {
		t.Fatalf("state = %v, want escape", ctrl.Agent.State)
	}

	// Next sweep finds nothing nearby and clears the slot.
	h.step(t, 0.02)
	if ctrl.Agent.State != agent.Wander {
		t.Errorf("state = %v, want wander after sweep replaced override", ctrl.Agent.State)
	}
}

func TestRegistryCoversLoopSystems(t *testing.T) {
	reg := NewSystemRegistry()
	for _, id := range []string{"physics", "spatialGrid", "perception", "triggers", "decision"} {
		if _, ok := reg.Get(id); !ok {
			t.Errorf("system %q not registered", id)
		}
	}
	if got := reg.GetName("nope"); got != "nope" {
		t.Errorf("GetName fallback = %q", got)
	}
}
