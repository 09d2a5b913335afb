package agent

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestDecideTable(t *testing.T) {
	tests := []struct {
		name string
		in   Inputs
		want State
	}{
		{"no target", Inputs{HasTarget: false, SelfMass: 10, TargetMass: 1, Distance: 0, StopThreshold: 2}, Wander},
		{"no target ignores stale mass", Inputs{HasTarget: false, SelfMass: 10, TargetMass: 50, Distance: 100, StopThreshold: 2}, Wander},
		{"lighter far", Inputs{HasTarget: true, SelfMass: 10, TargetMass: 5, Distance: 20, StopThreshold: 2}, Pursuit},
		{"lighter at threshold", Inputs{HasTarget: true, SelfMass: 10, TargetMass: 5, Distance: 2, StopThreshold: 2}, Pursuit},
		{"lighter inside threshold", Inputs{HasTarget: true, SelfMass: 10, TargetMass: 5, Distance: 1.999, StopThreshold: 2}, Attack},
		{"equal mass escapes", Inputs{HasTarget: true, SelfMass: 10, TargetMass: 10, Distance: 20, StopThreshold: 2}, Escape},
		{"equal mass close escapes", Inputs{HasTarget: true, SelfMass: 10, TargetMass: 10, Distance: 0.5, StopThreshold: 2}, Escape},
		{"heavier escapes", Inputs{HasTarget: true, SelfMass: 10, TargetMass: 15, Distance: 1, StopThreshold: 2}, Escape},
		{"zero threshold never attacks", Inputs{HasTarget: true, SelfMass: 10, TargetMass: 1, Distance: 0, StopThreshold: 0}, Pursuit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.in); got != tt.want {
				t.Errorf("Decide(%+v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecideIsTotal(t *testing.T) {
	masses := []float64{0.5, 5, 10, 15}
	distances := []float64{0, 1, 2, 3, 50}
	thresholds := []float64{0, 2, 10}

	for _, present := range []bool{false, true} {
		for _, self := range masses {
			for _, other := range masses {
				for _, d := range distances {
					for _, th := range thresholds {
						in := Inputs{HasTarget: present, SelfMass: self, TargetMass: other, Distance: d, StopThreshold: th}
						got := Decide(in)

						var want State
						switch {
						case !present:
							want = Wander
						case other < self && d >= th:
							want = Pursuit
						case other < self:
							want = Attack
						default:
							want = Escape
						}
						if got != want {
							t.Fatalf("Decide(%+v) = %v, want %v", in, got, want)
						}
					}
				}
			}
		}
	}
}

func TestSetStateSameStateIsNoop(t *testing.T) {
	a := New(1, r3.Vec{}, Params{})
	a.State = Wander
	a.StateTime = 3
	a.Waypoint.Point = r3.Vec{X: 4}
	a.Waypoint.Valid = true

	if a.SetState(Wander) {
		t.Error("SetState(Wander) reported a change")
	}
	if !a.Waypoint.Valid || a.Waypoint.Point.X != 4 {
		t.Errorf("waypoint touched on re-entry: %+v", a.Waypoint)
	}
	if a.StateTime != 3 {
		t.Errorf("StateTime reset on re-entry: %f", a.StateTime)
	}
}

func TestSetStateClearsWaypointLeavingWander(t *testing.T) {
	for _, next := range []State{Idle, Pursuit, Attack, Escape} {
		a := New(1, r3.Vec{}, Params{})
		a.State = Wander
		a.Waypoint.Valid = true

		if !a.SetState(next) {
			t.Fatalf("SetState(%v) reported no change", next)
		}
		if a.Waypoint.Valid {
			t.Errorf("waypoint survived transition to %v", next)
		}
	}
}

func TestSetStateClearsWaypointOutsideWander(t *testing.T) {
	a := New(1, r3.Vec{}, Params{})
	a.State = Pursuit
	a.Waypoint.Valid = true // should never happen, but is cleared anyway

	a.SetState(Escape)
	if a.Waypoint.Valid {
		t.Error("non-Wander transition kept the waypoint")
	}
}

func TestStateString(t *testing.T) {
	names := map[State]string{
		Idle: "idle", Wander: "wander", Pursuit: "pursuit", Attack: "attack", Escape: "escape", State(99): "unknown",
	}
	for s, want := range names {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", s, s.String(), want)
		}
	}
}

func TestNewAgentStartsIdle(t *testing.T) {
	a := New(3, r3.Vec{X: 1}, Params{Mass: 10})
	if a.State != Idle {
		t.Errorf("initial state = %v, want idle", a.State)
	}
	if a.Waypoint.Valid {
		t.Error("new agent has a waypoint")
	}
}
