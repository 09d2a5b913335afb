package steering

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSeekMagnitudeAndDirection(t *testing.T) {
	k := Kinematics{Position: r3.Vec{X: 1, Y: 0, Z: 1}, MaxSpeed: 4}
	target := r3.Vec{X: 4, Y: 0, Z: 5}

	v := Seek(k, target)

	if !approx(r3.Norm(v), 4) {
		t.Errorf("Seek magnitude = %f, want 4", r3.Norm(v))
	}
	// direction (3, 0, 4) / 5
	if !approx(v.X, 2.4) || !approx(v.Z, 3.2) || !approx(v.Y, 0) {
		t.Errorf("Seek = %+v, want (2.4, 0, 3.2)", v)
	}
}

func TestSeekAtTargetIsZero(t *testing.T) {
	k := Kinematics{Position: r3.Vec{X: 2, Y: 2, Z: 2}, MaxSpeed: 5}

	for _, v := range []r3.Vec{
		Seek(k, k.Position),
		Flee(k, k.Position),
		Arrival(k, k.Position, 8, 0),
	} {
		if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z) {
			t.Fatalf("got NaN velocity %+v", v)
		}
		if v != (r3.Vec{}) {
			t.Errorf("velocity at target = %+v, want zero", v)
		}
	}
}

func TestFleeIsAntiparallelToSeek(t *testing.T) {
	tests := []struct {
		name   string
		pos    r3.Vec
		target r3.Vec
		speed  float64
	}{
		{"axis", r3.Vec{}, r3.Vec{X: 10}, 3},
		{"diagonal", r3.Vec{X: -2, Z: 1}, r3.Vec{X: 5, Y: 1, Z: -7}, 7.5},
		{"close", r3.Vec{X: 1}, r3.Vec{X: 1.001}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := Kinematics{Position: tt.pos, MaxSpeed: tt.speed}
			s := Seek(k, tt.target)
			f := Flee(k, tt.target)

			if !approx(r3.Norm(s), r3.Norm(f)) {
				t.Errorf("magnitudes differ: seek %f flee %f", r3.Norm(s), r3.Norm(f))
			}
			cos := r3.Dot(s, f) / (r3.Norm(s) * r3.Norm(f))
			if !approx(cos, -1) {
				t.Errorf("cos(seek, flee) = %f, want -1", cos)
			}
		})
	}
}

func TestArrivalProfile(t *testing.T) {
	const (
		maxSpeed = 6.0
		slowing  = 8.0
		stop     = 2.0
	)
	k := Kinematics{MaxSpeed: maxSpeed}

	tests := []struct {
		dist float64
		want float64
	}{
		{20, maxSpeed},
		{slowing, maxSpeed},
		{5, maxSpeed * 0.5},
		{stop, 0},
		{1, 0},
		{0, 0},
	}

	for _, tt := range tests {
		v := Arrival(k, r3.Vec{Z: tt.dist}, slowing, stop)
		if !approx(r3.Norm(v), tt.want) {
			t.Errorf("Arrival at %.1f = %f, want %f", tt.dist, r3.Norm(v), tt.want)
		}
	}
}

func TestArrivalMonotonic(t *testing.T) {
	k := Kinematics{MaxSpeed: 3}
	prev := math.Inf(1)

	for d := 8.0; d >= 2.0; d -= 0.05 {
		speed := r3.Norm(Arrival(k, r3.Vec{X: d}, 8, 2))
		if speed > prev+1e-12 {
			t.Fatalf("speed increased from %f to %f at distance %f", prev, speed, d)
		}
		if speed < 0 || speed > k.MaxSpeed {
			t.Fatalf("speed %f outside [0, %f]", speed, k.MaxSpeed)
		}
		prev = speed
	}
}

func TestArrivalMisconfiguredRadii(t *testing.T) {
	k := Kinematics{MaxSpeed: 4}

	// slowing radius inside the stop threshold: no ramp.
	outside := r3.Norm(Arrival(k, r3.Vec{Z: 5}, 1, 3))
	if !approx(outside, 4) {
		t.Errorf("outside stop threshold speed = %f, want 4", outside)
	}
	inside := r3.Norm(Arrival(k, r3.Vec{Z: 2}, 1, 3))
	if inside != 0 {
		t.Errorf("inside stop threshold speed = %f, want 0", inside)
	}
	equal := r3.Norm(Arrival(k, r3.Vec{Z: 3.5}, 3, 3))
	if !approx(equal, 4) {
		t.Errorf("equal radii speed = %f, want 4", equal)
	}
}

func TestTruncate(t *testing.T) {
	v := Truncate(r3.Vec{X: 3, Z: 4}, 2.5)
	if !approx(r3.Norm(v), 2.5) {
		t.Errorf("Truncate magnitude = %f, want 2.5", r3.Norm(v))
	}
	short := r3.Vec{X: 1}
	if Truncate(short, 2) != short {
		t.Errorf("Truncate changed a short vector")
	}
}

func TestHeading(t *testing.T) {
	if _, ok := Heading(r3.Vec{Y: 3}); ok {
		t.Error("vertical vector should have no heading")
	}
	yaw, ok := Heading(r3.Vec{X: 1})
	if !ok || !approx(yaw, math.Pi/2) {
		t.Errorf("Heading(+X) = %f, %v; want pi/2, true", yaw, ok)
	}
	// Fleeing straight down -Z yields a negative-zero X component.
	yaw, _ = Heading(Flee(Kinematics{MaxSpeed: 3}, r3.Vec{Z: 3}))
	if yaw != math.Pi {
		t.Errorf("Heading(-Z) = %f, want pi", yaw)
	}
}
