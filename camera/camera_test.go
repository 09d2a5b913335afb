package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestNew(t *testing.T) {
	cam := New(40, 40)

	if cam.Focus != (r3.Vec{}) {
		t.Errorf("expected focus at origin, got %+v", cam.Focus)
	}
	eye := cam.Position()
	if eye.Y <= 0 {
		t.Errorf("eye below ground: %+v", eye)
	}
	if !near(r3.Norm(r3.Sub(eye, cam.Focus)), cam.Distance) {
		t.Errorf("eye distance %v != %v", r3.Norm(r3.Sub(eye, cam.Focus)), cam.Distance)
	}
}

func TestPanForwardMovesAwayFromEye(t *testing.T) {
	cam := New(40, 40)
	before := cam.Position()

	cam.Pan(0, 5)

	// The focus moved 5 units along the ground direction the eye looks.
	if !near(r3.Norm(cam.Focus), 5) {
		t.Errorf("focus moved %v, want 5", r3.Norm(cam.Focus))
	}
	toFocus := r3.Sub(r3.Vec{}, before)
	toFocus.Y = 0
	if r3.Dot(cam.Focus, toFocus) <= 0 {
		t.Errorf("pan forward moved focus toward the eye: %+v", cam.Focus)
	}
}

func TestPanClampsToWorld(t *testing.T) {
	cam := New(10, 20)
	cam.Pan(1000, 1000)

	if math.Abs(cam.Focus.X) > 10 || math.Abs(cam.Focus.Z) > 20 {
		t.Errorf("focus left the world: %+v", cam.Focus)
	}
}

func TestZoomAndOrbitClamp(t *testing.T) {
	cam := New(40, 40)

	cam.ZoomBy(1e6)
	if cam.Distance != cam.MinDistance {
		t.Errorf("zoom in: distance %v, want min %v", cam.Distance, cam.MinDistance)
	}
	cam.ZoomBy(1e-6)
	if cam.Distance != cam.MaxDistance {
		t.Errorf("zoom out: distance %v, want max %v", cam.Distance, cam.MaxDistance)
	}
	cam.ZoomBy(0)
	if cam.Distance != cam.MaxDistance {
		t.Error("zero factor changed distance")
	}

	cam.Orbit(0, 10)
	if cam.Pitch != cam.MaxPitch {
		t.Errorf("pitch %v, want clamped to %v", cam.Pitch, cam.MaxPitch)
	}
	cam.Orbit(0, -10)
	if cam.Pitch != cam.MinPitch {
		t.Errorf("pitch %v, want clamped to %v", cam.Pitch, cam.MinPitch)
	}
}

func TestPickGround(t *testing.T) {
	hit, ok := PickGround(r3.Vec{X: 1, Y: 10, Z: 2}, r3.Vec{X: 1, Y: -1})
	if !ok || !near(hit.X, 11) || !near(hit.Z, 2) || !near(hit.Y, 0) {
		t.Errorf("hit = %+v, %v", hit, ok)
	}

	if _, ok := PickGround(r3.Vec{Y: 10}, r3.Vec{X: 1}); ok {
		t.Error("parallel ray should miss")
	}
	if _, ok := PickGround(r3.Vec{Y: 10}, r3.Vec{Y: 1}); ok {
		t.Error("upward ray should miss")
	}
}

func TestReset(t *testing.T) {
	cam := New(40, 40)
	cam.Pan(3, 3)
	cam.Orbit(1, 0.2)
	cam.ZoomBy(2)

	cam.Reset()

	fresh := New(40, 40)
	if cam.Focus != fresh.Focus || cam.Yaw != fresh.Yaw || cam.Distance != fresh.Distance {
		t.Errorf("reset camera %+v differs from new %+v", cam, fresh)
	}
}
