package perception

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrMissingMass is returned when a perceived target has no usable mass.
// It indicates an authoring mistake and should be treated as fatal.
var ErrMissingMass = errors.New("perception: target has no mass")

// Target is a snapshot of a Targetable taken for a single decision tick.
type Target struct {
	ID       uint32
	Position r3.Vec
	Mass     float64
}

// Resolve snapshots t for the current tick.
// ok is false when t is nil or reports itself as no longer alive.
func Resolve(t Targetable) (target Target, ok bool, err error) {
	if t == nil {
		return Target{}, false, nil
	}
	if a, isAliver := t.(interface{ Alive() bool }); isAliver && !a.Alive() {
		return Target{}, false, nil
	}

	mass := t.Mass()
	if math.IsNaN(mass) || math.IsInf(mass, 0) || mass <= 0 {
		return Target{}, false, fmt.Errorf("entity %d: %w (got %v)", t.EntityID(), ErrMissingMass, mass)
	}

	return Target{ID: t.EntityID(), Position: t.Position(), Mass: mass}, true, nil
}
