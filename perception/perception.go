// Package perception samples the environment for potential targets.
//
// A sweep runs two overlap queries, one per sensor sphere, and keeps at
// most one candidate. Within a query the last matching candidate wins and
// the ears query overwrites the eyes query; no nearest-match selection is
// performed.
package perception

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Entity is anything a SpatialQuery can report.
type Entity interface {
	EntityID() uint32
}

// Targetable is implemented by entities the agent may treat as a target.
type Targetable interface {
	Entity
	Position() r3.Vec
	Mass() float64
}

// SpatialQuery is the physics-side overlap test the perception sweep uses.
// Results are consumed in the order returned.
type SpatialQuery interface {
	OverlapSphere(center r3.Vec, radius float64) []Entity
}

// Sphere is a sensor volume.
type Sphere struct {
	Center r3.Vec
	Radius float64
}

// Sense runs the eyes and ears queries and returns the selected candidate.
// Entities whose ID equals self are ignored.
func Sense(q SpatialQuery, self uint32, eyes, ears Sphere) (Targetable, bool) {
	var found Targetable

	if t, ok := lastMatch(q.OverlapSphere(eyes.Center, eyes.Radius), self); ok {
		found = t
	}
	if t, ok := lastMatch(q.OverlapSphere(ears.Center, ears.Radius), self); ok {
		found = t
	}

	return found, found != nil
}

func lastMatch(candidates []Entity, self uint32) (Targetable, bool) {
	var found Targetable
	for _, e := range candidates {
		if e == nil || e.EntityID() == self {
			continue
		}
		if t, ok := e.(Targetable); ok {
			found = t
		}
	}
	return found, found != nil
}
