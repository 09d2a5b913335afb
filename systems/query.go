package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/perrito/perception"
)

// EntityHandle exposes an entity to perception by ID only.
type EntityHandle struct {
	w  *World
	e  ecs.Entity
	id uint32
}

// EntityID implements perception.Entity.
func (h EntityHandle) EntityID() uint32 {
	return h.id
}

// Alive reports whether the entity still exists.
func (h EntityHandle) Alive() bool {
	return h.w.ECS.Alive(h.e)
}

// TargetHandle is a live view of a targetable entity. Position and mass are
// read on every call, so a cached handle follows the entity as it moves.
type TargetHandle struct {
	EntityHandle
}

// Position implements perception.Targetable.
func (h TargetHandle) Position() r3.Vec {
	return h.w.Positions.Get(h.e).Vec()
}

// Mass implements perception.Targetable. Entities without a body report NaN.
func (h TargetHandle) Mass() float64 {
	if !h.w.Bodies.Has(h.e) {
		return math.NaN()
	}
	return h.w.Bodies.Get(h.e).Mass
}

// Handle returns a perception handle for the entity. Entities tagged
// Targetable get a TargetHandle; everything else a plain EntityHandle.
func (w *World) Handle(e ecs.Entity) perception.Entity {
	h := EntityHandle{w: w, e: e, id: w.IDOf(e)}
	if w.Targets.Has(e) {
		return TargetHandle{h}
	}
	return h
}

// TargetByID returns a TargetHandle for id regardless of its tags.
// Used for overrides that point agents at non-perceivable entities.
func (w *World) TargetByID(id uint32) (TargetHandle, bool) {
	e, ok := w.Entity(id)
	if !ok {
		return TargetHandle{}, false
	}
	return TargetHandle{EntityHandle{w: w, e: e, id: id}}, true
}

// Query answers sphere overlap tests against the spatial grid.
// Results come back in grid order, which is stable between rebuilds
// but otherwise unspecified.
type Query struct {
	w       *World
	scratch []Neighbor
}

// NewQuery creates a query bound to w.
func NewQuery(w *World) *Query {
	return &Query{w: w, scratch: make([]Neighbor, 0, queryCapacity)}
}

// OverlapSphere implements perception.SpatialQuery.
func (q *Query) OverlapSphere(center r3.Vec, radius float64) []perception.Entity {
	q.scratch = q.w.Grid.QueryRadiusInto(q.scratch[:0], center, radius, q.w.Positions)
	if len(q.scratch) == 0 {
		return nil
	}
	out := make([]perception.Entity, 0, len(q.scratch))
	for _, n := range q.scratch {
		if !q.w.ECS.Alive(n.E) {
			continue
		}
		out = append(out, q.w.Handle(n.E))
	}
	return out
}

// BodyHandle lets a controller read and drive its own entity.
type BodyHandle struct {
	w *World
	e ecs.Entity
}

// NewBodyHandle binds a controller body to e.
func NewBodyHandle(w *World, e ecs.Entity) *BodyHandle {
	return &BodyHandle{w: w, e: e}
}

// Position implements agent.Body.
func (b *BodyHandle) Position() r3.Vec {
	return b.w.Positions.Get(b.e).Vec()
}

// SetVelocity implements agent.Body.
func (b *BodyHandle) SetVelocity(v r3.Vec) {
	b.w.Velocities.Get(b.e).Set(v)
}

// PlayFunc receives every clip actually issued to an entity.
type PlayFunc func(id uint32, clip string)

// AnimatorSink records issued clips on the entity's Animation component.
type AnimatorSink struct {
	w      *World
	OnPlay PlayFunc
}

// NewAnimatorSink creates an animator writing to w.
func NewAnimatorSink(w *World) *AnimatorSink {
	return &AnimatorSink{w: w}
}

// Play implements agent.Animator.
func (s *AnimatorSink) Play(id uint32, clip string) {
	e, ok := s.w.Entity(id)
	if !ok {
		return
	}
	// Animation is added at spawn; no structural changes mid-query.
	if !s.w.Animations.Has(e) {
		return
	}
	anim := s.w.Animations.Get(e)
	anim.Clip = clip
	anim.Plays++
	if s.OnPlay != nil {
		s.OnPlay(id, clip)
	}
}
