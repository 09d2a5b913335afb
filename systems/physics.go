package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/perrito/components"
)

// Bounds is the playable area, centred on the origin.
type Bounds struct {
	HalfWidth, HalfDepth float64
}

// PhysicsSystem integrates velocities into positions and keeps bodies
// inside the world bounds.
type PhysicsSystem struct {
	filter  ecs.Filter3[components.Position, components.Velocity, components.Body]
	patrols *ecs.Map[components.Patrol]
	bounds  Bounds
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(w *World, bounds Bounds) *PhysicsSystem {
	return &PhysicsSystem{
		filter:  *ecs.NewFilter3[components.Position, components.Velocity, components.Body](w.ECS),
		patrols: w.Patrols,
		bounds:  bounds,
	}
}

// Update advances every body by dt seconds.
func (s *PhysicsSystem) Update(dt float64) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, body := query.Get()
		e := query.Entity()

		// Patrolling bodies are driven by their patrol velocity.
		var patrol *components.Patrol
		if s.patrols.Has(e) {
			patrol = s.patrols.Get(e)
			vel.X, vel.Y, vel.Z = patrol.X, patrol.Y, patrol.Z
		}

		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
		pos.Z += vel.Z * dt

		maxX := s.bounds.HalfWidth - body.Radius
		maxZ := s.bounds.HalfDepth - body.Radius

		if pos.X < -maxX || pos.X > maxX {
			pos.X = clampFloat(pos.X, -maxX, maxX)
			vel.X = -vel.X
			if patrol != nil {
				patrol.X = -patrol.X
			}
		}
		if pos.Z < -maxZ || pos.Z > maxZ {
			pos.Z = clampFloat(pos.Z, -maxZ, maxZ)
			vel.Z = -vel.Z
			if patrol != nil {
				patrol.Z = -patrol.Z
			}
		}
		if pos.Y < 0 {
			pos.Y = 0
			vel.Y = 0
		}
	}
}
