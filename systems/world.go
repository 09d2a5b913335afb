package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/perrito/components"
)

// World bundles the ECS world with the component mappers and spatial index
// the simulation systems share.
type World struct {
	ECS  *ecs.World
	Grid *SpatialGrid

	Positions  *ecs.Map[components.Position]
	Velocities *ecs.Map[components.Velocity]
	Bodies     *ecs.Map[components.Body]
	Identities *ecs.Map[components.Identity]
	Targets    *ecs.Map[components.Targetable]
	Animations *ecs.Map[components.Animation]
	Brains     *ecs.Map[components.Brain]
	Patrols    *ecs.Map[components.Patrol]
	Triggers   *ecs.Map[components.Trigger]

	spatialFilter ecs.Filter1[components.Position]

	byID   map[uint32]ecs.Entity
	nextID uint32
}

// NewWorld creates an empty world whose spatial grid covers width x depth
// around the origin.
func NewWorld(width, depth, cellSize float64) *World {
	w := ecs.NewWorld()
	return &World{
		ECS:           w,
		Grid:          NewSpatialGrid(width, depth, cellSize),
		Positions:     ecs.NewMap[components.Position](w),
		Velocities:    ecs.NewMap[components.Velocity](w),
		Bodies:        ecs.NewMap[components.Body](w),
		Identities:    ecs.NewMap[components.Identity](w),
		Targets:       ecs.NewMap[components.Targetable](w),
		Animations:    ecs.NewMap[components.Animation](w),
		Brains:        ecs.NewMap[components.Brain](w),
		Patrols:       ecs.NewMap[components.Patrol](w),
		Triggers:      ecs.NewMap[components.Trigger](w),
		spatialFilter: *ecs.NewFilter1[components.Position](w),
		byID:          make(map[uint32]ecs.Entity),
	}
}

// Spawn creates an entity with a position, velocity and identity and
// returns its stable ID. IDs start at 1; 0 means "no entity".
func (w *World) Spawn(name string, kind components.Kind, pos r3.Vec) (ecs.Entity, uint32) {
	w.nextID++
	id := w.nextID

	e := w.ECS.NewEntity()
	p := components.Position{}
	p.Set(pos)
	w.Positions.Add(e, &p)
	w.Velocities.Add(e, &components.Velocity{})
	w.Identities.Add(e, &components.Identity{ID: id, Name: name, Kind: kind})

	w.byID[id] = e
	return e, id
}

// Despawn removes the entity with the given ID. Handles that refer to it
// report Alive() == false afterwards.
func (w *World) Despawn(id uint32) bool {
	e, ok := w.byID[id]
	if !ok {
		return false
	}
	delete(w.byID, id)
	if w.ECS.Alive(e) {
		w.ECS.RemoveEntity(e)
	}
	return true
}

// Entity returns the live entity for an ID.
func (w *World) Entity(id uint32) (ecs.Entity, bool) {
	e, ok := w.byID[id]
	if !ok || !w.ECS.Alive(e) {
		return ecs.Entity{}, false
	}
	return e, true
}

// IDOf returns the stable ID of an entity, or 0 if it has no identity.
func (w *World) IDOf(e ecs.Entity) uint32 {
	if !w.ECS.Alive(e) || !w.Identities.Has(e) {
		return 0
	}
	return w.Identities.Get(e).ID
}

// NameOf returns the display name for an ID, or "" if unknown.
func (w *World) NameOf(id uint32) string {
	e, ok := w.Entity(id)
	if !ok || !w.Identities.Has(e) {
		return ""
	}
	return w.Identities.Get(e).Name
}

// RebuildGrid re-indexes every positioned entity.
// Must run after movement and before any sweep in the same step.
func (w *World) RebuildGrid() {
	w.Grid.Clear()
	query := w.spatialFilter.Query()
	for query.Next() {
		pos := query.Get()
		w.Grid.Insert(query.Entity(), pos.Vec())
	}
}

// Len returns the number of identified entities.
func (w *World) Len() int {
	return len(w.byID)
}
