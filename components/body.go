package components

// Body holds physical properties of an entity.
// A Body with zero Mass on a Targetable entity is an authoring error.
type Body struct {
	Mass   float64
	Radius float64
}

// Patrol drives a non-agent entity at a constant velocity.
// Components of the velocity are reflected when the entity hits the world edge.
type Patrol struct {
	X, Y, Z float64
}
