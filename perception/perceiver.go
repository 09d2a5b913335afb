package perception

// Perceiver holds the single-slot result shared between the fixed-rate
// sweep and the frame-rate decision step. The slot is overwritten wholesale
// by every sweep and every Override; whichever wrote last before a decision
// tick is what that tick sees.
type Perceiver struct {
	query SpatialQuery
	self  uint32

	current Targetable
	sweeps  int
}

// NewPerceiver creates a perceiver for the agent with the given entity ID.
func NewPerceiver(q SpatialQuery, self uint32) *Perceiver {
	return &Perceiver{query: q, self: self}
}

// Tick runs one sweep and replaces the cached result.
func (p *Perceiver) Tick(_ float64, eyes, ears Sphere) {
	p.current, _ = Sense(p.query, p.self, eyes, ears)
	p.sweeps++
}

// Override replaces the cached result from outside the sweep.
// A nil target clears it.
func (p *Perceiver) Override(t Targetable) {
	p.current = t
}

// Current returns the most recently written target.
func (p *Perceiver) Current() (Targetable, bool) {
	return p.current, p.current != nil
}

// Sweeps returns the number of sweeps run so far.
func (p *Perceiver) Sweeps() int {
	return p.sweeps
}
