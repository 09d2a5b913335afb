package agent

// State is the behavioral state of an agent.
type State uint8

const (
	Idle State = iota
	Wander
	Pursuit
	Attack
	Escape
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Wander:
		return "wander"
	case Pursuit:
		return "pursuit"
	case Attack:
		return "attack"
	case Escape:
		return "escape"
	default:
		return "unknown"
	}
}

// Inputs is everything a decision tick looks at.
type Inputs struct {
	HasTarget     bool
	SelfMass      float64
	TargetMass    float64
	Distance      float64
	StopThreshold float64
}

// Decide maps inputs to the next state. It never returns Idle.
//
//	no target                         -> Wander
//	lighter target, outside threshold -> Pursuit
//	lighter target, inside threshold  -> Attack
//	equal or heavier target           -> Escape
func Decide(in Inputs) State {
	switch {
	case !in.HasTarget:
		return Wander
	case in.TargetMass < in.SelfMass:
		if in.Distance < in.StopThreshold {
			return Attack
		}
		return Pursuit
	default:
		return Escape
	}
}

// SetState moves the agent to next and reports whether anything changed.
// Re-entering the current state is a no-op. Any transition to a state other
// than Wander drops the wander waypoint.
func (a *Agent) SetState(next State) bool {
	if a.State == next {
		return false
	}
	a.State = next
	a.StateTime = 0
	if next != Wander {
		a.Waypoint.Clear()
	}
	return true
}
