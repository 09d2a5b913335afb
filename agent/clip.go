package agent

// Animation clip names issued to the animator.
const (
	ClipIdle   = "idle"
	ClipWander = "wander-walk"
	ClipRun    = "run"
	ClipWalk   = "walk"
	ClipAttack = "attack"
)

// Animator plays named clips on an entity.
type Animator interface {
	Play(id uint32, clip string)
}

// ClipPlayer debounces clip requests so that a clip is only sent to the
// animator when it differs from the one already playing.
type ClipPlayer struct {
	clip    string
	playing bool
}

// Request plays name unless it is already the current clip.
// Returns true if the animator was invoked.
func (c *ClipPlayer) Request(anim Animator, id uint32, name string) bool {
	if c.playing && c.clip == name {
		return false
	}
	c.clip = name
	c.playing = true
	if anim != nil {
		anim.Play(id, name)
	}
	return true
}

// Current returns the last issued clip, or "" if none.
func (c *ClipPlayer) Current() string {
	return c.clip
}

// Playing reports whether any clip has been issued.
func (c *ClipPlayer) Playing() bool {
	return c.playing
}

// Is reports whether one of names is the current clip.
func (c *ClipPlayer) Is(names ...string) bool {
	if !c.playing {
		return false
	}
	for _, n := range names {
		if c.clip == n {
			return true
		}
	}
	return false
}
