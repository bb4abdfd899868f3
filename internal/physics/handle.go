package physics

import "github.com/vovakirdan/tui-sandbox/internal/core"

// Handle is a weak reference from an entity to its body.
// The zero Handle is detached: reads return zero vectors and writes are dropped.
type Handle struct {
	id      BodyID
	backend Backend
}

// NewHandle binds a body id to the backend that owns it.
func NewHandle(b Backend, id BodyID) Handle {
	return Handle{id: id, backend: b}
}

// ID returns the body id, or zero for a detached handle.
func (h Handle) ID() BodyID {
	return h.id
}

// Attached reports whether the handle still names a live body.
func (h Handle) Attached() bool {
	return h.backend != nil && h.backend.Contains(h.id)
}

// Position returns the body's position.
func (h Handle) Position() core.Vec2 {
	if h.backend == nil {
		return core.Vec2{}
	}
	return h.backend.Position(h.id)
}

// SetPosition teleports the body.
func (h Handle) SetPosition(p core.Vec2) {
	if h.backend != nil {
		h.backend.SetPosition(h.id, p)
	}
}

// Velocity returns the body's linear velocity.
func (h Handle) Velocity() core.Vec2 {
	if h.backend == nil {
		return core.Vec2{}
	}
	return h.backend.Velocity(h.id)
}

// SetVelocity overwrites the body's linear velocity.
func (h Handle) SetVelocity(v core.Vec2) {
	if h.backend != nil {
		h.backend.SetVelocity(h.id, v)
	}
}
