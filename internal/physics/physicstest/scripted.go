// Package physicstest provides a controllable physics backend for tests.
package physicstest

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/physics"
)

// Scripted is a physics.Backend with no collision detection. Contacts are
// whatever the test queues with Inject; bodies integrate with plain Euler.
type Scripted struct {
	Gravity core.Vec2

	bodies  map[physics.BodyID]*body
	nextID  physics.BodyID
	pending []physics.Event

	// Advances counts calls to Advance.
	Advances int
	// Results records the sink's answer for every delivered event.
	Results []bool
	// Removed lists released body ids in removal order.
	Removed []physics.BodyID
}

type body struct {
	spec physics.BodySpec
	pos  core.Vec2
	vel  core.Vec2
}

// New creates an empty scripted backend without gravity.
func New() *Scripted {
	return &Scripted{bodies: make(map[physics.BodyID]*body)}
}

// Inject queues events to be delivered on the next Advance.
func (s *Scripted) Inject(events ...physics.Event) {
	s.pending = append(s.pending, events...)
}

// AddBody records the spec; ids are issued sequentially from 1.
func (s *Scripted) AddBody(spec physics.BodySpec) (physics.BodyID, error) {
	if err := spec.Validate(); err != nil {
		return 0, fmt.Errorf("physicstest: add body: %w", err)
	}
	s.nextID++
	s.bodies[s.nextID] = &body{spec: spec, pos: spec.Position, vel: spec.Velocity}
	return s.nextID, nil
}

// RemoveBody releases a body.
func (s *Scripted) RemoveBody(id physics.BodyID) error {
	if _, ok := s.bodies[id]; !ok {
		return fmt.Errorf("physicstest: remove body %d: %w", id, physics.ErrUnknownBody)
	}
	delete(s.bodies, id)
	s.Removed = append(s.Removed, id)
	return nil
}

// Contains reports whether id is live.
func (s *Scripted) Contains(id physics.BodyID) bool {
	_, ok := s.bodies[id]
	return ok
}

// Position returns the body's position.
func (s *Scripted) Position(id physics.BodyID) core.Vec2 {
	if b, ok := s.bodies[id]; ok {
		return b.pos
	}
	return core.Vec2{}
}

// SetPosition moves the body.
func (s *Scripted) SetPosition(id physics.BodyID, p core.Vec2) {
	if b, ok := s.bodies[id]; ok {
		b.pos = p
	}
}

// Velocity returns the body's velocity.
func (s *Scripted) Velocity(id physics.BodyID) core.Vec2 {
	if b, ok := s.bodies[id]; ok {
		return b.vel
	}
	return core.Vec2{}
}

// SetVelocity overwrites the body's velocity.
func (s *Scripted) SetVelocity(id physics.BodyID, v core.Vec2) {
	if b, ok := s.bodies[id]; ok {
		b.vel = v
	}
}

// Advance integrates dynamic bodies in id order, then delivers queued events.
func (s *Scripted) Advance(dt float64, sink physics.ContactSink) {
	s.Advances++

	ids := make([]physics.BodyID, 0, len(s.bodies))
	for id := range s.bodies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		b := s.bodies[id]
		switch b.spec.Kind {
		case physics.Dynamic:
			b.vel = b.vel.Add(s.Gravity.Scale(dt))
			b.pos = b.pos.Add(b.vel.Scale(dt))
		case physics.Kinematic:
			b.pos = b.pos.Add(b.vel.Scale(dt))
		}
	}

	events := s.pending
	s.pending = nil
	for _, ev := range events {
		s.Results = append(s.Results, sink(ev))
	}
}

// Len returns the number of live bodies.
func (s *Scripted) Len() int {
	return len(s.bodies)
}

var _ physics.Backend = (*Scripted)(nil)
