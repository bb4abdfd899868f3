package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-sandbox/internal/core"
)

// Space is a Backend built on the Chipmunk2D port.
type Space struct {
	space  *cp.Space
	bodies map[BodyID]*spaceBody
	nextID BodyID

	// One collision type per category seen so far; every pair of types gets
	// a forwarding handler so all contacts reach the sink.
	types    map[Category]cp.CollisionType
	typeList []cp.CollisionType

	// sink is only set for the duration of Advance.
	sink ContactSink
}

type spaceBody struct {
	body  *cp.Body
	shape *cp.Shape
}

// NewSpace creates an empty space with a constant gravity vector.
func NewSpace(gravity core.Vec2) *Space {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: gravity.X, Y: gravity.Y})

	return &Space{
		space:  space,
		bodies: make(map[BodyID]*spaceBody),
		types:  make(map[Category]cp.CollisionType),
	}
}

// AddBody creates a Chipmunk body and shape from spec.
func (s *Space) AddBody(spec BodySpec) (BodyID, error) {
	if err := spec.Validate(); err != nil {
		return 0, fmt.Errorf("physics: add %s body: %w", spec.Category, err)
	}

	var body *cp.Body
	switch spec.Kind {
	case Static:
		body = cp.NewStaticBody()
	case Kinematic:
		body = cp.NewKinematicBody()
	default:
		moment := math.Inf(1)
		if !spec.FixedRotation {
			if spec.Shape == ShapeCircle {
				moment = cp.MomentForCircle(spec.Mass, 0, spec.Radius, cp.Vector{})
			} else {
				moment = cp.MomentForBox(spec.Mass, spec.Size.X, spec.Size.Y)
			}
		}
		body = cp.NewBody(spec.Mass, moment)
	}

	body.SetPosition(cp.Vector{X: spec.Position.X, Y: spec.Position.Y})
	if spec.Kind != Static {
		body.SetVelocity(spec.Velocity.X, spec.Velocity.Y)
	}

	var shape *cp.Shape
	if spec.Shape == ShapeCircle {
		shape = cp.NewCircle(body, spec.Radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, spec.Size.X, spec.Size.Y, 0)
	}
	shape.SetFriction(spec.Friction)
	shape.SetElasticity(spec.Elasticity)
	shape.SetCollisionType(s.collisionType(spec.Category))

	s.nextID++
	id := s.nextID
	body.UserData = id

	s.space.AddBody(body)
	s.space.AddShape(shape)
	s.bodies[id] = &spaceBody{body: body, shape: shape}

	return id, nil
}

// RemoveBody releases the body and its shape from the space.
func (s *Space) RemoveBody(id BodyID) error {
	sb, ok := s.bodies[id]
	if !ok {
		return fmt.Errorf("physics: remove body %d: %w", id, ErrUnknownBody)
	}
	s.space.RemoveShape(sb.shape)
	s.space.RemoveBody(sb.body)
	delete(s.bodies, id)
	return nil
}

// Contains reports whether id is a live body.
func (s *Space) Contains(id BodyID) bool {
	_, ok := s.bodies[id]
	return ok
}

// Position returns the body's centre.
func (s *Space) Position(id BodyID) core.Vec2 {
	sb, ok := s.bodies[id]
	if !ok {
		return core.Vec2{}
	}
	p := sb.body.Position()
	return core.Vec2{X: p.X, Y: p.Y}
}

// SetPosition teleports the body. Shapes of dynamic bodies are reindexed on
// the next Step.
func (s *Space) SetPosition(id BodyID, p core.Vec2) {
	sb, ok := s.bodies[id]
	if !ok {
		return
	}
	sb.body.SetPosition(cp.Vector{X: p.X, Y: p.Y})
}

// Velocity returns the body's linear velocity.
func (s *Space) Velocity(id BodyID) core.Vec2 {
	sb, ok := s.bodies[id]
	if !ok {
		return core.Vec2{}
	}
	v := sb.body.Velocity()
	return core.Vec2{X: v.X, Y: v.Y}
}

// SetVelocity overwrites the body's linear velocity.
func (s *Space) SetVelocity(id BodyID, v core.Vec2) {
	sb, ok := s.bodies[id]
	if !ok {
		return
	}
	sb.body.SetVelocity(v.X, v.Y)
}

// Advance steps the space once. Contacts are forwarded to sink while the
// space is locked, so sink must defer any body removal.
func (s *Space) Advance(dt float64, sink ContactSink) {
	s.sink = sink
	s.space.Step(dt)
	s.sink = nil
}

// Len returns the number of live bodies.
func (s *Space) Len() int {
	return len(s.bodies)
}

// collisionType returns the type for a category, allocating one and wiring
// its handlers on first use.
func (s *Space) collisionType(c Category) cp.CollisionType {
	if t, ok := s.types[c]; ok {
		return t
	}

	t := cp.CollisionType(len(s.typeList) + 1)
	s.types[c] = t
	s.typeList = append(s.typeList, t)

	for _, other := range s.typeList {
		s.forward(s.space.NewCollisionHandler(t, other))
	}
	return t
}

// forward routes every callback of a Chipmunk handler into the sink.
func (s *Space) forward(h *cp.CollisionHandler) {
	h.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		s.emit(arb, PhaseBegin)
		// Begin results never change the physical response.
		return true
	}
	h.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		return s.emit(arb, PhasePreSolve)
	}
	h.PostSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
		s.emit(arb, PhasePostSolve)
	}
	h.SeparateFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
		s.emit(arb, PhaseSeparate)
	}
}

func (s *Space) emit(arb *cp.Arbiter, phase Phase) bool {
	// Shapes removed outside Advance trigger separate callbacks; nobody listens then.
	if s.sink == nil {
		return true
	}

	a, b := arb.Bodies()
	ev := Event{Phase: phase}
	ev.A, _ = a.UserData.(BodyID)
	ev.B, _ = b.UserData.(BodyID)
	return s.sink(ev)
}
