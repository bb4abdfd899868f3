// Package physics owns rigid bodies and their geometry. Game logic never sees
// engine types: bodies are addressed by an opaque BodyID and collisions are
// reported as Event values through a ContactSink during Advance.
package physics

import (
	"errors"

	"github.com/vovakirdan/tui-sandbox/internal/core"
)

var (
	// ErrUnknownBody is returned when an operation names a body the backend does not own.
	ErrUnknownBody = errors.New("physics: unknown body")
	// ErrInvalidBody is returned when a BodySpec cannot produce a body.
	ErrInvalidBody = errors.New("physics: invalid body spec")
)

// BodyID identifies a body inside a Backend. Zero is never issued.
type BodyID uint64

// Category tags a body with the kind of entity it belongs to.
// Backends only use it to route contacts; they never interpret it.
type Category string

// Entity categories used by the world.
const (
	CategoryPlayer Category = "player"
	CategoryItem   Category = "item"
	CategoryMob    Category = "mob"
	CategoryBlock  Category = "block"
)

// Phase is the stage of a contact's lifetime an Event reports.
type Phase int

const (
	// PhaseBegin fires on the first step two shapes overlap.
	PhaseBegin Phase = iota
	// PhasePreSolve fires every overlapping step before impulses are applied.
	// Its sink result decides whether the contact is solved this step.
	PhasePreSolve
	// PhasePostSolve fires every overlapping step after impulses are applied.
	PhasePostSolve
	// PhaseSeparate fires on the first step the shapes no longer overlap.
	PhaseSeparate
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseBegin:
		return "begin"
	case PhasePreSolve:
		return "pre-solve"
	case PhasePostSolve:
		return "post-solve"
	case PhaseSeparate:
		return "separate"
	default:
		return "unknown"
	}
}

// Event is one contact notification between two bodies.
type Event struct {
	A, B  BodyID
	Phase Phase
}

// ContactSink receives events synchronously during Advance.
// The return value is only honoured for PhasePreSolve: false skips the
// collision response for this step.
type ContactSink func(ev Event) bool

// BodyKind selects how a body is integrated.
type BodyKind int

const (
	Dynamic   BodyKind = iota // Affected by gravity and impulses
	Static                    // Never moves
	Kinematic                 // Moves only by its own velocity
)

// ShapeKind selects the collision geometry attached to a body.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
)

// BodySpec describes a body to create.
type BodySpec struct {
	Kind          BodyKind
	Category      Category
	Shape         ShapeKind
	Size          core.Vec2 // Box width and height
	Radius        float64   // Circle radius
	Mass          float64   // Dynamic bodies only
	Position      core.Vec2
	Velocity      core.Vec2
	FixedRotation bool
	Friction      float64
	Elasticity    float64
}

// Validate checks the spec has usable geometry and mass.
func (s BodySpec) Validate() error {
	switch s.Shape {
	case ShapeBox:
		if s.Size.X <= 0 || s.Size.Y <= 0 {
			return ErrInvalidBody
		}
	case ShapeCircle:
		if s.Radius <= 0 {
			return ErrInvalidBody
		}
	default:
		return ErrInvalidBody
	}
	if s.Kind == Dynamic && s.Mass <= 0 {
		return ErrInvalidBody
	}
	if s.Category == "" {
		return ErrInvalidBody
	}
	return nil
}

// Backend is the spatial physics layer the world steps every tick.
type Backend interface {
	// AddBody creates a body and returns its id.
	AddBody(spec BodySpec) (BodyID, error)

	// RemoveBody releases a body and its shapes.
	RemoveBody(id BodyID) error

	// Contains reports whether the body is still owned by the backend.
	Contains(id BodyID) bool

	Position(id BodyID) core.Vec2
	SetPosition(id BodyID, p core.Vec2)
	Velocity(id BodyID) core.Vec2
	SetVelocity(id BodyID, v core.Vec2)

	// Advance integrates every body by dt seconds. Contact events are
	// delivered to sink before Advance returns. Bodies must not be added
	// or removed from inside sink.
	Advance(dt float64, sink ContactSink)

	// Len returns the number of live bodies.
	Len() int
}
