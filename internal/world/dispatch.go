package world

import (
	"github.com/vovakirdan/tui-sandbox/internal/entity"
	"github.com/vovakirdan/tui-sandbox/internal/physics"
)

// StepData is shared by every handler invoked during one tick.
type StepData struct {
	World *World
	Tick  uint64
	DT    float64
}

// HandlerFunc reacts to a contact. Entities arrive in the order their
// categories were registered. For pre-solve, returning false skips the
// collision response this step. For begin, returning false marks the
// contact ignored until the bodies separate, so no post-solve handler runs
// for it.
type HandlerFunc func(a, b entity.Entity, data *StepData) bool

// Handlers groups the optional callbacks for one category pair.
type Handlers struct {
	Begin     HandlerFunc
	PreSolve  HandlerFunc
	PostSolve HandlerFunc
}

type pairKey struct {
	lo, hi physics.Category
}

func pairOf(a, b physics.Category) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

type contactKey struct {
	lo, hi physics.BodyID
}

func contactOf(ev physics.Event) contactKey {
	if ev.B < ev.A {
		return contactKey{lo: ev.B, hi: ev.A}
	}
	return contactKey{lo: ev.A, hi: ev.B}
}

type pairHandlers struct {
	first    physics.Category
	handlers Handlers
}

// Dispatcher resolves contact events into entities and routes them to the
// handlers registered for their category pair.
type Dispatcher struct {
	registry *Registry
	pairs    map[pairKey]pairHandlers
	ignored  map[contactKey]bool

	// skip reports entities whose events are dropped, e.g. pending removal.
	skip func(entity.Entity) bool

	dispatched int
}

// NewDispatcher creates a dispatcher that resolves bodies through registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		pairs:    make(map[pairKey]pairHandlers),
		ignored:  make(map[contactKey]bool),
	}
}

// Add registers handlers for the unordered pair (a, b), replacing any
// previous registration for the same pair.
func (d *Dispatcher) Add(a, b physics.Category, h Handlers) {
	d.pairs[pairOf(a, b)] = pairHandlers{first: a, handlers: h}
}

// Has reports whether any handlers are registered for the pair.
func (d *Dispatcher) Has(a, b physics.Category) bool {
	_, ok := d.pairs[pairOf(a, b)]
	return ok
}

// Dispatch handles one event and returns the accept flag for the backend.
// Panics with *InvariantError if either body is unregistered.
func (d *Dispatcher) Dispatch(ev physics.Event, data *StepData) bool {
	key := contactOf(ev)
	if ev.Phase == physics.PhaseSeparate {
		delete(d.ignored, key)
		return true
	}

	ea, ca := d.resolve(ev.A, ev.Phase)
	eb, cb := d.resolve(ev.B, ev.Phase)

	if d.skip != nil && (d.skip(ea) || d.skip(eb)) {
		return true
	}

	reg, ok := d.pairs[pairOf(ca, cb)]
	if !ok {
		return true
	}
	if ca != reg.first {
		ea, eb = eb, ea
	}

	var fn HandlerFunc
	switch ev.Phase {
	case physics.PhaseBegin:
		fn = reg.handlers.Begin
	case physics.PhasePreSolve:
		fn = reg.handlers.PreSolve
	case physics.PhasePostSolve:
		if d.ignored[key] {
			return true
		}
		fn = reg.handlers.PostSolve
	}
	if fn == nil {
		return true
	}

	d.dispatched++
	accept := fn(ea, eb, data)
	if ev.Phase == physics.PhaseBegin && !accept {
		d.ignored[key] = true
	}
	return accept
}

// Forget drops contact bookkeeping for a released body.
func (d *Dispatcher) Forget(body physics.BodyID) {
	for key := range d.ignored {
		if key.lo == body || key.hi == body {
			delete(d.ignored, key)
		}
	}
}

// Dispatched returns how many handler calls were made.
func (d *Dispatcher) Dispatched() int {
	return d.dispatched
}

func (d *Dispatcher) resolve(body physics.BodyID, phase physics.Phase) (entity.Entity, physics.Category) {
	e, cat, err := d.registry.Lookup(body)
	if err != nil {
		panic(&InvariantError{Op: "lookup " + phase.String(), Body: body, Err: err})
	}
	return e, cat
}
