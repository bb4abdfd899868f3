package world

import (
	"fmt"

	"github.com/vovakirdan/tui-sandbox/internal/entity"
	"github.com/vovakirdan/tui-sandbox/internal/physics"
)

type registration struct {
	entity   entity.Entity
	category physics.Category
}

// Registry maps physics bodies back to the entities that own them.
// Iteration follows registration order so a world steps deterministically.
type Registry struct {
	entries map[physics.BodyID]registration
	order   []physics.BodyID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[physics.BodyID]registration)}
}

// Register associates body with e under category.
func (r *Registry) Register(e entity.Entity, body physics.BodyID, category physics.Category) error {
	if _, ok := r.entries[body]; ok {
		return fmt.Errorf("%w: body %d", ErrDuplicateRegistration, body)
	}
	r.entries[body] = registration{entity: e, category: category}
	r.order = append(r.order, body)
	return nil
}

// Lookup returns the entity registered for body and its category.
func (r *Registry) Lookup(body physics.BodyID) (entity.Entity, physics.Category, error) {
	reg, ok := r.entries[body]
	if !ok {
		return nil, "", fmt.Errorf("%w: body %d", ErrUnknownBody, body)
	}
	return reg.entity, reg.category, nil
}

// Unregister removes the mapping for body.
func (r *Registry) Unregister(body physics.BodyID) error {
	if _, ok := r.entries[body]; !ok {
		return fmt.Errorf("%w: body %d", ErrUnknownBody, body)
	}
	delete(r.entries, body)
	for i, id := range r.order {
		if id == body {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Contains reports whether body is registered.
func (r *Registry) Contains(body physics.BodyID) bool {
	_, ok := r.entries[body]
	return ok
}

// Len returns the number of registered bodies.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entities returns every registered entity in registration order.
func (r *Registry) Entities() []entity.Entity {
	out := make([]entity.Entity, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id].entity)
	}
	return out
}
