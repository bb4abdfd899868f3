// Package entity defines the game objects a world owns: the player, dropped
// items, blocks, and the shared Base every physical entity embeds.
package entity

import (
	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/physics"
)

// Entity is anything with a body in the world.
type Entity interface {
	// Kind names the concrete type of thing, e.g. "player", "dirt", "foe_bee".
	Kind() string

	// Category is the collision category of the entity's body.
	Category() physics.Category

	// BodySpec describes the body to create; the world fills in position.
	BodySpec() physics.BodySpec

	// Body returns the handle to the entity's body.
	Body() physics.Handle

	// Position returns the body centre.
	Position() core.Vec2

	// Bind attaches a freshly created body. Called once by the world.
	Bind(h physics.Handle)

	// Release detaches the body after the world removed it.
	Release()

	// Released reports whether the entity has left the world.
	Released() bool
}

// Base carries the body handle and lifecycle flag shared by all entities.
type Base struct {
	body     physics.Handle
	released bool
	lastPos  core.Vec2
}

// Body returns the handle to the entity's body.
func (b *Base) Body() physics.Handle {
	return b.body
}

// Bind attaches a body handle.
func (b *Base) Bind(h physics.Handle) {
	b.body = h
	b.released = false
}

// Release detaches the body, remembering the final position.
func (b *Base) Release() {
	b.lastPos = b.body.Position()
	b.body = physics.Handle{}
	b.released = true
}

// Released reports whether the entity has left the world.
func (b *Base) Released() bool {
	return b.released
}

// Position returns the body centre, or the last known position once released.
func (b *Base) Position() core.Vec2 {
	if b.released {
		return b.lastPos
	}
	return b.body.Position()
}

// Velocity returns the body velocity.
func (b *Base) Velocity() core.Vec2 {
	return b.body.Velocity()
}

// SetVelocity overwrites the body velocity.
func (b *Base) SetVelocity(v core.Vec2) {
	b.body.SetVelocity(v)
}
