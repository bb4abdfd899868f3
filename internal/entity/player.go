package entity

import (
	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/physics"
)

// Player is the user-controlled entity.
type Player struct {
	Base

	cfg       config.PlayerConfig
	health    float64
	food      float64
	inventory *Inventory
}

// NewPlayer creates a player at full health and food.
func NewPlayer(cfg config.PlayerConfig) *Player {
	return &Player{
		cfg:       cfg,
		health:    cfg.MaxHealth,
		food:      cfg.MaxFood,
		inventory: NewInventory(cfg.InventorySize, cfg.StackSize),
	}
}

// Kind returns "player".
func (p *Player) Kind() string {
	return "player"
}

// Category returns the player collision category.
func (p *Player) Category() physics.Category {
	return physics.CategoryPlayer
}

// BodySpec returns an upright box that never rotates.
func (p *Player) BodySpec() physics.BodySpec {
	return physics.BodySpec{
		Kind:          physics.Dynamic,
		Category:      physics.CategoryPlayer,
		Shape:         physics.ShapeBox,
		Size:          core.V(p.cfg.Width, p.cfg.Height),
		Mass:          p.cfg.Mass,
		FixedRotation: true,
	}
}

// Health returns current health.
func (p *Player) Health() float64 { return p.health }

// MaxHealth returns the health ceiling.
func (p *Player) MaxHealth() float64 { return p.cfg.MaxHealth }

// Food returns current food.
func (p *Player) Food() float64 { return p.food }

// MaxFood returns the food ceiling.
func (p *Player) MaxFood() float64 { return p.cfg.MaxFood }

// Reach returns the mining range in cells.
func (p *Player) Reach() float64 { return p.cfg.Reach }

// Inventory returns the player's carried items.
func (p *Player) Inventory() *Inventory { return p.inventory }

// ChangeHealth adds delta to health, clamped to [0, max].
func (p *Player) ChangeHealth(delta float64) {
	p.health = core.ClampF(p.health+delta, 0, p.cfg.MaxHealth)
}

// ChangeFood adds delta to food, clamped to [0, max].
func (p *Player) ChangeFood(delta float64) {
	p.food = core.ClampF(p.food+delta, 0, p.cfg.MaxFood)
}

// IsDead reports whether health is exhausted.
func (p *Player) IsDead() bool {
	return p.health <= 0
}

// Move adds a scaled direction to the player's velocity.
func (p *Player) Move(dx, dy float64) {
	v := p.Velocity()
	p.SetVelocity(core.V(v.X+dx*p.cfg.MoveImpulse, v.Y+dy*p.cfg.MoveImpulse))
}

// Jump damps horizontal speed and kicks the player upward.
func (p *Player) Jump() {
	v := p.Velocity()
	p.SetVelocity(core.V(v.X*p.cfg.JumpDamping, v.Y-p.cfg.JumpImpulse))
}
