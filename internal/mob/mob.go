// Package mob implements creature behaviour: a Mob owns its health and step
// counter, and a Behavior decides how its velocity changes on sampling ticks.
package mob

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/entity"
	"github.com/vovakirdan/tui-sandbox/internal/physics"
)

// ErrInvalidMobState is returned for mobs that cannot be stepped, such as a
// mob without positive max health.
var ErrInvalidMobState = errors.New("mob: invalid mob state")

// Source is the randomness a mob draws from. *rand.Rand satisfies it.
type Source interface {
	// Float64 returns a number in [0, 1).
	Float64() float64
	// Intn returns a number in [0, n).
	Intn(n int) int
}

// StepContext is shared by every mob stepped in the same tick.
type StepContext struct {
	DT   float64
	Tick uint64
	Rand Source
}

// Branch names the decision a mob made on a step.
type Branch int

const (
	BranchIdle     Branch = iota // Not a sampling tick
	BranchAttack                 // Steered toward a player
	BranchResource               // Jittered near a resource block
	BranchWander                 // Sampled a random wander impulse
)

func (b Branch) String() string {
	switch b {
	case BranchIdle:
		return "idle"
	case BranchAttack:
		return "attack"
	case BranchResource:
		return "resource"
	case BranchWander:
		return "wander"
	default:
		return "unknown"
	}
}

// Behavior updates a mob's velocity on a sampling tick.
type Behavior interface {
	Sample(m *Mob, ctx StepContext, players, resources []core.Vec2) Branch
}

// Mob is a creature with a body, health and a behaviour.
type Mob struct {
	entity.Base

	id        string
	size      core.Vec2
	mass      float64
	tempo     float64
	health    float64
	maxHealth float64
	interval  int
	steps     int

	behavior Behavior
	yield    []entity.Drop
}

// New creates a mob at full health from an archetype.
func New(cfg config.ArchetypeConfig, b Behavior) (*Mob, error) {
	if cfg.MaxHealth <= 0 {
		return nil, fmt.Errorf("%w: %s max health %g", ErrInvalidMobState, cfg.ID, cfg.MaxHealth)
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("%w: %s interval %d", ErrInvalidMobState, cfg.ID, cfg.Interval)
	}
	return &Mob{
		id:        cfg.ID,
		size:      core.V(cfg.Width, cfg.Height),
		mass:      cfg.Mass,
		tempo:     cfg.Tempo,
		health:    cfg.MaxHealth,
		maxHealth: cfg.MaxHealth,
		interval:  cfg.Interval,
		behavior:  b,
	}, nil
}

// NewBird creates a wandering bird.
func NewBird(cfg config.ArchetypeConfig) (*Mob, error) {
	return New(cfg, WandererFor(cfg))
}

// NewSheep creates a wandering sheep that yields wool when used.
func NewSheep(cfg config.ArchetypeConfig) (*Mob, error) {
	m, err := New(cfg, WandererFor(cfg))
	if err != nil {
		return nil, err
	}
	m.yield = []entity.Drop{{Category: entity.DropItem, ID: "wool"}}
	return m, nil
}

// NewBee creates a resource-seeking bee.
func NewBee(cfg config.BeeConfig) (*Mob, error) {
	if cfg.HoneyJitter < 0 {
		return nil, fmt.Errorf("%w: %s honey jitter %d", ErrInvalidMobState, cfg.ID, cfg.HoneyJitter)
	}
	return New(cfg.ArchetypeConfig, &Seeker{
		Wanderer:   WandererFor(cfg.ArchetypeConfig),
		AttackRate: cfg.AttackRate,
		Jitter:     cfg.HoneyJitter,
	})
}

// Kind returns the archetype id.
func (m *Mob) Kind() string { return m.id }

// Category returns the mob collision category.
func (m *Mob) Category() physics.Category { return physics.CategoryMob }

// BodySpec returns an upright box.
func (m *Mob) BodySpec() physics.BodySpec {
	return physics.BodySpec{
		Kind:          physics.Dynamic,
		Category:      physics.CategoryMob,
		Shape:         physics.ShapeBox,
		Size:          m.size,
		Mass:          m.mass,
		FixedRotation: true,
		Friction:      0.5,
	}
}

// Size returns the body extent.
func (m *Mob) Size() core.Vec2 { return m.size }

// Tempo returns the signed movement magnitude.
func (m *Mob) Tempo() float64 { return m.tempo }

// Health returns current health.
func (m *Mob) Health() float64 { return m.health }

// MaxHealth returns the starting health.
func (m *Mob) MaxHealth() float64 { return m.maxHealth }

// Steps returns how many times the mob has been stepped.
func (m *Mob) Steps() int { return m.steps }

// Dead reports whether the mob should leave the world.
func (m *Mob) Dead() bool { return m.health <= 0 }

// Behavior returns the mob's behaviour.
func (m *Mob) Behavior() Behavior { return m.behavior }

// Attack takes one health point on a successful hit. The mob never removes
// itself; the world checks Dead after attacking.
func (m *Mob) Attack(successful bool) {
	if successful && m.health > 0 {
		m.health--
	}
}

// Use returns what the mob yields when a player uses it.
func (m *Mob) Use() []entity.Drop {
	if len(m.yield) == 0 {
		return nil
	}
	out := make([]entity.Drop, len(m.yield))
	copy(out, m.yield)
	return out
}

// Step advances the step counter, letting the behaviour sample on every
// interval-th step starting with the first.
// Panics with ErrInvalidMobState if the mob has no positive max health.
func (m *Mob) Step(ctx StepContext, players, resources []core.Vec2) Branch {
	if m.maxHealth <= 0 || m.interval <= 0 {
		panic(fmt.Errorf("%w: stepping %s with max health %g", ErrInvalidMobState, m.id, m.maxHealth))
	}

	sample := m.steps%m.interval == 0
	m.steps++
	if !sample || m.behavior == nil {
		return BranchIdle
	}
	return m.behavior.Sample(m, ctx, players, resources)
}

// vigor scales movement by remaining health.
func (m *Mob) vigor() float64 {
	return m.health / m.maxHealth
}
