package mob

import (
	"math"

	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/core"
)

// Wanderer adds a random impulse on an ellipse wider than it is tall, then
// lifts the mob against gravity.
type Wanderer struct {
	XScale  float64 // Horizontal stretch of the impulse
	Gravity float64 // Upward compensation subtracted from vy
}

// WandererFor builds a Wanderer from an archetype.
func WandererFor(cfg config.ArchetypeConfig) Wanderer {
	return Wanderer{XScale: cfg.XScale, Gravity: cfg.GravityFactor}
}

// Sample applies one wander impulse.
func (w Wanderer) Sample(m *Mob, ctx StepContext, _, _ []core.Vec2) Branch {
	d := core.Polar(m.tempo*m.vigor(), ctx.Rand.Float64()*2*math.Pi)
	d.X *= w.XScale

	v := m.Velocity()
	m.SetVelocity(core.V(v.X+d.X, v.Y+d.Y-w.Gravity))
	return BranchWander
}

// Seeker attacks players, hovers around resources, and otherwise wanders.
// Exactly one branch runs per sample, tried in that order.
type Seeker struct {
	Wanderer
	AttackRate float64 // Chance of picking a target each sample
	Jitter     int     // Max velocity per axis near resources
}

// Sample applies the first applicable branch.
func (s *Seeker) Sample(m *Mob, ctx StepContext, players, resources []core.Vec2) Branch {
	if ctx.Rand.Float64() < s.AttackRate && len(players) > 0 {
		target := players[ctx.Rand.Intn(len(players))]
		pos := m.Position()
		v := m.Velocity()
		m.SetVelocity(core.V(towards(v.X, pos.X, target.X), towards(v.Y, pos.Y, target.Y)))
		return BranchAttack
	}

	if len(resources) > 0 {
		span := 2*s.Jitter + 1
		vx := ctx.Rand.Intn(span) - s.Jitter
		vy := ctx.Rand.Intn(span) - s.Jitter
		m.SetVelocity(core.V(float64(vx), float64(vy)))
		return BranchResource
	}

	return s.Wanderer.Sample(m, ctx, players, resources)
}

// towards keeps the magnitude of v and points it from p at target.
func towards(v, p, target float64) float64 {
	if target > p {
		return math.Abs(v)
	}
	return -math.Abs(v)
}
