// Package config provides YAML-based world configuration loading for the
// sandbox.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid world config")

// WorldConfig contains all tunables of a sandbox world.
type WorldConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	Grid    GridConfig    `yaml:"grid"`
	Player  PlayerConfig  `yaml:"player"`
	Items   ItemsConfig   `yaml:"items"`
	Mobs    MobsConfig    `yaml:"mobs"`
}

// PhysicsConfig defines global physics parameters.
type PhysicsConfig struct {
	Gravity  float64 `yaml:"gravity"`  // Downward acceleration in px/s²
	TickMS   int     `yaml:"tick_ms"`  // Fixed step length
	Friction float64 `yaml:"friction"` // Default shape friction
	FallOut  int     `yaml:"fall_out"` // Grid heights below the world before a body is discarded
}

// GridConfig defines the block grid.
type GridConfig struct {
	Width     int     `yaml:"width"`      // Columns
	Height    int     `yaml:"height"`     // Rows
	BlockSize float64 `yaml:"block_size"` // Pixels per cell
}

// PlayerConfig defines the player body and abilities.
type PlayerConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Mass          float64 `yaml:"mass"`
	MaxHealth     float64 `yaml:"max_health"`
	MaxFood       float64 `yaml:"max_food"`
	MoveImpulse   float64 `yaml:"move_impulse"`   // Velocity added per move action
	JumpImpulse   float64 `yaml:"jump_impulse"`   // Upward velocity added per jump
	JumpDamping   float64 `yaml:"jump_damping"`   // Horizontal velocity multiplier on jump
	Reach         float64 `yaml:"reach"`          // Mining range in cells
	InventorySize int     `yaml:"inventory_size"` // Distinct item stacks carried
	StackSize     int     `yaml:"stack_size"`     // Items per stack
}

// ItemsConfig defines dropped item bodies.
type ItemsConfig struct {
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass"`
}

// MobsConfig holds per-archetype settings.
type MobsConfig struct {
	Bird  ArchetypeConfig `yaml:"bird"`
	Sheep ArchetypeConfig `yaml:"sheep"`
	Bee   BeeConfig       `yaml:"bee"`
}

// ArchetypeConfig defines a wandering mob.
type ArchetypeConfig struct {
	ID            string  `yaml:"id"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Mass          float64 `yaml:"mass"`
	MaxHealth     float64 `yaml:"max_health"`
	Tempo         float64 `yaml:"tempo"`          // Signed movement magnitude
	XScale        float64 `yaml:"x_scale"`        // Horizontal stretch of the wander ellipse
	GravityFactor float64 `yaml:"gravity_factor"` // Upward compensation applied per sample
	Interval      int     `yaml:"interval"`       // Ticks between samples
}

// BeeConfig extends a wanderer with attack and resource seeking.
type BeeConfig struct {
	ArchetypeConfig  `yaml:",inline"`
	AttackRate       float64  `yaml:"attack_rate"`       // Probability of targeting a player per sample
	HoneyJitter      int      `yaml:"honey_jitter"`      // Max velocity per axis near resources
	AttractionRadius float64  `yaml:"attraction_radius"` // Distance at which resources attract
	ResourceBlocks   []string `yaml:"resource_blocks"`   // Block kinds that attract bees
	SwarmDistance    int      `yaml:"swarm_distance"`    // Spawn scatter around a swarm centre
}

// DT returns the fixed step in seconds.
func (c WorldConfig) DT() float64 {
	return float64(c.Physics.TickMS) / 1000
}

// PixelSize returns the world extent in pixels.
func (c WorldConfig) PixelSize() (w, h float64) {
	return float64(c.Grid.Width) * c.Grid.BlockSize, float64(c.Grid.Height) * c.Grid.BlockSize
}

// Validate reports the first unusable setting.
func (c WorldConfig) Validate() error {
	if c.Physics.TickMS <= 0 {
		return fmt.Errorf("%w: physics.tick_ms must be positive", ErrInvalidConfig)
	}
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 || c.Grid.BlockSize <= 0 {
		return fmt.Errorf("%w: grid dimensions must be positive", ErrInvalidConfig)
	}
	if c.Player.MaxHealth <= 0 || c.Player.Mass <= 0 {
		return fmt.Errorf("%w: player max_health and mass must be positive", ErrInvalidConfig)
	}
	if c.Items.Radius <= 0 || c.Items.Mass <= 0 {
		return fmt.Errorf("%w: items radius and mass must be positive", ErrInvalidConfig)
	}
	archetypes := []struct {
		name string
		cfg  ArchetypeConfig
	}{
		{"bird", c.Mobs.Bird},
		{"sheep", c.Mobs.Sheep},
		{"bee", c.Mobs.Bee.ArchetypeConfig},
	}
	seen := make(map[string]string, len(archetypes))
	for _, a := range archetypes {
		if err := a.cfg.validate(); err != nil {
			return fmt.Errorf("%w: mobs.%s: %s", ErrInvalidConfig, a.name, err)
		}
		if other, ok := seen[a.cfg.ID]; ok {
			return fmt.Errorf("%w: mobs.%s: id %q already used by mobs.%s", ErrInvalidConfig, a.name, a.cfg.ID, other)
		}
		seen[a.cfg.ID] = a.name
	}
	if c.Mobs.Bee.AttackRate < 0 || c.Mobs.Bee.AttackRate > 1 {
		return fmt.Errorf("%w: mobs.bee.attack_rate must be within [0, 1]", ErrInvalidConfig)
	}
	if c.Mobs.Bee.HoneyJitter < 0 {
		return fmt.Errorf("%w: mobs.bee.honey_jitter must not be negative", ErrInvalidConfig)
	}
	if c.Mobs.Bee.AttractionRadius < 0 {
		return fmt.Errorf("%w: mobs.bee.attraction_radius must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (a ArchetypeConfig) validate() error {
	switch {
	case a.ID == "":
		return errors.New("id is required")
	case a.MaxHealth <= 0:
		return errors.New("max_health must be positive")
	case a.Interval <= 0:
		return errors.New("interval must be positive")
	case a.Width <= 0 || a.Height <= 0 || a.Mass <= 0:
		return errors.New("size and mass must be positive")
	}
	return nil
}
