package config

import (
	_ "embed"
)

//go:embed defaults/world.yaml
var defaultWorldYAML []byte

// DefaultWorldConfig returns the default world configuration.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Physics: PhysicsConfig{
			Gravity:  300,
			TickMS:   15,
			Friction: 0.5,
			FallOut:  2,
		},
		Grid: GridConfig{
			Width:     32,
			Height:    16,
			BlockSize: 32,
		},
		Player: PlayerConfig{
			Width:         16,
			Height:        28,
			Mass:          1,
			MaxHealth:     20,
			MaxFood:       20,
			MoveImpulse:   80,
			JumpImpulse:   200,
			JumpDamping:   0.8,
			Reach:         5,
			InventorySize: 40,
			StackSize:     64,
		},
		Items: ItemsConfig{
			Radius: 5,
			Mass:   0.5,
		},
		Mobs: MobsConfig{
			Bird: ArchetypeConfig{
				ID:            "friendly_bird",
				Width:         12,
				Height:        12,
				Mass:          1,
				MaxHealth:     20,
				Tempo:         40,
				XScale:        1.61803,
				GravityFactor: 150,
				Interval:      20,
			},
			Sheep: ArchetypeConfig{
				ID:            "friendly_sheep",
				Width:         30,
				Height:        30,
				Mass:          3,
				MaxHealth:     20,
				Tempo:         40,
				XScale:        1.4,
				GravityFactor: 30,
				Interval:      20,
			},
			Bee: BeeConfig{
				ArchetypeConfig: ArchetypeConfig{
					ID:            "foe_bee",
					Width:         8,
					Height:        8,
					Mass:          0.5,
					MaxHealth:     5,
					Tempo:         40,
					XScale:        2.5,
					GravityFactor: 180,
					Interval:      25,
				},
				AttackRate:       0.2,
				HoneyJitter:      40,
				AttractionRadius: 160,
				ResourceBlocks:   []string{"honey"},
				SwarmDistance:    5,
			},
		},
	}
}
