package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultWorldConfigIsValid(t *testing.T) {
	if err := DefaultWorldConfig().Validate(); err != nil {
		t.Fatalf("DefaultWorldConfig() is invalid: %v", err)
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := parseWorld(defaultWorldYAML)
	if err != nil {
		t.Fatalf("embedded default failed to parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultWorldConfig()) {
		t.Errorf("embedded YAML and DefaultWorldConfig() disagree:\n%+v\n%+v", cfg, DefaultWorldConfig())
	}
}

func TestLoadWorldCustomPathOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	data := []byte(`
physics:
  gravity: 500
mobs:
  bee:
    attack_rate: 0.5
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWorld(path)
	if err != nil {
		t.Fatalf("LoadWorld() failed: %v", err)
	}

	if cfg.Physics.Gravity != 500 {
		t.Errorf("Gravity = %f, expected 500", cfg.Physics.Gravity)
	}
	if cfg.Mobs.Bee.AttackRate != 0.5 {
		t.Errorf("AttackRate = %f, expected 0.5", cfg.Mobs.Bee.AttackRate)
	}
	// Untouched keys keep their defaults
	if cfg.Mobs.Bee.ID != "foe_bee" {
		t.Errorf("Bee ID = %q, expected default foe_bee", cfg.Mobs.Bee.ID)
	}
	if cfg.Grid.BlockSize != 32 {
		t.Errorf("BlockSize = %f, expected default 32", cfg.Grid.BlockSize)
	}
}

func TestLoadWorldMissingCustomPath(t *testing.T) {
	_, err := LoadWorld(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("LoadWorld() should fail for a missing custom path")
	}
}

func TestLoadWorldRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	data := []byte(`
mobs:
  sheep:
    max_health: 0
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadWorld(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadWorld() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WorldConfig)
	}{
		{"zero tick", func(c *WorldConfig) { c.Physics.TickMS = 0 }},
		{"zero block size", func(c *WorldConfig) { c.Grid.BlockSize = 0 }},
		{"bird interval", func(c *WorldConfig) { c.Mobs.Bird.Interval = 0 }},
		{"bee health", func(c *WorldConfig) { c.Mobs.Bee.MaxHealth = -1 }},
		{"attack rate", func(c *WorldConfig) { c.Mobs.Bee.AttackRate = 1.5 }},
		{"item radius", func(c *WorldConfig) { c.Items.Radius = 0 }},
		{"honey jitter", func(c *WorldConfig) { c.Mobs.Bee.HoneyJitter = -5 }},
		{"attraction radius", func(c *WorldConfig) { c.Mobs.Bee.AttractionRadius = -1 }},
		{"duplicate mob id", func(c *WorldConfig) { c.Mobs.Sheep.ID = c.Mobs.Bee.ID }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultWorldConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidateReportsFirstArchetype(t *testing.T) {
	cfg := DefaultWorldConfig()
	cfg.Mobs.Bird.Interval = 0
	cfg.Mobs.Sheep.Interval = 0
	cfg.Mobs.Bee.Interval = 0

	// Archetypes are checked in a fixed order, so the error never varies.
	for i := 0; i < 20; i++ {
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "mobs.bird:") {
			t.Fatalf("Validate() = %v, expected the bird reported first", err)
		}
	}

	cfg = DefaultWorldConfig()
	cfg.Mobs.Bird.ID = cfg.Mobs.Sheep.ID
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "mobs.sheep") || !strings.Contains(err.Error(), "mobs.bird") {
		t.Errorf("Validate() = %v, expected the sheep reported as clashing with the bird", err)
	}
}

func TestDT(t *testing.T) {
	cfg := DefaultWorldConfig()
	if cfg.DT() != 0.015 {
		t.Errorf("DT() = %f, expected 0.015", cfg.DT())
	}
}
