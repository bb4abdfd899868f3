package world

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/entity"
	"github.com/vovakirdan/tui-sandbox/internal/physics"
)

func TestRegistryRegisterLookup(t *testing.T) {
	r := NewRegistry()
	p := entity.NewPlayer(config.DefaultWorldConfig().Player)

	if err := r.Register(p, 7, physics.CategoryPlayer); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	e, cat, err := r.Lookup(7)
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if e != entity.Entity(p) || cat != physics.CategoryPlayer {
		t.Errorf("Lookup() = %v/%s, expected the player", e, cat)
	}
}

func TestRegistryRejectsDuplicate(t *testing.T) {
	r := NewRegistry()
	cfg := config.DefaultWorldConfig().Player

	if err := r.Register(entity.NewPlayer(cfg), 1, physics.CategoryPlayer); err != nil {
		t.Fatal(err)
	}
	err := r.Register(entity.NewPlayer(cfg), 1, physics.CategoryPlayer)
	if !errors.Is(err, ErrDuplicateRegistration) {
		t.Errorf("Second Register() error = %v, expected ErrDuplicateRegistration", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", r.Len())
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	cfg := config.DefaultWorldConfig().Player
	a, b, c := entity.NewPlayer(cfg), entity.NewPlayer(cfg), entity.NewPlayer(cfg)
	r.Register(a, 1, physics.CategoryPlayer)
	r.Register(b, 2, physics.CategoryPlayer)
	r.Register(c, 3, physics.CategoryPlayer)

	if err := r.Unregister(2); err != nil {
		t.Fatalf("Unregister() failed: %v", err)
	}
	if _, _, err := r.Lookup(2); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("Lookup() after Unregister error = %v, expected ErrUnknownBody", err)
	}
	if err := r.Unregister(2); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("Second Unregister() error = %v, expected ErrUnknownBody", err)
	}

	got := r.Entities()
	if len(got) != 2 || got[0] != entity.Entity(a) || got[1] != entity.Entity(c) {
		t.Errorf("Entities() = %v, expected [a c] in registration order", got)
	}
}
