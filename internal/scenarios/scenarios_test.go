package scenarios

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/physics"
	"github.com/vovakirdan/tui-sandbox/internal/physics/physicstest"
	"github.com/vovakirdan/tui-sandbox/internal/registry"
	"github.com/vovakirdan/tui-sandbox/internal/world"
)

func load(t *testing.T, id string, seed int64) *world.World {
	t.Helper()
	s, err := registry.Create(id)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", id, err)
	}
	w := world.New(physicstest.New(), config.DefaultWorldConfig())
	p, err := s.Load(w, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", id, err)
	}
	if p == nil || p.Released() {
		t.Fatalf("Load(%q) should return a placed player", id)
	}
	return w
}

func TestScenariosRegistered(t *testing.T) {
	for _, id := range []string{"simple", "meadow", "hive"} {
		if !registry.Exists(id) {
			t.Errorf("Scenario %q is not registered", id)
		}
	}
}

func TestSimpleLayout(t *testing.T) {
	w := load(t, "simple", 1)

	counts := make(map[string]int)
	for _, m := range w.Mobs() {
		counts[m.Kind()]++
	}
	if counts["friendly_bird"] != 1 || counts["friendly_sheep"] != 1 || counts["foe_bee"] != 5 {
		t.Errorf("Mob counts = %v, expected 1 bird, 1 sheep, 5 bees", counts)
	}

	if b, ok := w.BlockAt(w.CellCentre(15, 8)); !ok || b.Kind() != "hive" {
		t.Error("Expected a hive at (15, 8)")
	}
	if b, ok := w.BlockAt(w.CellCentre(3, 5)); !ok || b.Kind() != "wood" {
		t.Error("Expected the top of the trunk at (3, 5)")
	}
	if b, ok := w.BlockAt(w.CellCentre(3, 2)); !ok || b.Kind() != "leaf" {
		t.Error("Expected a leaf at (3, 2)")
	}
	if _, ok := w.BlockAt(w.CellCentre(10, 8)); ok {
		t.Error("Row 8 left of the slope should be open air")
	}

	bee := w.Config().Mobs.Bee
	for _, m := range w.Mobs() {
		if m.Kind() != bee.ID {
			continue
		}
		if !core.V(300, 30).Within(m.Position(), float64(bee.SwarmDistance)*1.5) {
			t.Errorf("Bee at %v strayed from the swarm centre", m.Position())
		}
	}
}

func TestLayoutDeterministic(t *testing.T) {
	for _, id := range []string{"simple", "meadow", "hive"} {
		a := load(t, id, 42).Blocks()
		b := load(t, id, 42).Blocks()
		if len(a) != len(b) {
			t.Fatalf("%s: block counts differ: %d vs %d", id, len(a), len(b))
		}
		for i := range a {
			if a[i].Kind() != b[i].Kind() || a[i].Position() != b[i].Position() {
				t.Fatalf("%s: block %d differs between loads with the same seed", id, i)
			}
		}
	}
}

func TestScenariosRunOnChipmunk(t *testing.T) {
	cfg := config.DefaultWorldConfig()
	for _, info := range registry.List() {
		s, _ := registry.Create(info.ID)
		w := world.New(physics.NewSpace(core.V(0, cfg.Physics.Gravity)), cfg, world.WithSeed(3))
		w.InstallDefaultHandlers()
		if _, err := s.Load(w, rand.New(rand.NewSource(3))); err != nil {
			t.Fatalf("%s: Load() failed: %v", info.ID, err)
		}
		for i := 0; i < 200; i++ {
			w.Step(cfg.DT())
		}
		if w.Stats().Contacts == 0 {
			t.Errorf("%s: expected contacts after 200 ticks", info.ID)
		}
	}
}
