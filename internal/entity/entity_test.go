package entity

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/physics"
	"github.com/vovakirdan/tui-sandbox/internal/physics/physicstest"
)

func bindPlayer(t *testing.T) (*Player, *physicstest.Scripted) {
	t.Helper()
	backend := physicstest.New()
	p := NewPlayer(config.DefaultWorldConfig().Player)
	id, err := backend.AddBody(p.BodySpec())
	if err != nil {
		t.Fatalf("AddBody() failed: %v", err)
	}
	p.Bind(physics.NewHandle(backend, id))
	return p, backend
}

func TestPlayerMoveAndJump(t *testing.T) {
	p, _ := bindPlayer(t)

	p.Move(1, 0)
	if v := p.Velocity(); v != core.V(80, 0) {
		t.Errorf("Velocity after Move(1, 0) = %v, expected (80, 0)", v)
	}

	p.Jump()
	if v := p.Velocity(); v != core.V(64, -200) {
		t.Errorf("Velocity after Jump() = %v, expected (64, -200)", v)
	}
}

func TestPlayerHealthClamped(t *testing.T) {
	p := NewPlayer(config.DefaultWorldConfig().Player)

	p.ChangeHealth(5)
	if p.Health() != 20 {
		t.Errorf("Health = %f, expected clamp at 20", p.Health())
	}
	p.ChangeHealth(-25)
	if p.Health() != 0 {
		t.Errorf("Health = %f, expected clamp at 0", p.Health())
	}
	if !p.IsDead() {
		t.Error("Player with zero health should be dead")
	}

	p.ChangeFood(-1)
	if p.Food() != 19 {
		t.Errorf("Food = %f, expected 19", p.Food())
	}
}

func TestReleaseKeepsLastPosition(t *testing.T) {
	p, backend := bindPlayer(t)
	p.Body().SetPosition(core.V(40, 50))

	id := p.Body().ID()
	p.Release()
	if err := backend.RemoveBody(id); err != nil {
		t.Fatal(err)
	}

	if !p.Released() {
		t.Error("Released() should be true")
	}
	if p.Body().Attached() {
		t.Error("Released entity should hold a detached handle")
	}
	if p.Position() != core.V(40, 50) {
		t.Errorf("Position() = %v, expected last position (40, 50)", p.Position())
	}

	// Writes through a detached handle are dropped.
	p.Move(1, 0)
	if p.Velocity() != (core.Vec2{}) {
		t.Errorf("Velocity() = %v, expected zero", p.Velocity())
	}
}

func TestInventoryStacks(t *testing.T) {
	inv := NewInventory(2, 3)
	dirt, _ := NewItem("dirt")
	stone, _ := NewItem("stone")

	for i := 0; i < 4; i++ {
		if !inv.Add(dirt) {
			t.Fatalf("Add(dirt) #%d should fit", i+1)
		}
	}
	if inv.Count("dirt") != 4 {
		t.Errorf("Count(dirt) = %d, expected 4", inv.Count("dirt"))
	}
	if len(inv.Stacks()) != 2 {
		t.Errorf("Stacks = %d, expected 2 (3 + 1)", len(inv.Stacks()))
	}

	// Both slots are taken by dirt, a new kind does not fit.
	if inv.Add(stone) {
		t.Error("Add(stone) should fail on a full inventory")
	}
	if inv.Total() != 4 {
		t.Errorf("Total() = %d, expected 4", inv.Total())
	}
}

func TestInventoryRemove(t *testing.T) {
	inv := NewInventory(3, 2)
	dirt, _ := NewItem("dirt")
	wool, _ := NewItem("wool")
	inv.Add(dirt)
	inv.Add(dirt)
	inv.Add(wool)
	inv.Add(dirt)

	if !inv.Remove("dirt") {
		t.Fatal("Remove(dirt) should succeed")
	}
	// The second dirt stack held one item and is gone.
	stacks := inv.Stacks()
	if len(stacks) != 2 || stacks[1].Item.ID != "wool" {
		t.Errorf("Stacks = %v, expected dirt then wool", stacks)
	}
	if inv.Count("dirt") != 2 {
		t.Errorf("Count(dirt) = %d, expected 2", inv.Count("dirt"))
	}

	inv.Remove("wool")
	if inv.Remove("wool") {
		t.Error("Remove(wool) should fail once none is carried")
	}
	if _, ok := inv.Find("wool"); ok {
		t.Error("Find(wool) should fail once none is carried")
	}
	if got, ok := inv.Find("dirt"); !ok || got != dirt {
		t.Errorf("Find(dirt) = %v, %v", got, ok)
	}
}

func TestItemBlockAndEdible(t *testing.T) {
	tests := []struct {
		id     string
		block  string
		edible bool
	}{
		{"dirt", "dirt", false},
		{"leaves", "leaf", false},
		{"honey", "honey", true},
		{"apple", "", true},
		{"wool", "", false},
	}

	for _, tc := range tests {
		item, err := NewItem(tc.id)
		if err != nil {
			t.Fatalf("NewItem(%s) failed: %v", tc.id, err)
		}
		block, ok := item.BlockID()
		if block != tc.block || ok != (tc.block != "") {
			t.Errorf("%s.BlockID() = %q, %v, expected %q", tc.id, block, ok, tc.block)
		}
		if item.Edible() != tc.edible {
			t.Errorf("%s.Edible() = %v, expected %v", tc.id, item.Edible(), tc.edible)
		}
	}

	hands, _ := NewItem("hands")
	if _, ok := hands.BlockID(); ok || hands.Edible() {
		t.Error("hands should be neither placeable nor edible")
	}
}

func TestNewItem(t *testing.T) {
	tests := []struct {
		id   []string
		want Item
		err  bool
	}{
		{[]string{"hands"}, Item{ID: "hands", Kind: ItemHand}, false},
		{[]string{"wool"}, Item{ID: "wool", Kind: ItemBlock}, false},
		{[]string{"apple"}, Item{ID: "apple", Kind: ItemBlock, Strength: 2}, false},
		{[]string{"pickaxe", "stone"}, Item{ID: "stone_pickaxe", Kind: ItemTool}, false},
		{[]string{"food", "apple"}, Item{ID: "apple", Kind: ItemFood, Strength: 2}, false},
		{[]string{"pickaxe", "cheese"}, Item{}, true},
		{[]string{"food", "rock"}, Item{}, true},
		{[]string{"lava"}, Item{}, true},
		{nil, Item{}, true},
	}

	for _, tc := range tests {
		got, err := NewItem(tc.id...)
		if tc.err {
			if !errors.Is(err, ErrUnknownItem) {
				t.Errorf("NewItem(%v) error = %v, expected ErrUnknownItem", tc.id, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewItem(%v) failed: %v", tc.id, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NewItem(%v) = %+v, expected %+v", tc.id, got, tc.want)
		}
	}
}

func TestNewBlockAndMine(t *testing.T) {
	b, err := NewBlock("dirt")
	if err != nil {
		t.Fatalf("NewBlock(dirt) failed: %v", err)
	}
	if b.Kind() != "dirt" || b.Hits() != 2 {
		t.Fatalf("Block = %s/%d, expected dirt/2", b.Kind(), b.Hits())
	}

	if b.Mine(1) {
		t.Error("First hit should not mine out dirt")
	}
	if !b.Mine(1) {
		t.Error("Second hit should mine out dirt")
	}

	drops := b.Drops()
	if len(drops) != 1 || drops[0] != (Drop{DropItem, "dirt"}) {
		t.Errorf("Drops() = %v, expected one dirt item", drops)
	}

	hive, _ := NewBlock("hive")
	var mobs int
	for _, d := range hive.Drops() {
		if d.Category == DropMob {
			mobs++
		}
	}
	if mobs != 1 {
		t.Errorf("Hive mob drops = %d, expected 1", mobs)
	}

	if _, err := NewBlock("lava"); !errors.Is(err, ErrUnknownBlock) {
		t.Errorf("NewBlock(lava) error = %v, expected ErrUnknownBlock", err)
	}
	if _, err := NewBlock("dirt", "extra"); !errors.Is(err, ErrUnknownBlock) {
		t.Errorf("NewBlock(dirt, extra) error = %v, expected ErrUnknownBlock", err)
	}
}

func TestBodySpecsAreValid(t *testing.T) {
	cfg := config.DefaultWorldConfig()
	b, _ := NewBlock("stone")
	b.SetSize(cfg.Grid.BlockSize)
	apple, _ := NewItem("apple")

	for _, e := range []Entity{NewPlayer(cfg.Player), b, NewDroppedItem(apple, cfg.Items)} {
		if err := e.BodySpec().Validate(); err != nil {
			t.Errorf("%s BodySpec invalid: %v", e.Kind(), err)
		}
		if e.BodySpec().Category != e.Category() {
			t.Errorf("%s BodySpec category mismatch", e.Kind())
		}
	}
}
