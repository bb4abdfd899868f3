package entity

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/physics"
)

// DropCategory says what a mined block leaves behind.
type DropCategory string

const (
	DropItem DropCategory = "item"
	DropMob  DropCategory = "mob"
)

// Drop is one thing spawned when a block is mined out.
type Drop struct {
	Category DropCategory
	ID       string
}

type blockDef struct {
	hits  int
	drops []Drop
}

var blockDefs = map[string]blockDef{
	"dirt":           {hits: 2, drops: []Drop{{DropItem, "dirt"}}},
	"stone":          {hits: 4, drops: []Drop{{DropItem, "stone"}}},
	"wood":           {hits: 3, drops: []Drop{{DropItem, "wood"}}},
	"leaf":           {hits: 1, drops: []Drop{{DropItem, "leaves"}, {DropItem, "apple"}}},
	"honey":          {hits: 2, drops: []Drop{{DropItem, "honey"}}},
	"hive":           {hits: 3, drops: []Drop{{DropMob, "foe_bee"}, {DropItem, "honey"}}},
	"crafting_table": {hits: 3, drops: []Drop{{DropItem, "crafting_table"}}},
	"furnace":        {hits: 4, drops: []Drop{{DropItem, "furnace"}}},
	"diamond":        {hits: 6, drops: []Drop{{DropItem, "diamond"}}},
}

// Block is a static grid cell with hit points.
type Block struct {
	Base

	kind  string
	hits  int
	drops []Drop
	size  float64
}

// NewBlock resolves a block identifier such as NewBlock("dirt").
func NewBlock(id ...string) (*Block, error) {
	if len(id) != 1 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBlock, strings.Join(id, "/"))
	}
	def, ok := blockDefs[id[0]]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBlock, id[0])
	}
	return &Block{kind: id[0], hits: def.hits, drops: def.drops}, nil
}

// Kind returns the block id.
func (b *Block) Kind() string { return b.kind }

// Category returns the block collision category.
func (b *Block) Category() physics.Category { return physics.CategoryBlock }

// SetSize sets the cell edge length used for the body.
func (b *Block) SetSize(size float64) { b.size = size }

// Size returns the cell edge length.
func (b *Block) Size() float64 { return b.size }

// BodySpec returns a static square filling one cell.
func (b *Block) BodySpec() physics.BodySpec {
	return physics.BodySpec{
		Kind:     physics.Static,
		Category: physics.CategoryBlock,
		Shape:    physics.ShapeBox,
		Size:     core.V(b.size, b.size),
		Friction: 0.9,
	}
}

// Hits returns the remaining hit points.
func (b *Block) Hits() int { return b.hits }

// Mine removes power hit points and reports whether the block is mined out.
func (b *Block) Mine(power int) bool {
	if b.hits > 0 {
		b.hits -= power
	}
	return b.hits <= 0
}

// Drops returns what the block leaves when mined out.
func (b *Block) Drops() []Drop {
	out := make([]Drop, len(b.drops))
	copy(out, b.drops)
	return out
}
