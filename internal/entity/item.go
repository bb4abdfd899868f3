package entity

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/physics"
)

// ItemKind groups items by how they are used.
type ItemKind int

const (
	ItemHand ItemKind = iota
	ItemBlock
	ItemTool
	ItemFood
)

func (k ItemKind) String() string {
	switch k {
	case ItemHand:
		return "hand"
	case ItemBlock:
		return "block"
	case ItemTool:
		return "tool"
	case ItemFood:
		return "food"
	default:
		return "unknown"
	}
}

// Item is an inventory-level thing. It has no body; see DroppedItem.
type Item struct {
	ID       string
	Kind     ItemKind
	Strength float64 // food restored when eaten; zero if inedible
}

// Edible reports whether the item can be eaten.
func (i Item) Edible() bool { return i.Strength > 0 }

// BlockID returns the block the item places, if any.
func (i Item) BlockID() (string, bool) {
	if i.Kind != ItemBlock {
		return "", false
	}
	id, ok := itemBlocks[i.ID]
	return id, ok
}

var placeableItems = map[string]bool{
	"dirt":           true,
	"stone":          true,
	"wood":           true,
	"leaves":         true,
	"stick":          true,
	"apple":          true,
	"crafting_table": true,
	"furnace":        true,
	"wool":           true,
	"honey":          true,
	"diamond":        true,
	"cooked_apple":   true,
}

// itemBlocks maps placeable items to the block they become.
var itemBlocks = map[string]string{
	"dirt":           "dirt",
	"stone":          "stone",
	"wood":           "wood",
	"leaves":         "leaf",
	"crafting_table": "crafting_table",
	"furnace":        "furnace",
	"honey":          "honey",
	"diamond":        "diamond",
}

var toolMaterials = map[string]bool{
	"wood":    true,
	"stone":   true,
	"iron":    true,
	"golden":  true,
	"diamond": true,
}

var toolTypes = map[string]bool{
	"pickaxe": true,
	"axe":     true,
	"shovel":  true,
	"sword":   true,
}

var foodStrength = map[string]float64{
	"apple":        2,
	"cooked_apple": 4,
	"honey":        3,
}

// NewItem resolves an item identifier. Accepted forms:
//
//	NewItem("hands")
//	NewItem("dirt")               block item
//	NewItem("apple")              block item that can also be eaten
//	NewItem("pickaxe", "stone")   tool of a material
//	NewItem("food", "apple")      edible item
func NewItem(id ...string) (Item, error) {
	switch len(id) {
	case 1:
		if id[0] == "hands" {
			return Item{ID: "hands", Kind: ItemHand}, nil
		}
		if placeableItems[id[0]] {
			return Item{ID: id[0], Kind: ItemBlock, Strength: foodStrength[id[0]]}, nil
		}
	case 2:
		if id[0] == "food" {
			if s, ok := foodStrength[id[1]]; ok {
				return Item{ID: id[1], Kind: ItemFood, Strength: s}, nil
			}
			break
		}
		if toolMaterials[id[1]] && toolTypes[id[0]] {
			return Item{ID: id[1] + "_" + id[0], Kind: ItemTool}, nil
		}
	}
	return Item{}, fmt.Errorf("%w: %s", ErrUnknownItem, strings.Join(id, "/"))
}

// DroppedItem is an item lying in the world with a small round body.
type DroppedItem struct {
	Base

	item   Item
	radius float64
	mass   float64
}

// NewDroppedItem wraps item in a pickup-able body.
func NewDroppedItem(item Item, cfg config.ItemsConfig) *DroppedItem {
	return &DroppedItem{item: item, radius: cfg.Radius, mass: cfg.Mass}
}

// Item returns the carried item.
func (d *DroppedItem) Item() Item { return d.item }

// Kind returns the item id.
func (d *DroppedItem) Kind() string { return d.item.ID }

// Category returns the item collision category.
func (d *DroppedItem) Category() physics.Category { return physics.CategoryItem }

// BodySpec returns a small circle.
func (d *DroppedItem) BodySpec() physics.BodySpec {
	return physics.BodySpec{
		Kind:       physics.Dynamic,
		Category:   physics.CategoryItem,
		Shape:      physics.ShapeCircle,
		Radius:     d.radius,
		Mass:       d.mass,
		Friction:   0.8,
		Elasticity: 0.1,
	}
}
