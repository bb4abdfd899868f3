package world

import (
	"fmt"

	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/entity"
	"github.com/vovakirdan/tui-sandbox/internal/mob"
)

// interactRadius is how close to the target a mob must be to be touched.
const interactRadius = 2.0

// Interaction summarises what a call to Interact did.
type Interaction struct {
	MobsUsed     int
	MobsAttacked int
	MobsKilled   int
	BlockHit     string // Kind of the block struck, if any
	Mined        bool
	Spawned      []entity.Entity
}

// Interact performs a player's primary action at target. Mobs at the target
// are used or attacked, then a block at the target is mined if the player
// can reach it. Must be called between ticks.
func (w *World) Interact(p *entity.Player, target core.Vec2) (Interaction, error) {
	var res Interaction
	if w.advancing {
		return res, fmt.Errorf("world: interact: %w", ErrLocked)
	}

	for _, m := range w.MobsNear(target, interactRadius) {
		if err := w.touchMob(p, m, target, &res); err != nil {
			return res, err
		}
	}

	var drops []entity.Drop
	var origin core.Vec2
	if b, ok := w.BlockAt(target); ok && w.Reachable(p, target) {
		res.BlockHit = b.Kind()
		if b.Mine(1) {
			res.Mined = true
			w.stats.BlocksMined++
			if p.Food() > 0 {
				p.ChangeFood(-1)
			} else {
				p.ChangeHealth(-1)
			}
			origin = b.Position()
			drops = b.Drops()
			w.RemoveEntity(b)
			w.logger.Debug("block mined", "kind", b.Kind(), "drops", len(drops))
		}
	}

	// Release mined blocks and dead mobs before their drops take the space.
	w.flush()

	for i, d := range drops {
		e, err := w.spawnDrop(d, w.scatter(origin, i))
		if err != nil {
			return res, err
		}
		res.Spawned = append(res.Spawned, e)
	}
	return res, nil
}

// Place puts one carried block item into the empty cell at target. The item
// leaves the inventory only when the block is added. Must be called between
// ticks.
func (w *World) Place(p *entity.Player, itemID string, target core.Vec2) error {
	item, ok := p.Inventory().Find(itemID)
	if !ok {
		return fmt.Errorf("world: place %s: %w", itemID, ErrNotCarried)
	}
	blockID, ok := item.BlockID()
	if !ok {
		return fmt.Errorf("world: place %s: %w", itemID, ErrNotPlaceable)
	}
	if !w.Reachable(p, target) {
		return fmt.Errorf("world: place %s: %w", itemID, ErrOutOfReach)
	}
	b, err := entity.NewBlock(blockID)
	if err != nil {
		return fmt.Errorf("world: place %s: %w", itemID, err)
	}

	cell := w.CellAt(target)
	if err := w.AddBlockAt(b, cell.Col, cell.Row); err != nil {
		return err
	}
	p.Inventory().Remove(itemID)
	w.stats.BlocksPlaced++
	w.logger.Debug("block placed", "kind", blockID, "col", cell.Col, "row", cell.Row)
	return nil
}

// UseItem applies a carried item's effect to the player and consumes it.
// Only food has an effect: eating restores its strength in food.
func (w *World) UseItem(p *entity.Player, itemID string) error {
	item, ok := p.Inventory().Find(itemID)
	if !ok {
		return fmt.Errorf("world: use %s: %w", itemID, ErrNotCarried)
	}
	if !item.Edible() {
		return fmt.Errorf("world: use %s: %w", itemID, ErrNotUsable)
	}
	p.ChangeFood(item.Strength)
	p.Inventory().Remove(itemID)
	w.logger.Debug("item eaten", "kind", itemID, "food", p.Food())
	return nil
}

// Reachable reports whether target is within the player's reach.
func (w *World) Reachable(p *entity.Player, target core.Vec2) bool {
	return p.Position().Within(target, p.Reach()*w.cfg.Grid.BlockSize)
}

func (w *World) touchMob(p *entity.Player, m *mob.Mob, target core.Vec2, res *Interaction) error {
	if yield := m.Use(); len(yield) > 0 {
		res.MobsUsed++
		for _, d := range yield {
			e, err := w.spawnDrop(d, target)
			if err != nil {
				return err
			}
			res.Spawned = append(res.Spawned, e)
		}
		return nil
	}

	if m.Kind() != w.cfg.Mobs.Bee.ID {
		return nil
	}
	m.Attack(true)
	p.ChangeHealth(-1)
	res.MobsAttacked++
	if m.Dead() {
		res.MobsKilled++
		w.RemoveEntity(m)
	}
	return nil
}

// scatter lays drops out on a 3x3 pattern across the block's cell.
func (w *World) scatter(origin core.Vec2, i int) core.Vec2 {
	half := w.cfg.Grid.BlockSize / 2
	return core.V(
		origin.X-half+5+float64(i%3)*11,
		origin.Y-half+5+float64((i/3)%3)*11,
	)
}

func (w *World) spawnDrop(d entity.Drop, pos core.Vec2) (entity.Entity, error) {
	switch d.Category {
	case entity.DropItem:
		item, err := entity.NewItem(d.ID)
		if err != nil {
			return nil, fmt.Errorf("world: drop: %w", err)
		}
		return w.AddItem(item, pos)
	case entity.DropMob:
		m, err := w.NewMob(d.ID)
		if err != nil {
			return nil, err
		}
		if err := w.AddMob(m, pos); err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("world: unknown drop category %q", d.Category)
	}
}

// NewMob builds a mob of the configured archetype with the given id.
func (w *World) NewMob(id string) (*mob.Mob, error) {
	mobs := w.cfg.Mobs
	switch id {
	case mobs.Bird.ID:
		return mob.NewBird(mobs.Bird)
	case mobs.Sheep.ID:
		return mob.NewSheep(mobs.Sheep)
	case mobs.Bee.ID:
		return mob.NewBee(mobs.Bee)
	default:
		return nil, fmt.Errorf("world: unknown mob %q", id)
	}
}
