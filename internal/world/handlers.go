package world

import (
	"github.com/vovakirdan/tui-sandbox/internal/entity"
	"github.com/vovakirdan/tui-sandbox/internal/mob"
	"github.com/vovakirdan/tui-sandbox/internal/physics"
)

// InstallDefaultHandlers registers the sandbox's standard contact rules:
// players pick up items they touch, and touching a bee hurts.
func (w *World) InstallDefaultHandlers() {
	w.AddCollisionHandler(physics.CategoryPlayer, physics.CategoryItem, Handlers{
		Begin: w.pickUp,
	})
	w.AddCollisionHandler(physics.CategoryPlayer, physics.CategoryMob, Handlers{
		PostSolve: w.sting,
	})
}

// pickUp moves a dropped item into the player's inventory. The contact is
// ignored once the item is taken; a full inventory leaves it to collide.
func (w *World) pickUp(a, b entity.Entity, _ *StepData) bool {
	p, ok := a.(*entity.Player)
	if !ok {
		return true
	}
	d, ok := b.(*entity.DroppedItem)
	if !ok {
		return true
	}

	if !p.Inventory().Add(d.Item()) {
		w.logger.Debug("inventory full", "item", d.Kind())
		return true
	}
	w.RemoveEntity(d)
	w.stats.ItemsCollected++
	w.logger.Debug("item picked up", "item", d.Kind(), "count", p.Inventory().Count(d.Kind()))
	return false
}

// sting costs the player one health point per solved contact with a bee.
func (w *World) sting(a, b entity.Entity, _ *StepData) bool {
	p, ok := a.(*entity.Player)
	if !ok {
		return true
	}
	m, ok := b.(*mob.Mob)
	if !ok || m.Kind() != w.cfg.Mobs.Bee.ID {
		return true
	}
	p.ChangeHealth(-1)
	return true
}
