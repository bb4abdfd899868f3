package world

import (
	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/entity"
	"github.com/vovakirdan/tui-sandbox/internal/mob"
)

// Entities returns every live entity not queued for removal, in the order
// they were added.
func (w *World) Entities() []entity.Entity {
	all := w.registry.Entities()
	out := all[:0]
	for _, e := range all {
		if !w.isPending(e) {
			out = append(out, e)
		}
	}
	return out
}

// EntitiesNear returns live entities whose centre lies within radius of pos.
func (w *World) EntitiesNear(pos core.Vec2, radius float64) []entity.Entity {
	var out []entity.Entity
	for _, e := range w.Entities() {
		if pos.Within(e.Position(), radius) {
			out = append(out, e)
		}
	}
	return out
}

// MobsNear returns live mobs whose centre lies within radius of pos.
func (w *World) MobsNear(pos core.Vec2, radius float64) []*mob.Mob {
	var out []*mob.Mob
	for _, e := range w.EntitiesNear(pos, radius) {
		if m, ok := e.(*mob.Mob); ok {
			out = append(out, m)
		}
	}
	return out
}

// Players returns every live player.
func (w *World) Players() []*entity.Player {
	return collect[*entity.Player](w)
}

// Mobs returns every live mob.
func (w *World) Mobs() []*mob.Mob {
	return collect[*mob.Mob](w)
}

// Items returns every dropped item lying in the world.
func (w *World) Items() []*entity.DroppedItem {
	return collect[*entity.DroppedItem](w)
}

// Blocks returns every placed block.
func (w *World) Blocks() []*entity.Block {
	return collect[*entity.Block](w)
}

func collect[T entity.Entity](w *World) []T {
	var out []T
	for _, e := range w.Entities() {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
