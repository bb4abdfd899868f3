// Package scenarios contains the built-in world layouts. Each registers
// itself with the registry from init().
package scenarios

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/entity"
	"github.com/vovakirdan/tui-sandbox/internal/world"
)

// weighted is a block kind with a relative chance of being picked.
type weighted struct {
	weight int
	kind   string
}

var groundMix = []weighted{
	{100, "dirt"},
	{30, "stone"},
}

func pick(rng *rand.Rand, mix []weighted) string {
	total := 0
	for _, m := range mix {
		total += m.weight
	}
	n := rng.Intn(total)
	for _, m := range mix {
		if n < m.weight {
			return m.kind
		}
		n -= m.weight
	}
	return mix[len(mix)-1].kind
}

// layout collects block kinds per cell; later writes replace earlier ones.
type layout map[world.Cell]string

// ground fills every cell at or below surface(col) with a random mix.
func (l layout) ground(w *world.World, rng *rand.Rand, surface func(col int) int) {
	grid := w.Config().Grid
	for col := 0; col < grid.Width; col++ {
		for row := surface(col); row < grid.Height; row++ {
			l[world.Cell{Col: col, Row: row}] = pick(rng, groundMix)
		}
	}
}

// tree adds a trunk of height cells standing on ground row surface, with a
// 3x3 canopy on top.
func (l layout) tree(col, surface, height int) {
	top := surface - height
	for row := surface - 1; row >= top; row-- {
		l[world.Cell{Col: col, Row: row}] = "wood"
	}
	for dc := -1; dc <= 1; dc++ {
		for dr := -3; dr <= -1; dr++ {
			l[world.Cell{Col: col + dc, Row: top + dr}] = "leaf"
		}
	}
}

// place adds the blocks to w in column-major order so a seed always
// produces the same body ids.
func (l layout) place(w *world.World) error {
	cells := make([]world.Cell, 0, len(l))
	for c := range l {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Col != cells[j].Col {
			return cells[i].Col < cells[j].Col
		}
		return cells[i].Row < cells[j].Row
	})

	for _, c := range cells {
		b, err := entity.NewBlock(l[c])
		if err != nil {
			return err
		}
		if err := w.AddBlockAt(b, c.Col, c.Row); err != nil {
			return fmt.Errorf("scenarios: place %s: %w", l[c], err)
		}
	}
	return nil
}

// spawn adds a mob of the given archetype id at pos.
func spawn(w *world.World, id string, pos core.Vec2) error {
	m, err := w.NewMob(id)
	if err != nil {
		return err
	}
	return w.AddMob(m, pos)
}

// swarm scatters n bees within the configured swarm distance of centre.
func swarm(w *world.World, rng *rand.Rand, centre core.Vec2, n int) error {
	bee := w.Config().Mobs.Bee
	d := bee.SwarmDistance
	for i := 0; i < n; i++ {
		dx := rng.Intn(2*d+1) - d
		dy := rng.Intn(2*d+1) - d
		if err := spawn(w, bee.ID, centre.Add(core.V(float64(dx), float64(dy)))); err != nil {
			return err
		}
	}
	return nil
}

// addPlayer places a fresh player at pos.
func addPlayer(w *world.World, pos core.Vec2) (*entity.Player, error) {
	p := entity.NewPlayer(w.Config().Player)
	if err := w.AddPlayer(p, pos); err != nil {
		return nil, err
	}
	return p, nil
}
