package scenarios

import (
	"math/rand"

	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/entity"
	"github.com/vovakirdan/tui-sandbox/internal/registry"
	"github.com/vovakirdan/tui-sandbox/internal/world"
)

func init() {
	registry.Register("simple", func() registry.Scenario { return Simple{} })
}

// Simple is a hillside with a tree, a hive, a bird, a sheep and a swarm.
type Simple struct{}

// ID returns "simple".
func (Simple) ID() string { return "simple" }

// Title returns the display name.
func (Simple) Title() string { return "Simple Hillside" }

// Load builds the world.
func (Simple) Load(w *world.World, rng *rand.Rand) (*entity.Player, error) {
	l := layout{}
	// Flat ground below row 8 on the left, rising slope on the right.
	l.ground(w, rng, func(col int) int {
		if col < 22 {
			return 9
		}
		return max(30-col, 0)
	})
	l.tree(3, 9, 4)
	l[world.Cell{Col: 15, Row: 8}] = "hive"
	l[world.Cell{Col: 16, Row: 8}] = "honey"
	l[world.Cell{Col: 17, Row: 8}] = "honey"
	if err := l.place(w); err != nil {
		return nil, err
	}

	mobs := w.Config().Mobs
	if err := spawn(w, mobs.Bird.ID, core.V(400, 100)); err != nil {
		return nil, err
	}
	if err := spawn(w, mobs.Sheep.ID, core.V(200, 100)); err != nil {
		return nil, err
	}
	if err := swarm(w, rng, core.V(300, 30), 5); err != nil {
		return nil, err
	}

	return addPlayer(w, core.V(250, 150))
}
