package scenarios

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/entity"
	"github.com/vovakirdan/tui-sandbox/internal/registry"
	"github.com/vovakirdan/tui-sandbox/internal/world"
)

func init() {
	registry.Register("meadow", func() registry.Scenario { return Meadow{} })
}

// Meadow is rolling grassland with a flock of sheep and birds and no bees.
type Meadow struct{}

// ID returns "meadow".
func (Meadow) ID() string { return "meadow" }

// Title returns the display name.
func (Meadow) Title() string { return "Peaceful Meadow" }

// Load builds the world.
func (Meadow) Load(w *world.World, rng *rand.Rand) (*entity.Player, error) {
	surface := func(col int) int {
		return 10 + int(math.Round(math.Sin(float64(col)/4)))
	}

	l := layout{}
	l.ground(w, rng, surface)
	l.tree(6, surface(6), 3)
	l.tree(25, surface(25), 4)
	l[world.Cell{Col: 12, Row: surface(12) - 1}] = "crafting_table"
	if err := l.place(w); err != nil {
		return nil, err
	}

	mobs := w.Config().Mobs
	for i := 0; i < 3; i++ {
		if err := spawn(w, mobs.Sheep.ID, core.V(float64(320+i*160), 200)); err != nil {
			return nil, err
		}
		if err := spawn(w, mobs.Bird.ID, core.V(float64(240+i*200), 60)); err != nil {
			return nil, err
		}
	}

	return addPlayer(w, core.V(96, 200))
}
