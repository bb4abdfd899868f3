package scenarios

import (
	"math/rand"

	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/entity"
	"github.com/vovakirdan/tui-sandbox/internal/registry"
	"github.com/vovakirdan/tui-sandbox/internal/world"
)

func init() {
	registry.Register("hive", func() registry.Scenario { return Hive{} })
}

// Hive is flat ground dotted with hives and honey, each guarded by a swarm.
type Hive struct{}

// ID returns "hive".
func (Hive) ID() string { return "hive" }

// Title returns the display name.
func (Hive) Title() string { return "Angry Hive" }

// Load builds the world.
func (Hive) Load(w *world.World, rng *rand.Rand) (*entity.Player, error) {
	l := layout{}
	l.ground(w, rng, func(int) int { return 11 })

	hives := []int{8, 18, 27}
	for _, col := range hives {
		l[world.Cell{Col: col, Row: 10}] = "hive"
		l[world.Cell{Col: col + 1, Row: 10}] = "honey"
	}
	l[world.Cell{Col: 2, Row: 10}] = "diamond"
	if err := l.place(w); err != nil {
		return nil, err
	}

	for _, col := range hives {
		centre := w.CellCentre(col, 7)
		if err := swarm(w, rng, centre, 4); err != nil {
			return nil, err
		}
	}
	if err := spawn(w, w.Config().Mobs.Bird.ID, core.V(500, 80)); err != nil {
		return nil, err
	}

	return addPlayer(w, core.V(100, 300))
}
