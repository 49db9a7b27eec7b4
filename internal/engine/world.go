package engine

import (
	"math/rand/v2"

	"github.com/tatianab/wumpus-world/internal/models"
)

// GenerateWorld places one wumpus, one gold and up to pits pits on distinct
// cells, never on the start cell. Pits stop silently when the board is full.
func GenerateWorld(size, pits int, rng *rand.Rand) models.World {
	world := models.NewWorld(size)

	available := make([]models.Position, 0, size*size-1)
	for i := range world.Cells {
		if p := world.Pos(i); p != models.Start {
			available = append(available, p)
		}
	}

	take := func() (models.Position, bool) {
		if len(available) == 0 {
			return models.Position{}, false
		}
		i := rng.IntN(len(available))
		p := available[i]
		available[i] = available[len(available)-1]
		available = available[:len(available)-1]
		return p, true
	}

	if p, ok := take(); ok {
		world.At(p).Wumpus = true
	}
	if p, ok := take(); ok {
		world.At(p).Gold = true
	}
	for i := 0; i < pits; i++ {
		p, ok := take()
		if !ok {
			break
		}
		world.At(p).Pit = true
	}
	return world
}

// hasLiveWumpus reports whether any cell still holds the wumpus.
func hasLiveWumpus(w models.World) bool {
	for _, c := range w.Cells {
		if c.Wumpus {
			return true
		}
	}
	return false
}
