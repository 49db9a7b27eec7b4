package engine

import "github.com/tatianab/wumpus-world/internal/models"

// View builds the view-model for the current game.
func (e *Engine) View() models.View {
	s := e.s
	size := s.world.Size
	reveal := s.phase.Terminal()

	v := models.View{
		Size:     size,
		Score:    s.score,
		Position: s.pos,
		Facing:   s.facing,
		Arrows:   s.arrows,
		HasGold:  s.hasGold,
		Phase:    s.phase,
		Percepts: s.percepts,
		Message:  s.message,
	}

	v.Cells = make([][]models.CellView, 0, size)
	for y := size; y >= 1; y-- {
		row := make([]models.CellView, 0, size)
		for x := 1; x <= size; x++ {
			p := models.Position{X: x, Y: y}
			i := s.world.Index(p)
			cv := models.CellView{
				Pos:     p,
				Player:  p == s.pos,
				Visited: s.visited[i],
			}
			if cv.Visited || reveal {
				cell := s.world.Cells[i]
				cv.Wumpus = cell.Wumpus && s.wumpusAlive
				cv.Gold = cell.Gold
				cv.Pit = cell.Pit
			}
			row = append(row, cv)
		}
		v.Cells = append(v.Cells, row)
	}

	for i, seen := range s.visited {
		if seen {
			v.Visited = append(v.Visited, s.world.Pos(i))
		}
	}

	if !reveal {
		v.Controls = models.Controls{
			Forward:   true,
			TurnLeft:  true,
			TurnRight: true,
			Grab:      true,
			Shoot:     s.arrows > 0,
			Climb:     true,
		}
	}

	if s.summary != nil {
		summary := *s.summary
		v.Summary = &summary
	}
	return v
}
