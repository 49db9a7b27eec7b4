package agent

import (
	"context"

	"github.com/tatianab/wumpus-world/internal/models"
)

type shot struct {
	from   models.Position
	dir    models.Direction
	arrows int
}

// Explorer is a knowledge-based player. It remembers which visited cells were
// breezy or smelly, only steps into cells it can prove safe, hunts the wumpus
// once it is pinned down, and otherwise takes the least risky unknown cell.
// Use one Explorer per game.
type Explorer struct {
	size       int
	visited    map[models.Position]bool
	breeze     map[models.Position]bool
	stench     map[models.Position]bool
	clear      map[models.Position]bool // an arrow flew through without a scream
	wumpusDead bool
	pending    *shot
}

func NewExplorer() *Explorer {
	return &Explorer{
		visited: make(map[models.Position]bool),
		breeze:  make(map[models.Position]bool),
		stench:  make(map[models.Position]bool),
		clear:   make(map[models.Position]bool),
	}
}

func (x *Explorer) Name() string { return "explorer" }

// Next records the view and picks an action.
func (x *Explorer) Next(ctx context.Context, v models.View) (models.Action, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	x.Observe(v)
	return x.Decide(v)
}

// Observe folds a view into the knowledge base.
func (x *Explorer) Observe(v models.View) {
	x.size = v.Size
	for _, p := range v.Visited {
		x.visited[p] = true
	}

	if v.Percepts.Has(models.Scream) {
		x.wumpusDead = true
	}
	if s := x.pending; s != nil && v.Arrows < s.arrows {
		x.pending = nil
		if !x.wumpusDead {
			dx, dy := s.dir.Vector()
			for p := s.from.Add(dx, dy); x.in(p); p = p.Add(dx, dy) {
				x.clear[p] = true
			}
		}
	}

	x.breeze[v.Position] = v.Percepts.Has(models.Breeze)
	x.stench[v.Position] = v.Percepts.Has(models.Stench)
}

// Decide picks an action from what has been observed so far.
func (x *Explorer) Decide(v models.View) (models.Action, error) {
	here := v.Position

	if v.Percepts.Has(models.Glitter) && !v.HasGold {
		return models.Grab, nil
	}

	if v.HasGold {
		if here == models.Start {
			return models.Climb, nil
		}
		if hop, ok := x.route(here, func(p models.Position) bool { return p == models.Start }); ok {
			return Step(here, v.Facing, hop), nil
		}
	}

	if hop, ok := x.route(here, func(p models.Position) bool { return !x.visited[p] && x.safe(p) }); ok {
		return Step(here, v.Facing, hop), nil
	}

	if a, ok := x.hunt(v); ok {
		return a, nil
	}

	if hop, ok := x.gamble(here); ok {
		return Step(here, v.Facing, hop), nil
	}
	return 0, ErrNoMove
}

// hunt lines up a shot at a suspected wumpus cell.
func (x *Explorer) hunt(v models.View) (models.Action, bool) {
	if v.Arrows <= 0 || x.wumpusDead {
		return 0, false
	}
	suspects := x.wumpusSuspects()
	if len(suspects) == 0 || len(suspects) > 2 {
		return 0, false
	}

	for _, w := range suspects {
		if dir, ok := towards(v.Position, w); ok {
			if dir == v.Facing {
				x.pending = &shot{from: v.Position, dir: dir, arrows: v.Arrows}
				return models.Shoot, true
			}
			return Face(v.Facing, dir), true
		}
	}

	// Walk to a known cell in line with the first suspect.
	w := suspects[0]
	hop, ok := x.route(v.Position, func(p models.Position) bool {
		_, aligned := towards(p, w)
		return x.visited[p] && aligned
	})
	if !ok {
		return 0, false
	}
	return Step(v.Position, v.Facing, hop), true
}

// gamble heads for the frontier cell with the lowest risk.
func (x *Explorer) gamble(here models.Position) (models.Position, bool) {
	best := -1
	for i := 0; i < x.size*x.size; i++ {
		p := models.Position{X: i%x.size + 1, Y: i/x.size + 1}
		if x.visited[p] || !x.frontier(p) {
			continue
		}
		if r := x.risk(p); best < 0 || r < best {
			best = r
		}
	}
	if best < 0 {
		return models.Position{}, false
	}
	return x.route(here, func(p models.Position) bool {
		return !x.visited[p] && x.frontier(p) && x.risk(p) == best
	})
}

func (x *Explorer) risk(p models.Position) int {
	r := 0
	if !x.pitFree(p) {
		r++
		if x.knownPit(p) {
			r += 10
		}
	}
	if !x.wumpusFree(p) {
		r++
		if s := x.wumpusSuspects(); len(s) == 1 && s[0] == p {
			r += 10
		}
	}
	return r
}

func (x *Explorer) frontier(p models.Position) bool {
	for _, n := range x.neighbors(p) {
		if x.visited[n] {
			return true
		}
	}
	return false
}

func (x *Explorer) safe(p models.Position) bool {
	return x.pitFree(p) && x.wumpusFree(p)
}

func (x *Explorer) pitFree(p models.Position) bool {
	if x.visited[p] {
		return true
	}
	for _, n := range x.neighbors(p) {
		if x.visited[n] && !x.breeze[n] {
			return true
		}
	}
	return false
}

// knownPit reports whether some breezy cell has p as its only candidate.
func (x *Explorer) knownPit(p models.Position) bool {
	for _, n := range x.neighbors(p) {
		if !x.visited[n] || !x.breeze[n] {
			continue
		}
		only := true
		for _, m := range x.neighbors(n) {
			if m != p && !x.pitFree(m) {
				only = false
				break
			}
		}
		if only {
			return true
		}
	}
	return false
}

func (x *Explorer) wumpusFree(p models.Position) bool {
	if x.wumpusDead || x.visited[p] || x.clear[p] {
		return true
	}
	for _, n := range x.neighbors(p) {
		if x.visited[n] && !x.stench[n] {
			return true
		}
	}
	return false
}

// wumpusSuspects lists the cells next to every smelly cell that are not
// already ruled out.
func (x *Explorer) wumpusSuspects() []models.Position {
	var smelly []models.Position
	for p, s := range x.stench {
		if s {
			smelly = append(smelly, p)
		}
	}
	if len(smelly) == 0 || x.wumpusDead {
		return nil
	}

	var out []models.Position
	for i := 0; i < x.size*x.size; i++ {
		p := models.Position{X: i%x.size + 1, Y: i/x.size + 1}
		if x.wumpusFree(p) {
			continue
		}
		next := true
		for _, s := range smelly {
			if !adjacent(p, s) {
				next = false
				break
			}
		}
		if next {
			out = append(out, p)
		}
	}
	return out
}

// route runs a breadth-first search from here through visited cells and
// returns the first hop towards the nearest cell matching target.
func (x *Explorer) route(here models.Position, target func(models.Position) bool) (models.Position, bool) {
	parent := map[models.Position]models.Position{here: here}
	queue := []models.Position{here}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range x.neighbors(cur) {
			if _, seen := parent[n]; seen {
				continue
			}
			parent[n] = cur
			if target(n) {
				for parent[n] != here {
					n = parent[n]
				}
				return n, true
			}
			if x.visited[n] {
				queue = append(queue, n)
			}
		}
	}
	return models.Position{}, false
}

func (x *Explorer) in(p models.Position) bool {
	return p.X >= 1 && p.X <= x.size && p.Y >= 1 && p.Y <= x.size
}

func (x *Explorer) neighbors(p models.Position) []models.Position {
	out := make([]models.Position, 0, 4)
	for _, d := range models.Directions {
		dx, dy := d.Vector()
		if n := p.Add(dx, dy); x.in(n) {
			out = append(out, n)
		}
	}
	return out
}

func adjacent(a, b models.Position) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx+dy*dy == 1
}

// towards returns the direction from a to b when they share a row or column.
func towards(a, b models.Position) (models.Direction, bool) {
	switch {
	case a == b:
		return 0, false
	case a.X == b.X && b.Y > a.Y:
		return models.Up, true
	case a.X == b.X:
		return models.Down, true
	case a.Y == b.Y && b.X > a.X:
		return models.Right, true
	case a.Y == b.Y:
		return models.Left, true
	}
	return 0, false
}
