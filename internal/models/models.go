package models

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Position is a 1-based grid coordinate. (1,1) is the bottom-left cell.
type Position struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Start is the cell every game begins on and the only place to climb out.
var Start = Position{X: 1, Y: 1}

func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string {
	return fmt.Sprintf("[%d,%d]", p.X, p.Y)
}

// Direction is one of the four cardinal facings.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists the facings in clockwise order.
var Directions = [4]Direction{Up, Right, Down, Left}

var directionNames = [4]string{"up", "right", "down", "left"}

// Vector returns the unit step for the direction. Up increases Y.
func (d Direction) Vector() (dx, dy int) {
	switch d {
	case Up:
		return 0, 1
	case Right:
		return 1, 0
	case Down:
		return 0, -1
	default:
		return -1, 0
	}
}

// Right returns the facing after a clockwise quarter turn.
func (d Direction) Right() Direction { return (d + 1) % 4 }

// Left returns the facing after a counter-clockwise quarter turn.
func (d Direction) Left() Direction { return (d + 3) % 4 }

func (d Direction) String() string {
	if d < 0 || d > Left {
		return "unknown"
	}
	return directionNames[d]
}

// Label is the capitalised name shown in status panels.
func (d Direction) Label() string {
	s := d.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Arrow is the glyph used for the player marker.
func (d Direction) Arrow() string {
	return [4]string{"↑", "→", "↓", "←"}[d%4]
}

func (d Direction) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Direction) UnmarshalYAML(value *yaml.Node) error {
	for i, name := range directionNames {
		if value.Value == name {
			*d = Direction(i)
			return nil
		}
	}
	return fmt.Errorf("unknown direction %q", value.Value)
}

// Percept is a sensory clue reported to the player.
type Percept uint8

const (
	Stench Percept = iota
	Breeze
	Glitter
	Bump
	Scream
)

// Percepts lists every percept in display order.
var Percepts = [5]Percept{Stench, Breeze, Glitter, Bump, Scream}

func (p Percept) String() string {
	switch p {
	case Stench:
		return "stench"
	case Breeze:
		return "breeze"
	case Glitter:
		return "glitter"
	case Bump:
		return "bump"
	case Scream:
		return "scream"
	}
	return "unknown"
}

// PerceptSet is a bit set of percepts.
type PerceptSet uint8

func (s PerceptSet) Has(p Percept) bool { return s&(1<<p) != 0 }

func (s *PerceptSet) Add(p Percept) { *s |= 1 << p }

func (s *PerceptSet) Remove(p Percept) { *s &^= 1 << p }

// List returns the members in display order.
func (s PerceptSet) List() []Percept {
	var out []Percept
	for _, p := range Percepts {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s PerceptSet) Strings() []string {
	var out []string
	for _, p := range s.List() {
		out = append(out, p.String())
	}
	return out
}

func (s PerceptSet) String() string {
	if s == 0 {
		return "none"
	}
	return strings.Join(s.Strings(), ", ")
}

func (s PerceptSet) MarshalYAML() (interface{}, error) {
	return s.Strings(), nil
}

func (s *PerceptSet) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	if err := value.Decode(&names); err != nil {
		return err
	}
	*s = 0
	for _, name := range names {
		found := false
		for _, p := range Percepts {
			if p.String() == name {
				s.Add(p)
				found = true
			}
		}
		if !found {
			return fmt.Errorf("unknown percept %q", name)
		}
	}
	return nil
}

// Phase is the coarse game lifecycle state.
type Phase int

const (
	Playing Phase = iota
	Won
	Lost
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "PLAYING"
	case Won:
		return "WON"
	case Lost:
		return "LOST"
	}
	return "UNKNOWN"
}

// Terminal reports whether no further actions are accepted.
func (p Phase) Terminal() bool { return p != Playing }

func (p Phase) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

func (p *Phase) UnmarshalYAML(value *yaml.Node) error {
	for _, ph := range []Phase{Playing, Won, Lost} {
		if value.Value == ph.String() {
			*p = ph
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", value.Value)
}

// Action is one of the six player actions.
type Action int

const (
	Forward Action = iota
	TurnLeft
	TurnRight
	Grab
	Shoot
	Climb
)

// Actions lists every player action.
var Actions = [6]Action{Forward, TurnLeft, TurnRight, Grab, Shoot, Climb}

func (a Action) String() string {
	switch a {
	case Forward:
		return "forward"
	case TurnLeft:
		return "turn_left"
	case TurnRight:
		return "turn_right"
	case Grab:
		return "grab"
	case Shoot:
		return "shoot"
	case Climb:
		return "climb"
	}
	return "unknown"
}

func (a Action) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

func (a *Action) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseAction(value.Value)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAction accepts canonical action names and a few loose aliases.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	switch s {
	case "forward", "move", "move_forward", "f":
		return Forward, nil
	case "turn_left", "left", "l":
		return TurnLeft, nil
	case "turn_right", "right", "r":
		return TurnRight, nil
	case "grab", "pick_up", "g":
		return Grab, nil
	case "shoot", "fire", "s":
		return Shoot, nil
	case "climb", "climb_out", "c":
		return Climb, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// Cell is the hidden content of one room.
type Cell struct {
	Wumpus bool `yaml:"wumpus,omitempty"`
	Gold   bool `yaml:"gold,omitempty"`
	Pit    bool `yaml:"pit,omitempty"`
}

// World is a square grid stored row-major, Y=1 first.
type World struct {
	Size  int    `yaml:"size"`
	Cells []Cell `yaml:"cells"`
}

func NewWorld(size int) World {
	return World{Size: size, Cells: make([]Cell, size*size)}
}

// In reports whether p lies on the grid.
func (w World) In(p Position) bool {
	return p.X >= 1 && p.X <= w.Size && p.Y >= 1 && p.Y <= w.Size
}

// Index maps an in-bounds position to its slot in Cells.
func (w World) Index(p Position) int {
	return (p.Y-1)*w.Size + (p.X - 1)
}

// Pos is the inverse of Index.
func (w World) Pos(i int) Position {
	return Position{X: i%w.Size + 1, Y: i/w.Size + 1}
}

// At returns a pointer to the cell at p. p must be in bounds.
func (w World) At(p Position) *Cell {
	return &w.Cells[w.Index(p)]
}

// Neighbors returns the in-bounds orthogonal neighbours of p.
func (w World) Neighbors(p Position) []Position {
	out := make([]Position, 0, 4)
	for _, d := range Directions {
		dx, dy := d.Vector()
		if n := p.Add(dx, dy); w.In(n) {
			out = append(out, n)
		}
	}
	return out
}

// Clone returns a deep copy.
func (w World) Clone() World {
	c := World{Size: w.Size, Cells: make([]Cell, len(w.Cells))}
	copy(c.Cells, w.Cells)
	return c
}
