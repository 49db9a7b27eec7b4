package models

// CellView is what a presentation layer may show for one cell. Contents are
// only filled in for visited cells or after the game has ended.
type CellView struct {
	Pos     Position `yaml:"pos"`
	Player  bool     `yaml:"player,omitempty"`
	Visited bool     `yaml:"visited,omitempty"`
	Wumpus  bool     `yaml:"wumpus,omitempty"`
	Gold    bool     `yaml:"gold,omitempty"`
	Pit     bool     `yaml:"pit,omitempty"`
}

// Controls says which action triggers are currently enabled.
type Controls struct {
	Forward   bool `yaml:"forward"`
	TurnLeft  bool `yaml:"turn_left"`
	TurnRight bool `yaml:"turn_right"`
	Grab      bool `yaml:"grab"`
	Shoot     bool `yaml:"shoot"`
	Climb     bool `yaml:"climb"`
}

// Enabled reports the flag for a single action.
func (c Controls) Enabled(a Action) bool {
	switch a {
	case Forward:
		return c.Forward
	case TurnLeft:
		return c.TurnLeft
	case TurnRight:
		return c.TurnRight
	case Grab:
		return c.Grab
	case Shoot:
		return c.Shoot
	case Climb:
		return c.Climb
	}
	return false
}

// Summary is surfaced once the game reaches a terminal phase.
type Summary struct {
	Title   string `yaml:"title"`
	Message string `yaml:"message"`
	Score   int    `yaml:"score"`
}

// View is the full view-model pushed to displays after each change.
type View struct {
	Size     int          `yaml:"size"`
	Score    int          `yaml:"score"`
	Position Position     `yaml:"position"`
	Facing   Direction    `yaml:"facing"`
	Arrows   int          `yaml:"arrows"`
	HasGold  bool         `yaml:"has_gold"`
	Phase    Phase        `yaml:"phase"`
	Percepts PerceptSet   `yaml:"percepts"`
	Visited  []Position   `yaml:"visited"`
	Cells    [][]CellView `yaml:"-"` // rows top (Y=Size) to bottom (Y=1)
	Controls Controls     `yaml:"controls"`
	Message  string       `yaml:"message,omitempty"`
	Summary  *Summary     `yaml:"summary,omitempty"`
}
