package engine

import (
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"time"

	"github.com/tatianab/wumpus-world/internal/config"
	"github.com/tatianab/wumpus-world/internal/models"
)

const (
	movePenalty  = 1
	turnPenalty  = 1
	arrowPenalty = 10
	deathPenalty = 1000
	winReward    = 1000
)

// Display receives a fresh view after every state change.
type Display interface {
	Show(models.View)
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(models.View)

func (f DisplayFunc) Show(v models.View) { f(v) }

// TimerKind identifies a delayed effect.
type TimerKind int

const (
	ClearBump TimerKind = iota
	ClearScream
	Recompute
)

func (k TimerKind) String() string {
	switch k {
	case ClearBump:
		return "clear-bump"
	case ClearScream:
		return "clear-scream"
	case Recompute:
		return "recompute"
	}
	return "unknown"
}

// Timer is a delayed effect the host must deliver back through Fire once
// Delay has elapsed. Timers from an earlier game are ignored.
type Timer struct {
	Epoch uint64
	Seq   uint64
	Kind  TimerKind
	Delay time.Duration
}

// gameState is the aggregate rebuilt from scratch on every restart.
type gameState struct {
	world       models.World
	pos         models.Position
	facing      models.Direction
	score       int
	arrows      int
	hasGold     bool
	wumpusAlive bool
	visited     []bool
	percepts    models.PerceptSet
	phase       models.Phase
	message     string
	summary     *models.Summary
}

// Engine owns one game at a time and resolves player actions against it.
type Engine struct {
	cfg     *config.Config
	rng     *rand.Rand
	display Display
	logger  *log.Logger

	epoch  uint64
	seq    uint64
	latest map[TimerKind]uint64
	timers []Timer

	s *gameState
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand makes world generation reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithDisplay registers the view sink.
func WithDisplay(d Display) Option {
	return func(e *Engine) { e.display = d }
}

// WithLogger sends diagnostic output to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithWorld starts the first game on w instead of a random world. Restarts
// still generate random worlds. w must match the configured grid size.
func WithWorld(w models.World) Option {
	return func(e *Engine) {
		e.s = newGameState(w.Clone(), e.cfg.Arrows)
	}
}

// NewEngine creates an engine with a freshly generated game.
func NewEngine(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		logger: log.New(io.Discard, "", 0),
		latest: make(map[TimerKind]uint64),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.s != nil && e.s.world.Size != cfg.GridSize {
		return nil, fmt.Errorf("world is %dx%d but grid_size is %d", e.s.world.Size, e.s.world.Size, cfg.GridSize)
	}
	if e.s == nil {
		e.s = newGameState(GenerateWorld(cfg.GridSize, cfg.PitCount, e.rng), cfg.Arrows)
	}

	e.logger.Printf("game %d started, world: %+v", e.epoch, e.s.world.Cells)
	e.updatePercepts()
	e.s.message = "Welcome to Wumpus World! Find the gold and return to [1,1] to win."
	e.publish()
	return e, nil
}

func newGameState(w models.World, arrows int) *gameState {
	s := &gameState{
		world:       w,
		pos:         models.Start,
		facing:      models.Right,
		arrows:      arrows,
		wumpusAlive: hasLiveWumpus(w),
		visited:     make([]bool, len(w.Cells)),
		phase:       models.Playing,
	}
	s.visited[w.Index(s.pos)] = true
	return s
}

// Restart discards the current game and starts a new random one. Pending
// timers of the old game become stale.
func (e *Engine) Restart() {
	e.epoch++
	e.timers = nil
	e.s = newGameState(GenerateWorld(e.cfg.GridSize, e.cfg.PitCount, e.rng), e.cfg.Arrows)
	e.logger.Printf("game %d started, world: %+v", e.epoch, e.s.world.Cells)
	e.updatePercepts()
	e.s.message = "New game started! Find the gold and return to [1,1] to win."
	e.publish()
}

// Do dispatches one of the six player actions and reports whether it was
// accepted.
func (e *Engine) Do(a models.Action) bool {
	switch a {
	case models.Forward:
		return e.Forward()
	case models.TurnLeft:
		return e.TurnLeft()
	case models.TurnRight:
		return e.TurnRight()
	case models.Grab:
		return e.Grab()
	case models.Shoot:
		return e.Shoot()
	case models.Climb:
		return e.Climb()
	}
	e.logger.Printf("ignoring unknown action %d", a)
	return false
}

// playing logs and reports false when the game has already ended.
func (e *Engine) playing(action string) bool {
	if e.s.phase.Terminal() {
		e.logger.Printf("%s ignored: game is %s", action, e.s.phase)
		return false
	}
	return true
}

// Forward moves one cell in the facing direction.
func (e *Engine) Forward() bool {
	if !e.playing("forward") {
		return false
	}
	s := e.s

	dx, dy := s.facing.Vector()
	next := s.pos.Add(dx, dy)
	if !s.world.In(next) {
		e.logger.Printf("bump at %s facing %s", s.pos, s.facing)
		e.addTimed(models.Bump, ClearBump, e.cfg.Timing.BumpClear)
		s.message = "Bump! You hit a wall."
		e.publish()
		return false
	}

	s.pos = next
	s.score -= movePenalty
	s.visited[s.world.Index(next)] = true

	cell := s.world.At(next)
	switch {
	case cell.Wumpus && s.wumpusAlive:
		e.lose("The Wumpus devoured you! Game Over.", "You were eaten by the Wumpus!")
		return true
	case cell.Pit:
		e.lose("You fell into a pit! Game Over.", "You fell into a bottomless pit!")
		return true
	}

	e.updatePercepts()
	s.message = "Moved to " + next.String()
	e.publish()
	return true
}

// TurnLeft rotates the player counter-clockwise.
func (e *Engine) TurnLeft() bool {
	if !e.playing("turn left") {
		return false
	}
	e.s.facing = e.s.facing.Left()
	e.s.score -= turnPenalty
	e.s.message = "Turned left, now facing " + e.s.facing.String()
	e.publish()
	return true
}

// TurnRight rotates the player clockwise.
func (e *Engine) TurnRight() bool {
	if !e.playing("turn right") {
		return false
	}
	e.s.facing = e.s.facing.Right()
	e.s.score -= turnPenalty
	e.s.message = "Turned right, now facing " + e.s.facing.String()
	e.publish()
	return true
}

// Grab picks up the gold if it lies in the current cell.
func (e *Engine) Grab() bool {
	if !e.playing("grab") {
		return false
	}
	s := e.s

	cell := s.world.At(s.pos)
	accepted := false
	switch {
	case s.hasGold:
		s.message = "You already have the gold!"
	case cell.Gold:
		s.hasGold = true
		cell.Gold = false
		s.percepts.Remove(models.Glitter)
		s.message = "You picked up the gold! Now return to [1,1] and climb to win!"
		accepted = true
	default:
		s.message = "There is no gold here to grab."
	}
	e.publish()
	return accepted
}

// Shoot fires the single arrow along the facing direction. The arrow flies
// cell by cell until it leaves the grid or hits the live wumpus.
func (e *Engine) Shoot() bool {
	if !e.playing("shoot") {
		return false
	}
	s := e.s

	if s.arrows <= 0 {
		s.message = "You have no arrows left!"
		e.publish()
		return false
	}

	s.arrows--
	s.score -= arrowPenalty

	dx, dy := s.facing.Vector()
	for p := s.pos.Add(dx, dy); ; p = p.Add(dx, dy) {
		if !s.world.In(p) {
			s.message = "Your arrow hit the wall and was lost."
			break
		}
		cell := s.world.At(p)
		if cell.Wumpus && s.wumpusAlive {
			s.wumpusAlive = false
			cell.Wumpus = false
			e.logger.Printf("wumpus killed at %s", p)
			e.addTimed(models.Scream, ClearScream, e.cfg.Timing.ScreamClear)
			e.schedule(Recompute, e.cfg.Timing.Recompute)
			s.message = "You hear a terrible scream! The Wumpus is dead!"
			break
		}
	}

	e.publish()
	return true
}

// Climb leaves the cave. It only succeeds on the start cell with the gold.
func (e *Engine) Climb() bool {
	if !e.playing("climb") {
		return false
	}
	s := e.s

	if s.pos != models.Start {
		s.message = "You can only climb out from the starting position [1,1]!"
		e.publish()
		return false
	}
	if !s.hasGold {
		s.message = "You need to find the gold before you can escape!"
		e.publish()
		return false
	}

	s.phase = models.Won
	s.score += winReward
	s.message = "Congratulations! You escaped with the gold!"
	s.summary = &models.Summary{
		Title:   "Victory",
		Message: "Victory! You escaped with the gold!",
		Score:   s.score,
	}
	e.logger.Printf("game %d won with score %d", e.epoch, s.score)
	e.publish()
	return true
}

func (e *Engine) lose(message, outcome string) {
	s := e.s
	s.phase = models.Lost
	s.score -= deathPenalty
	s.message = message
	s.summary = &models.Summary{Title: "Game Over", Message: outcome, Score: s.score}
	e.logger.Printf("game %d lost at %s with score %d", e.epoch, s.pos, s.score)
	e.publish()
}

// updatePercepts rebuilds the percept set from the current cell and its
// neighbours. A scream that has not yet expired survives.
func (e *Engine) updatePercepts() {
	s := e.s
	scream := s.percepts.Has(models.Scream)
	s.percepts = 0
	if scream {
		s.percepts.Add(models.Scream)
	}

	if s.world.At(s.pos).Gold {
		s.percepts.Add(models.Glitter)
	}
	for _, n := range s.world.Neighbors(s.pos) {
		cell := s.world.At(n)
		if cell.Wumpus && s.wumpusAlive {
			s.percepts.Add(models.Stench)
		}
		if cell.Pit {
			s.percepts.Add(models.Breeze)
		}
	}
}

func (e *Engine) addTimed(p models.Percept, kind TimerKind, d time.Duration) {
	e.s.percepts.Add(p)
	e.schedule(kind, d)
}

func (e *Engine) schedule(kind TimerKind, d time.Duration) {
	e.seq++
	e.latest[kind] = e.seq
	e.timers = append(e.timers, Timer{Epoch: e.epoch, Seq: e.seq, Kind: kind, Delay: d})
}

// Timers drains the timers queued since the last call.
func (e *Engine) Timers() []Timer {
	t := e.timers
	e.timers = nil
	return t
}

// Fire applies a due timer. It reports false for timers that belong to an
// earlier game or were superseded by a newer timer of the same kind.
func (e *Engine) Fire(t Timer) bool {
	if t.Epoch != e.epoch {
		e.logger.Printf("dropping stale %s timer from game %d", t.Kind, t.Epoch)
		return false
	}

	switch t.Kind {
	case ClearBump:
		if e.latest[ClearBump] != t.Seq {
			return false
		}
		e.s.percepts.Remove(models.Bump)
	case ClearScream:
		if e.latest[ClearScream] != t.Seq {
			return false
		}
		e.s.percepts.Remove(models.Scream)
	case Recompute:
		if e.s.phase.Terminal() {
			return false
		}
		e.updatePercepts()
	default:
		return false
	}
	e.publish()
	return true
}

// Attach replaces the display and immediately shows it the current view.
func (e *Engine) Attach(d Display) {
	e.display = d
	e.publish()
}

func (e *Engine) publish() {
	if e.display != nil {
		e.display.Show(e.View())
	}
}

// Epoch counts restarts. Timers carry the epoch they were created in.
func (e *Engine) Epoch() uint64 { return e.epoch }

func (e *Engine) Phase() models.Phase { return e.s.phase }

func (e *Engine) Score() int { return e.s.score }

func (e *Engine) Message() string { return e.s.message }

// World returns a copy of the hidden world, for tests and reports.
func (e *Engine) World() models.World { return e.s.world.Clone() }

// WumpusAlive reports whether the wumpus is still a threat.
func (e *Engine) WumpusAlive() bool { return e.s.wumpusAlive }
