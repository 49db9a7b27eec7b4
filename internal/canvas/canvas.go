// Package canvas is the graphical front end. It runs in a desktop window or,
// built with GOOS=js GOARCH=wasm, in a browser page.
package canvas

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tatianab/wumpus-world/internal/config"
	"github.com/tatianab/wumpus-world/internal/engine"
	"github.com/tatianab/wumpus-world/internal/models"
	"github.com/tatianab/wumpus-world/internal/particles"
)

// control is an on-screen button.
type control struct {
	label   string
	action  models.Action
	restart bool
	rect    image.Rectangle
	enabled bool
}

type scheduled struct {
	due   time.Time
	timer engine.Timer
}

// Game implements ebiten.Game on top of the engine.
type Game struct {
	engine  *engine.Engine
	view    models.View
	field   *particles.Field
	pending []scheduled
	width   int
	height  int
	now     func() time.Time
}

var keyActions = []struct {
	keys   []ebiten.Key
	action models.Action
}{
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, models.Forward},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, models.TurnLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, models.TurnRight},
	{[]ebiten.Key{ebiten.KeyG}, models.Grab},
	{[]ebiten.Key{ebiten.KeySpace, ebiten.KeyS}, models.Shoot},
	{[]ebiten.Key{ebiten.KeyC}, models.Climb},
}

// New wires a Game to eng. The particle field is sized on the first Layout.
func New(eng *engine.Engine, cfg *config.Config) *Game {
	g := &Game{
		width:  960,
		height: 720,
		now:    time.Now,
	}
	g.field = particles.New(particles.Options{
		Count:        cfg.Particles.Count,
		LinkDistance: cfg.Particles.LinkDistance,
	}, float64(g.width), float64(g.height), nil)
	g.engine = eng
	eng.Attach(engine.DisplayFunc(func(v models.View) { g.view = v }))
	g.collectTimers()
	return g
}

// Update handles input, fires due timers and advances the background.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.field.Running() {
			g.field.Stop()
		} else {
			g.field.Start()
		}
	}
	for _, ka := range keyActions {
		for _, k := range ka.keys {
			if inpututil.IsKeyJustPressed(k) {
				g.act(ka.action)
			}
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.click(image.Pt(x, y))
	}

	g.fireDue()
	g.field.Tick()
	return nil
}

// Layout follows the window size and regenerates particles when it changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.field.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return g.width, g.height
}

func (g *Game) act(a models.Action) {
	if !g.view.Controls.Enabled(a) {
		return
	}
	g.engine.Do(a)
	g.collectTimers()
}

func (g *Game) restart() {
	g.engine.Restart()
	g.pending = nil
	g.collectTimers()
}

func (g *Game) click(pt image.Point) {
	for _, c := range g.controls() {
		if !pt.In(c.rect) || !c.enabled {
			continue
		}
		if c.restart {
			g.restart()
		} else {
			g.act(c.action)
		}
		return
	}
}

func (g *Game) collectTimers() {
	now := g.now()
	for _, t := range g.engine.Timers() {
		g.pending = append(g.pending, scheduled{due: now.Add(t.Delay), timer: t})
	}
}

func (g *Game) fireDue() {
	now := g.now()
	kept := g.pending[:0]
	for _, s := range g.pending {
		if now.Before(s.due) {
			kept = append(kept, s)
			continue
		}
		g.engine.Fire(s.timer)
	}
	g.pending = kept
}

// controls lays out the action buttons below the board.
func (g *Game) controls() []control {
	board := g.boardRect()
	const w, h, gap = 96, 32, 8

	labels := []struct {
		label  string
		action models.Action
	}{
		{"Forward", models.Forward},
		{"Left", models.TurnLeft},
		{"Right", models.TurnRight},
		{"Grab", models.Grab},
		{"Shoot", models.Shoot},
		{"Climb", models.Climb},
	}

	out := make([]control, 0, len(labels)+1)
	x, y := board.Min.X, board.Max.Y+24
	for i, l := range labels {
		if i == 3 {
			x, y = board.Min.X, y+h+gap
		}
		out = append(out, control{
			label:   l.label,
			action:  l.action,
			rect:    image.Rect(x, y, x+w, y+h),
			enabled: g.view.Controls.Enabled(l.action),
		})
		x += w + gap
	}
	out = append(out, control{
		label:   "Restart",
		restart: true,
		rect:    image.Rect(x, y, x+w, y+h),
		enabled: true,
	})
	return out
}

// boardRect is the square the grid is drawn into.
func (g *Game) boardRect() image.Rectangle {
	side := min(g.width/2, g.height-180)
	side = max(side, 160)
	x := 40
	y := 60
	return image.Rect(x, y, x+side, y+side)
}

// cellRect returns the screen rectangle of a grid cell.
func (g *Game) cellRect(p models.Position) image.Rectangle {
	board := g.boardRect()
	n := max(g.view.Size, 1)
	side := board.Dx() / n
	x := board.Min.X + (p.X-1)*side
	y := board.Min.Y + (n-p.Y)*side
	return image.Rect(x, y, x+side, y+side)
}
