package canvas

import (
	"image"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/tatianab/wumpus-world/internal/config"
	"github.com/tatianab/wumpus-world/internal/engine"
	"github.com/tatianab/wumpus-world/internal/models"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestGame(t *testing.T) (*Game, *clock) {
	t.Helper()
	w := models.NewWorld(4)
	w.At(models.Position{X: 3, Y: 1}).Wumpus = true
	w.At(models.Position{X: 4, Y: 4}).Gold = true

	eng, err := engine.NewEngine(config.Default(), engine.WithWorld(w), engine.WithRand(rand.New(rand.NewPCG(3, 4))))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	c := &clock{t: time.Unix(1000, 0)}
	g := New(eng, config.Default())
	g.now = c.now
	g.Layout(960, 720)
	return g, c
}

func center(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

func (g *Game) button(label string) control {
	for _, c := range g.controls() {
		if c.label == label {
			return c
		}
	}
	return control{}
}

func TestTimers_FireWhenDue(t *testing.T) {
	g, c := newTestGame(t)
	g.act(models.TurnRight)
	g.act(models.Forward)
	if !g.view.Percepts.Has(models.Bump) {
		t.Fatalf("expected bump facing down from [1,1]")
	}
	if len(g.pending) != 1 {
		t.Fatalf("expected one pending timer, got %d", len(g.pending))
	}

	c.t = c.t.Add(time.Second)
	g.fireDue()
	if !g.view.Percepts.Has(models.Bump) {
		t.Fatalf("bump cleared before its delay")
	}

	c.t = c.t.Add(time.Second)
	g.fireDue()
	if g.view.Percepts.Has(models.Bump) {
		t.Fatalf("bump still shown after its delay")
	}
	if len(g.pending) != 0 {
		t.Fatalf("expected empty queue, got %d", len(g.pending))
	}
}

func TestRestart_DropsPendingTimers(t *testing.T) {
	g, _ := newTestGame(t)
	g.act(models.Shoot)
	if len(g.pending) == 0 {
		t.Fatalf("expected scream timers after the kill")
	}
	g.restart()
	if len(g.pending) != 0 {
		t.Fatalf("restart kept %d timers", len(g.pending))
	}
	if g.engine.Epoch() != 1 {
		t.Fatalf("epoch = %d, want 1", g.engine.Epoch())
	}
}

func TestClick_Buttons(t *testing.T) {
	g, _ := newTestGame(t)

	g.click(center(g.button("Shoot").rect))
	if !g.view.Percepts.Has(models.Scream) {
		t.Fatalf("shoot button did not fire the arrow")
	}
	if g.button("Shoot").enabled {
		t.Fatalf("shoot button should be disabled with no arrows")
	}

	score := g.view.Score
	g.click(center(g.button("Shoot").rect))
	if g.view.Score != score {
		t.Fatalf("disabled button changed the score")
	}

	g.click(center(g.button("Restart").rect))
	if g.engine.Epoch() != 1 || g.view.Arrows != 1 {
		t.Fatalf("restart button did not start a new game")
	}
}

func TestAct_IgnoredWhenGameOver(t *testing.T) {
	g, _ := newTestGame(t)
	g.act(models.Forward)
	g.act(models.Forward)
	if g.view.Phase != models.Lost {
		t.Fatalf("phase = %s, want LOST", g.view.Phase)
	}
	for _, b := range g.controls() {
		if b.enabled && !b.restart {
			t.Fatalf("%s enabled after the game ended", b.label)
		}
	}
	score := g.view.Score
	g.act(models.TurnLeft)
	if g.view.Score != score {
		t.Fatalf("action changed score after game over")
	}
}

func TestLayout_ResizesField(t *testing.T) {
	g, _ := newTestGame(t)
	w, h := g.Layout(800, 600)
	if w != 800 || h != 600 {
		t.Fatalf("layout = %dx%d, want 800x600", w, h)
	}
	fw, fh := g.field.Size()
	if fw != 800 || fh != 600 {
		t.Fatalf("field = %.0fx%.0f, want 800x600", fw, fh)
	}
	for _, p := range g.field.Particles() {
		if p.X < 0 || p.X > 800 || p.Y < 0 || p.Y > 600 {
			t.Fatalf("particle outside new bounds: (%.1f,%.1f)", p.X, p.Y)
		}
	}
}

func TestCellRect_BottomRowIsY1(t *testing.T) {
	g, _ := newTestGame(t)
	if r := g.cellRect(models.Position{X: 1, Y: 1}); r.Min != image.Pt(40, 420) {
		t.Fatalf("[1,1] at %v", r.Min)
	}
	if r := g.cellRect(models.Position{X: 4, Y: 4}); r.Min != image.Pt(400, 60) {
		t.Fatalf("[4,4] at %v", r.Min)
	}
}

func TestWrap(t *testing.T) {
	got := wrap("You hear a terrible scream! The Wumpus is dead!", 20)
	want := []string{"You hear a terrible", "scream! The Wumpus", "is dead!"}
	if len(got) != len(want) {
		t.Fatalf("wrap = %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}
