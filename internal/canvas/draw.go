package canvas

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tatianab/wumpus-world/internal/models"
	"github.com/tatianab/wumpus-world/internal/particles"
	"golang.org/x/image/font/basicfont"
)

const lineHeight = 16

var (
	face = text.NewGoXFace(basicfont.Face7x13)

	background  = color.RGBA{R: 12, G: 14, B: 22, A: 255}
	gridLine    = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	unknownFill = color.RGBA{R: 24, G: 26, B: 36, A: 220}
	visitedFill = color.RGBA{R: 40, G: 44, B: 70, A: 230}
	playerEdge  = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	hazard      = color.RGBA{R: 255, G: 95, B: 95, A: 255}
	gold        = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	title       = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	plain       = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	muted       = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	perceptOn   = color.RGBA{R: 112, G: 193, B: 179, A: 255}
	buttonFill  = color.RGBA{R: 95, G: 95, B: 135, A: 255}
	buttonOff   = color.RGBA{R: 45, G: 45, B: 55, A: 255}
	shade       = color.RGBA{R: 0, G: 0, B: 0, A: 170}
)

// Draw renders the background field, the board, the side panel and, once the
// game is over, the summary overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	drawField(screen, g.field)

	v := g.view
	drawText(screen, "WUMPUS WORLD", 40, 24, title)
	g.drawBoard(screen, v)
	g.drawPanel(screen, v)
	g.drawControls(screen)

	ebitenutil.DebugPrintAt(screen, "arrows/WAD move  G grab  S shoot  C climb  R restart  P particles  Esc quit",
		40, g.height-24)

	if v.Summary != nil {
		g.drawSummary(screen, v)
	}
}

func drawField(screen *ebiten.Image, f *particles.Field) {
	ps := f.Particles()
	for _, l := range f.Links() {
		a, b := ps[l.A], ps[l.B]
		c := particles.LinkColor
		c.A = uint8(l.Alpha * 255)
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, c, true)
	}
	for _, p := range ps {
		vector.FillCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius), p.Faded(), true)
	}
}

func (g *Game) drawBoard(screen *ebiten.Image, v models.View) {
	for _, row := range v.Cells {
		for _, c := range row {
			r := g.cellRect(c.Pos)
			x, y := float32(r.Min.X), float32(r.Min.Y)
			w, h := float32(r.Dx()), float32(r.Dy())

			fill := unknownFill
			if c.Visited {
				fill = visitedFill
			}
			vector.FillRect(screen, x, y, w, h, fill, false)
			vector.StrokeRect(screen, x, y, w, h, 1, gridLine, false)

			var marks []string
			var clr color.Color = plain
			if c.Wumpus {
				marks = append(marks, "W")
				clr = hazard
			}
			if c.Pit {
				marks = append(marks, "PIT")
				clr = hazard
			}
			if c.Gold {
				marks = append(marks, "$")
				clr = gold
			}
			if len(marks) > 0 {
				drawCentered(screen, strings.Join(marks, " "), r, 8, clr)
			}

			if c.Player {
				vector.StrokeRect(screen, x+2, y+2, w-4, h-4, 3, playerEdge, false)
				drawFacing(screen, r, v.Facing)
			}
		}
	}

	board := g.boardRect()
	for i := 1; i <= v.Size; i++ {
		col := g.cellRect(models.Position{X: i, Y: 1})
		drawText(screen, fmt.Sprint(i), float64(col.Min.X+col.Dx()/2-3), float64(board.Max.Y+4), muted)
		row := g.cellRect(models.Position{X: 1, Y: i})
		drawText(screen, fmt.Sprint(i), float64(board.Min.X-16), float64(row.Min.Y+row.Dy()/2-6), muted)
	}
}

func (g *Game) drawPanel(screen *ebiten.Image, v models.View) {
	x := float64(g.boardRect().Max.X + 40)
	y := 60.0

	hasGold := "No"
	if v.HasGold {
		hasGold = "Yes"
	}
	drawText(screen, "STATUS", x, y, title)
	y += lineHeight * 1.5
	for _, l := range []string{
		fmt.Sprintf("Score: %d", v.Score),
		fmt.Sprintf("Position: %s", v.Position),
		fmt.Sprintf("Facing: %s", v.Facing.Label()),
		fmt.Sprintf("Arrows: %d", v.Arrows),
		fmt.Sprintf("Gold: %s", hasGold),
	} {
		drawText(screen, l, x, y, plain)
		y += lineHeight
	}

	y += lineHeight
	drawText(screen, "PERCEPTS", x, y, title)
	y += lineHeight * 1.5
	for _, p := range models.Percepts {
		clr := muted
		if v.Percepts.Has(p) {
			clr = perceptOn
		}
		drawText(screen, p.String(), x, y, clr)
		y += lineHeight
	}

	y += lineHeight
	for _, l := range wrap(v.Message, 40) {
		drawText(screen, l, x, y, plain)
		y += lineHeight
	}
}

func (g *Game) drawControls(screen *ebiten.Image) {
	for _, c := range g.controls() {
		fill, clr := buttonFill, plain
		if !c.enabled {
			fill, clr = buttonOff, muted
		}
		x, y := float32(c.rect.Min.X), float32(c.rect.Min.Y)
		vector.FillRect(screen, x, y, float32(c.rect.Dx()), float32(c.rect.Dy()), fill, false)
		drawCentered(screen, c.label, c.rect, 0, clr)
	}
}

func (g *Game) drawSummary(screen *ebiten.Image, v models.View) {
	vector.FillRect(screen, 0, 0, float32(g.width), float32(g.height), shade, false)

	const w, h = 420, 150
	r := image.Rect((g.width-w)/2, (g.height-h)/2, (g.width+w)/2, (g.height+h)/2)
	edge := hazard
	if v.Phase == models.Won {
		edge = gold
	}
	vector.FillRect(screen, float32(r.Min.X), float32(r.Min.Y), w, h, background, false)
	vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), w, h, 2, edge, false)

	drawCentered(screen, strings.ToUpper(v.Summary.Title), r, -40, edge)
	drawCentered(screen, v.Summary.Message, r, -10, plain)
	drawCentered(screen, fmt.Sprintf("Final score: %d", v.Summary.Score), r, 14, plain)
	drawCentered(screen, "R: new game   Esc: quit", r, 46, muted)
}

// drawFacing draws a triangle in the upper half of r pointing the way the
// player faces. basicfont has no arrow glyphs.
func drawFacing(screen *ebiten.Image, r image.Rectangle, d models.Direction) {
	cx := float32(r.Min.X) + float32(r.Dx())/2
	cy := float32(r.Min.Y) + float32(r.Dy())/3
	size := float32(r.Dy()) / 8
	dx, dy := d.Vector()
	// Screen y grows downwards.
	fx, fy := float32(dx), float32(-dy)
	tip := [2]float32{cx + fx*size, cy + fy*size}
	left := [2]float32{cx - fx*size - fy*size, cy - fy*size + fx*size}
	right := [2]float32{cx - fx*size + fy*size, cy - fy*size - fx*size}

	var path vector.Path
	path.MoveTo(tip[0], tip[1])
	path.LineTo(left[0], left[1])
	path.LineTo(right[0], right[1])
	path.Close()

	opts := &vector.DrawPathOptions{AntiAlias: true}
	opts.ColorScale.ScaleWithColor(playerEdge)
	vector.FillPath(screen, &path, &vector.FillOptions{}, opts)
}

func drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}

// drawCentered draws s centred in r, shifted vertically by dy.
func drawCentered(screen *ebiten.Image, s string, r image.Rectangle, dy float64, clr color.Color) {
	w, h := text.Measure(s, face, 0)
	x := float64(r.Min.X) + (float64(r.Dx())-w)/2
	y := float64(r.Min.Y) + (float64(r.Dy())-h)/2 + dy
	drawText(screen, s, x, y, clr)
}

// wrap breaks s into lines of at most width runes on word boundaries.
func wrap(s string, width int) []string {
	var lines []string
	var cur string
	for _, w := range strings.Fields(s) {
		switch {
		case cur == "":
			cur = w
		case len(cur)+1+len(w) <= width:
			cur += " " + w
		default:
			lines = append(lines, cur)
			cur = w
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
