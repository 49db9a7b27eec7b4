package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/wumpus-world/internal/particles"
)

// Terminal cells are far larger than pixels, so the field is scaled down.
const cellsPerPixel = 0.1

const stripRows = 5

func particleOptions(count int, linkDistance float64) particles.Options {
	return particles.Options{
		Count:        count / 2,
		LinkDistance: linkDistance * cellsPerPixel,
		MaxLinkAlpha: 0.6,
		Speed:        0.15,
		MinRadius:    1,
		MaxRadius:    3,
	}
}

// renderField rasterises the particles and their links into a
// width×height block of text.
func renderField(f *particles.Field, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	glyphs := make([][]rune, height)
	colors := make([][]string, height)
	for y := range glyphs {
		glyphs[y] = []rune(strings.Repeat(" ", width))
		colors[y] = make([]string, width)
	}

	plot := func(x, y int, r rune, c string) {
		if x < 0 || y < 0 || x >= width || y >= height {
			return
		}
		glyphs[y][x] = r
		colors[y][x] = c
	}

	ps := f.Particles()
	for _, l := range f.Links() {
		a, b := ps[l.A], ps[l.B]
		shade := 0x30 + int(l.Alpha*0x90)
		c := fmt.Sprintf("#%02X%02X%02X", shade/3, shade/2, shade)
		line(int(a.X), int(a.Y), int(b.X), int(b.Y), func(x, y int) { plot(x, y, '·', c) })
	}
	for _, p := range ps {
		c := p.Faded()
		glyph := '•'
		if p.Radius > 2 {
			glyph = '●'
		}
		scale := 0.4 + p.Opacity
		plot(int(p.X), int(p.Y), glyph, fmt.Sprintf("#%02X%02X%02X",
			dim(c.R, scale), dim(c.G, scale), dim(c.B, scale)))
	}

	var b strings.Builder
	for y := range glyphs {
		for x, r := range glyphs[y] {
			if colors[y][x] == "" {
				b.WriteRune(r)
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(colors[y][x])).Render(string(r)))
		}
		if y < height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func dim(v uint8, scale float64) uint8 {
	return uint8(math.Min(255, float64(v)*scale))
}

// line walks the cells between two points with Bresenham's algorithm.
func line(x0, y0, x1, y1 int, visit func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
