package particles

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestField(w, h float64) *Field {
	return New(Options{}, w, h, rand.New(rand.NewPCG(5, 6)))
}

func TestNewSpawnsInsideBounds(t *testing.T) {
	f := newTestField(800, 600)
	o := f.Options()

	require.Len(t, f.Particles(), 50)
	for _, p := range f.Particles() {
		assert.True(t, p.X >= 0 && p.X <= 800 && p.Y >= 0 && p.Y <= 600, "particle outside bounds: %+v", p)
		assert.True(t, p.Radius >= o.MinRadius && p.Radius <= o.MaxRadius)
		assert.LessOrEqual(t, abs(p.VX), o.Speed)
		assert.LessOrEqual(t, abs(p.VY), o.Speed)
		assert.Contains(t, Palette, p.Color)
		assert.True(t, p.Opacity >= 0.2 && p.Opacity <= 0.7, "spawn opacity %.3f outside [0.2, 0.7]", p.Opacity)
	}
}

func TestStepWrapsAndClampsOpacity(t *testing.T) {
	f := newTestField(100, 100)
	f.particles[0] = Particle{X: 99.9, Y: 0.1, VX: 0.2, VY: -0.2, Radius: 2, Opacity: 0.6, Color: Palette[0]}

	f.Step()
	p := f.Particles()[0]
	assert.Equal(t, 0.0, p.X, "leaving the right edge re-enters on the left")
	assert.Equal(t, 100.0, p.Y, "leaving the top re-enters at the bottom")

	for i := 0; i < 1000; i++ {
		f.Step()
	}
	o := f.Options()
	for _, p := range f.Particles() {
		assert.GreaterOrEqual(t, p.Opacity, o.MinOpacity)
		assert.LessOrEqual(t, p.Opacity, o.MaxOpacity)
	}
	assert.Equal(t, 2.0, f.Particles()[0].Radius, "radius never changes")
}

func TestLinks(t *testing.T) {
	f := New(Options{Count: 3}, 500, 500, rand.New(rand.NewPCG(1, 1)))
	f.particles[0].X, f.particles[0].Y = 0, 0
	f.particles[1].X, f.particles[1].Y = 60, 0
	f.particles[2].X, f.particles[2].Y = 400, 400

	links := f.Links()
	require.Len(t, links, 1)
	assert.Equal(t, 0, links[0].A)
	assert.Equal(t, 1, links[0].B)
	assert.InDelta(t, 60, links[0].Dist, 1e-9)
	assert.InDelta(t, 0.05, links[0].Alpha, 1e-9)
}

func TestResizeRegenerates(t *testing.T) {
	f := newTestField(1000, 1000)
	f.Resize(10, 20)

	w, h := f.Size()
	assert.Equal(t, 10.0, w)
	assert.Equal(t, 20.0, h)
	require.Len(t, f.Particles(), 50)
	for _, p := range f.Particles() {
		assert.True(t, p.X <= 10 && p.Y <= 20, "particle kept old position: %+v", p)
	}
}

func TestStopHaltsTicks(t *testing.T) {
	f := newTestField(100, 100)
	before := append([]Particle(nil), f.Particles()...)

	f.Stop()
	assert.False(t, f.Tick())
	assert.Equal(t, before, f.Particles())

	f.Start()
	assert.True(t, f.Tick())
	assert.NotEqual(t, before, f.Particles())
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
