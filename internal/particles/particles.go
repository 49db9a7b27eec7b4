// Package particles drifts a handful of dots around a rectangle and links the
// ones that come close to each other. It is purely decorative.
package particles

import (
	"image/color"
	"math"
	"math/rand/v2"
)

// Palette is the set of colours a particle may be born with.
var Palette = []color.NRGBA{
	{R: 79, G: 140, B: 255, A: 102},  // blue
	{R: 112, G: 193, B: 179, A: 102}, // mint
	{R: 255, G: 169, B: 135, A: 102}, // peach
	{R: 79, G: 140, B: 255, A: 51},
	{R: 112, G: 193, B: 179, A: 51},
}

// LinkColor is the base colour of connecting lines.
var LinkColor = color.NRGBA{R: 79, G: 140, B: 255, A: 255}

// Options tunes a Field. Zero values fall back to the defaults.
type Options struct {
	Count           int
	LinkDistance    float64
	MaxLinkAlpha    float64
	Speed           float64 // max absolute velocity per axis, per frame
	MinRadius       float64
	MaxRadius       float64
	MinOpacity      float64 // bounds of the flicker random walk
	MaxOpacity      float64
	SpawnMinOpacity float64
	SpawnMaxOpacity float64
	Flicker         float64 // max opacity change per frame
}

// DefaultOptions mirrors the page background this was designed for.
func DefaultOptions() Options {
	return Options{
		Count:           50,
		LinkDistance:    120,
		MaxLinkAlpha:    0.1,
		Speed:           0.25,
		MinRadius:       1,
		MaxRadius:       3,
		MinOpacity:      0.1,
		MaxOpacity:      0.6,
		SpawnMinOpacity: 0.2,
		SpawnMaxOpacity: 0.7,
		Flicker:         0.01,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Count <= 0 {
		o.Count = d.Count
	}
	if o.LinkDistance <= 0 {
		o.LinkDistance = d.LinkDistance
	}
	if o.MaxLinkAlpha <= 0 {
		o.MaxLinkAlpha = d.MaxLinkAlpha
	}
	if o.Speed <= 0 {
		o.Speed = d.Speed
	}
	if o.MaxRadius <= 0 {
		o.MinRadius, o.MaxRadius = d.MinRadius, d.MaxRadius
	}
	if o.MaxOpacity <= 0 {
		o.MinOpacity, o.MaxOpacity = d.MinOpacity, d.MaxOpacity
	}
	if o.SpawnMaxOpacity <= 0 {
		o.SpawnMinOpacity, o.SpawnMaxOpacity = d.SpawnMinOpacity, d.SpawnMaxOpacity
	}
	if o.Flicker <= 0 {
		o.Flicker = d.Flicker
	}
	return o
}

type Particle struct {
	X, Y    float64
	VX, VY  float64
	Radius  float64
	Opacity float64
	Color   color.NRGBA
}

// Faded returns the particle colour with its current opacity applied.
func (p Particle) Faded() color.NRGBA {
	c := p.Color
	c.A = uint8(math.Round(p.Opacity * 255))
	return c
}

// Link joins two particles closer than the link distance.
type Link struct {
	A, B  int
	Dist  float64
	Alpha float64 // fades linearly to 0 at the link distance
}

// Field is a fixed-size set of particles inside a W×H rectangle.
type Field struct {
	opts      Options
	rng       *rand.Rand
	w, h      float64
	running   bool
	particles []Particle
}

// New spawns a field sized w×h. A nil rng uses a random seed.
func New(opts Options, w, h float64, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	f := &Field{opts: opts.withDefaults(), rng: rng, running: true}
	f.Resize(w, h)
	return f
}

// Resize regenerates every particle at random positions inside the new bounds.
func (f *Field) Resize(w, h float64) {
	f.w, f.h = w, h
	o := f.opts
	f.particles = make([]Particle, o.Count)
	for i := range f.particles {
		f.particles[i] = Particle{
			X:       f.rng.Float64() * w,
			Y:       f.rng.Float64() * h,
			VX:      (f.rng.Float64()*2 - 1) * o.Speed,
			VY:      (f.rng.Float64()*2 - 1) * o.Speed,
			Radius:  o.MinRadius + f.rng.Float64()*(o.MaxRadius-o.MinRadius),
			Opacity: o.SpawnMinOpacity + f.rng.Float64()*(o.SpawnMaxOpacity-o.SpawnMinOpacity),
			Color:   Palette[f.rng.IntN(len(Palette))],
		}
	}
}

// Step advances one frame: move, wrap at the edges, flicker.
func (f *Field) Step() {
	o := f.opts
	for i := range f.particles {
		p := &f.particles[i]
		p.X = wrap(p.X+p.VX, f.w)
		p.Y = wrap(p.Y+p.VY, f.h)
		p.Opacity += (f.rng.Float64()*2 - 1) * o.Flicker
		p.Opacity = min(max(p.Opacity, o.MinOpacity), o.MaxOpacity)
	}
}

// wrap re-enters a coordinate that left [0, size] from the opposite edge.
func wrap(v, size float64) float64 {
	switch {
	case v < 0:
		return size
	case v > size:
		return 0
	}
	return v
}

// Links returns each unordered pair closer than the link distance.
func (f *Field) Links() []Link {
	limit := f.opts.LinkDistance
	var links []Link
	for i := 0; i < len(f.particles); i++ {
		for j := i + 1; j < len(f.particles); j++ {
			dx := f.particles[i].X - f.particles[j].X
			dy := f.particles[i].Y - f.particles[j].Y
			d := math.Hypot(dx, dy)
			if d < limit {
				links = append(links, Link{A: i, B: j, Dist: d, Alpha: f.opts.MaxLinkAlpha * (1 - d/limit)})
			}
		}
	}
	return links
}

// Start resumes the frame loop.
func (f *Field) Start() { f.running = true }

// Stop halts the frame loop until Start is called.
func (f *Field) Stop() { f.running = false }

func (f *Field) Running() bool { return f.running }

// Tick is called by the host once per frame and steps while running.
func (f *Field) Tick() bool {
	if !f.running {
		return false
	}
	f.Step()
	return true
}

func (f *Field) Particles() []Particle { return f.particles }

func (f *Field) Size() (w, h float64) { return f.w, f.h }

func (f *Field) Options() Options { return f.opts }
