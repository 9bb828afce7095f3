// Package noise generates seeded 1D and 2D Perlin gradient noise.
//
// Both generators sample a wrapping grid of random gradients, so the output
// repeats every GradientCount units along each axis. Values at integer
// coordinates are always zero.
package noise

import (
	"math"
	"math/rand/v2"
)

// DefaultGradientCount is the grid size used when none is given.
const DefaultGradientCount = 100

// Options configures a generator. Zero fields take defaults: amplitude 1
// and DefaultGradientCount gradients.
type Options struct {
	Seed          uint64
	Amplitude     float64
	GradientCount int
}

func (o *Options) applyDefaults() {
	if o.Amplitude == 0 {
		o.Amplitude = 1
	}
	if o.GradientCount <= 0 {
		o.GradientCount = DefaultGradientCount
	}
}

// Perlin1D is one-dimensional gradient noise. Output lies in
// [-Amplitude, Amplitude].
type Perlin1D struct {
	Amplitude float64
	rng       *rand.Rand
	gradients []float64
}

// New1D returns a 1D generator seeded from o.Seed.
func New1D(o Options) *Perlin1D {
	o.applyDefaults()
	p := &Perlin1D{
		Amplitude: o.Amplitude,
		rng:       rand.New(rand.NewPCG(o.Seed, o.Seed^0x9e3779b97f4a7c15)),
		gradients: make([]float64, o.GradientCount),
	}
	p.Regen()
	return p
}

// Regen draws a fresh set of gradients from the generator's random stream.
func (p *Perlin1D) Regen() {
	for i := range p.gradients {
		p.gradients[i] = p.rng.Float64()*2 - 1
	}
}

// At samples the noise at x.
func (p *Perlin1D) At(x float64) float64 {
	x0 := math.Floor(x)
	n := len(p.gradients)
	left := p.gradients[wrap(int(x0), n)]
	right := p.gradients[wrap(int(x0)+1, n)]

	dl := x - x0
	dr := dl - 1
	return lerp(left*dl, right*dr, fade(dl)) * p.Amplitude * 2
}

// Perlin2D is two-dimensional gradient noise over unit gradients.
type Perlin2D struct {
	Amplitude float64
	rng       *rand.Rand
	count     int
	gradients [][2]float64
}

// New2D returns a 2D generator seeded from o.Seed.
func New2D(o Options) *Perlin2D {
	o.applyDefaults()
	p := &Perlin2D{
		Amplitude: o.Amplitude,
		rng:       rand.New(rand.NewPCG(o.Seed, o.Seed^0x9e3779b97f4a7c15)),
		count:     o.GradientCount,
		gradients: make([][2]float64, o.GradientCount*o.GradientCount),
	}
	p.Regen()
	return p
}

// Regen draws a fresh gradient grid.
func (p *Perlin2D) Regen() {
	for i := range p.gradients {
		x := p.rng.Float64()*2 - 1
		y := p.rng.Float64()*2 - 1
		if mag := math.Hypot(x, y); mag != 0 {
			p.gradients[i] = [2]float64{x / mag, y / mag}
		} else {
			p.gradients[i] = [2]float64{1, 0}
		}
	}
}

func (p *Perlin2D) gradient(ix, iy int) [2]float64 {
	return p.gradients[wrap(iy, p.count)*p.count+wrap(ix, p.count)]
}

// At samples the noise at (x, y).
func (p *Perlin2D) At(x, y float64) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	x0, y0 := int(fx), int(fy)
	dx0, dy0 := x-fx, y-fy
	dx1, dy1 := dx0-1, dy0-1

	dot := func(g [2]float64, dx, dy float64) float64 { return g[0]*dx + g[1]*dy }
	bl := dot(p.gradient(x0, y0), dx0, dy0)
	br := dot(p.gradient(x0+1, y0), dx1, dy0)
	tl := dot(p.gradient(x0, y0+1), dx0, dy1)
	tr := dot(p.gradient(x0+1, y0+1), dx1, dy1)

	u, v := fade(dx0), fade(dy0)
	return lerp(lerp(bl, br, u), lerp(tl, tr, u), v) * p.Amplitude * 2
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, w float64) float64 {
	return a*(1-w) + b*w
}

// wrap returns n mod m in [0, m).
func wrap(n, m int) int {
	return ((n % m) + m) % m
}
