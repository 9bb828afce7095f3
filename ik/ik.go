// Package ik solves planar inverse kinematics for a chain of links rooted
// at the origin.
//
// Joint angles are relative radians measured counter-clockwise from the
// previous link, the first from the +x axis. [Chain.Headings] converts them
// to sprite headings (degrees clockwise from north) so a chain can drive
// sprites directly.
package ik

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrTooFewLinks is returned by NewChain for chains shorter than two links.
var ErrTooFewLinks = errors.New("ik: a chain needs at least two links")

// damping is added to the diagonal of J*J^T before inversion so the solver
// stays finite near singular poses.
const damping = 0.01

// SolveOptions tunes [Chain.Solve]. Zero fields take defaults: 100
// iterations, tolerance 0.01, rate 0.25.
type SolveOptions struct {
	Iterations int
	Tolerance  float64
	Rate       float64
}

func (o *SolveOptions) applyDefaults() {
	if o.Iterations <= 0 {
		o.Iterations = 100
	}
	if o.Tolerance <= 0 {
		o.Tolerance = 0.01
	}
	if o.Rate <= 0 {
		o.Rate = 0.25
	}
}

// Chain is a sequence of rigid links joined end to end.
type Chain struct {
	links  []float64
	angles []float64
}

// NewChain returns a straight chain along +x with the given link lengths.
func NewChain(links ...float64) (*Chain, error) {
	if len(links) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewLinks, len(links))
	}
	return &Chain{
		links:  append([]float64(nil), links...),
		angles: make([]float64, len(links)),
	}, nil
}

// Links returns a copy of the link lengths.
func (c *Chain) Links() []float64 { return append([]float64(nil), c.links...) }

// Angles returns a copy of the relative joint angles in radians.
func (c *Chain) Angles() []float64 { return append([]float64(nil), c.angles...) }

// SetAngles overwrites the joint angles. Extra values are ignored and
// missing ones are left unchanged.
func (c *Chain) SetAngles(angles ...float64) {
	copy(c.angles, angles)
}

// Reach is the summed link length.
func (c *Chain) Reach() float64 {
	var sum float64
	for _, l := range c.links {
		sum += l
	}
	return sum
}

// Headings returns the absolute direction of each link as a sprite heading
// in degrees, 0 pointing up and increasing clockwise.
func (c *Chain) Headings() []float64 {
	out := make([]float64, len(c.angles))
	var cum float64
	for i, a := range c.angles {
		cum += a
		out[i] = 90 - mgl64.RadToDeg(cum)
	}
	return out
}

// Points returns the end point of every link.
func (c *Chain) Points() []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(c.links))
	var p mgl64.Vec2
	var theta float64
	for i, l := range c.links {
		theta += c.angles[i]
		sin, cos := math.Sincos(theta)
		p = p.Add(mgl64.Vec2{l * cos, l * sin})
		out[i] = p
	}
	return out
}

// End returns the tip of the chain.
func (c *Chain) End() mgl64.Vec2 {
	pts := c.Points()
	return pts[len(pts)-1]
}

// Solve moves the joints so the tip approaches target and reports whether
// it got within the tolerance. A target at or beyond the chain's reach
// fully extends the chain toward it instead. Otherwise the angles restart
// from a straight chain and are refined by damped least squares.
func (c *Chain) Solve(target mgl64.Vec2, o SolveOptions) bool {
	o.applyDefaults()
	if target.Len() >= c.Reach() {
		clear(c.angles)
		c.angles[0] = math.Atan2(target[1], target[0])
		return target.Sub(c.End()).Len() < o.Tolerance
	}

	clear(c.angles)
	for range o.Iterations {
		c.step(target, o.Rate)
		if target.Sub(c.End()).Len() < o.Tolerance {
			return true
		}
	}
	return false
}

// step applies one damped least squares update:
// dθ = rate * J^T (J J^T + λI)^-1 e.
func (c *Chain) step(target mgl64.Vec2, rate float64) {
	jx, jy := c.jacobian()
	var a, b, d float64
	for k := range jx {
		a += jx[k] * jx[k]
		b += jx[k] * jy[k]
		d += jy[k] * jy[k]
	}
	jjt := mgl64.Mat2{a + damping, b, b, d + damping}
	y := jjt.Inv().Mul2x1(target.Sub(c.End()))
	for k := range c.angles {
		c.angles[k] += (jx[k]*y[0] + jy[k]*y[1]) * rate
	}
}

// jacobian returns the partial derivatives of the tip position with respect
// to each joint angle, split into x and y rows.
func (c *Chain) jacobian() (jx, jy []float64) {
	n := len(c.links)
	jx = make([]float64, n)
	jy = make([]float64, n)
	thetas := make([]float64, n)
	var theta float64
	for i, a := range c.angles {
		theta += a
		thetas[i] = theta
	}
	for k := 0; k < n; k++ {
		for i := k; i < n; i++ {
			sin, cos := math.Sincos(thetas[i])
			jx[k] -= c.links[i] * sin
			jy[k] += c.links[i] * cos
		}
	}
	return jx, jy
}
