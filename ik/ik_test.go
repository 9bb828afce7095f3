package ik

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewChainRejectsShortChains(t *testing.T) {
	for _, links := range [][]float64{nil, {5}} {
		if _, err := NewChain(links...); !errors.Is(err, ErrTooFewLinks) {
			t.Errorf("NewChain(%v) error = %v, want ErrTooFewLinks", links, err)
		}
	}
}

func TestStraightChainPoints(t *testing.T) {
	c, err := NewChain(10, 5, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []mgl64.Vec2{{10, 0}, {15, 0}, {17, 0}}
	for i, p := range c.Points() {
		if !p.ApproxEqual(want[i]) {
			t.Errorf("Points()[%d] = %v, want %v", i, p, want[i])
		}
	}
	if got := c.Reach(); got != 17 {
		t.Errorf("Reach() = %v, want 17", got)
	}
}

func TestHeadings(t *testing.T) {
	c, _ := NewChain(1, 1)
	c.SetAngles(math.Pi/2, -math.Pi/2)
	got := c.Headings()
	want := []float64{0, 90}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("Headings()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSolveReachableTarget(t *testing.T) {
	targets := []mgl64.Vec2{{10, 10}, {-5, 8}, {0, -12}}
	for _, target := range targets {
		c, _ := NewChain(10, 10)
		if !c.Solve(target, SolveOptions{Iterations: 5000, Tolerance: 0.01}) {
			t.Errorf("Solve(%v) did not converge, tip at %v", target, c.End())
			continue
		}
		if d := target.Sub(c.End()).Len(); d >= 0.01 {
			t.Errorf("Solve(%v) tip distance = %v, want < 0.01", target, d)
		}
	}
}

func TestSolveOutOfReachExtends(t *testing.T) {
	c, _ := NewChain(10, 10)
	c.Solve(mgl64.Vec2{0, 100}, SolveOptions{})
	if a := c.Angles(); math.Abs(a[0]-math.Pi/2) > 1e-12 || a[1] != 0 {
		t.Errorf("Angles() = %v, want [pi/2 0]", a)
	}
	if end := c.End(); !end.ApproxEqualThreshold(mgl64.Vec2{0, 20}, 1e-9) {
		t.Errorf("End() = %v, want (0, 20)", end)
	}
	if h := c.Headings(); math.Abs(h[0]) > 1e-9 {
		t.Errorf("Headings()[0] = %v, want 0", h[0])
	}
}
