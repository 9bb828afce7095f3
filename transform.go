package sprig

import (
	"math"

	"github.com/gogpu/gg"
)

// localToWorld maps a sprite's local outline (y-up, size already folded in)
// into world space. Every consumer of sprite geometry uses this one matrix:
// drawing, bounding boxes, collision rasters and hover tests.
//
// Composition order:
//
//	Translate(-pivot*size) -> Rotate(-dir) -> Translate(x, y)
//
// dir is a clockwise compass heading, so the y-up rotation is negated.
func localToWorld(x, y, dir, size float64, pivot Vec2) gg.Matrix {
	sin, cos := math.Sincos(ToRadians(dir))
	ox := -pivot[0] * size
	oy := -pivot[1] * size
	return gg.Matrix{
		A: cos, B: sin, C: cos*ox + sin*oy + x,
		D: -sin, E: cos, F: -sin*ox + cos*oy + y,
	}
}

// worldToRaster maps world space (y-up) onto a raster (y-down) whose pixel
// (0, 0) sits at the world point (left, top).
func worldToRaster(left, top float64) gg.Matrix {
	return gg.Matrix{A: 1, C: -left, E: -1, F: top}
}

const (
	quadSegments  = 8
	cubicSegments = 16
)

// flattenPath converts p into closed polylines transformed by m. Curves are
// sampled uniformly; open subpaths are treated as implicitly closed, the way
// a fill would close them.
func flattenPath(p *gg.Path, m gg.Matrix) [][]gg.Point {
	if p == nil {
		return nil
	}
	var (
		polys [][]gg.Point
		cur   []gg.Point
		start gg.Point
		last  gg.Point
	)
	flush := func() {
		if len(cur) > 1 {
			polys = append(polys, cur)
		}
		cur = nil
	}
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			flush()
			start, last = e.Point, e.Point
			cur = append(cur, m.TransformPoint(e.Point))
		case gg.LineTo:
			last = e.Point
			cur = append(cur, m.TransformPoint(e.Point))
		case gg.QuadTo:
			p0 := last
			for i := 1; i <= quadSegments; i++ {
				t := float64(i) / quadSegments
				u := 1 - t
				pt := gg.Pt(
					u*u*p0.X+2*u*t*e.Control.X+t*t*e.Point.X,
					u*u*p0.Y+2*u*t*e.Control.Y+t*t*e.Point.Y,
				)
				cur = append(cur, m.TransformPoint(pt))
			}
			last = e.Point
		case gg.CubicTo:
			p0 := last
			for i := 1; i <= cubicSegments; i++ {
				t := float64(i) / cubicSegments
				u := 1 - t
				a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
				pt := gg.Pt(
					a*p0.X+b*e.Control1.X+c*e.Control2.X+d*e.Point.X,
					a*p0.Y+b*e.Control1.Y+c*e.Control2.Y+d*e.Point.Y,
				)
				cur = append(cur, m.TransformPoint(pt))
			}
			last = e.Point
		case gg.Close:
			last = start
			flush()
		}
	}
	flush()
	return polys
}

// polyBounds returns the axis-aligned box around every point of polys.
// ok is false when there are no points.
func polyBounds(polys [][]gg.Point) (box BoundingBox, ok bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, pt := range poly {
			minX = math.Min(minX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxX = math.Max(maxX, pt.X)
			maxY = math.Max(maxY, pt.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return BoundingBox{}, false
	}
	return BoundingBox{
		X:      (minX + maxX) / 2,
		Y:      (minY + maxY) / 2,
		Width:  maxX - minX,
		Height: maxY - minY,
	}, true
}

// windingContains reports whether pt is inside polys under the nonzero
// winding rule, matching how paths are filled.
func windingContains(polys [][]gg.Point, pt gg.Point) bool {
	winding := 0
	for _, poly := range polys {
		n := len(poly)
		for i := 0; i < n; i++ {
			a := poly[i]
			b := poly[(i+1)%n]
			if a.Y <= pt.Y {
				if b.Y > pt.Y && isLeft(a, b, pt) > 0 {
					winding++
				}
			} else if b.Y <= pt.Y && isLeft(a, b, pt) < 0 {
				winding--
			}
		}
	}
	return winding != 0
}

func isLeft(a, b, p gg.Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)
}

// rotatedBoxBounds bounds a local box of half extents (hw, hh) centered on
// the local origin after applying m. Used by the rectangle-like variants.
func rotatedBoxBounds(m gg.Matrix, hw, hh float64) BoundingBox {
	c := m.TransformPoint(gg.Pt(0, 0))
	return BoundingBox{
		X:      c.X,
		Y:      c.Y,
		Width:  2 * (math.Abs(m.A*hw) + math.Abs(m.B*hh)),
		Height: 2 * (math.Abs(m.D*hw) + math.Abs(m.E*hh)),
	}
}

// rotatedEllipseBounds bounds an axis-aligned local ellipse centered on the
// local origin after applying m.
func rotatedEllipseBounds(m gg.Matrix, rx, ry float64) BoundingBox {
	c := m.TransformPoint(gg.Pt(0, 0))
	return BoundingBox{
		X:      c.X,
		Y:      c.Y,
		Width:  2 * math.Hypot(m.A*rx, m.B*ry),
		Height: 2 * math.Hypot(m.D*rx, m.E*ry),
	}
}
