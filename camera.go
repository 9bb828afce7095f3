package sprig

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/tanema/gween/ease"
)

// follow is the sprite a camera tracks.
type follow struct {
	target Sprite
	offset Vec2
	lerp   float64
}

// Camera controls the view into the world. With the default camera the
// world origin sits at the canvas center with y pointing up.
type Camera struct {
	// X and Y are the world point shown at the canvas center.
	X, Y float64
	// Zoom scales the world; values of zero or less count as 1.
	Zoom float64
	// Dir is the camera heading in degrees, clockwise. Turning the camera
	// right makes the world appear to turn left.
	Dir float64

	// BoundsEnabled keeps the visible area inside Bounds.
	BoundsEnabled bool
	Bounds        BoundingBox

	width, height float64

	follow *follow
	scroll tweenSet
}

func newCamera(width, height int) *Camera {
	return &Camera{Zoom: 1, width: float64(width), height: float64(height)}
}

// Follow tracks s, offset by (offsetX, offsetY). Each Update closes lerp of
// the remaining distance: 1 snaps, smaller values trail behind. Following
// stops when s leaves its engine.
func (c *Camera) Follow(s Sprite, offsetX, offsetY, lerp float64) {
	c.follow = &follow{target: s, offset: Vec2{offsetX, offsetY}, lerp: lerp}
}

// Unfollow stops tracking.
func (c *Camera) Unfollow() { c.follow = nil }

// ScrollTo glides the camera to (x, y) over duration seconds. A nil easeFn
// is linear. Scrolling and following can run together; the scroll is
// applied last.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scroll = newTweenSet(duration, easeFn, [2]float64{c.X, x}, [2]float64{c.Y, y})
}

// Scrolling reports whether a ScrollTo is in progress.
func (c *Camera) Scrolling() bool { return c.scroll != nil }

// SetBounds enables bounds clamping.
func (c *Camera) SetBounds(bounds BoundingBox) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables bounds clamping.
func (c *Camera) ClearBounds() { c.BoundsEnabled = false }

// update advances following, scrolling and clamping by dt seconds and
// reports whether the camera moved.
func (c *Camera) update(dt float32) bool {
	from := Vec2{c.X, c.Y}

	if f := c.follow; f != nil {
		if b := f.target.Base(); b.engine == nil || !b.engine.registered[f.target] {
			c.follow = nil
		} else {
			c.X += (b.x + f.offset[0] - c.X) * f.lerp
			c.Y += (b.y + f.offset[1] - c.Y) * f.lerp
		}
	}

	if c.scroll != nil {
		var v [2]float64
		if c.scroll.advance(dt, v[:]) {
			c.scroll = nil
		}
		c.X, c.Y = v[0], v[1]
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
	return c.X != from[0] || c.Y != from[1]
}

// clampToBounds restricts the position so the visible area stays within
// Bounds. Bounds smaller than the view center the camera on them.
func (c *Camera) clampToBounds() {
	zoom := c.zoom()
	halfW := c.width / (2 * zoom)
	halfH := c.height / (2 * zoom)

	minX, maxX := c.Bounds.Left()+halfW, c.Bounds.Right()-halfW
	minY, maxY := c.Bounds.Bottom()+halfH, c.Bounds.Top()-halfH

	if minX > maxX {
		c.X = c.Bounds.X
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

func (c *Camera) zoom() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// View returns the world-to-screen matrix:
//
//	Translate(w/2, h/2) * Scale(zoom, -zoom) * Rotate(dir) * Translate(-X, -Y)
func (c *Camera) View() gg.Matrix {
	z := c.zoom()
	sin, cos := math.Sincos(ToRadians(c.Dir))
	cx, cy := c.width/2, c.height/2
	return gg.Matrix{
		A: z * cos, B: -z * sin, C: cx + z*(-cos*c.X+sin*c.Y),
		D: -z * sin, E: -z * cos, F: cy + z*(sin*c.X+cos*c.Y),
	}
}

// WorldToScreen converts world coordinates to screen pixels.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	p := c.View().TransformPoint(gg.Pt(wx, wy))
	return p.X, p.Y
}

// ScreenToWorld converts screen pixels to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	p := c.View().Invert().TransformPoint(gg.Pt(sx, sy))
	return p.X, p.Y
}

// VisibleBounds returns the world-space box around the visible area.
func (c *Camera) VisibleBounds() BoundingBox {
	inv := c.View().Invert()
	poly := []gg.Point{
		inv.TransformPoint(gg.Pt(0, 0)),
		inv.TransformPoint(gg.Pt(c.width, 0)),
		inv.TransformPoint(gg.Pt(c.width, c.height)),
		inv.TransformPoint(gg.Pt(0, c.height)),
	}
	box, _ := polyBounds([][]gg.Point{poly})
	return box
}
