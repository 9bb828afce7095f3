package sprig

import (
	"errors"
	"image/color"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

var (
	ColorBlack = Color{0, 0, 0, 1}
	ColorWhite = Color{1, 1, 1, 1}
	// ColorButton is the default button background, rgb(204, 204, 204).
	ColorButton = Color{0.8, 0.8, 0.8, 1}
	// ColorTransparent draws nothing.
	ColorTransparent = Color{}
)

// RGB returns an opaque color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// Hex parses "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA". Unparseable input
// yields opaque black.
func Hex(s string) Color {
	c := gg.Hex(s)
	return Color{c.R, c.G, c.B, c.A}
}

// RGBA implements color.Color with premultiplied 16-bit channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.toRGBA().RGBA()
}

func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func (c Color) gg() gg.RGBA {
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Vec2 is a 2D vector in world units. Y points up.
type Vec2 = mgl64.Vec2

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 {
	return Vec2{x, y}
}

func toPoint(v Vec2) gg.Point   { return gg.Pt(v[0], v[1]) }
func fromPoint(p gg.Point) Vec2 { return Vec2{p.X, p.Y} }

// BoundingBox is an axis-aligned box in world space. X and Y are the center
// of the box, not a corner.
type BoundingBox struct {
	X, Y, Width, Height float64
}

func (b BoundingBox) Left() float64   { return b.X - b.Width/2 }
func (b BoundingBox) Right() float64  { return b.X + b.Width/2 }
func (b BoundingBox) Bottom() float64 { return b.Y - b.Height/2 }
func (b BoundingBox) Top() float64    { return b.Y + b.Height/2 }

// Overlaps reports whether the center distance on both axes is strictly less
// than half the summed extents. Boxes that only share an edge do not overlap.
func (b BoundingBox) Overlaps(o BoundingBox) bool {
	return math.Abs(b.X-o.X) < (b.Width+o.Width)/2 &&
		math.Abs(b.Y-o.Y) < (b.Height+o.Height)/2
}

// Intersect returns the overlapping region of b and o. The result has zero
// or negative extents when the boxes are disjoint.
func (b BoundingBox) Intersect(o BoundingBox) BoundingBox {
	left := math.Max(b.Left(), o.Left())
	right := math.Min(b.Right(), o.Right())
	bottom := math.Max(b.Bottom(), o.Bottom())
	top := math.Min(b.Top(), o.Top())
	return BoundingBox{
		X:      (left + right) / 2,
		Y:      (bottom + top) / 2,
		Width:  right - left,
		Height: top - bottom,
	}
}

// Contains reports whether (x, y) lies inside the box. Edges count as inside.
func (b BoundingBox) Contains(x, y float64) bool {
	return x >= b.Left() && x <= b.Right() && y >= b.Bottom() && y <= b.Top()
}

// Kind is the closed set of built-in sprite variants.
type Kind uint8

const (
	KindRectangle Kind = iota
	KindSquare
	KindOval
	KindCircle
	KindArc
	KindRegularPolygon
	KindCustomPolygon
	KindText
	KindButton
	KindImage
	KindPen
)

var kindNames = [...]string{
	KindRectangle:      "rectangle",
	KindSquare:         "square",
	KindOval:           "oval",
	KindCircle:         "circle",
	KindArc:            "arc",
	KindRegularPolygon: "regularpolygon",
	KindCustomPolygon:  "custompolygon",
	KindText:           "text",
	KindButton:         "button",
	KindImage:          "imagesprite",
	KindPen:            "pen",
}

// String returns the discriminant name, e.g. "circle".
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Tags is an open set of labels used for cross-cutting queries such as
// "every rigidbody". A sprite's own kind name is always one of its tags.
type Tags map[string]struct{}

// NewTags returns a set holding the given tags.
func NewTags(tags ...string) Tags {
	t := make(Tags, len(tags))
	for _, tag := range tags {
		t[tag] = struct{}{}
	}
	return t
}

func (t Tags) Has(tag string) bool {
	_, ok := t[tag]
	return ok
}

func (t Tags) Add(tag string)    { t[tag] = struct{}{} }
func (t Tags) Remove(tag string) { delete(t, tag) }

// List returns the tags in sorted order.
func (t Tags) List() []string {
	out := make([]string, 0, len(t))
	for tag := range t {
		out = append(out, tag)
	}
	slices.Sort(out)
	return out
}

func (t Tags) clone() Tags {
	out := make(Tags, len(t))
	for tag := range t {
		out[tag] = struct{}{}
	}
	return out
}

// Scene names with special meaning.
const (
	SceneMain   = "main"
	SceneGlobal = "*"
)

var (
	// ErrInvalidFPS is returned when a frame rate of zero or less is requested.
	ErrInvalidFPS = errors.New("sprig: max FPS must be positive")
	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("sprig: invalid config")
	// ErrUnknownSound is returned when a sound name was never registered.
	ErrUnknownSound = errors.New("sprig: unknown sound")
	// ErrEngineClosed is returned by waits interrupted by Engine.Close.
	ErrEngineClosed = errors.New("sprig: engine closed")
)
