package sprig

import (
	"math"
	"sync"

	"github.com/gogpu/gg"
)

// CollisionData describes a pixel-level overlap between two sprites.
type CollisionData struct {
	// Contact is the centroid of the overlapping pixels in world space.
	Contact Vec2
	// Normal is a unit vector pointing from the second sprite toward the first.
	Normal Vec2
	// Displacement is the penetration depth along Normal measured from Contact.
	Displacement float64
}

// minOverlapExtent is the smallest intersection width or height, in world
// units, that is worth rasterizing.
const minOverlapExtent = 1.0

// biasEpsilon is the summed pixel offset below which an overlap region is
// treated as having no direction.
const biasEpsilon = 0.01

// Touching tests a and b for pixel overlap and returns the contact data.
//
// Hidden sprites never collide, and sprites in different scenes collide only
// when one of them lives in [SceneGlobal]. The bounding boxes are tested
// first. Both outlines are then rasterized over the intersection of the
// boxes and every pixel covered by both counts as overlapping.
func Touching(a, b Sprite) (CollisionData, bool) {
	inter, ok := broadPhase(a, b)
	if !ok {
		return CollisionData{}, false
	}
	var pixels []Vec2
	collisionRaster.overlap(a, b, inter, func(p Vec2) bool {
		pixels = append(pixels, p)
		return true
	})
	if len(pixels) == 0 {
		return CollisionData{}, false
	}
	return collisionData(pixels, a.Base().Position(), b.Base().Position()), true
}

// IsTouching reports whether a and b overlap. It stops at the first
// overlapping pixel.
func IsTouching(a, b Sprite) bool {
	inter, ok := broadPhase(a, b)
	if !ok {
		return false
	}
	found := false
	collisionRaster.overlap(a, b, inter, func(Vec2) bool {
		found = true
		return false
	})
	return found
}

// broadPhase applies the visibility, scene and bounding box filters and
// returns the world rectangle that needs rasterizing.
func broadPhase(a, b Sprite) (BoundingBox, bool) {
	if a == nil || b == nil || a == b {
		return BoundingBox{}, false
	}
	ab, bb := a.Base(), b.Base()
	if ab.hidden || bb.hidden {
		return BoundingBox{}, false
	}
	if ab.scene != SceneGlobal && bb.scene != SceneGlobal && ab.scene != bb.scene {
		return BoundingBox{}, false
	}
	boxA, boxB := a.BoundingBox(), b.BoundingBox()
	if !boxA.Overlaps(boxB) {
		return BoundingBox{}, false
	}
	inter := boxA.Intersect(boxB)
	if inter.Width < minOverlapExtent || inter.Height < minOverlapExtent {
		return BoundingBox{}, false
	}
	return inter, true
}

// collisionData reduces the overlapping pixel centers to a contact point,
// normal and depth. posA and posB are the sprite positions.
//
// The normal follows the bias of the overlap around its centroid. A region
// with no bias, which is the usual case, falls back to the line from the
// contact to the first sprite.
func collisionData(pixels []Vec2, posA, posB Vec2) CollisionData {
	n := float64(len(pixels))
	var cx, cy float64
	for _, p := range pixels {
		cx += p[0]
		cy += p[1]
	}
	cx /= n
	cy /= n

	var nx, ny float64
	for _, p := range pixels {
		nx += p[0] - cx
		ny += p[1] - cy
	}
	if math.Abs(nx) < biasEpsilon && math.Abs(ny) < biasEpsilon {
		nx, ny = posA[0]-cx, posA[1]-cy
	}
	normal := Vec2{nx, ny}
	apart := posA.Sub(posB)
	if normal.Len() < 1e-9 {
		normal = apart
	}
	if normal.Len() < 1e-9 {
		normal = Vec2{0, 1}
	}
	normal = normal.Normalize()
	if normal.Dot(apart) < 0 {
		normal = normal.Mul(-1)
	}

	contact := Vec2{cx, cy}
	depth := 0.0
	for _, p := range pixels {
		depth = math.Max(depth, p.Sub(contact).Dot(normal))
	}
	return CollisionData{Contact: contact, Normal: normal, Displacement: depth}
}

// overlapRaster is the scratch state shared by every collision query. The
// context only ever grows; queries use its top-left corner.
type overlapRaster struct {
	mu    sync.Mutex
	ctx   *gg.Context
	alpha []uint8
}

var collisionRaster overlapRaster

func (r *overlapRaster) ensure(w, h int) {
	if r.ctx == nil {
		r.ctx = gg.NewContext(max(w, 64), max(h, 64))
		Logger().Debug("collision raster allocated", "width", r.ctx.Width(), "height", r.ctx.Height())
	} else if w > r.ctx.Width() || h > r.ctx.Height() {
		nw, nh := max(w, r.ctx.Width()), max(h, r.ctx.Height())
		if err := r.ctx.Resize(nw, nh); err != nil {
			Logger().Warn("collision raster resize failed", "error", err)
		}
		Logger().Debug("collision raster grown", "width", nw, "height", nh)
	}
	if cap(r.alpha) < w*h {
		r.alpha = make([]uint8, w*h)
	}
	r.alpha = r.alpha[:w*h]
}

// draw clears the context and fills s's outline into it through the
// world-to-raster matrix toRaster.
func (r *overlapRaster) draw(s Sprite, toRaster gg.Matrix) bool {
	r.ctx.Clear()
	path := s.Base().CachedPath()
	if path == nil || len(path.Elements()) == 0 {
		return false
	}
	r.ctx.SetTransform(toRaster.Multiply(s.Base().Transform()))
	for _, el := range path.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			r.ctx.MoveTo(e.Point.X, e.Point.Y)
		case gg.LineTo:
			r.ctx.LineTo(e.Point.X, e.Point.Y)
		case gg.QuadTo:
			r.ctx.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case gg.CubicTo:
			r.ctx.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case gg.Close:
			r.ctx.ClosePath()
		}
	}
	r.ctx.SetRGBA(1, 1, 1, 1)
	if err := r.ctx.Fill(); err != nil {
		Logger().Warn("collision raster fill failed", "kind", s.Kind().String(), "error", err)
		return false
	}
	return true
}

// overlap rasterizes a and b over inter and calls visit with the world
// center of every pixel covered by both, until visit returns false.
func (r *overlapRaster) overlap(a, b Sprite, inter BoundingBox, visit func(Vec2) bool) {
	w := int(math.Ceil(inter.Width))
	h := int(math.Ceil(inter.Height))
	if w <= 0 || h <= 0 {
		return
	}
	left, top := inter.Left(), inter.Top()
	toRaster := worldToRaster(left, top)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensure(w, h)
	stride := r.ctx.Width() * 4

	if !r.draw(a, toRaster) {
		return
	}
	data := r.ctx.ResizeTarget().Data()
	for y := 0; y < h; y++ {
		row := y * stride
		for x := 0; x < w; x++ {
			r.alpha[y*w+x] = data[row+x*4+3]
		}
	}

	if !r.draw(b, toRaster) {
		return
	}
	data = r.ctx.ResizeTarget().Data()
	for y := 0; y < h; y++ {
		row := y * stride
		for x := 0; x < w; x++ {
			if r.alpha[y*w+x] == 0 || data[row+x*4+3] == 0 {
				continue
			}
			p := Vec2{left + float64(x) + 0.5, top - float64(y) - 0.5}
			if !visit(p) {
				return
			}
		}
	}
}
