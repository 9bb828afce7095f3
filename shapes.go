package sprig

import (
	"math"

	"github.com/gogpu/gg"
)

// Paint is the fill and outline styling shared by the filled shapes.
// A zero fill color means black.
type Paint struct {
	base         *SpriteBase
	fill         Color
	outline      Color
	outlineWidth float64
}

func newPaint(b *SpriteBase, fill, outline Color, outlineWidth float64) Paint {
	if fill == (Color{}) {
		fill = ColorBlack
	}
	if outline == (Color{}) {
		outline = ColorBlack
	}
	return Paint{base: b, fill: fill, outline: outline, outlineWidth: math.Max(outlineWidth, 0)}
}

func (p *Paint) Color() Color            { return p.fill }
func (p *Paint) OutlineColor() Color     { return p.outline }
func (p *Paint) OutlineWidth() float64   { return p.outlineWidth }
func (p *Paint) SetColor(c Color)        { p.fill = c; p.base.refresh() }
func (p *Paint) SetOutlineColor(c Color) { p.outline = c; p.base.refresh() }

// SetOutlineWidth sets the stroke width. Zero disables the outline.
func (p *Paint) SetOutlineWidth(w float64) {
	p.outlineWidth = math.Max(w, 0)
	p.base.refresh()
}

func (p *Paint) draw(c Canvas, path *gg.Path, m gg.Matrix) {
	c.FillPath(path, m, p.fill)
	if p.outlineWidth > 0 {
		c.StrokePath(path, m, p.outlineWidth, p.outline)
	}
}

// outlineBounds bounds the flattened cached outline of b in world space.
// Sprites with an empty outline get a zero-sized box at their position.
func outlineBounds(b *SpriteBase) BoundingBox {
	box, ok := polyBounds(flattenPath(b.CachedPath(), b.Transform()))
	if !ok {
		return BoundingBox{X: b.x, Y: b.y}
	}
	return box
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// --- Rectangle ---

// RectangleOptions configures [NewRectangle]. Zero Width and Height mean 50.
type RectangleOptions struct {
	SpriteOptions
	Width, Height float64
	Color         Color
	OutlineColor  Color
	OutlineWidth  float64
}

// Rectangle is an axis-aligned box in local space.
type Rectangle struct {
	SpriteBase
	Paint
	width, height float64
}

// NewRectangle creates a rectangle and registers it with e.
func NewRectangle(e *Engine, o RectangleOptions) *Rectangle {
	r := &Rectangle{
		width:  math.Max(orDefault(o.Width, 50), 0),
		height: math.Max(orDefault(o.Height, 50), 0),
	}
	r.Paint = newPaint(&r.SpriteBase, o.Color, o.OutlineColor, o.OutlineWidth)
	r.init(e, r, KindRectangle, o.SpriteOptions)
	return r
}

func (r *Rectangle) Width() float64  { return r.width }
func (r *Rectangle) Height() float64 { return r.height }

func (r *Rectangle) SetWidth(w float64) {
	r.width = math.Max(w, 0)
	r.InvalidatePath()
}

func (r *Rectangle) SetHeight(h float64) {
	r.height = math.Max(h, 0)
	r.InvalidatePath()
}

func (r *Rectangle) Path() *gg.Path {
	w, h := r.width*r.size, r.height*r.size
	p := gg.NewPath()
	p.Rectangle(-w/2, -h/2, w, h)
	return p
}

func (r *Rectangle) BoundingBox() BoundingBox {
	return rotatedBoxBounds(r.Transform(), r.width/2*r.size, r.height/2*r.size)
}

func (r *Rectangle) Draw(c Canvas, m gg.Matrix) { r.Paint.draw(c, r.CachedPath(), m) }

func (r *Rectangle) options() RectangleOptions {
	return RectangleOptions{
		SpriteOptions: r.Options(),
		Width:         r.width,
		Height:        r.height,
		Color:         r.fill,
		OutlineColor:  r.outline,
		OutlineWidth:  r.outlineWidth,
	}
}

func (r *Rectangle) Create(so SpriteOptions) Sprite {
	o := r.options()
	o.SpriteOptions = so
	return NewRectangle(r.engine, o)
}

// Clone returns a registered copy with fn applied to the copied options.
func (r *Rectangle) Clone(fns ...func(*RectangleOptions)) *Rectangle {
	o := r.options()
	for _, fn := range fns {
		fn(&o)
	}
	return NewRectangle(r.engine, o)
}

// --- Square ---

// SquareOptions configures [NewSquare]. A zero SideLength means 50.
type SquareOptions struct {
	SpriteOptions
	SideLength   float64
	Color        Color
	OutlineColor Color
	OutlineWidth float64
}

type Square struct {
	SpriteBase
	Paint
	side float64
}

func NewSquare(e *Engine, o SquareOptions) *Square {
	s := &Square{side: math.Max(orDefault(o.SideLength, 50), 0)}
	s.Paint = newPaint(&s.SpriteBase, o.Color, o.OutlineColor, o.OutlineWidth)
	s.init(e, s, KindSquare, o.SpriteOptions)
	return s
}

func (s *Square) SideLength() float64 { return s.side }

func (s *Square) SetSideLength(side float64) {
	s.side = math.Max(side, 0)
	s.InvalidatePath()
}

func (s *Square) Path() *gg.Path {
	l := s.side * s.size
	p := gg.NewPath()
	p.Rectangle(-l/2, -l/2, l, l)
	return p
}

func (s *Square) BoundingBox() BoundingBox {
	half := s.side / 2 * s.size
	return rotatedBoxBounds(s.Transform(), half, half)
}

func (s *Square) Draw(c Canvas, m gg.Matrix) { s.Paint.draw(c, s.CachedPath(), m) }

func (s *Square) options() SquareOptions {
	return SquareOptions{
		SpriteOptions: s.Options(),
		SideLength:    s.side,
		Color:         s.fill,
		OutlineColor:  s.outline,
		OutlineWidth:  s.outlineWidth,
	}
}

func (s *Square) Create(so SpriteOptions) Sprite {
	o := s.options()
	o.SpriteOptions = so
	return NewSquare(s.engine, o)
}

func (s *Square) Clone(fns ...func(*SquareOptions)) *Square {
	o := s.options()
	for _, fn := range fns {
		fn(&o)
	}
	return NewSquare(s.engine, o)
}

// --- Oval ---

// OvalOptions configures [NewOval]. Zero radii mean 25.
type OvalOptions struct {
	SpriteOptions
	RadiusX, RadiusY float64
	Color            Color
	OutlineColor     Color
	OutlineWidth     float64
}

type Oval struct {
	SpriteBase
	Paint
	radX, radY float64
}

func NewOval(e *Engine, o OvalOptions) *Oval {
	v := &Oval{
		radX: math.Max(orDefault(o.RadiusX, 25), 0),
		radY: math.Max(orDefault(o.RadiusY, 25), 0),
	}
	v.Paint = newPaint(&v.SpriteBase, o.Color, o.OutlineColor, o.OutlineWidth)
	v.init(e, v, KindOval, o.SpriteOptions)
	return v
}

func (v *Oval) RadiusX() float64 { return v.radX }
func (v *Oval) RadiusY() float64 { return v.radY }

func (v *Oval) SetRadiusX(r float64) {
	v.radX = math.Max(r, 0)
	v.InvalidatePath()
}

func (v *Oval) SetRadiusY(r float64) {
	v.radY = math.Max(r, 0)
	v.InvalidatePath()
}

func (v *Oval) Path() *gg.Path {
	p := gg.NewPath()
	if v.radX*v.size > 0 && v.radY*v.size > 0 {
		p.Ellipse(0, 0, v.radX*v.size, v.radY*v.size)
	}
	return p
}

func (v *Oval) BoundingBox() BoundingBox {
	return rotatedEllipseBounds(v.Transform(), v.radX*v.size, v.radY*v.size)
}

func (v *Oval) Draw(c Canvas, m gg.Matrix) { v.Paint.draw(c, v.CachedPath(), m) }

func (v *Oval) options() OvalOptions {
	return OvalOptions{
		SpriteOptions: v.Options(),
		RadiusX:       v.radX,
		RadiusY:       v.radY,
		Color:         v.fill,
		OutlineColor:  v.outline,
		OutlineWidth:  v.outlineWidth,
	}
}

func (v *Oval) Create(so SpriteOptions) Sprite {
	o := v.options()
	o.SpriteOptions = so
	return NewOval(v.engine, o)
}

func (v *Oval) Clone(fns ...func(*OvalOptions)) *Oval {
	o := v.options()
	for _, fn := range fns {
		fn(&o)
	}
	return NewOval(v.engine, o)
}

// --- Circle ---

// CircleOptions configures [NewCircle]. A zero Radius means 25.
type CircleOptions struct {
	SpriteOptions
	Radius       float64
	Color        Color
	OutlineColor Color
	OutlineWidth float64
}

type Circle struct {
	SpriteBase
	Paint
	radius float64
}

func NewCircle(e *Engine, o CircleOptions) *Circle {
	c := &Circle{radius: math.Max(orDefault(o.Radius, 25), 0)}
	c.Paint = newPaint(&c.SpriteBase, o.Color, o.OutlineColor, o.OutlineWidth)
	c.init(e, c, KindCircle, o.SpriteOptions)
	return c
}

func (c *Circle) Radius() float64 { return c.radius }

func (c *Circle) SetRadius(r float64) {
	c.radius = math.Max(r, 0)
	c.InvalidatePath()
}

func (c *Circle) Path() *gg.Path {
	p := gg.NewPath()
	if r := c.radius * c.size; r > 0 {
		p.Circle(0, 0, r)
	}
	return p
}

func (c *Circle) BoundingBox() BoundingBox {
	r := c.radius * c.size
	return rotatedEllipseBounds(c.Transform(), r, r)
}

func (c *Circle) Draw(cv Canvas, m gg.Matrix) { c.Paint.draw(cv, c.CachedPath(), m) }

func (c *Circle) options() CircleOptions {
	return CircleOptions{
		SpriteOptions: c.Options(),
		Radius:        c.radius,
		Color:         c.fill,
		OutlineColor:  c.outline,
		OutlineWidth:  c.outlineWidth,
	}
}

func (c *Circle) Create(so SpriteOptions) Sprite {
	o := c.options()
	o.SpriteOptions = so
	return NewCircle(c.engine, o)
}

func (c *Circle) Clone(fns ...func(*CircleOptions)) *Circle {
	o := c.options()
	for _, fn := range fns {
		fn(&o)
	}
	return NewCircle(c.engine, o)
}

// --- Arc ---

// ArcOptions configures [NewArc]. Zero Radius means 25 and zero Angle
// means 270 degrees.
type ArcOptions struct {
	SpriteOptions
	Radius       float64
	Angle        float64
	Color        Color
	OutlineColor Color
	OutlineWidth float64
}

// Arc is a circular segment spanning Angle degrees, centered on the
// sprite's heading and closed by a chord.
type Arc struct {
	SpriteBase
	Paint
	radius float64
	angle  float64
}

func NewArc(e *Engine, o ArcOptions) *Arc {
	a := &Arc{
		radius: math.Max(orDefault(o.Radius, 25), 0),
		angle:  math.Max(orDefault(o.Angle, 270), 0),
	}
	a.Paint = newPaint(&a.SpriteBase, o.Color, o.OutlineColor, o.OutlineWidth)
	a.init(e, a, KindArc, o.SpriteOptions)
	return a
}

func (a *Arc) Radius() float64 { return a.radius }
func (a *Arc) Angle() float64  { return a.angle }

func (a *Arc) SetRadius(r float64) {
	a.radius = math.Max(r, 0)
	a.InvalidatePath()
}

func (a *Arc) SetAngle(deg float64) {
	a.angle = math.Max(deg, 0)
	a.InvalidatePath()
}

func (a *Arc) Path() *gg.Path {
	p := gg.NewPath()
	r := a.radius * a.size
	if r <= 0 || a.angle <= 0 {
		return p
	}
	if a.angle >= 360 {
		p.Circle(0, 0, r)
		return p
	}
	half := ToRadians(a.angle / 2)
	p.Arc(0, 0, r, math.Pi/2-half, math.Pi/2+half)
	p.Close()
	return p
}

func (a *Arc) BoundingBox() BoundingBox { return outlineBounds(&a.SpriteBase) }

func (a *Arc) Draw(c Canvas, m gg.Matrix) { a.Paint.draw(c, a.CachedPath(), m) }

func (a *Arc) options() ArcOptions {
	return ArcOptions{
		SpriteOptions: a.Options(),
		Radius:        a.radius,
		Angle:         a.angle,
		Color:         a.fill,
		OutlineColor:  a.outline,
		OutlineWidth:  a.outlineWidth,
	}
}

func (a *Arc) Create(so SpriteOptions) Sprite {
	o := a.options()
	o.SpriteOptions = so
	return NewArc(a.engine, o)
}

func (a *Arc) Clone(fns ...func(*ArcOptions)) *Arc {
	o := a.options()
	for _, fn := range fns {
		fn(&o)
	}
	return NewArc(a.engine, o)
}

// --- RegularPolygon ---

// RegularPolygonOptions configures [NewRegularPolygon]. Zero Sides means 5
// and zero Radius means 50. Fewer than 3 sides clamp to 3.
type RegularPolygonOptions struct {
	SpriteOptions
	Sides        int
	Radius       float64
	Color        Color
	OutlineColor Color
	OutlineWidth float64
}

// RegularPolygon has its first vertex on the sprite's heading.
type RegularPolygon struct {
	SpriteBase
	Paint
	sides  int
	radius float64
}

func NewRegularPolygon(e *Engine, o RegularPolygonOptions) *RegularPolygon {
	sides := o.Sides
	if sides == 0 {
		sides = 5
	}
	rp := &RegularPolygon{
		sides:  max(sides, 3),
		radius: math.Max(orDefault(o.Radius, 50), 0),
	}
	rp.Paint = newPaint(&rp.SpriteBase, o.Color, o.OutlineColor, o.OutlineWidth)
	rp.init(e, rp, KindRegularPolygon, o.SpriteOptions)
	return rp
}

func (rp *RegularPolygon) Sides() int      { return rp.sides }
func (rp *RegularPolygon) Radius() float64 { return rp.radius }

func (rp *RegularPolygon) SetSides(n int) {
	rp.sides = max(n, 3)
	rp.InvalidatePath()
}

func (rp *RegularPolygon) SetRadius(r float64) {
	rp.radius = math.Max(r, 0)
	rp.InvalidatePath()
}

// Vertices returns the local corner positions, size applied.
func (rp *RegularPolygon) Vertices() []Vec2 {
	r := rp.radius * rp.size
	out := make([]Vec2, rp.sides)
	for i := range out {
		theta := math.Pi/2 + 2*math.Pi*float64(i)/float64(rp.sides)
		out[i] = Vec2{r * math.Cos(theta), r * math.Sin(theta)}
	}
	return out
}

func (rp *RegularPolygon) Path() *gg.Path {
	return polygonPath(rp.Vertices(), 1)
}

func (rp *RegularPolygon) BoundingBox() BoundingBox { return outlineBounds(&rp.SpriteBase) }

func (rp *RegularPolygon) Draw(c Canvas, m gg.Matrix) { rp.Paint.draw(c, rp.CachedPath(), m) }

func (rp *RegularPolygon) options() RegularPolygonOptions {
	return RegularPolygonOptions{
		SpriteOptions: rp.Options(),
		Sides:         rp.sides,
		Radius:        rp.radius,
		Color:         rp.fill,
		OutlineColor:  rp.outline,
		OutlineWidth:  rp.outlineWidth,
	}
}

func (rp *RegularPolygon) Create(so SpriteOptions) Sprite {
	o := rp.options()
	o.SpriteOptions = so
	return NewRegularPolygon(rp.engine, o)
}

func (rp *RegularPolygon) Clone(fns ...func(*RegularPolygonOptions)) *RegularPolygon {
	o := rp.options()
	for _, fn := range fns {
		fn(&o)
	}
	return NewRegularPolygon(rp.engine, o)
}

// --- CustomPolygon ---

// CustomPolygonOptions configures [NewCustomPolygon]. Vertices are local,
// y-up, and scaled by the sprite's size.
type CustomPolygonOptions struct {
	SpriteOptions
	Vertices     []Vec2
	Color        Color
	OutlineColor Color
	OutlineWidth float64
}

// CustomPolygon is an arbitrary closed polygon. Fewer than two vertices
// produce an empty outline that never draws or collides.
type CustomPolygon struct {
	SpriteBase
	Paint
	vertices []Vec2
}

func NewCustomPolygon(e *Engine, o CustomPolygonOptions) *CustomPolygon {
	cp := &CustomPolygon{vertices: append([]Vec2(nil), o.Vertices...)}
	cp.Paint = newPaint(&cp.SpriteBase, o.Color, o.OutlineColor, o.OutlineWidth)
	cp.init(e, cp, KindCustomPolygon, o.SpriteOptions)
	return cp
}

// Vertices returns a copy of the local vertex list.
func (cp *CustomPolygon) Vertices() []Vec2 {
	return append([]Vec2(nil), cp.vertices...)
}

func (cp *CustomPolygon) SetVertices(v []Vec2) {
	cp.vertices = append([]Vec2(nil), v...)
	cp.InvalidatePath()
}

func (cp *CustomPolygon) Path() *gg.Path {
	return polygonPath(cp.vertices, cp.size)
}

func (cp *CustomPolygon) BoundingBox() BoundingBox { return outlineBounds(&cp.SpriteBase) }

func (cp *CustomPolygon) Draw(c Canvas, m gg.Matrix) { cp.Paint.draw(c, cp.CachedPath(), m) }

func (cp *CustomPolygon) options() CustomPolygonOptions {
	return CustomPolygonOptions{
		SpriteOptions: cp.Options(),
		Vertices:      cp.Vertices(),
		Color:         cp.fill,
		OutlineColor:  cp.outline,
		OutlineWidth:  cp.outlineWidth,
	}
}

func (cp *CustomPolygon) Create(so SpriteOptions) Sprite {
	o := cp.options()
	o.SpriteOptions = so
	return NewCustomPolygon(cp.engine, o)
}

func (cp *CustomPolygon) Clone(fns ...func(*CustomPolygonOptions)) *CustomPolygon {
	o := cp.options()
	for _, fn := range fns {
		fn(&o)
	}
	return NewCustomPolygon(cp.engine, o)
}

// polygonPath closes vertices into a path scaled by scale.
func polygonPath(vertices []Vec2, scale float64) *gg.Path {
	p := gg.NewPath()
	if len(vertices) < 2 {
		return p
	}
	p.MoveTo(vertices[0][0]*scale, vertices[0][1]*scale)
	for _, v := range vertices[1:] {
		p.LineTo(v[0]*scale, v[1]*scale)
	}
	p.Close()
	return p
}
