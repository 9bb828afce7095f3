package sprig

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Canvas is the raster target sprites draw into. Every matrix maps the
// sprite's local space (y-up) to target pixels (y-down).
type Canvas interface {
	FillPath(p *gg.Path, m gg.Matrix, c Color)
	StrokePath(p *gg.Path, m gg.Matrix, width float64, c Color)
	// DrawText draws s centered on the local origin. The matrix maps the
	// y-down glyph space to target pixels.
	DrawText(s string, face *text.GoTextFace, m gg.Matrix, c Color)
	// DrawImage draws img with its top-left corner at the local origin of
	// the y-down image space mapped by m.
	DrawImage(img *ebiten.Image, m gg.Matrix)
}

// flipY turns a y-up local matrix into one for y-down content such as
// glyphs and images.
var flipY = gg.Scale(1, -1)

// geoM converts an affine matrix to Ebitengine's GeoM.
func geoM(m gg.Matrix) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m.A)
	g.SetElement(0, 1, m.B)
	g.SetElement(0, 2, m.C)
	g.SetElement(1, 0, m.D)
	g.SetElement(1, 1, m.E)
	g.SetElement(1, 2, m.F)
	return g
}

// whiteImage backs solid-color triangles. Sampling the center texel of a
// 3x3 image avoids edge bleeding.
var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// ebitenCanvas draws into an *ebiten.Image by tessellating paths with the
// vector package.
type ebitenCanvas struct {
	dst  *ebiten.Image
	vs   []ebiten.Vertex
	is   []uint16
	path vector.Path
}

func newEbitenCanvas(dst *ebiten.Image) *ebitenCanvas {
	return &ebitenCanvas{dst: dst}
}

// buildPath replays p through m into the reusable vector path.
func (c *ebitenCanvas) buildPath(p *gg.Path, m gg.Matrix) {
	c.path = vector.Path{}
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			pt := m.TransformPoint(e.Point)
			c.path.MoveTo(float32(pt.X), float32(pt.Y))
		case gg.LineTo:
			pt := m.TransformPoint(e.Point)
			c.path.LineTo(float32(pt.X), float32(pt.Y))
		case gg.QuadTo:
			cp := m.TransformPoint(e.Control)
			pt := m.TransformPoint(e.Point)
			c.path.QuadTo(float32(cp.X), float32(cp.Y), float32(pt.X), float32(pt.Y))
		case gg.CubicTo:
			c1 := m.TransformPoint(e.Control1)
			c2 := m.TransformPoint(e.Control2)
			pt := m.TransformPoint(e.Point)
			c.path.CubicTo(float32(c1.X), float32(c1.Y), float32(c2.X), float32(c2.Y), float32(pt.X), float32(pt.Y))
		case gg.Close:
			c.path.Close()
		}
	}
}

func (c *ebitenCanvas) submit(col Color, rule ebiten.FillRule) {
	for i := range c.vs {
		c.vs[i].SrcX = 1
		c.vs[i].SrcY = 1
		c.vs[i].ColorR = float32(col.R)
		c.vs[i].ColorG = float32(col.G)
		c.vs[i].ColorB = float32(col.B)
		c.vs[i].ColorA = float32(col.A)
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true, FillRule: rule}
	c.dst.DrawTriangles(c.vs, c.is, whiteSubImage, op)
}

func (c *ebitenCanvas) FillPath(p *gg.Path, m gg.Matrix, col Color) {
	if p == nil || len(p.Elements()) == 0 || col.A <= 0 {
		return
	}
	c.buildPath(p, m)
	c.vs, c.is = c.path.AppendVerticesAndIndicesForFilling(c.vs[:0], c.is[:0])
	c.submit(col, ebiten.FillRuleNonZero)
}

func (c *ebitenCanvas) StrokePath(p *gg.Path, m gg.Matrix, width float64, col Color) {
	if p == nil || len(p.Elements()) == 0 || width <= 0 || col.A <= 0 {
		return
	}
	c.buildPath(p, m)
	c.vs, c.is = c.path.AppendVerticesAndIndicesForStroke(c.vs[:0], c.is[:0], &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})
	c.submit(col, ebiten.FillRuleFillAll)
}

func (c *ebitenCanvas) DrawText(s string, face *text.GoTextFace, m gg.Matrix, col Color) {
	if s == "" || face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM = geoM(m)
	op.ColorScale.ScaleWithColor(col)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(c.dst, s, face, op)
}

func (c *ebitenCanvas) DrawImage(img *ebiten.Image, m gg.Matrix) {
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM(m)
	op.Filter = ebiten.FilterLinear
	c.dst.DrawImage(img, op)
}

// drawOp is a recorded canvas call, replayed under a view matrix.
type drawOp func(c Canvas, view gg.Matrix)

// recorder is a Canvas that captures calls instead of drawing them. Pen
// stamps use it to freeze a sprite's appearance. Paths are captured by
// pointer, which is safe because cached paths are replaced, never mutated.
type recorder struct {
	ops []drawOp
}

func (r *recorder) FillPath(p *gg.Path, m gg.Matrix, c Color) {
	r.ops = append(r.ops, func(dst Canvas, view gg.Matrix) { dst.FillPath(p, view.Multiply(m), c) })
}

func (r *recorder) StrokePath(p *gg.Path, m gg.Matrix, width float64, c Color) {
	r.ops = append(r.ops, func(dst Canvas, view gg.Matrix) { dst.StrokePath(p, view.Multiply(m), width, c) })
}

func (r *recorder) DrawText(s string, face *text.GoTextFace, m gg.Matrix, c Color) {
	r.ops = append(r.ops, func(dst Canvas, view gg.Matrix) { dst.DrawText(s, face, view.Multiply(m), c) })
}

func (r *recorder) DrawImage(img *ebiten.Image, m gg.Matrix) {
	r.ops = append(r.ops, func(dst Canvas, view gg.Matrix) { dst.DrawImage(img, view.Multiply(m)) })
}

func (r *recorder) replay(dst Canvas, view gg.Matrix) {
	for _, op := range r.ops {
		op(dst, view)
	}
}
