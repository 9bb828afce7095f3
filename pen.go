package sprig

import (
	"math"

	"github.com/gogpu/gg"
)

// PenOptions configures [NewPen]. A zero PenSize means 5.
type PenOptions struct {
	SpriteOptions
	Drawing bool
	PenSize float64
	Color   Color
}

// Pen is an invisible sprite that leaves a trail on the engine's pen layer
// while it is down. The pen layer is drawn beneath every scene and persists
// until [Pen.EraseAll].
type Pen struct {
	SpriteBase
	drawing bool
	penSize float64
	color   Color
}

func NewPen(e *Engine, o PenOptions) *Pen {
	p := &Pen{
		drawing: o.Drawing,
		penSize: math.Max(orDefault(o.PenSize, 5), 0),
		color:   o.Color,
	}
	if p.color == (Color{}) {
		p.color = ColorBlack
	}
	p.init(e, p, KindPen, o.SpriteOptions)
	return p
}

func (p *Pen) Drawing() bool    { return p.drawing }
func (p *Pen) PenSize() float64 { return p.penSize }
func (p *Pen) Color() Color     { return p.color }
func (p *Pen) SetColor(c Color) { p.color = c }
func (p *Pen) Up()              { p.drawing = false }
func (p *Pen) Down()            { p.drawing = true }

func (p *Pen) SetPenSize(size float64) { p.penSize = math.Max(size, 0) }

// positionChanged draws a segment from the previous position while down.
func (p *Pen) positionChanged(fromX, fromY float64) {
	if !p.drawing {
		return
	}
	line := gg.NewPath()
	line.MoveTo(fromX, fromY)
	line.LineTo(p.x, p.y)
	p.engine.pen.StrokePath(line, gg.Identity(), p.penSize, p.color)
}

// Dot stamps a filled square of the pen size at the current position.
func (p *Pen) Dot() {
	sq := gg.NewPath()
	sq.Rectangle(p.x-p.penSize/2, p.y-p.penSize/2, p.penSize, p.penSize)
	p.engine.pen.FillPath(sq, gg.Identity(), p.color)
	p.refresh()
}

// Stamp copies the current appearance of s onto the pen layer. Later
// changes to s do not affect the stamp.
func (p *Pen) Stamp(s Sprite) {
	s.Draw(&p.engine.pen, s.Base().Transform())
	p.refresh()
}

// EraseAll clears the pen layer of the engine.
func (p *Pen) EraseAll() {
	p.engine.pen = recorder{}
	p.refresh()
}

func (p *Pen) Path() *gg.Path { return gg.NewPath() }

func (p *Pen) BoundingBox() BoundingBox {
	return BoundingBox{X: p.x, Y: p.y, Width: p.penSize, Height: p.penSize}
}

func (p *Pen) Draw(Canvas, gg.Matrix) {}

func (p *Pen) options() PenOptions {
	return PenOptions{
		SpriteOptions: p.Options(),
		Drawing:       p.drawing,
		PenSize:       p.penSize,
		Color:         p.color,
	}
}

func (p *Pen) Create(so SpriteOptions) Sprite {
	o := p.options()
	o.SpriteOptions = so
	return NewPen(p.engine, o)
}

func (p *Pen) Clone(fns ...func(*PenOptions)) *Pen {
	o := p.options()
	for _, fn := range fns {
		fn(&o)
	}
	return NewPen(p.engine, o)
}
