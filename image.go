package sprig

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/hajimehoshi/ebiten/v2"
)

// ImageSpriteOptions configures [NewImageSprite]. Zero Width or Height take
// the current costume's pixel dimensions.
type ImageSpriteOptions struct {
	SpriteOptions
	Costumes      []*ebiten.Image
	Costume       int
	Width, Height float64
}

// ImageSprite draws one of its costumes stretched over a box. The box is
// also its hit outline, so transparent image areas still collide.
type ImageSprite struct {
	SpriteBase
	costumes      []*ebiten.Image
	costume       int
	width, height float64
}

func NewImageSprite(e *Engine, o ImageSpriteOptions) *ImageSprite {
	s := &ImageSprite{
		costumes: append([]*ebiten.Image(nil), o.Costumes...),
		width:    math.Max(o.Width, 0),
		height:   math.Max(o.Height, 0),
	}
	s.costume = s.wrap(o.Costume)
	if img := s.Image(); img != nil {
		b := img.Bounds()
		if s.width == 0 {
			s.width = float64(b.Dx())
		}
		if s.height == 0 {
			s.height = float64(b.Dy())
		}
	}
	s.init(e, s, KindImage, o.SpriteOptions)
	return s
}

func (s *ImageSprite) wrap(i int) int {
	n := len(s.costumes)
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// Image returns the current costume, or nil when there are none.
func (s *ImageSprite) Image() *ebiten.Image {
	if len(s.costumes) == 0 {
		return nil
	}
	return s.costumes[s.costume]
}

func (s *ImageSprite) Costume() int      { return s.costume }
func (s *ImageSprite) CostumeCount() int { return len(s.costumes) }
func (s *ImageSprite) Width() float64    { return s.width }
func (s *ImageSprite) Height() float64   { return s.height }

// AddCostume appends img to the costume list.
func (s *ImageSprite) AddCostume(img *ebiten.Image) {
	s.costumes = append(s.costumes, img)
	s.refresh()
}

// SetCostume selects costume i, wrapping around in both directions.
func (s *ImageSprite) SetCostume(i int) {
	s.costume = s.wrap(i)
	s.refresh()
}

func (s *ImageSprite) NextCostume()     { s.SetCostume(s.costume + 1) }
func (s *ImageSprite) PreviousCostume() { s.SetCostume(s.costume - 1) }

func (s *ImageSprite) SetWidth(w float64) {
	s.width = math.Max(w, 0)
	s.InvalidatePath()
}

func (s *ImageSprite) SetHeight(h float64) {
	s.height = math.Max(h, 0)
	s.InvalidatePath()
}

func (s *ImageSprite) Path() *gg.Path {
	w, h := s.width*s.size, s.height*s.size
	p := gg.NewPath()
	p.Rectangle(-w/2, -h/2, w, h)
	return p
}

func (s *ImageSprite) BoundingBox() BoundingBox {
	return rotatedBoxBounds(s.Transform(), s.width/2*s.size, s.height/2*s.size)
}

func (s *ImageSprite) Draw(c Canvas, m gg.Matrix) {
	img := s.Image()
	if img == nil {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	w, h := s.width*s.size, s.height*s.size
	// Image space is y-down with the origin at the top-left corner.
	fit := gg.Translate(-w/2, -h/2).Multiply(gg.Scale(w/float64(b.Dx()), h/float64(b.Dy())))
	c.DrawImage(img, m.Multiply(flipY).Multiply(fit))
}

func (s *ImageSprite) options() ImageSpriteOptions {
	return ImageSpriteOptions{
		SpriteOptions: s.Options(),
		Costumes:      append([]*ebiten.Image(nil), s.costumes...),
		Costume:       s.costume,
		Width:         s.width,
		Height:        s.height,
	}
}

func (s *ImageSprite) Create(so SpriteOptions) Sprite {
	o := s.options()
	o.SpriteOptions = so
	return NewImageSprite(s.engine, o)
}

func (s *ImageSprite) Clone(fns ...func(*ImageSpriteOptions)) *ImageSprite {
	o := s.options()
	for _, fn := range fns {
		fn(&o)
	}
	return NewImageSprite(s.engine, o)
}
