package sprig

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is a parsed TrueType or OpenType source. Faces are derived from it
// per draw size.
type Font struct {
	source *text.GoTextFaceSource
}

// LoadFont parses TTF or OTF data.
func LoadFont(data []byte) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("sprig: failed to parse font data: %w", err)
	}
	return &Font{source: source}, nil
}

var (
	defaultFontOnce sync.Once
	defaultFont     *Font
)

// DefaultFont returns Go Regular, used when no font is given.
func DefaultFont() *Font {
	defaultFontOnce.Do(func() {
		f, err := LoadFont(goregular.TTF)
		if err != nil {
			panic(fmt.Sprintf("sprig: embedded font: %v", err))
		}
		defaultFont = f
	})
	return defaultFont
}

// Face returns a face of the given pixel size.
func (f *Font) Face(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: f.source, Size: size}
}

// Measure returns the advance width and line height of s at size.
func (f *Font) Measure(s string, size float64) (width, height float64) {
	face := f.Face(size)
	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap
	return text.Measure(s, face, lh)
}

// --- Text ---

// TextOptions configures [NewText]. A zero FontSize means 16 and a nil Font
// means [DefaultFont].
type TextOptions struct {
	SpriteOptions
	Content  string
	Font     *Font
	FontSize float64
	Color    Color
}

// Text is a single line of text centered on the sprite position. Its hit
// outline is the measured text box.
type Text struct {
	SpriteBase
	content  string
	font     *Font
	fontSize float64
	color    Color
}

func NewText(e *Engine, o TextOptions) *Text {
	t := &Text{
		content:  o.Content,
		font:     o.Font,
		fontSize: math.Max(orDefault(o.FontSize, 16), 0),
		color:    o.Color,
	}
	if t.font == nil {
		t.font = DefaultFont()
	}
	if t.color == (Color{}) {
		t.color = ColorBlack
	}
	t.init(e, t, KindText, o.SpriteOptions)
	return t
}

func (t *Text) Content() string   { return t.content }
func (t *Text) Font() *Font       { return t.font }
func (t *Text) FontSize() float64 { return t.fontSize }
func (t *Text) Color() Color      { return t.color }

func (t *Text) SetContent(s string) {
	t.content = s
	t.InvalidatePath()
}

func (t *Text) SetFont(f *Font) {
	if f == nil {
		f = DefaultFont()
	}
	t.font = f
	t.InvalidatePath()
}

func (t *Text) SetFontSize(size float64) {
	t.fontSize = math.Max(size, 0)
	t.InvalidatePath()
}

func (t *Text) SetColor(c Color) {
	t.color = c
	t.refresh()
}

// TextSize returns the measured width and height with size applied.
func (t *Text) TextSize() (width, height float64) {
	if t.content == "" || t.fontSize*t.size <= 0 {
		return 0, 0
	}
	return t.font.Measure(t.content, t.fontSize*t.size)
}

func (t *Text) Path() *gg.Path {
	p := gg.NewPath()
	if w, h := t.TextSize(); w > 0 && h > 0 {
		p.Rectangle(-w/2, -h/2, w, h)
	}
	return p
}

func (t *Text) BoundingBox() BoundingBox {
	w, h := t.TextSize()
	return rotatedBoxBounds(t.Transform(), w/2, h/2)
}

func (t *Text) Draw(c Canvas, m gg.Matrix) {
	if px := t.fontSize * t.size; px > 0 {
		c.DrawText(t.content, t.font.Face(px), m.Multiply(flipY), t.color)
	}
}

func (t *Text) options() TextOptions {
	return TextOptions{
		SpriteOptions: t.Options(),
		Content:       t.content,
		Font:          t.font,
		FontSize:      t.fontSize,
		Color:         t.color,
	}
}

func (t *Text) Create(so SpriteOptions) Sprite {
	o := t.options()
	o.SpriteOptions = so
	return NewText(t.engine, o)
}

func (t *Text) Clone(fns ...func(*TextOptions)) *Text {
	o := t.options()
	for _, fn := range fns {
		fn(&o)
	}
	return NewText(t.engine, o)
}

// --- Button ---

// ButtonOptions configures [NewButton]. Zero Width defaults to
// len(Content)*FontSize+10 and zero Height to FontSize+10. A zero
// Background means [ColorButton].
type ButtonOptions struct {
	SpriteOptions
	Content       string
	Font          *Font
	FontSize      float64
	Width, Height float64
	Color         Color
	Background    Color
}

// Button is a filled box with a centered label. Pair it with
// [Engine.Hovering] and [Engine.MouseClicked] to react to clicks.
type Button struct {
	SpriteBase
	content       string
	font          *Font
	fontSize      float64
	width, height float64
	color         Color
	background    Color
}

func NewButton(e *Engine, o ButtonOptions) *Button {
	b := &Button{
		content:    o.Content,
		font:       o.Font,
		fontSize:   math.Max(orDefault(o.FontSize, 16), 0),
		color:      o.Color,
		background: o.Background,
	}
	if b.font == nil {
		b.font = DefaultFont()
	}
	if b.color == (Color{}) {
		b.color = ColorBlack
	}
	if b.background == (Color{}) {
		b.background = ColorButton
	}
	b.width = math.Max(orDefault(o.Width, float64(len(o.Content))*b.fontSize+10), 0)
	b.height = math.Max(orDefault(o.Height, b.fontSize+10), 0)
	b.init(e, b, KindButton, o.SpriteOptions)
	return b
}

func (b *Button) Content() string   { return b.content }
func (b *Button) FontSize() float64 { return b.fontSize }
func (b *Button) Width() float64    { return b.width }
func (b *Button) Height() float64   { return b.height }
func (b *Button) Color() Color      { return b.color }
func (b *Button) Background() Color { return b.background }

func (b *Button) SetContent(s string) {
	b.content = s
	b.refresh()
}

func (b *Button) SetFontSize(size float64) {
	b.fontSize = math.Max(size, 0)
	b.refresh()
}

func (b *Button) SetWidth(w float64) {
	b.width = math.Max(w, 0)
	b.InvalidatePath()
}

func (b *Button) SetHeight(h float64) {
	b.height = math.Max(h, 0)
	b.InvalidatePath()
}

func (b *Button) SetColor(c Color) {
	b.color = c
	b.refresh()
}

func (b *Button) SetBackground(c Color) {
	b.background = c
	b.refresh()
}

func (b *Button) Path() *gg.Path {
	w, h := b.width*b.size, b.height*b.size
	p := gg.NewPath()
	p.Rectangle(-w/2, -h/2, w, h)
	return p
}

func (b *Button) BoundingBox() BoundingBox {
	return rotatedBoxBounds(b.Transform(), b.width/2*b.size, b.height/2*b.size)
}

func (b *Button) Draw(c Canvas, m gg.Matrix) {
	c.FillPath(b.CachedPath(), m, b.background)
	if px := b.fontSize * b.size; px > 0 {
		c.DrawText(b.content, b.font.Face(px), m.Multiply(flipY), b.color)
	}
}

func (b *Button) options() ButtonOptions {
	return ButtonOptions{
		SpriteOptions: b.Options(),
		Content:       b.content,
		Font:          b.font,
		FontSize:      b.fontSize,
		Width:         b.width,
		Height:        b.height,
		Color:         b.color,
		Background:    b.background,
	}
}

func (b *Button) Create(so SpriteOptions) Sprite {
	o := b.options()
	o.SpriteOptions = so
	return NewButton(b.engine, o)
}

func (b *Button) Clone(fns ...func(*ButtonOptions)) *Button {
	o := b.options()
	for _, fn := range fns {
		fn(&o)
	}
	return NewButton(b.engine, o)
}
