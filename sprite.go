package sprig

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/google/uuid"
)

// Sprite is implemented by every drawable variant. Common state and the
// motion mutators live in the embedded [SpriteBase]; variants supply their
// outline, bounds, drawing and factory.
type Sprite interface {
	// Base returns the shared sprite state.
	Base() *SpriteBase
	// Kind returns the variant discriminant.
	Kind() Kind
	// Path builds the outline in local space: y-up, unrotated, with size
	// folded in and pivot not applied.
	Path() *gg.Path
	// BoundingBox returns the world-space box around the rotated outline.
	BoundingBox() BoundingBox
	// Draw renders the sprite. m maps its local space onto c.
	Draw(c Canvas, m gg.Matrix)
	// Create builds a new sprite of the same variant, reusing this sprite's
	// variant options and taking the common options from opts.
	Create(opts SpriteOptions) Sprite
}

// SpriteOptions holds the creation options shared by every variant.
// A zero Size means 1 unless it was set with [WithSize] or copied from a
// sprite, and an empty Scene means [SceneMain].
type SpriteOptions struct {
	X, Y   float64
	Dir    float64
	Size   float64
	Pivot  Vec2
	Scene  string
	Hidden bool
	Layer  int
	Tags   []string

	// sizeSet marks Size as explicit, so that 0 stays 0.
	sizeSet bool
}

// Option overrides a field of [SpriteOptions], used with [Clone].
type Option func(*SpriteOptions)

func WithPosition(x, y float64) Option { return func(o *SpriteOptions) { o.X, o.Y = x, y } }
func WithDir(dir float64) Option       { return func(o *SpriteOptions) { o.Dir = dir } }
func WithSize(size float64) Option     { return func(o *SpriteOptions) { o.Size, o.sizeSet = size, true } }
func WithPivot(pivot Vec2) Option      { return func(o *SpriteOptions) { o.Pivot = pivot } }
func WithScene(scene string) Option    { return func(o *SpriteOptions) { o.Scene = scene } }
func WithLayer(layer int) Option       { return func(o *SpriteOptions) { o.Layer = layer } }
func WithHidden(hidden bool) Option    { return func(o *SpriteOptions) { o.Hidden = hidden } }

// Clone creates a sprite of the same variant as s, copying its creation
// options and applying opts on top. The clone is registered with the same
// engine.
func Clone(s Sprite, opts ...Option) Sprite {
	o := s.Base().Options()
	for _, opt := range opts {
		opt(&o)
	}
	return s.Create(o)
}

// SpriteBase carries the state every sprite shares. It is embedded by the
// concrete variants and is not usable on its own.
type SpriteBase struct {
	id     string
	engine *Engine
	self   Sprite
	kind   Kind
	tags   Tags

	x, y   float64
	dir    float64
	size   float64
	pivot  Vec2
	scene  string
	hidden bool
	layer  int

	cachedPath *gg.Path
	pathDirty  bool
}

// positionObserver is implemented by variants that react to position
// changes, such as a pen drawing its trail.
type positionObserver interface {
	positionChanged(fromX, fromY float64)
}

// init fills in the common state and registers self with e.
func (b *SpriteBase) init(e *Engine, self Sprite, kind Kind, o SpriteOptions) {
	if e == nil {
		panic("sprig: sprite created without an engine")
	}
	b.id = uuid.NewString()
	b.engine = e
	b.self = self
	b.kind = kind
	b.tags = NewTags(kind.String())
	for _, tag := range o.Tags {
		b.tags.Add(tag)
	}
	b.x, b.y = o.X, o.Y
	b.dir = o.Dir
	b.size = o.Size
	if b.size == 0 && !o.sizeSet {
		b.size = 1
	}
	b.size = math.Max(b.size, 0)
	b.pivot = o.Pivot
	b.scene = o.Scene
	if b.scene == "" {
		b.scene = SceneMain
	}
	b.hidden = o.Hidden
	b.layer = o.Layer
	b.pathDirty = true
	e.AddSprite(self)
}

// Base returns b. It lets *SpriteBase satisfy part of [Sprite] for every
// embedding variant.
func (b *SpriteBase) Base() *SpriteBase { return b }

func (b *SpriteBase) ID() string      { return b.id }
func (b *SpriteBase) Engine() *Engine { return b.engine }
func (b *SpriteBase) Kind() Kind      { return b.kind }
func (b *SpriteBase) Tags() Tags      { return b.tags }
func (b *SpriteBase) X() float64      { return b.x }
func (b *SpriteBase) Y() float64      { return b.y }
func (b *SpriteBase) Position() Vec2  { return Vec2{b.x, b.y} }
func (b *SpriteBase) Dir() float64    { return b.dir }
func (b *SpriteBase) Size() float64   { return b.size }
func (b *SpriteBase) Pivot() Vec2     { return b.pivot }
func (b *SpriteBase) Scene() string   { return b.scene }
func (b *SpriteBase) Hidden() bool    { return b.hidden }
func (b *SpriteBase) Layer() int      { return b.layer }

// Options returns the common creation options reflecting current state.
func (b *SpriteBase) Options() SpriteOptions {
	tags := make([]string, 0, len(b.tags))
	for _, tag := range b.tags.List() {
		if tag != b.kind.String() {
			tags = append(tags, tag)
		}
	}
	return SpriteOptions{
		X:      b.x,
		Y:      b.y,
		Dir:    b.dir,
		Size:   b.size,
		Pivot:  b.pivot,
		Scene:  b.scene,
		Hidden: b.hidden,
		Layer:  b.layer,
		Tags:   tags,

		sizeSet: true,
	}
}

// CachedPath returns the memoized outline, rebuilding it only after an
// invalidating change.
func (b *SpriteBase) CachedPath() *gg.Path {
	if b.pathDirty || b.cachedPath == nil {
		b.cachedPath = b.self.Path()
		b.pathDirty = false
	}
	return b.cachedPath
}

// InvalidatePath drops the cached outline and requests a redraw. Variants
// call it from every setter that changes their shape.
func (b *SpriteBase) InvalidatePath() {
	b.pathDirty = true
	b.refresh()
}

// Transform returns the local-to-world matrix for the current state.
func (b *SpriteBase) Transform() gg.Matrix {
	return localToWorld(b.x, b.y, b.dir, b.size, b.pivot)
}

func (b *SpriteBase) refresh() {
	if b.engine != nil {
		b.engine.Refresh()
	}
}

// setPosition is the single write path for x and y.
func (b *SpriteBase) setPosition(x, y float64) {
	fromX, fromY := b.x, b.y
	b.x, b.y = x, y
	if obs, ok := b.self.(positionObserver); ok {
		obs.positionChanged(fromX, fromY)
	}
	b.refresh()
}

// --- Motion ---

// Move advances steps along the current heading.
func (b *SpriteBase) Move(steps float64) {
	rad := ToRadians(b.dir)
	b.setPosition(b.x+steps*math.Sin(rad), b.y+steps*math.Cos(rad))
}

// Turn rotates the heading clockwise by deg.
func (b *SpriteBase) Turn(deg float64) {
	b.dir += deg
	b.refresh()
}

// Point sets the heading.
func (b *SpriteBase) Point(dir float64) {
	b.dir = dir
	b.refresh()
}

// PointTowards turns the sprite to face (x, y).
func (b *SpriteBase) PointTowards(x, y float64) {
	b.dir = Heading(Atan2(y-b.y, x-b.x))
	b.refresh()
}

func (b *SpriteBase) SetX(x float64)                  { b.setPosition(x, b.y) }
func (b *SpriteBase) SetY(y float64)                  { b.setPosition(b.x, y) }
func (b *SpriteBase) GoTo(x, y float64)               { b.setPosition(x, y) }
func (b *SpriteBase) ChangeX(dx float64)              { b.setPosition(b.x+dx, b.y) }
func (b *SpriteBase) ChangeY(dy float64)              { b.setPosition(b.x, b.y+dy) }
func (b *SpriteBase) DistanceTo(x, y float64) float64 { return math.Hypot(x-b.x, y-b.y) }

// SetPivot moves the local anchor used for rotation and placement.
func (b *SpriteBase) SetPivot(pivot Vec2) {
	b.pivot = pivot
	b.refresh()
}

// SetSize sets the scale factor. Negative values clamp to 0.
func (b *SpriteBase) SetSize(size float64) {
	b.size = math.Max(size, 0)
	b.InvalidatePath()
}

// ChangeSize adds delta to the scale factor, clamping at 0.
func (b *SpriteBase) ChangeSize(delta float64) {
	b.SetSize(b.size + delta)
}

// --- Visibility and ordering ---

func (b *SpriteBase) Show() {
	b.hidden = false
	b.refresh()
}

func (b *SpriteBase) Hide() {
	b.hidden = true
	b.refresh()
}

// GoToLayer moves the sprite to layer, keeping its scene list sorted.
func (b *SpriteBase) GoToLayer(layer int) {
	if layer == b.layer {
		return
	}
	b.engine.relocate(b.self, b.scene, layer)
}

// ChangeLayer shifts the sprite's layer by delta.
func (b *SpriteBase) ChangeLayer(delta int) {
	b.GoToLayer(b.layer + delta)
}

// SetScene moves the sprite into another scene bucket.
func (b *SpriteBase) SetScene(scene string) {
	if scene == "" {
		scene = SceneMain
	}
	if scene == b.scene {
		return
	}
	b.engine.relocate(b.self, scene, b.layer)
}

// --- Collision ---

// Touching reports collision data against other. See [Touching].
func (b *SpriteBase) Touching(other Sprite) (CollisionData, bool) {
	return Touching(b.self, other)
}

// IsTouching reports whether the sprite overlaps other. See [IsTouching].
func (b *SpriteBase) IsTouching(other Sprite) bool {
	return IsTouching(b.self, other)
}

// TouchingAny returns the first sprite carrying tag that this sprite
// overlaps, or nil.
func (b *SpriteBase) TouchingAny(tag string) Sprite {
	for _, s := range b.engine.SpritesTagged(tag) {
		if s == b.self {
			continue
		}
		if IsTouching(b.self, s) {
			return s
		}
	}
	return nil
}
