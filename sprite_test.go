package sprig

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func TestMoveFollowsCompassHeading(t *testing.T) {
	e, _ := newTestEngine(t)
	tests := []struct {
		dir    float64
		wx, wy float64
	}{
		{0, 0, 10},
		{90, 10, 0},
		{180, 0, -10},
		{270, -10, 0},
		{45, 10 / math.Sqrt2, 10 / math.Sqrt2},
	}
	for _, tt := range tests {
		r := NewRectangle(e, RectangleOptions{SpriteOptions: SpriteOptions{Dir: tt.dir}})
		r.Move(10)
		if !approxEqual(r.X(), tt.wx, 1e-9) || !approxEqual(r.Y(), tt.wy, 1e-9) {
			t.Errorf("dir %v: Move(10) -> (%v, %v), want (%v, %v)", tt.dir, r.X(), r.Y(), tt.wx, tt.wy)
		}
	}
}

func TestPointTowards(t *testing.T) {
	e, _ := newTestEngine(t)
	r := NewRectangle(e, RectangleOptions{})
	r.PointTowards(10, 0)
	if !approxEqual(r.Dir(), 90, 1e-9) {
		t.Errorf("PointTowards(10, 0) dir = %v, want 90", r.Dir())
	}
	r.PointTowards(0, 10)
	if !approxEqual(r.Dir(), 0, 1e-9) {
		t.Errorf("PointTowards(0, 10) dir = %v, want 0", r.Dir())
	}
	r.Move(5)
	if !approxEqual(r.Y(), 5, 1e-9) {
		t.Errorf("Move after PointTowards y = %v, want 5", r.Y())
	}
}

func TestPositionMutators(t *testing.T) {
	e, _ := newTestEngine(t)
	r := NewRectangle(e, RectangleOptions{})
	r.GoTo(3, 4)
	r.ChangeX(2)
	r.ChangeY(-1)
	if r.X() != 5 || r.Y() != 3 {
		t.Errorf("position = (%v, %v), want (5, 3)", r.X(), r.Y())
	}
	r.SetX(-1)
	r.SetY(-2)
	if r.Position() != V(-1, -2) {
		t.Errorf("Position() = %v, want (-1, -2)", r.Position())
	}
	if got := r.DistanceTo(2, 2); got != 5 {
		t.Errorf("DistanceTo = %v, want 5", got)
	}
}

func TestSizeClamps(t *testing.T) {
	e, _ := newTestEngine(t)
	r := NewRectangle(e, RectangleOptions{})
	if r.Size() != 1 {
		t.Errorf("default Size() = %v, want 1", r.Size())
	}
	r.ChangeSize(-5)
	if r.Size() != 0 {
		t.Errorf("Size() after ChangeSize(-5) = %v, want 0", r.Size())
	}
	r.SetSize(-1)
	if r.Size() != 0 {
		t.Errorf("Size() after SetSize(-1) = %v, want 0", r.Size())
	}
}

func TestCachedPathIdempotent(t *testing.T) {
	e, _ := newTestEngine(t)
	r := NewRectangle(e, RectangleOptions{Width: 40, Height: 20})

	p1 := r.CachedPath()
	r.Move(10)
	r.Turn(30)
	p2 := r.CachedPath()
	if p1 != p2 {
		t.Error("CachedPath rebuilt after a motion-only change")
	}

	r.SetWidth(60)
	p3 := r.CachedPath()
	if p3 == p2 {
		t.Error("CachedPath not rebuilt after SetWidth")
	}
	box, _ := polyBounds(flattenPath(p3, gg.Identity()))
	if !approxEqual(box.Width, 60, 1e-9) || !approxEqual(box.Height, 20, 1e-9) {
		t.Errorf("rebuilt path bounds = %vx%v, want 60x20", box.Width, box.Height)
	}
	if r.CachedPath() != p3 {
		t.Error("CachedPath not stable without further changes")
	}

	r.SetSize(2)
	box, _ = polyBounds(flattenPath(r.CachedPath(), gg.Identity()))
	if !approxEqual(box.Width, 120, 1e-9) {
		t.Errorf("path width at size 2 = %v, want 120", box.Width)
	}
}

func TestLayerOrdering(t *testing.T) {
	e, _ := newTestEngine(t)
	layers := []int{3, 1, 2, 1, 0, 3}
	var made []*Rectangle
	for _, l := range layers {
		made = append(made, NewRectangle(e, RectangleOptions{SpriteOptions: SpriteOptions{Layer: l}}))
	}
	got := e.Sprites(SceneMain)
	if len(got) != len(layers) {
		t.Fatalf("len = %d, want %d", len(got), len(layers))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Base().Layer() > got[i].Base().Layer() {
			t.Fatalf("layers not sorted: %d before %d", got[i-1].Base().Layer(), got[i].Base().Layer())
		}
	}
	// Equal layers keep insertion order.
	want := []Sprite{made[4], made[1], made[3], made[2], made[0], made[5]}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d holds the wrong sprite", i)
		}
	}

	made[4].GoToLayer(5)
	got = e.Sprites(SceneMain)
	if got[len(got)-1] != Sprite(made[4]) {
		t.Error("GoToLayer(5) did not move the sprite to the end")
	}
	made[4].ChangeLayer(-10)
	if e.Sprites(SceneMain)[0] != Sprite(made[4]) {
		t.Error("ChangeLayer(-10) did not move the sprite to the front")
	}
}

func TestSpritesReturnsCopy(t *testing.T) {
	e, _ := newTestEngine(t)
	NewRectangle(e, RectangleOptions{})
	s := e.Sprites(SceneMain)
	s[0] = nil
	if e.Sprites(SceneMain)[0] == nil {
		t.Error("mutating the result changed the scene")
	}
	if e.Sprites("missing") != nil {
		t.Error("unknown scene returned sprites")
	}
}

func TestSetSceneMovesBucket(t *testing.T) {
	e, _ := newTestEngine(t)
	r := NewRectangle(e, RectangleOptions{})
	r.SetScene("level")
	if len(e.Sprites(SceneMain)) != 0 || len(e.Sprites("level")) != 1 {
		t.Errorf("main=%d level=%d, want 0 and 1", len(e.Sprites(SceneMain)), len(e.Sprites("level")))
	}
	if r.Scene() != "level" {
		t.Errorf("Scene() = %q", r.Scene())
	}
}

func TestRemoveSprite(t *testing.T) {
	e, _ := newTestEngine(t)
	log := &eventLog{}
	e.SetEntityStore(log)
	r := NewRectangle(e, RectangleOptions{})
	if !e.RemoveSprite(r) {
		t.Fatal("RemoveSprite = false")
	}
	if e.RemoveSprite(r) {
		t.Error("second RemoveSprite = true")
	}
	if len(e.Sprites(SceneMain)) != 0 {
		t.Error("sprite still listed")
	}
	if log.count(EventSpriteAdded) != 1 || log.count(EventSpriteRemoved) != 1 {
		t.Errorf("events = %+v", log.events)
	}
}

func TestTagAndKindQueries(t *testing.T) {
	e, _ := newTestEngine(t)
	c1 := NewCircle(e, CircleOptions{SpriteOptions: SpriteOptions{Tags: []string{"ball"}}})
	c2 := NewCircle(e, CircleOptions{SpriteOptions: SpriteOptions{Scene: SceneGlobal}})
	NewRectangle(e, RectangleOptions{SpriteOptions: SpriteOptions{Tags: []string{"ball"}}})

	if got := e.SpritesOfKind(KindCircle); len(got) != 2 || got[0] != Sprite(c1) || got[1] != Sprite(c2) {
		t.Errorf("SpritesOfKind(circle) = %v", got)
	}
	if got := e.SpritesTagged("circle"); len(got) != 2 {
		t.Errorf("SpritesTagged(circle) len = %d, want 2", len(got))
	}
	if got := e.SpritesTagged("ball"); len(got) != 2 {
		t.Errorf("SpritesTagged(ball) len = %d, want 2", len(got))
	}
	if !c1.Tags().Has("circle") || !c1.Tags().Has("ball") {
		t.Errorf("Tags() = %v", c1.Tags().List())
	}
}

func TestCloneCopiesVariantOptions(t *testing.T) {
	e, _ := newTestEngine(t)
	r := NewRectangle(e, RectangleOptions{
		SpriteOptions: SpriteOptions{X: 5, Dir: 30, Layer: 2, Tags: []string{"wall"}},
		Width:         80,
		Color:         RGB(10, 20, 30),
	})

	c := Clone(r, WithPosition(100, 100)).(*Rectangle)
	if c == r || c.ID() == r.ID() {
		t.Fatal("clone shares identity")
	}
	if c.Width() != 80 || c.Color() != r.Color() {
		t.Errorf("clone width=%v color=%v", c.Width(), c.Color())
	}
	if c.X() != 100 || c.Dir() != 30 || c.Layer() != 2 {
		t.Errorf("clone x=%v dir=%v layer=%v", c.X(), c.Dir(), c.Layer())
	}
	if !c.Tags().Has("wall") {
		t.Error("clone lost its tags")
	}

	wide := r.Clone(func(o *RectangleOptions) { o.Height = 5 })
	if wide.Height() != 5 || wide.Width() != 80 {
		t.Errorf("Clone fn: %vx%v, want 80x5", wide.Width(), wide.Height())
	}
	if len(e.Sprites(SceneMain)) != 3 {
		t.Errorf("registered = %d, want 3", len(e.Sprites(SceneMain)))
	}
}

func TestCloneKeepsZeroSize(t *testing.T) {
	e, _ := newTestEngine(t)
	r := rect(e, 0, 0, 20, 20)
	r.SetSize(0)

	if c := Clone(r); c.Base().Size() != 0 {
		t.Errorf("Clone size = %v, want 0", c.Base().Size())
	}
	if c := r.Clone(func(o *RectangleOptions) { o.Width = 40 }); c.Size() != 0 {
		t.Errorf("typed Clone size = %v, want 0", c.Size())
	}
	if c := Clone(rect(e, 0, 0, 20, 20), WithSize(0)); c.Base().Size() != 0 {
		t.Errorf("WithSize(0) size = %v, want 0", c.Base().Size())
	}
	if r := NewRectangle(e, RectangleOptions{}); r.Size() != 1 {
		t.Errorf("default size = %v, want 1", r.Size())
	}
}

func TestNilEnginePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil engine")
		}
	}()
	NewRectangle(nil, RectangleOptions{})
}

func TestTransformPivot(t *testing.T) {
	e, _ := newTestEngine(t)
	// Pivot at the left edge: rotating 90 degrees swings the box to the
	// lower side of the position.
	r := NewRectangle(e, RectangleOptions{
		SpriteOptions: SpriteOptions{Pivot: V(-25, 0), Dir: 90},
	})
	p := r.Transform().TransformPoint(gg.Pt(0, 0))
	if !approxEqual(p.X, 0, 1e-9) || !approxEqual(p.Y, -25, 1e-9) {
		t.Errorf("local origin maps to (%v, %v), want (0, -25)", p.X, p.Y)
	}
}
