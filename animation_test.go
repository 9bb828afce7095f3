package sprig

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestGlide(t *testing.T) {
	e, _ := newTestEngine(t)
	s := rect(e, 0, 0, 10, 10)

	g := e.Glide(s, 100, 50, 1, nil)
	e.updateTweens(0.5)
	if !approxEqual(s.X(), 50, 1e-3) || !approxEqual(s.Y(), 25, 1e-3) {
		t.Errorf("halfway at (%v, %v), want (50, 25)", s.X(), s.Y())
	}
	if g.Finished() {
		t.Error("finished halfway")
	}

	e.updateTweens(0.5)
	if !approxEqual(s.X(), 100, 1e-3) || !approxEqual(s.Y(), 50, 1e-3) {
		t.Errorf("ended at (%v, %v), want (100, 50)", s.X(), s.Y())
	}
	if !g.Finished() {
		t.Error("not finished after the duration")
	}
	if len(e.tweens) != 0 {
		t.Errorf("%d tweens still active", len(e.tweens))
	}
}

func TestGlideSizeAndDir(t *testing.T) {
	e, _ := newTestEngine(t)
	s := rect(e, 0, 0, 10, 10)

	size := e.GlideSize(s, 3, 2, ease.InOutQuad)
	dir := e.GlideDir(s, 90, 1, nil)
	for i := 0; i < 4; i++ {
		e.updateTweens(0.5)
	}
	if !size.Finished() || !dir.Finished() {
		t.Fatal("tweens not finished")
	}
	if !approxEqual(s.Size(), 3, 1e-3) {
		t.Errorf("Size() = %v, want 3", s.Size())
	}
	if !approxEqual(s.Dir(), 90, 1e-3) {
		t.Errorf("Dir() = %v, want 90", s.Dir())
	}
	if box := s.BoundingBox(); !approxEqual(box.Width, 30, 1e-2) {
		t.Errorf("box width = %v, want 30 after scaling", box.Width)
	}
}

func TestGlideStopsWhenSpriteRemoved(t *testing.T) {
	e, _ := newTestEngine(t)
	s := rect(e, 0, 0, 10, 10)

	g := e.Glide(s, 100, 0, 1, nil)
	e.updateTweens(0.25)
	x := s.X()
	e.RemoveSprite(s)
	e.updateTweens(0.25)

	if !g.Finished() {
		t.Error("group still running for a removed sprite")
	}
	if s.X() != x {
		t.Errorf("removed sprite moved from %v to %v", x, s.X())
	}
	if len(e.tweens) != 0 {
		t.Errorf("%d tweens still active", len(e.tweens))
	}
}

func TestGlideDrivenByUpdate(t *testing.T) {
	e, _ := newTestEngine(t)
	s := rect(e, 0, 0, 10, 10)

	g := e.Glide(s, 10, 0, 0.1, nil)
	for i := 0; i < 20 && !g.Finished(); i++ {
		update(t, e, 1)
	}
	if !g.Finished() {
		t.Fatal("glide never finished under Update")
	}
	if !approxEqual(s.X(), 10, 1e-3) {
		t.Errorf("X() = %v, want 10", s.X())
	}
}

func TestGlideStop(t *testing.T) {
	e, _ := newTestEngine(t)
	s := rect(e, 0, 0, 10, 10)

	g := e.Glide(s, 100, 0, 1, nil)
	e.updateTweens(0.5)
	g.Stop()
	e.updateTweens(0.5)
	if !approxEqual(s.X(), 50, 1e-3) {
		t.Errorf("stopped glide moved on to %v", s.X())
	}
	if len(e.tweens) != 0 {
		t.Errorf("%d tweens still active", len(e.tweens))
	}
}
