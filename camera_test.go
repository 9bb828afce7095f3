package sprig

import (
	"testing"
)

func TestCameraDefaultView(t *testing.T) {
	cam := newCamera(800, 600)

	tests := []struct {
		wx, wy, sx, sy float64
	}{
		{0, 0, 400, 300},
		{100, 100, 500, 200},
		{-400, 300, 0, 0},
		{400, -300, 800, 600},
	}
	for _, tt := range tests {
		sx, sy := cam.WorldToScreen(tt.wx, tt.wy)
		if !approxEqual(sx, tt.sx, 1e-9) || !approxEqual(sy, tt.sy, 1e-9) {
			t.Errorf("WorldToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.wx, tt.wy, sx, sy, tt.sx, tt.sy)
		}
	}

	box := cam.VisibleBounds()
	if !approxEqual(box.Width, 800, 1e-9) || !approxEqual(box.Height, 600, 1e-9) ||
		!approxEqual(box.X, 0, 1e-9) || !approxEqual(box.Y, 0, 1e-9) {
		t.Errorf("VisibleBounds() = %+v", box)
	}
}

func TestCameraRoundTrip(t *testing.T) {
	cam := newCamera(800, 600)
	cam.X, cam.Y = 120, -40
	cam.Zoom = 1.5
	cam.Dir = 30

	for _, p := range []Vec2{{0, 0}, {10, 20}, {-300, 250}, {1e3, -1e3}} {
		sx, sy := cam.WorldToScreen(p[0], p[1])
		wx, wy := cam.ScreenToWorld(sx, sy)
		if !approxEqual(wx, p[0], 1e-6) || !approxEqual(wy, p[1], 1e-6) {
			t.Errorf("round trip %v -> (%v, %v)", p, wx, wy)
		}
	}
	// The camera position always sits at the canvas center.
	if sx, sy := cam.WorldToScreen(120, -40); !approxEqual(sx, 400, 1e-9) || !approxEqual(sy, 300, 1e-9) {
		t.Errorf("camera center maps to (%v, %v)", sx, sy)
	}
}

func TestCameraDirAndZoom(t *testing.T) {
	cam := newCamera(800, 600)

	cam.Dir = 90
	if sx, sy := cam.WorldToScreen(100, 0); !approxEqual(sx, 400, 1e-9) || !approxEqual(sy, 200, 1e-9) {
		t.Errorf("turned camera: world +x at (%v, %v), want (400, 200)", sx, sy)
	}

	cam.Dir = 0
	cam.Zoom = 2
	if sx, sy := cam.WorldToScreen(100, 100); !approxEqual(sx, 600, 1e-9) || !approxEqual(sy, 100, 1e-9) {
		t.Errorf("zoomed: (%v, %v), want (600, 100)", sx, sy)
	}
	box := cam.VisibleBounds()
	if !approxEqual(box.Width, 400, 1e-9) || !approxEqual(box.Height, 300, 1e-9) {
		t.Errorf("zoomed VisibleBounds() = %+v", box)
	}

	// Non-positive zoom behaves as 1.
	cam.Zoom = 0
	if sx, _ := cam.WorldToScreen(100, 0); !approxEqual(sx, 500, 1e-9) {
		t.Errorf("zero zoom: sx = %v, want 500", sx)
	}
}

func TestCameraFollow(t *testing.T) {
	e, _ := newTestEngine(t)
	s := rect(e, 100, 50, 10, 10)
	cam := e.Camera()

	cam.Follow(s, 0, 0, 0.5)
	if !cam.update(0.1) {
		t.Fatal("update reported no change")
	}
	if cam.X != 50 || cam.Y != 25 {
		t.Errorf("lerped to (%v, %v), want (50, 25)", cam.X, cam.Y)
	}

	cam.Follow(s, 10, -10, 1)
	cam.update(0.1)
	if cam.X != 110 || cam.Y != 40 {
		t.Errorf("snapped to (%v, %v), want (110, 40)", cam.X, cam.Y)
	}
	if cam.update(0.1) {
		t.Error("update reported a change while at rest")
	}

	e.RemoveSprite(s)
	cam.update(0.1)
	if cam.follow != nil {
		t.Error("camera still follows a removed sprite")
	}

	cam.Follow(s, 0, 0, 1)
	cam.Unfollow()
	if cam.follow != nil {
		t.Error("Unfollow kept the target")
	}
}

func TestCameraBounds(t *testing.T) {
	cam := newCamera(800, 600)
	cam.SetBounds(BoundingBox{Width: 1000, Height: 1000})

	cam.X, cam.Y = 1000, -1000
	cam.update(0)
	if cam.X != 100 || cam.Y != -200 {
		t.Errorf("clamped to (%v, %v), want (100, -200)", cam.X, cam.Y)
	}

	// Bounds narrower than the view center the camera.
	cam.SetBounds(BoundingBox{X: 30, Y: 40, Width: 100, Height: 100})
	cam.update(0)
	if cam.X != 30 || cam.Y != 40 {
		t.Errorf("centered on (%v, %v), want (30, 40)", cam.X, cam.Y)
	}

	cam.ClearBounds()
	cam.X = 5000
	cam.update(0)
	if cam.X != 5000 {
		t.Errorf("bounds still applied after ClearBounds: X = %v", cam.X)
	}
}

func TestCameraScrollTo(t *testing.T) {
	cam := newCamera(800, 600)
	cam.ScrollTo(100, -50, 1, nil)
	if !cam.Scrolling() {
		t.Fatal("Scrolling() = false after ScrollTo")
	}

	cam.update(0.5)
	if !approxEqual(cam.X, 50, 1e-3) || !approxEqual(cam.Y, -25, 1e-3) {
		t.Errorf("halfway at (%v, %v), want (50, -25)", cam.X, cam.Y)
	}
	cam.update(0.5)
	if !approxEqual(cam.X, 100, 1e-3) || !approxEqual(cam.Y, -50, 1e-3) {
		t.Errorf("ended at (%v, %v), want (100, -50)", cam.X, cam.Y)
	}
	if cam.Scrolling() {
		t.Error("still scrolling after the duration")
	}
}

func TestCameraMoveRequestsRedraw(t *testing.T) {
	e, _ := newTestEngine(t)
	e.flush(&countingCanvas{})
	if e.dirty {
		t.Fatal("flush left the engine dirty")
	}

	e.Camera().ScrollTo(0, 200, 1, nil)
	update(t, e, 1)
	if !e.dirty {
		t.Error("camera scroll did not request a redraw")
	}
}
