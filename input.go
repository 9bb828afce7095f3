package sprig

import (
	"strings"

	"github.com/gogpu/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyAliases maps the friendly names accepted by KeyPressed to raw key
// names as reported by ebiten.Key.String.
var keyAliases = map[string]string{
	"up":    ebiten.KeyArrowUp.String(),
	"down":  ebiten.KeyArrowDown.String(),
	"left":  ebiten.KeyArrowLeft.String(),
	"right": ebiten.KeyArrowRight.String(),
	"space": ebiten.KeySpace.String(),
	" ":     ebiten.KeySpace.String(),
	"enter": ebiten.KeyEnter.String(),
}

// inputState is the folded keyboard and mouse state. Screen coordinates are
// raw target pixels, y-down.
type inputState struct {
	keys      map[string]struct{}
	screenX   float64
	screenY   float64
	mouseDown bool
	clicked   bool

	keyBuf []ebiten.Key
}

func newInputState() inputState {
	return inputState{keys: make(map[string]struct{})}
}

// PressKey records name as held. Names are raw key names such as "A",
// "ArrowUp" or "Space".
func (e *Engine) PressKey(name string) {
	e.input.keys[name] = struct{}{}
}

// ReleaseKey records name as released. Matching is case-insensitive.
func (e *Engine) ReleaseKey(name string) {
	for k := range e.input.keys {
		if strings.EqualFold(k, name) {
			delete(e.input.keys, k)
		}
	}
}

// KeyPressed reports whether the key is held. Besides raw names, matched
// case-insensitively, it accepts "any", "up", "down", "left", "right",
// "space" and "enter".
func (e *Engine) KeyPressed(name string) bool {
	lower := strings.ToLower(name)
	if lower == "any" {
		return len(e.input.keys) > 0
	}
	if raw, ok := keyAliases[lower]; ok {
		name = raw
	}
	for k := range e.input.keys {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

// PressedKeys returns the raw names of all held keys.
func (e *Engine) PressedKeys() []string {
	return NewTags(mapKeys(e.input.keys)...).List()
}

func mapKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// MoveMouse records the pointer at screen pixel (sx, sy), origin top-left.
func (e *Engine) MoveMouse(sx, sy float64) {
	e.input.screenX, e.input.screenY = sx, sy
}

// SetMouseDown records the primary button state. A press raises the
// one-tick click pulse.
func (e *Engine) SetMouseDown(down bool) {
	if down && !e.input.mouseDown {
		e.input.clicked = true
		x, y := e.MousePosition()
		e.emit(Event{Type: EventClick, Scene: e.current, X: x, Y: y})
	}
	e.input.mouseDown = down
}

// MousePosition returns the pointer in world coordinates: relative to the
// canvas center, y-up, then through the camera.
func (e *Engine) MousePosition() (x, y float64) {
	return e.camera.ScreenToWorld(e.input.screenX, e.input.screenY)
}

func (e *Engine) MouseX() float64 {
	x, _ := e.MousePosition()
	return x
}

func (e *Engine) MouseY() float64 {
	_, y := e.MousePosition()
	return y
}

// MouseDown reports whether the primary button is held.
func (e *Engine) MouseDown() bool { return e.input.mouseDown }

// MouseClicked reports whether the button went down since the loop last
// ran. The pulse clears after the tick that delivered it to the loop.
func (e *Engine) MouseClicked() bool { return e.input.clicked }

// Hovering reports whether the pointer lies inside s's outline.
func (e *Engine) Hovering(s Sprite) bool {
	if s == nil || s.Base().hidden {
		return false
	}
	x, y := e.MousePosition()
	b := s.Base()
	if !s.BoundingBox().Contains(x, y) {
		return false
	}
	local := b.Transform().Invert().TransformPoint(gg.Pt(x, y))
	return windingContains(flattenPath(b.CachedPath(), gg.Identity()), local)
}

// pollInput folds this frame's ebiten keyboard and mouse changes into the
// input state. Injected events take precedence: while the queue is not
// empty real input is ignored.
func (e *Engine) pollInput() {
	if e.processInjectedInput() {
		return
	}
	if e.cfg.Headless {
		return
	}
	e.input.keyBuf = inpututil.AppendJustPressedKeys(e.input.keyBuf[:0])
	for _, k := range e.input.keyBuf {
		e.PressKey(k.String())
	}
	e.input.keyBuf = inpututil.AppendJustReleasedKeys(e.input.keyBuf[:0])
	for _, k := range e.input.keyBuf {
		e.ReleaseKey(k.String())
	}
	mx, my := ebiten.CursorPosition()
	e.MoveMouse(float64(mx), float64(my))
	e.SetMouseDown(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}
