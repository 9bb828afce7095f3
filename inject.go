package sprig

type syntheticKind uint8

const (
	syntheticKeyDown syntheticKind = iota
	syntheticKeyUp
	syntheticPointer
)

// syntheticEvent is a single injected input event. Pointer events use screen
// pixels, the same space a screenshot shows, and go through the camera like
// real mouse input.
type syntheticEvent struct {
	kind             syntheticKind
	key              string
	screenX, screenY float64
	pressed          bool
}

// InjectKeyDown queues a key press. The event is consumed on the next
// frame's input poll.
func (e *Engine) InjectKeyDown(name string) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticKeyDown, key: name})
}

// InjectKeyUp queues a key release.
func (e *Engine) InjectKeyUp(name string) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticKeyUp, key: name})
}

// InjectKey queues a press held for frames frames followed by a release.
// Minimum frames is 1.
func (e *Engine) InjectKey(name string, frames int) {
	e.InjectKeyDown(name)
	for i := 1; i < frames; i++ {
		e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticKeyDown, key: name})
	}
	e.InjectKeyUp(name)
}

// InjectPress queues a pointer press at the given screen coordinates.
func (e *Engine) InjectPress(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{
		kind:    syntheticPointer,
		screenX: x, screenY: y,
		pressed: true,
	})
}

// InjectMove queues a pointer move with the button held. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (e *Engine) InjectMove(x, y float64) {
	e.InjectPress(x, y)
}

// InjectHover queues a pointer move with the button up.
func (e *Engine) InjectHover(x, y float64) {
	e.InjectRelease(x, y)
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (e *Engine) InjectRelease(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{
		kind:    syntheticPointer,
		screenX: x, screenY: y,
		pressed: false,
	})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (e *Engine) InjectClick(x, y float64) {
	e.InjectPress(x, y)
	e.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves
// and a release at (toX, toY). Minimum frames is 2.
func (e *Engine) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		e.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	e.InjectRelease(toX, toY)
}

// processInjectedInput pops one event from the inject queue and folds it
// into the input state. It reports whether an event was consumed, in which
// case real input is skipped for the frame.
func (e *Engine) processInjectedInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	switch evt.kind {
	case syntheticKeyDown:
		e.PressKey(evt.key)
	case syntheticKeyUp:
		e.ReleaseKey(evt.key)
	case syntheticPointer:
		e.MoveMouse(evt.screenX, evt.screenY)
		e.SetMouseDown(evt.pressed)
	}
	return true
}
