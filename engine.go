package sprig

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Config holds the engine settings. Zero fields take the defaults noted on
// each field.
type Config struct {
	// Title is the window title. Default "sprig".
	Title string
	// Width and Height are the canvas size in pixels. Default 800x600.
	Width, Height int
	// MaxFPS caps how often the scene loop runs. Default 30.
	MaxFPS int
	// ShowFPS draws an FPS/TPS overlay in the top-left corner.
	ShowFPS bool
	// Background fills the stage before each redraw. Default white. Use
	// ColorTransparent for no fill.
	Background *Color
	// Headless skips ebiten input polling and audio. Tests drive the engine
	// by calling Update and Draw directly.
	Headless bool
	// Debug prints per-frame stats to stderr.
	Debug bool
	// Clock paces the loop scheduler. Default SystemClock.
	Clock Clock
	// ScreenshotDir receives screenshot PNGs. Default "screenshots".
	ScreenshotDir string
}

const (
	defaultTitle         = "sprig"
	defaultWidth         = 800
	defaultHeight        = 600
	defaultMaxFPS        = 30
	defaultScreenshotDir = "screenshots"
)

func (c *Config) applyDefaults() {
	if c.Title == "" {
		c.Title = defaultTitle
	}
	if c.Width == 0 {
		c.Width = defaultWidth
	}
	if c.Height == 0 {
		c.Height = defaultHeight
	}
	if c.MaxFPS == 0 {
		c.MaxFPS = defaultMaxFPS
	}
	if c.Background == nil {
		bg := ColorWhite
		c.Background = &bg
	}
	if c.Clock == nil {
		c.Clock = SystemClock
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = defaultScreenshotDir
	}
}

// Validate reports a configuration the engine cannot run with. Zero values
// are valid since New replaces them with defaults.
func (c Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.MaxFPS < 0 {
		return fmt.Errorf("%w: %w: %d", ErrInvalidConfig, ErrInvalidFPS, c.MaxFPS)
	}
	return nil
}

// Engine owns the scenes, the loop scheduler, input, sound, the camera and
// the pen layer. It implements ebiten.Game; use [Run] to open a window, or
// call Update and Draw directly in headless mode.
//
// An Engine is not safe for concurrent use. Loop callbacks run on their own
// goroutine but only while the engine goroutine waits on them.
type Engine struct {
	cfg   Config
	clock Clock

	scenes     map[string]*Scene
	current    string
	registered map[Sprite]bool

	sched     scheduler
	ctx       context.Context
	cancel    context.CancelFunc
	closed    chan struct{}
	closeOnce sync.Once

	input           inputState
	injectQueue     []syntheticEvent
	testRunner      *TestRunner
	screenshotQueue []string

	camera *Camera
	tweens []*TweenGroup
	pen    recorder

	dirty  bool
	stage  *ebiten.Image
	canvas *ebitenCanvas
	fps    *fpsWidget

	sounds *soundBoard
	vars   map[string]any
	store  EntityStore

	debug bool
	stats debugStats
}

// New creates an engine. The main and global scenes exist from the start
// and main is current.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		cfg:        cfg,
		clock:      cfg.Clock,
		scenes:     make(map[string]*Scene),
		current:    SceneMain,
		registered: make(map[Sprite]bool),
		sched:      newScheduler(cfg.MaxFPS),
		ctx:        ctx,
		cancel:     cancel,
		closed:     make(chan struct{}),
		input:      newInputState(),
		camera:     newCamera(cfg.Width, cfg.Height),
		sounds:     newSoundBoard(),
		vars:       make(map[string]any),
		debug:      cfg.Debug,
		dirty:      true,
	}
	e.scene(SceneMain)
	e.scene(SceneGlobal)
	return e, nil
}

// Config returns the settings the engine runs with, defaults applied.
func (e *Engine) Config() Config { return e.cfg }

// Camera returns the engine camera.
func (e *Engine) Camera() *Camera { return e.camera }

// Width returns the canvas width in pixels.
func (e *Engine) Width() int { return e.cfg.Width }

// Height returns the canvas height in pixels.
func (e *Engine) Height() int { return e.cfg.Height }

// Update implements ebiten.Game. It advances the test runner, folds input,
// runs the scheduler and advances the camera and tweens. An error from a
// loop callback is returned and ends the run.
func (e *Engine) Update() error {
	select {
	case <-e.closed:
		return ebiten.Termination
	default:
	}

	var start time.Time
	if e.debug {
		start = time.Now()
	}

	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	e.pollInput()

	ran, err := e.tick(e.clock.Now())
	if err != nil {
		return err
	}
	if ran || e.scenes[e.current].loop == nil {
		e.input.clicked = false
	}

	dt := float32(1.0 / float64(ebiten.TPS()))
	if e.camera.update(dt) {
		e.Refresh()
	}
	e.updateTweens(dt)
	if e.fps != nil {
		e.fps.update(float64(dt))
	}

	if e.debug {
		e.stats.tickTime = time.Since(start)
		e.stats.loopCalls = e.sched.calls
		e.debugCheckSceneSize(e.scenes[e.current])
	}
	return nil
}

// Draw implements ebiten.Game. The stage is redrawn only when a refresh is
// pending; otherwise the previous frame is reused.
func (e *Engine) Draw(screen *ebiten.Image) {
	if e.stage == nil {
		e.stage = ebiten.NewImage(e.cfg.Width, e.cfg.Height)
		e.canvas = newEbitenCanvas(e.stage)
	}

	var start time.Time
	if e.debug {
		start = time.Now()
	}
	if e.dirty {
		e.stage.Clear()
		if bg := *e.cfg.Background; bg.A > 0 {
			e.stage.Fill(bg)
		}
		e.flush(e.canvas)
	}
	screen.DrawImage(e.stage, nil)

	if e.cfg.ShowFPS {
		if e.fps == nil {
			e.fps = newFPSWidget()
		}
		e.fps.draw(screen)
	}
	e.flushScreenshots(e.stage)

	if e.debug {
		e.stats.flushTime = time.Since(start)
		e.debugLog(e.stats)
	}
}

// Layout implements ebiten.Game with a fixed canvas size.
func (e *Engine) Layout(_, _ int) (int, int) {
	return e.cfg.Width, e.cfg.Height
}

// Refresh requests a redraw. Any number of calls before the next frame
// produce a single redraw.
func (e *Engine) Refresh() {
	e.dirty = true
}

// flush redraws into c if a refresh is pending and reports whether it did.
// The pen layer goes first, then the current scene, then the global scene.
func (e *Engine) flush(c Canvas) bool {
	if !e.dirty {
		return false
	}
	e.dirty = false

	view := e.camera.View()
	e.pen.replay(c, view)
	drawn, total := 0, 0
	draw := func(name string) {
		sc, ok := e.scenes[name]
		if !ok {
			return
		}
		total += len(sc.sprites)
		for _, s := range sc.sprites {
			if s.Base().hidden {
				continue
			}
			s.Draw(c, view.Multiply(s.Base().Transform()))
			drawn++
		}
	}
	draw(e.current)
	if e.current != SceneGlobal {
		draw(SceneGlobal)
	}

	if e.debug {
		e.stats.spriteCount = total
		e.stats.drawCount = drawn
		e.stats.penOps = len(e.pen.ops)
	}
	return true
}

// Close cancels the loop context and wakes suspended callbacks, which then
// return [ErrEngineClosed]. The next Update ends the run. Close is
// idempotent.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		e.cancel()
		close(e.closed)
		e.StopAllSounds()
		Logger().Info("engine closed")
	})
}

// Closed reports whether Close has been called.
func (e *Engine) Closed() bool {
	select {
	case <-e.closed:
		return true
	default:
		return false
	}
}

// Run opens a window sized from the engine config and blocks until the
// window closes, Close is called, or a loop callback fails.
func Run(e *Engine) error {
	if e == nil {
		panic("sprig: Run(nil)")
	}
	ebiten.SetWindowTitle(e.cfg.Title)
	ebiten.SetWindowSize(e.cfg.Width, e.cfg.Height)
	ebiten.SetTPS(max(ebiten.DefaultTPS, e.cfg.MaxFPS))
	defer e.Close()

	err := ebiten.RunGame(e)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// --- Variables ---

// SetVariable stores v under key, shared across scenes.
func (e *Engine) SetVariable(key string, v any) {
	e.vars[key] = v
}

// Variable returns the value stored under key.
func (e *Engine) Variable(key string) (any, bool) {
	v, ok := e.vars[key]
	return v, ok
}

// DeleteVariable removes key.
func (e *Engine) DeleteVariable(key string) {
	delete(e.vars, key)
}

// VariableAs returns the value under key if it holds a T.
func VariableAs[T any](e *Engine, key string) (T, bool) {
	v, ok := e.vars[key].(T)
	return v, ok
}
