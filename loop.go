package sprig

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Clock supplies the time used by the loop scheduler. Tests substitute a
// manual clock to drive ticks deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// scheduler paces the current scene's loop with a max-FPS accumulator.
type scheduler struct {
	interval time.Duration
	acc      time.Duration
	last     time.Time
	started  bool
	paused   bool
	delta    float64
	task     *loopTask
	calls    int
}

func newScheduler(maxFPS int) scheduler {
	return scheduler{interval: time.Second / time.Duration(maxFPS)}
}

// restart drops the accumulated time so the next tick starts a fresh
// measurement. An in-flight task is left alone.
func (s *scheduler) restart() {
	s.acc = 0
	s.started = false
}

// loopTask is one invocation of a LoopFunc. The task goroutine and the
// engine goroutine hand control back and forth so that only one of them
// runs at a time.
type loopTask struct {
	engine *Engine
	resume chan struct{}
	yield  chan taskSignal
	// wake is checked by the engine each tick while the task is suspended.
	wake func(now time.Time) bool
}

type taskSignal struct {
	done bool
	err  error
}

type taskKey struct{}

func taskFrom(ctx context.Context) *loopTask {
	t, _ := ctx.Value(taskKey{}).(*loopTask)
	return t
}

// startTask runs fn on a new goroutine and blocks until it finishes or
// suspends.
func (e *Engine) startTask(fn LoopFunc) taskSignal {
	t := &loopTask{
		engine: e,
		resume: make(chan struct{}),
		yield:  make(chan taskSignal, 1),
	}
	ctx := context.WithValue(e.ctx, taskKey{}, t)
	go func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("sprig: loop callback panicked: %v", r)
			}
			t.yield <- taskSignal{done: true, err: err}
		}()
		err = fn(ctx)
	}()
	e.sched.task = t
	return e.await(t)
}

func (e *Engine) await(t *loopTask) taskSignal {
	sig := <-t.yield
	if sig.done {
		e.sched.task = nil
	}
	return sig
}

// suspend hands control back to the engine until wake reports true. It
// must be called from the task goroutine.
func (t *loopTask) suspend(ctx context.Context, wake func(now time.Time) bool) error {
	t.wake = func(now time.Time) bool { return ctx.Err() != nil || wake(now) }
	t.yield <- taskSignal{}
	select {
	case <-t.resume:
		return ctx.Err()
	case <-t.engine.closed:
		return ErrEngineClosed
	}
}

// tick advances the scheduler to now. A suspended task is serviced first
// and blocks new invocations; otherwise the accumulator decides whether the
// current scene's loop runs. It reports whether a callback ran or resumed.
func (e *Engine) tick(now time.Time) (bool, error) {
	s := &e.sched
	if t := s.task; t != nil {
		if !t.wake(now) {
			return false, nil
		}
		t.resume <- struct{}{}
		return true, e.finish(e.await(t))
	}

	sc := e.scenes[e.current]
	if s.paused || sc == nil || sc.loop == nil {
		s.started = false
		return false, nil
	}
	if !s.started {
		s.started = true
		s.last = now
		return false, nil
	}
	s.acc += now.Sub(s.last)
	s.last = now
	if s.acc < s.interval {
		return false, nil
	}
	s.delta = s.acc.Seconds()
	s.acc %= s.interval
	s.calls++
	return true, e.finish(e.startTask(sc.loop))
}

// finish turns a completed task's outcome into the tick error. Time spent
// inside the callback counts toward the next scheduling decision.
func (e *Engine) finish(sig taskSignal) error {
	if !sig.done {
		return nil
	}
	if sig.err == nil || errors.Is(sig.err, ErrEngineClosed) || errors.Is(sig.err, context.Canceled) {
		return nil
	}
	Logger().Error("loop callback failed", "scene", e.current, "error", sig.err)
	return sig.err
}

// DeltaTime returns the seconds of accumulated time consumed by the most
// recent loop invocation.
func (e *Engine) DeltaTime() float64 { return e.sched.delta }

// MaxFPS returns the loop rate cap.
func (e *Engine) MaxFPS() int { return int(time.Second / e.sched.interval) }

// SetMaxFPS changes the loop rate cap. It returns [ErrInvalidFPS] for
// values of zero or less and leaves the rate unchanged.
func (e *Engine) SetMaxFPS(fps int) error {
	if fps <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFPS, fps)
	}
	e.sched.interval = time.Second / time.Duration(fps)
	e.sched.acc = 0
	return nil
}

// PauseLoop stops scheduling new loop invocations. A callback already in
// flight still runs to completion.
func (e *Engine) PauseLoop() { e.sched.paused = true }

// ResumeLoop restarts scheduling after [Engine.PauseLoop]. Time spent paused
// is not accumulated.
func (e *Engine) ResumeLoop() {
	if e.sched.paused {
		e.sched.paused = false
		e.sched.restart()
	}
}

// LoopPaused reports whether the loop is paused.
func (e *Engine) LoopPaused() bool { return e.sched.paused }

// Wait suspends for d. Inside a loop callback it yields to the engine, which
// keeps drawing and polling input, and resumes on the first tick after d has
// elapsed on the engine clock. Elsewhere it sleeps. It returns early with
// the context error on cancellation.
func (e *Engine) Wait(ctx context.Context, d time.Duration) error {
	if t := taskFrom(ctx); t != nil && t.engine == e {
		deadline := e.clock.Now().Add(d)
		return t.suspend(ctx, func(now time.Time) bool { return !now.Before(deadline) })
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-e.closed:
		return ErrEngineClosed
	}
}

// WaitUntil suspends until pred reports true, checking it once per loop
// interval. Inside a loop callback pred runs on the engine goroutine
// between ticks. There is no timeout: a predicate that never holds keeps
// the task parked until ctx is cancelled or the engine closes.
func (e *Engine) WaitUntil(ctx context.Context, pred func() bool) error {
	if pred() {
		return nil
	}
	if t := taskFrom(ctx); t != nil && t.engine == e {
		checked := e.clock.Now()
		return t.suspend(ctx, func(now time.Time) bool {
			if now.Sub(checked) < e.sched.interval {
				return false
			}
			checked = now
			return pred()
		})
	}
	ticker := time.NewTicker(e.sched.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if pred() {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		case <-e.closed:
			return ErrEngineClosed
		}
	}
}
