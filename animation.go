package sprig

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tweenSet steps several gween tweens in lockstep.
type tweenSet []*gween.Tween

// newTweenSet builds one tween per (from, to) pair. A nil fn is linear.
func newTweenSet(seconds float32, fn ease.TweenFunc, pairs ...[2]float64) tweenSet {
	if fn == nil {
		fn = ease.Linear
	}
	ts := make(tweenSet, len(pairs))
	for i, p := range pairs {
		ts[i] = gween.New(float32(p[0]), float32(p[1]), seconds, fn)
	}
	return ts
}

// advance steps every tween by dt, writes the values into out and reports
// whether all of them have finished.
func (ts tweenSet) advance(dt float32, out []float64) bool {
	done := true
	for i, tw := range ts {
		v, finished := tw.Update(dt)
		out[i] = float64(v)
		done = done && finished
	}
	return done
}

// TweenGroup glides a sprite property over time. Create one with
// [Engine.Glide], [Engine.GlideSize] or [Engine.GlideDir]. The engine
// advances it every Update and writes through the sprite's mutators, so a
// gliding pen draws. A group whose sprite leaves the engine stops at once.
type TweenGroup struct {
	set    tweenSet
	vals   []float64
	apply  func(vals []float64)
	target Sprite
	Done   bool
}

// Update advances the group by dt seconds.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if b := g.target.Base(); b.engine == nil || !b.engine.registered[g.target] {
		g.Done = true
		return
	}
	g.Done = g.set.advance(dt, g.vals)
	g.apply(g.vals)
}

// Stop ends the group where it is.
func (g *TweenGroup) Stop() { g.Done = true }

// Finished reports whether the group has completed. It is handy as a
// [Engine.WaitUntil] predicate.
func (g *TweenGroup) Finished() bool { return g.Done }

func (e *Engine) glide(s Sprite, seconds float32, fn ease.TweenFunc, apply func([]float64), pairs ...[2]float64) *TweenGroup {
	g := &TweenGroup{
		set:    newTweenSet(seconds, fn, pairs...),
		vals:   make([]float64, len(pairs)),
		apply:  apply,
		target: s,
	}
	e.tweens = append(e.tweens, g)
	return g
}

// Glide moves s to (x, y) over seconds using fn, linear when nil.
func (e *Engine) Glide(s Sprite, x, y float64, seconds float32, fn ease.TweenFunc) *TweenGroup {
	b := s.Base()
	return e.glide(s, seconds, fn, func(v []float64) { b.GoTo(v[0], v[1]) },
		[2]float64{b.x, x}, [2]float64{b.y, y})
}

// GlideSize scales s to size over seconds.
func (e *Engine) GlideSize(s Sprite, size float64, seconds float32, fn ease.TweenFunc) *TweenGroup {
	b := s.Base()
	return e.glide(s, seconds, fn, func(v []float64) { b.SetSize(v[0]) }, [2]float64{b.size, size})
}

// GlideDir turns s to heading dir over seconds. The turn is not wrapped:
// gliding from 350 to 10 sweeps back through 180.
func (e *Engine) GlideDir(s Sprite, dir float64, seconds float32, fn ease.TweenFunc) *TweenGroup {
	b := s.Base()
	return e.glide(s, seconds, fn, func(v []float64) { b.Point(v[0]) }, [2]float64{b.dir, dir})
}

// updateTweens advances every running group and drops finished ones.
func (e *Engine) updateTweens(dt float32) {
	live := e.tweens[:0]
	for _, g := range e.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(e.tweens[len(live):])
	e.tweens = live
}
