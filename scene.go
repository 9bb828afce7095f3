package sprig

import (
	"context"
	"sort"
)

// LoopFunc is a per-tick scene callback. It runs as a cooperative task: it
// may suspend in [Engine.Wait] or [Engine.WaitUntil], and the next tick is
// not scheduled until it returns. The context is cancelled by [Engine.Close].
type LoopFunc func(ctx context.Context) error

// Scene is a named bucket of sprites ordered by layer, plus an optional
// loop callback.
type Scene struct {
	name    string
	sprites []Sprite
	loop    LoopFunc
}

// Name returns the scene name.
func (s *Scene) Name() string { return s.name }

// Len returns the number of sprites in the scene.
func (s *Scene) Len() int { return len(s.sprites) }

// insert places sp after every sprite whose layer is not greater, so equal
// layers keep insertion order.
func (s *Scene) insert(sp Sprite) {
	layer := sp.Base().layer
	i := sort.Search(len(s.sprites), func(i int) bool {
		return s.sprites[i].Base().layer > layer
	})
	s.sprites = append(s.sprites, nil)
	copy(s.sprites[i+1:], s.sprites[i:])
	s.sprites[i] = sp
}

func (s *Scene) remove(sp Sprite) bool {
	for i, o := range s.sprites {
		if o == sp {
			copy(s.sprites[i:], s.sprites[i+1:])
			s.sprites[len(s.sprites)-1] = nil
			s.sprites = s.sprites[:len(s.sprites)-1]
			return true
		}
	}
	return false
}

// --- ECS bridge ---

// EventType identifies an engine event forwarded to an [EntityStore].
type EventType uint8

const (
	EventSpriteAdded   EventType = iota // a sprite was registered
	EventSpriteRemoved                  // a sprite was unregistered
	EventSceneChanged                   // the current scene switched
	EventCollision                      // a rigid body resolved a contact
	EventClick                          // the mouse was pressed this tick
)

var eventTypeNames = [...]string{
	EventSpriteAdded:   "sprite-added",
	EventSpriteRemoved: "sprite-removed",
	EventSceneChanged:  "scene-changed",
	EventCollision:     "collision",
	EventClick:         "click",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Event carries engine activity to an [EntityStore].
type Event struct {
	Type EventType
	// SpriteID is the subject sprite, if any.
	SpriteID string
	// OtherID is the second sprite of a collision.
	OtherID string
	// Scene is the scene involved; for EventSceneChanged the new scene.
	Scene string
	// X and Y are the world position of the event.
	X, Y float64
	// Collision is set for EventCollision.
	Collision CollisionData
}

// EntityStore receives engine events, typically to republish them into an
// ECS world. See the ecs sub-module.
type EntityStore interface {
	EmitEvent(event Event)
}

// SetEntityStore sets the optional ECS bridge. Pass nil to detach.
func (e *Engine) SetEntityStore(store EntityStore) {
	e.store = store
}

func (e *Engine) emit(ev Event) {
	if e.store != nil {
		e.store.EmitEvent(ev)
	}
}

// --- Registry ---

// scene returns the named bucket, creating it on first reference.
func (e *Engine) scene(name string) *Scene {
	sc, ok := e.scenes[name]
	if !ok {
		sc = &Scene{name: name}
		e.scenes[name] = sc
	}
	return sc
}

// Scene returns the named scene, creating it if needed.
func (e *Engine) Scene(name string) *Scene {
	if name == "" {
		name = SceneMain
	}
	return e.scene(name)
}

// CurrentScene returns the name of the active scene.
func (e *Engine) CurrentScene() string { return e.current }

// AddSprite registers s in its scene at its sorted layer position. Sprite
// constructors call it; calling it again for a registered sprite is a no-op.
func (e *Engine) AddSprite(s Sprite) {
	if s == nil {
		panic("sprig: AddSprite(nil)")
	}
	b := s.Base()
	if b.engine != nil && b.engine != e {
		panic("sprig: sprite belongs to another engine")
	}
	if e.registered[s] {
		return
	}
	b.engine = e
	e.registered[s] = true
	e.scene(b.scene).insert(s)
	e.emit(Event{Type: EventSpriteAdded, SpriteID: b.id, Scene: b.scene, X: b.x, Y: b.y})
	e.Refresh()
}

// RemoveSprite unregisters s. It reports whether s was registered.
func (e *Engine) RemoveSprite(s Sprite) bool {
	if s == nil || !e.registered[s] {
		return false
	}
	b := s.Base()
	e.scene(b.scene).remove(s)
	delete(e.registered, s)
	e.emit(Event{Type: EventSpriteRemoved, SpriteID: b.id, Scene: b.scene, X: b.x, Y: b.y})
	e.Refresh()
	return true
}

// relocate moves s to scene and layer, keeping both buckets sorted.
func (e *Engine) relocate(s Sprite, scene string, layer int) {
	b := s.Base()
	if !e.registered[s] {
		b.scene, b.layer = scene, layer
		return
	}
	e.scene(b.scene).remove(s)
	b.scene, b.layer = scene, layer
	e.scene(scene).insert(s)
	e.Refresh()
}

// Sprites returns the ordered sprites of scene. The slice is a copy.
func (e *Engine) Sprites(scene string) []Sprite {
	sc, ok := e.scenes[scene]
	if !ok {
		return nil
	}
	return append([]Sprite(nil), sc.sprites...)
}

// SpritesTagged returns every sprite carrying tag, current scene first,
// then the global scene, then the remaining scenes by name.
func (e *Engine) SpritesTagged(tag string) []Sprite {
	var out []Sprite
	e.eachSprite(func(s Sprite) {
		if s.Base().tags.Has(tag) {
			out = append(out, s)
		}
	})
	return out
}

// SpritesOfKind returns every sprite of kind k, in the same order as
// [Engine.SpritesTagged].
func (e *Engine) SpritesOfKind(k Kind) []Sprite {
	var out []Sprite
	e.eachSprite(func(s Sprite) {
		if s.Kind() == k {
			out = append(out, s)
		}
	})
	return out
}

func (e *Engine) eachSprite(fn func(Sprite)) {
	visit := func(name string) {
		if sc, ok := e.scenes[name]; ok {
			for _, s := range sc.sprites {
				fn(s)
			}
		}
	}
	visit(e.current)
	if e.current != SceneGlobal {
		visit(SceneGlobal)
	}
	names := make([]string, 0, len(e.scenes))
	for name := range e.scenes {
		if name != e.current && name != SceneGlobal {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		visit(name)
	}
}

// SetScene makes name the current scene. The previous scene's loop stops
// scheduling and the new scene's loop, if any, starts from a fresh
// accumulator. A callback already in flight still runs to completion.
func (e *Engine) SetScene(name string) {
	if name == "" {
		panic("sprig: SetScene with empty name")
	}
	e.scene(name)
	if name == e.current {
		return
	}
	Logger().Info("scene changed", "from", e.current, "to", name)
	e.current = name
	e.sched.restart()
	e.emit(Event{Type: EventSceneChanged, Scene: name})
	e.Refresh()
}

// SetLoop registers loop as the per-tick callback of scene, replacing any
// earlier one. If scene is current the loop restarts immediately.
func (e *Engine) SetLoop(scene string, loop LoopFunc) {
	if scene == "" {
		scene = SceneMain
	}
	e.scene(scene).loop = loop
	if scene == e.current {
		e.sched.restart()
	}
}
