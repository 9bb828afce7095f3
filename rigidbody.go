package sprig

import (
	"math"
)

// Contact resolution constants.
const (
	contactSlop     = 0.05
	contactFriction = 0.3
)

// BodyOptions configures a rigid body. Use [DefaultBodyOptions] or
// [CircleBodyOptions] as a starting point; the zero value has no gravity,
// no drag (a factor of 0 stops the body every tick) and zero inertia.
type BodyOptions struct {
	Static bool
	// Gravity is added to the vertical velocity every tick. Negative pulls
	// down.
	Gravity float64
	// Drag multiplies linear and angular velocity, once before integration
	// and once after collisions.
	Drag float64
	// BounceLoss scales the normal impulse by 1+BounceLoss.
	BounceLoss float64
	// Inertia resists rotation from off-center impulses.
	Inertia         float64
	Velocity        Vec2
	AngularVelocity float64
	// Obstacles are the bodies tested for contact every tick.
	Obstacles []BodyHandle
}

// DefaultBodyOptions returns the defaults used by [NewRigidRectangle].
func DefaultBodyOptions() BodyOptions {
	return BodyOptions{Gravity: -1.8, Drag: 0.96, BounceLoss: 0.92, Inertia: 700}
}

// CircleBodyOptions returns the defaults used by [NewRigidCircle].
func CircleBodyOptions() BodyOptions {
	return BodyOptions{Gravity: -0.9, Drag: 0.98, BounceLoss: 0.9, Inertia: 700}
}

// BodyHandle refers to a body in a [World]. A handle outlives its body:
// once the body is removed the handle resolves to nil, even if the slot has
// been reused.
type BodyHandle struct {
	index uint32
	gen   uint32
}

// Valid reports whether h was ever issued. It says nothing about whether
// the body is still alive; use [World.Body] for that.
func (h BodyHandle) Valid() bool { return h.gen != 0 }

type bodySlot struct {
	body *RigidBody
	gen  uint32
}

// World is an arena of rigid bodies. Bodies refer to each other by handle,
// so removing one never leaves another holding a dangling pointer.
//
// The engine does not step a World on its own; call [World.Step] from a
// scene loop.
type World struct {
	slots []bodySlot
	free  []uint32
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{}
}

// Add attaches a body to s and returns its handle. The sprite gains the
// "rigidbody" tag.
func (w *World) Add(s Sprite, opts BodyOptions) BodyHandle {
	if s == nil {
		panic("sprig: World.Add(nil)")
	}
	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		idx = uint32(len(w.slots))
		w.slots = append(w.slots, bodySlot{})
	}
	slot := &w.slots[idx]
	slot.gen++
	h := BodyHandle{index: idx, gen: slot.gen}
	slot.body = &RigidBody{
		world:           w,
		handle:          h,
		sprite:          s,
		Static:          opts.Static,
		Gravity:         opts.Gravity,
		Drag:            opts.Drag,
		BounceLoss:      opts.BounceLoss,
		Inertia:         opts.Inertia,
		Velocity:        opts.Velocity,
		AngularVelocity: opts.AngularVelocity,
		obstacles:       append([]BodyHandle(nil), opts.Obstacles...),
	}
	s.Base().tags.Add("rigidbody")
	return h
}

// Body resolves h, returning nil for removed or foreign handles.
func (w *World) Body(h BodyHandle) *RigidBody {
	if !h.Valid() || int(h.index) >= len(w.slots) {
		return nil
	}
	slot := w.slots[h.index]
	if slot.gen != h.gen {
		return nil
	}
	return slot.body
}

// Remove drops the body behind h. The sprite stays registered with its
// engine. It reports whether h was live.
func (w *World) Remove(h BodyHandle) bool {
	if w.Body(h) == nil {
		return false
	}
	slot := &w.slots[h.index]
	slot.body.sprite.Base().tags.Remove("rigidbody")
	slot.body = nil
	slot.gen++
	w.free = append(w.free, h.index)
	return true
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	return len(w.slots) - len(w.free)
}

// Step updates every live body once, in slot order.
func (w *World) Step(stepFactor float64) {
	for i := range w.slots {
		if b := w.slots[i].body; b != nil {
			b.Update(stepFactor)
		}
	}
}

// RigidBody is the physics state attached to a sprite.
type RigidBody struct {
	world  *World
	handle BodyHandle
	sprite Sprite

	Static          bool
	Gravity         float64
	Drag            float64
	BounceLoss      float64
	Inertia         float64
	Velocity        Vec2
	AngularVelocity float64

	obstacles []BodyHandle
}

// Handle returns the body's handle in its world.
func (b *RigidBody) Handle() BodyHandle { return b.handle }

// Sprite returns the sprite the body moves.
func (b *RigidBody) Sprite() Sprite { return b.sprite }

// AddObstacles appends bodies to test against every tick.
func (b *RigidBody) AddObstacles(hs ...BodyHandle) {
	b.obstacles = append(b.obstacles, hs...)
}

// Obstacles returns the handles of the bodies tested against. Handles of
// removed bodies stay in the list and are skipped.
func (b *RigidBody) Obstacles() []BodyHandle {
	return append([]BodyHandle(nil), b.obstacles...)
}

// Update advances the body by one tick scaled by stepFactor: gravity and
// drag, integration, contact resolution against each live obstacle, then
// drag again. Static bodies do not move.
//
// Contacts are resolved one obstacle at a time, so tall stacks of bodies
// jitter and can sink into each other.
func (b *RigidBody) Update(stepFactor float64) {
	if b.Static {
		return
	}
	sb := b.sprite.Base()

	b.Velocity[1] += b.Gravity * stepFactor
	b.Velocity = b.Velocity.Mul(b.Drag)

	sb.ChangeX(b.Velocity[0] * stepFactor)
	sb.ChangeY(b.Velocity[1] * stepFactor)
	sb.Turn(-ToDegrees(b.AngularVelocity) * stepFactor)

	for _, h := range b.obstacles {
		o := b.world.Body(h)
		if o == nil || o == b {
			continue
		}
		data, ok := Touching(b.sprite, o.sprite)
		if !ok {
			continue
		}
		b.resolve(o, data)
		if e := sb.engine; e != nil {
			ob := o.sprite.Base()
			e.emit(Event{
				Type:      EventCollision,
				SpriteID:  sb.id,
				OtherID:   ob.id,
				Scene:     sb.scene,
				X:         data.Contact[0],
				Y:         data.Contact[1],
				Collision: data,
			})
		}
	}

	b.Velocity = b.Velocity.Mul(b.Drag)
	b.AngularVelocity *= b.Drag
}

// resolve separates b from o and exchanges the contact impulse.
func (b *RigidBody) resolve(o *RigidBody, data CollisionData) {
	sb, ob := b.sprite.Base(), o.sprite.Base()
	n := data.Normal

	// A dynamic obstacle runs its own update too, so each side takes half.
	ratio := 0.5
	if o.Static {
		ratio = 1
	}
	push := n.Mul(math.Max(data.Displacement-contactSlop, 0) * ratio)
	sb.ChangeX(push[0])
	sb.ChangeY(push[1])
	if !o.Static {
		ob.ChangeX(-push[0])
		ob.ChangeY(-push[1])
	}

	r1 := data.Contact.Sub(sb.Position())
	r2 := data.Contact.Sub(ob.Position())
	v1 := pointVelocity(b.Velocity, b.AngularVelocity, r1)
	v2 := pointVelocity(o.Velocity, o.AngularVelocity, r2)
	rel := v1.Sub(v2)

	velAlongNormal := rel.Dot(n)
	if velAlongNormal >= 0 {
		return
	}

	invMass2, invInertia2 := 0.0, 0.0
	if !o.Static {
		invMass2 = 1
		invInertia2 = inverse(o.Inertia)
	}
	invInertia1 := inverse(b.Inertia)

	r1n, r2n := cross2(r1, n), cross2(r2, n)
	invMassSum := 1 + invMass2 + r1n*r1n*invInertia1 + r2n*r2n*invInertia2
	j := -(1 + b.BounceLoss) * velAlongNormal / invMassSum

	t := Vec2{-n[1], n[0]}
	r1t, r2t := cross2(r1, t), cross2(r2, t)
	invMassSumT := 1 + invMass2 + r1t*r1t*invInertia1 + r2t*r2t*invInertia2
	jt := -rel.Dot(t) * contactFriction / invMassSumT
	// Coulomb bound: friction never exceeds mu times the normal impulse.
	if limit := contactFriction * math.Abs(j); math.Abs(jt) > limit {
		jt = math.Copysign(limit, jt)
	}

	imp := n.Mul(j).Add(t.Mul(jt))
	b.Velocity = b.Velocity.Add(imp)
	b.AngularVelocity += cross2(r1, imp) * invInertia1
	if !o.Static {
		o.Velocity = o.Velocity.Sub(imp)
		o.AngularVelocity -= cross2(r2, imp) * invInertia2
	}
}

// pointVelocity is the velocity of a point at offset r on a body moving at
// v and spinning at w.
func pointVelocity(v Vec2, w float64, r Vec2) Vec2 {
	return Vec2{v[0] - w*r[1], v[1] + w*r[0]}
}

func inverse(v float64) float64 {
	if v == 0 {
		return 0
	}
	return 1 / v
}

// --- Physics sprites ---

// RigidRectangleOptions configures [NewRigidRectangle]. A nil Body means
// [DefaultBodyOptions].
type RigidRectangleOptions struct {
	RectangleOptions
	Body *BodyOptions
}

// RigidRectangle is a rectangle moved by a rigid body.
type RigidRectangle struct {
	*Rectangle
	*RigidBody
}

// NewRigidRectangle creates a rectangle registered with e and a body for it
// in w.
func NewRigidRectangle(e *Engine, w *World, o RigidRectangleOptions) *RigidRectangle {
	opts := DefaultBodyOptions()
	if o.Body != nil {
		opts = *o.Body
	}
	r := NewRectangle(e, o.RectangleOptions)
	h := w.Add(r, opts)
	return &RigidRectangle{Rectangle: r, RigidBody: w.Body(h)}
}

// RigidCircleOptions configures [NewRigidCircle]. A nil Body means
// [CircleBodyOptions].
type RigidCircleOptions struct {
	CircleOptions
	Body *BodyOptions
}

// RigidCircle is a circle moved by a rigid body.
type RigidCircle struct {
	*Circle
	*RigidBody
}

// NewRigidCircle creates a circle registered with e and a body for it in w.
func NewRigidCircle(e *Engine, w *World, o RigidCircleOptions) *RigidCircle {
	opts := CircleBodyOptions()
	if o.Body != nil {
		opts = *o.Body
	}
	c := NewCircle(e, o.CircleOptions)
	h := w.Add(c, opts)
	return &RigidCircle{Circle: c, RigidBody: w.Body(h)}
}
