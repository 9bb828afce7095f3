package ecs

import (
	"github.com/phanxgames/sprig"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// EventType is the Donburi event type for sprig engine events. Events are
// queued; call ProcessEvents (or events.ProcessAllEvents) to deliver them.
var EventType = events.NewEventType[sprig.Event]()

// SpriteData mirrors the identity and last known position of a sprite.
type SpriteData struct {
	ID    string
	Scene string
	X, Y  float64
	// Collisions counts resolved rigid body contacts.
	Collisions int
	// LastContact is the world contact point of the latest collision.
	LastContact sprig.Vec2
}

// SpriteComponent holds the [SpriteData] of each mirrored sprite.
var SpriteComponent = donburi.NewComponentType[SpriteData]()

var spriteQuery = donburi.NewQuery(filter.Contains(SpriteComponent))

// DonburiStore is a [sprig.EntityStore] backed by a Donburi world.
type DonburiStore struct {
	world    donburi.World
	entities map[string]donburi.Entity
}

// NewDonburiStore creates a store publishing into world.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world, entities: make(map[string]donburi.Entity)}
}

// EmitEvent updates the mirrored entities and publishes event.
func (s *DonburiStore) EmitEvent(event sprig.Event) {
	switch event.Type {
	case sprig.EventSpriteAdded:
		if _, ok := s.entities[event.SpriteID]; !ok {
			ent := s.world.Create(SpriteComponent)
			SpriteComponent.SetValue(s.world.Entry(ent), SpriteData{
				ID: event.SpriteID, Scene: event.Scene, X: event.X, Y: event.Y,
			})
			s.entities[event.SpriteID] = ent
		}
	case sprig.EventSpriteRemoved:
		if ent, ok := s.entities[event.SpriteID]; ok {
			s.world.Remove(ent)
			delete(s.entities, event.SpriteID)
		}
	case sprig.EventCollision:
		if entry := s.entry(event.SpriteID); entry != nil {
			d := SpriteComponent.Get(entry)
			d.Collisions++
			d.LastContact = event.Collision.Contact
		}
	}
	EventType.Publish(s.world, event)
}

// Entity returns the entity mirroring the sprite with id.
func (s *DonburiStore) Entity(id string) (donburi.Entity, bool) {
	ent, ok := s.entities[id]
	return ent, ok
}

func (s *DonburiStore) entry(id string) *donburi.Entry {
	ent, ok := s.entities[id]
	if !ok || !s.world.Valid(ent) {
		return nil
	}
	return s.world.Entry(ent)
}

// EachSprite calls fn for every mirrored sprite.
func (s *DonburiStore) EachSprite(fn func(*SpriteData)) {
	spriteQuery.Each(s.world, func(entry *donburi.Entry) {
		fn(SpriteComponent.Get(entry))
	})
}
