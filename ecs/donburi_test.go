package ecs

import (
	"testing"

	"github.com/phanxgames/sprig"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	var _ sprig.EntityStore = NewDonburiStore(donburi.NewWorld())
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []sprig.Event
	EventType.Subscribe(world, func(w donburi.World, e sprig.Event) {
		received = append(received, e)
	})

	store.EmitEvent(sprig.Event{Type: sprig.EventClick, Scene: "main", X: 100, Y: 200})
	store.EmitEvent(sprig.Event{Type: sprig.EventSceneChanged, Scene: "menu"})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("expected no events before processing, got %d", len(received))
	}
	EventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != sprig.EventClick || e.X != 100 || e.Y != 200 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != sprig.EventSceneChanged || e.Scene != "menu" {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiStore_MirrorsSprites(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	store.EmitEvent(sprig.Event{Type: sprig.EventSpriteAdded, SpriteID: "a", Scene: "main", X: 1, Y: 2})
	store.EmitEvent(sprig.Event{Type: sprig.EventSpriteAdded, SpriteID: "b", Scene: "*"})

	if _, ok := store.Entity("a"); !ok {
		t.Fatal("no entity for sprite a")
	}
	count := 0
	store.EachSprite(func(d *SpriteData) { count++ })
	if count != 2 {
		t.Errorf("mirrored sprites = %d, want 2", count)
	}

	store.EmitEvent(sprig.Event{
		Type: sprig.EventCollision, SpriteID: "a", OtherID: "b", X: 5, Y: 6,
		Collision: sprig.CollisionData{Contact: sprig.Vec2{5, 6}},
	})
	ent, _ := store.Entity("a")
	d := SpriteComponent.Get(world.Entry(ent))
	if d.Collisions != 1 || d.LastContact != (sprig.Vec2{5, 6}) {
		t.Errorf("after collision: %+v", *d)
	}
	if d.X != 1 || d.Y != 2 {
		t.Errorf("collision moved the mirrored position to (%v, %v), want (1, 2)", d.X, d.Y)
	}

	store.EmitEvent(sprig.Event{Type: sprig.EventSpriteRemoved, SpriteID: "a"})
	if _, ok := store.Entity("a"); ok {
		t.Error("entity for sprite a survived removal")
	}
	if world.Valid(ent) {
		t.Error("removed entity still valid in world")
	}
}

func TestDonburiStore_EngineEvents(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	e, err := sprig.New(sprig.Config{Headless: true})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	e.SetEntityStore(store)

	var types []sprig.EventType
	EventType.Subscribe(world, func(w donburi.World, ev sprig.Event) {
		types = append(types, ev.Type)
	})

	r := sprig.NewRectangle(e, sprig.RectangleOptions{})
	e.SetScene("level")
	e.RemoveSprite(r)
	events.ProcessAllEvents(world)

	want := []sprig.EventType{sprig.EventSpriteAdded, sprig.EventSceneChanged, sprig.EventSpriteRemoved}
	if len(types) != len(want) {
		t.Fatalf("got events %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
}
