// Package ecs bridges sprig engine events into a [Donburi] world.
//
// [NewDonburiStore] republishes every engine event (sprite added or
// removed, scene changed, collision, click) as [EventType] and keeps one
// entity per registered sprite carrying a [SpriteData] component, so ECS
// systems can query sprites alongside their own components.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	engine.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
