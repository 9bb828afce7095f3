// Package sprig is a small 2D sprite library for learning game programming
// on top of [Ebitengine].
//
// An [Engine] owns named scenes of sprites, runs one loop callback per scene
// at a capped rate, folds keyboard and mouse input, plays sounds and keeps
// a shared variable table. Sprites are shapes, text, buttons, images and
// pens; each one has a position, a clockwise compass heading, a size
// factor, a pivot and a layer.
//
// # Quick start
//
//	e, err := sprig.New(sprig.Config{Title: "Hello", Width: 640, Height: 480})
//	if err != nil {
//		log.Fatal(err)
//	}
//	box := sprig.NewRectangle(e, sprig.RectangleOptions{Color: sprig.Hex("#4ab4ff")})
//	e.SetLoop(sprig.SceneMain, func(ctx context.Context) error {
//		if e.KeyPressed("right") {
//			box.ChangeX(4)
//		}
//		return nil
//	})
//	if err := sprig.Run(e); err != nil {
//		log.Fatal(err)
//	}
//
// # Coordinates
//
// The world origin is the canvas center and y points up. Headings are in
// degrees: 0 is up and angles grow clockwise, so [SpriteBase.Move] with a
// heading of 90 walks right. The [Camera] maps world space to the canvas;
// mouse positions are reported in world space through it.
//
// # Loop pacing
//
// A scene loop runs at most Config.MaxFPS times per second. Elapsed time is
// accumulated and the callback runs once the accumulator reaches one
// interval; [Engine.DeltaTime] reports the time that call consumed. Inside a
// callback [Engine.Wait] and [Engine.WaitUntil] yield to the engine, which
// keeps drawing and polling input until the callback resumes.
//
// # Collisions and physics
//
// [Touching] rasterizes two sprites over the intersection of their bounding
// boxes and reduces the shared pixels to a [CollisionData]: a contact point,
// a normal pointing from the second sprite to the first, and a penetration
// depth. A [World] of [RigidBody] values uses it to resolve impulses.
//
// # Sub-packages
//
// noise has seeded Perlin noise, ik a two-dimensional inverse kinematics
// chain, and the separate ecs module mirrors engine events into a
// [Donburi] world.
//
// # Headless use
//
// With Config.Headless set the engine never touches a window or the audio
// device. Tests call [Engine.Update] and [Engine.Draw] directly and drive
// time with a custom [Clock].
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package sprig
