// Package turtleizer records turtle-graphics drawings and renders them
// incrementally with [Ebitengine].
//
// A [Scene] owns any number of [Turtle] values. Each turtle keeps an
// append-only [SegmentLog] of the lines it drew, together with the bounding
// box of everything it touched. Moving a turtle reports a damaged area to the
// scene's [Renderer], which strokes only the segments that were added since
// the previous frame into a cached surface. Changing the zoom, scroll or
// background invalidates the cache and the next paint replays every segment.
//
// # Quick start
//
//	scene := turtleizer.NewScene()
//	t := scene.AddTurtle(250, 250)
//	for range 4 {
//		t.ForwardColor(100, turtleizer.ColorRed)
//		t.Right(90)
//	}
//	turtleizer.Run(scene, turtleizer.RunConfig{Title: "Square"})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Coordinates
//
// World coordinates have y growing downwards. A heading of 0 points up,
// positive turns are counter-clockwise. The [Viewport] maps world
// coordinates to pixels as (world + displacement) * zoom - scroll.
//
// # Headless rendering
//
// [RasterSurface] implements [Surface] on the CPU with golang.org/x/image.
// Pass [RasterAllocator] to [NewSceneWithAllocator] to run a scene without a
// GPU, and use [Scene.WritePNG], [Scene.WriteSVG] or [Scene.WriteCSV] to
// export a drawing.
//
// # Scripts
//
// [LoadScript] compiles a JSON list of turtle steps. A script attached with
// [Scene.SetScript] runs a batch of steps per frame, so the drawing grows
// on screen while it is being produced.
//
// [Ebitengine]: https://ebitengine.org
package turtleizer
