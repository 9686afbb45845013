// Package ecs provides ECS adapters for turtleizer's scene events.
//
// The primary adapter is [NewDonburiSink], which bridges measuring and
// damage events into a [Donburi] world as typed events. Subscribe to
// [SceneEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
