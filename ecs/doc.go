// Package ecs provides ECS adapters for sapling's lifecycle events.
//
// The primary adapter is [NewDonburiSink], which bridges engine events
// (object added/removed, scene switched, engine stopped) into a [Donburi]
// world as typed events. Subscribe to [SceneEventType] in your ECS systems
// to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine, err := sapling.New(cfg, sapling.Options{Sink: sink})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
