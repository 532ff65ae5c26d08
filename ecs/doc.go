// Package ecs provides ECS adapters for lumen's engine events.
//
// The primary adapter is [NewDonburiSink], which forwards engine lifecycle
// and content events (started, stopped, failed, text and word changes,
// count-up progress) into a [Donburi] world as typed events. Subscribe to
// [EngineEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	host.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
